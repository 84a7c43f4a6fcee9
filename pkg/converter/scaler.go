package converter

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/slidecast/slidecast/pkg/logger"
)

var scaleFlags = astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagLanczos)

// scaleStage resamples decoded frames into the fixed encoder geometry:
// planar 4:2:0 with the first frame's dimensions rounded up to even.
// The swscale context is cached and rebuilt only when the source
// geometry changes; the destination geometry never does.
type scaleStage struct {
	ssc      *astiav.SoftwareScaleContext
	dstW     int
	dstH     int
	dstFmt   astiav.PixelFormat
	rebuilds int
	log      *logger.Logger
}

// even rounds n up to the next even number; 4:2:0 chroma subsampling
// needs both axes even.
func even(n int) int { return n + n%2 }

func newScaleStage(first *astiav.Frame, log *logger.Logger) (*scaleStage, error) {
	w, h := first.Width(), first.Height()
	s := &scaleStage{dstW: even(w), dstH: even(h), dstFmt: astiav.PixelFormatYuv420P, log: log}
	ssc, err := astiav.CreateSoftwareScaleContext(w, h, first.PixelFormat(), s.dstW, s.dstH, s.dstFmt, scaleFlags)
	if err != nil {
		return nil, fmt.Errorf("scaler: creating context: %w", err)
	}
	s.ssc = ssc
	log.Debug().Msgf("scaler: %dx%d %s -> %dx%d yuv420p", w, h, first.PixelFormat(), s.dstW, s.dstH)
	return s, nil
}

// scale resamples src into dst. The presentation timestamp carries
// over; the picture type is cleared so the encoder decides frame
// types itself.
func (s *scaleStage) scale(src, dst *astiav.Frame) error {
	if src.Width() != s.ssc.SourceWidth() || src.Height() != s.ssc.SourceHeight() || src.PixelFormat() != s.ssc.SourcePixelFormat() {
		ssc, err := astiav.CreateSoftwareScaleContext(src.Width(), src.Height(), src.PixelFormat(), s.dstW, s.dstH, s.dstFmt, scaleFlags)
		if err != nil {
			return fmt.Errorf("scaler: rebuilding context: %w", err)
		}
		s.ssc.Free()
		s.ssc = ssc
		s.rebuilds++
		s.log.Debug().Msgf("scaler: source changed to %dx%d %s", src.Width(), src.Height(), src.PixelFormat())
	}
	if err := s.ssc.ScaleFrame(src, dst); err != nil {
		return fmt.Errorf("scaler: scaling frame: %w", err)
	}
	dst.SetPts(src.Pts())
	dst.SetPictureType(astiav.PictureTypeNone)
	return nil
}

func (s *scaleStage) close() {
	s.ssc.Free()
}
