package converter

import (
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/slidecast/slidecast/pkg/logger"
)

// Offline batch conversion: spend encode time on quality, not speed.
const (
	encoderCrf    = "18"
	encoderPreset = "veryslow"
)

// encodeStage wraps a fixed-geometry H.264 encoder running at the
// nominal frame rate derived from the smallest slide delay.
type encodeStage struct {
	codec *astiav.Codec
	cc    *astiav.CodecContext
	log   *logger.Logger
}

func newEncodeStage(w, h int, encTB astiav.Rational, log *logger.Logger) (*encodeStage, error) {
	codec := astiav.FindEncoder(astiav.CodecIDH264)
	if codec == nil {
		return nil, fmt.Errorf("%w: encoder h264", ErrUnsupportedCodec)
	}
	cc := astiav.AllocCodecContext(codec)
	if cc == nil {
		return nil, errors.New("encoder: allocating codec context")
	}
	cc.SetWidth(w)
	cc.SetHeight(h)
	cc.SetPixelFormat(astiav.PixelFormatYuv420P)
	cc.SetTimeBase(encTB)
	cc.SetFramerate(encTB.Invert())
	// The container carries the parameter sets, not the bitstream.
	cc.SetFlags(cc.Flags().Add(astiav.CodecContextFlagGlobalHeader))

	opts := astiav.NewDictionary()
	defer opts.Free()
	for _, kv := range [][2]string{{"crf", encoderCrf}, {"preset", encoderPreset}} {
		if err := opts.Set(kv[0], kv[1], astiav.NewDictionaryFlags()); err != nil {
			cc.Free()
			return nil, fmt.Errorf("encoder: setting option %s: %w", kv[0], err)
		}
	}
	if err := cc.Open(codec, opts); err != nil {
		cc.Free()
		return nil, fmt.Errorf("encoder: opening: %w", err)
	}
	log.Debug().Msgf("encoder: h264 %dx%d, %d/%d fps, crf=%s, preset=%s",
		w, h, encTB.Den(), encTB.Num(), encoderCrf, encoderPreset)
	return &encodeStage{codec: codec, cc: cc, log: log}, nil
}

func (e *encodeStage) submit(frame *astiav.Frame) error {
	if err := e.cc.SendFrame(frame); err != nil {
		return fmt.Errorf("encoder: sending frame: %w", err)
	}
	return nil
}

// receive pulls the next encoded packet into dst, with the same drain
// protocol as the decode stage.
func (e *encodeStage) receive(dst *astiav.Packet) (bool, error) {
	if err := e.cc.ReceivePacket(dst); err != nil {
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return false, nil
		}
		return false, fmt.Errorf("encoder: receiving packet: %w", err)
	}
	return true, nil
}

func (e *encodeStage) flush() error {
	if err := e.cc.SendFrame(nil); err != nil {
		return fmt.Errorf("encoder: flushing: %w", err)
	}
	return nil
}

func (e *encodeStage) close() {
	e.cc.Free()
}
