package converter

import (
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/slidecast/slidecast/pkg/logger"
)

// containerWriter muxes encoded packets into the output file. Packets
// arrive in the encoder time base and are rescaled to the container's
// 90kHz clock right before the interleaved write.
type containerWriter struct {
	fc     *astiav.FormatContext
	io     *astiav.IOContext
	stream *astiav.Stream
	encTB  astiav.Rational
	log    *logger.Logger
}

func newContainerWriter(path string, encTB astiav.Rational, log *logger.Logger) (*containerWriter, error) {
	fc, err := astiav.AllocOutputFormatContext(nil, "", path)
	if err != nil {
		return nil, fmt.Errorf("muxer: allocating output context for %q: %w", path, err)
	}
	w := &containerWriter{fc: fc, encTB: encTB, log: log}
	if !fc.OutputFormat().Flags().Has(astiav.IOFormatFlagNofile) {
		ioCtx, err := astiav.OpenIOContext(path, astiav.NewIOContextFlags(astiav.IOContextFlagWrite), nil, nil)
		if err != nil {
			fc.Free()
			return nil, fmt.Errorf("muxer: opening %q: %w", path, err)
		}
		w.io = ioCtx
		fc.SetPb(ioCtx)
	}
	log.Debug().Msgf("muxer: %s (%s)", path, fc.OutputFormat().Name())
	return w, nil
}

// addStream registers the single video stream from the opened
// encoder's parameters. Must be called before writeHeader.
func (w *containerWriter) addStream(enc *encodeStage) error {
	stream := w.fc.NewStream(enc.codec)
	if stream == nil {
		return errors.New("muxer: adding stream")
	}
	if err := enc.cc.ToCodecParameters(stream.CodecParameters()); err != nil {
		return fmt.Errorf("muxer: copying codec parameters: %w", err)
	}
	stream.SetTimeBase(outputTimeBase)
	w.stream = stream
	return nil
}

func (w *containerWriter) writeHeader() error {
	if err := w.fc.WriteHeader(nil); err != nil {
		return fmt.Errorf("muxer: writing header: %w", err)
	}
	return nil
}

func (w *containerWriter) writePacket(pkt *astiav.Packet) error {
	pkt.RescaleTs(w.encTB, outputTimeBase)
	pkt.SetStreamIndex(w.stream.Index())
	if err := w.fc.WriteInterleavedFrame(pkt); err != nil {
		return fmt.Errorf("muxer: writing packet: %w", err)
	}
	return nil
}

// writeTrailer finalizes the container; nothing may be written after.
func (w *containerWriter) writeTrailer() error {
	if err := w.fc.WriteTrailer(); err != nil {
		return fmt.Errorf("muxer: writing trailer: %w", err)
	}
	return nil
}

func (w *containerWriter) close() error {
	var err error
	if w.io != nil {
		err = w.io.Close()
	}
	w.fc.Free()
	if err != nil {
		return fmt.Errorf("muxer: closing output: %w", err)
	}
	return nil
}
