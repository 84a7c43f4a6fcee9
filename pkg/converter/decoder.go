package converter

import (
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/slidecast/slidecast/pkg/logger"
)

// decodeStage wraps the still-image decoder selected from the first
// slide's filename. Each slide goes in as one key packet carrying a
// running millisecond timestamp rescaled into the encoder time base.
type decodeStage struct {
	cc    *astiav.CodecContext
	pkt   *astiav.Packet
	encTB astiav.Rational
	ts    int64 // running pts, milliseconds
	log   *logger.Logger
}

func newDecodeStage(firstFilename string, encTB astiav.Rational, log *logger.Logger) (*decodeStage, error) {
	id := codecIDFor(firstFilename)
	codec := astiav.FindDecoder(id)
	if codec == nil {
		return nil, fmt.Errorf("%w: decoder %s", ErrUnsupportedCodec, id.Name())
	}
	cc := astiav.AllocCodecContext(codec)
	if cc == nil {
		return nil, errors.New("decoder: allocating codec context")
	}
	if err := cc.Open(codec, nil); err != nil {
		cc.Free()
		return nil, fmt.Errorf("decoder: opening %s: %w", id.Name(), err)
	}
	log.Debug().Msgf("decoder: %s", id.Name())
	return &decodeStage{cc: cc, pkt: astiav.AllocPacket(), encTB: encTB, log: log}, nil
}

// submit feeds one slide's raw bytes to the decoder and advances the
// running timestamp by the slide's delay. Still images have no
// inter-frame dependency, so every packet is a key unit.
func (d *decodeStage) submit(data []byte, delay int64) error {
	defer d.pkt.Unref()
	if err := d.pkt.FromData(data); err != nil {
		return fmt.Errorf("decoder: packet from data: %w", err)
	}
	d.pkt.SetFlags(d.pkt.Flags().Add(astiav.PacketFlagKey))
	pts, dur := rescale(d.ts, delay, decodeTimeBase, d.encTB)
	d.pkt.SetPts(pts)
	d.pkt.SetDuration(dur)
	d.ts += delay
	if err := d.cc.SendPacket(d.pkt); err != nil {
		return fmt.Errorf("decoder: sending packet: %w", err)
	}
	return nil
}

// receive pulls the next decoded frame into dst. A false result with a
// nil error ends the drain: nothing is ready yet, or nothing is left
// after a flush. Any other decoder failure is fatal.
func (d *decodeStage) receive(dst *astiav.Frame) (bool, error) {
	if err := d.cc.ReceiveFrame(dst); err != nil {
		if errors.Is(err, astiav.ErrEagain) || errors.Is(err, astiav.ErrEof) {
			return false, nil
		}
		return false, fmt.Errorf("decoder: receiving frame: %w", err)
	}
	return true, nil
}

// flush signals end-of-input; a final drain retrieves anything still
// buffered inside the decoder.
func (d *decodeStage) flush() error {
	if err := d.cc.SendPacket(nil); err != nil {
		return fmt.Errorf("decoder: flushing: %w", err)
	}
	return nil
}

func (d *decodeStage) close() {
	d.pkt.Free()
	d.cc.Free()
}
