// Package converter turns an ordered sequence of still images, each
// with a display duration, into a single H.264 video file.
//
// The pipeline is decode -> scale -> encode -> mux, driven
// synchronously one slide at a time. Every conversion owns its own
// decoder, scaler, encoder and muxer; one decoded frame, one scaled
// frame and one packet are allocated up front and reused for the
// whole run, bounding memory to a small multiple of a raster.
package converter

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/hashicorp/go-multierror"
	"github.com/slidecast/slidecast/pkg/archive"
	"github.com/slidecast/slidecast/pkg/logger"
)

type Converter struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Converter { return &Converter{log: log} }

// Convert renders the slides listed in frames, read from the ZIP
// archive bytes, into a video file at outputPath. A failed conversion
// reports the stage that failed and leaves any partially written
// output file for the caller to discard.
func (c *Converter) Convert(archiveBytes []byte, frames []FrameSpec, outputPath string) (err error) {
	encTB, err := encodeTimeBaseFor(frames)
	if err != nil {
		return err
	}
	r, err := archive.NewReader(archiveBytes)
	if err != nil {
		return err
	}

	p := newPipeline(c.log)
	defer func() {
		if cerr := p.close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()

	if p.dec, err = newDecodeStage(frames[0].Filename, encTB, c.log); err != nil {
		return err
	}

	// The first slide is decoded synchronously: its true geometry
	// fixes the scaler, encoder and container setup for the whole run.
	if err = p.submit(r, frames[0]); err != nil {
		return err
	}
	ok, err := p.dec.receive(p.decoded)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("decoder: no frame decoded from %q", frames[0].Filename)
	}
	if p.scaler, err = newScaleStage(p.decoded, c.log); err != nil {
		return err
	}
	if p.enc, err = newEncodeStage(p.scaler.dstW, p.scaler.dstH, encTB, c.log); err != nil {
		return err
	}
	if p.out, err = newContainerWriter(outputPath, encTB, c.log); err != nil {
		return err
	}
	if err = p.out.addStream(p.enc); err != nil {
		return err
	}
	if err = p.out.writeHeader(); err != nil {
		return err
	}
	if err = p.push(); err != nil {
		return err
	}

	for _, f := range frames[1:] {
		if err = p.submit(r, f); err != nil {
			return err
		}
		if err = p.drainDecoder(); err != nil {
			return err
		}
	}

	if err = p.dec.flush(); err != nil {
		return err
	}
	if err = p.drainDecoder(); err != nil {
		return err
	}
	if err = p.enc.flush(); err != nil {
		return err
	}
	if err = p.drainEncoder(); err != nil {
		return err
	}
	if err = p.out.writeTrailer(); err != nil {
		return err
	}
	c.log.Debug().Msgf("converted %d slides into %s", len(frames), outputPath)
	return nil
}

// pipeline holds the four stages and the reusable buffers shuttling
// data between them.
type pipeline struct {
	dec    *decodeStage
	scaler *scaleStage
	enc    *encodeStage
	out    *containerWriter

	decoded *astiav.Frame
	scaled  *astiav.Frame
	pkt     *astiav.Packet

	log *logger.Logger
}

func newPipeline(log *logger.Logger) *pipeline {
	return &pipeline{
		decoded: astiav.AllocFrame(),
		scaled:  astiav.AllocFrame(),
		pkt:     astiav.AllocPacket(),
		log:     log,
	}
}

func (p *pipeline) submit(r *archive.Reader, f FrameSpec) error {
	data, err := r.Entry(f.Filename)
	if err != nil {
		return err
	}
	return p.dec.submit(data, int64(f.Delay))
}

// push scales the frame sitting in p.decoded, hands it to the encoder
// and writes whatever the encoder has ready.
func (p *pipeline) push() error {
	if err := p.scaler.scale(p.decoded, p.scaled); err != nil {
		return err
	}
	if err := p.enc.submit(p.scaled); err != nil {
		return err
	}
	return p.drainEncoder()
}

func (p *pipeline) drainDecoder() error {
	for {
		ok, err := p.dec.receive(p.decoded)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err = p.push(); err != nil {
			return err
		}
	}
}

func (p *pipeline) drainEncoder() error {
	for {
		ok, err := p.enc.receive(p.pkt)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err = p.out.writePacket(p.pkt); err != nil {
			return err
		}
	}
}

func (p *pipeline) close() error {
	var result *multierror.Error
	if p.out != nil {
		result = multierror.Append(result, p.out.close())
	}
	if p.enc != nil {
		p.enc.close()
	}
	if p.scaler != nil {
		p.scaler.close()
	}
	if p.dec != nil {
		p.dec.close()
	}
	p.pkt.Free()
	p.scaled.Free()
	p.decoded.Free()
	return result.ErrorOrNil()
}
