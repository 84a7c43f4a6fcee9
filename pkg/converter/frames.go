package converter

import (
	"fmt"
	"strings"

	"github.com/asticode/go-astiav"
)

// FrameSpec names one slide of the show and how long it stays on
// screen, in milliseconds. The order of the specs is display order.
type FrameSpec struct {
	Filename string
	Delay    uint
}

// codecIDFor selects the still-image decoder from a filename: names
// ending in "png" (any case) decode as PNG, everything else as
// baseline JPEG. The choice is made once, from the first slide.
func codecIDFor(filename string) astiav.CodecID {
	if n := len(filename); n >= 3 && strings.EqualFold(filename[n-3:], "png") {
		return astiav.CodecIDPng
	}
	return astiav.CodecIDMjpeg
}

// lowestDelay returns the minimum display delay across the show.
func lowestDelay(frames []FrameSpec) (int, error) {
	if len(frames) == 0 {
		return 0, ErrEmptyInput
	}
	min := frames[0].Delay
	for i, f := range frames {
		if f.Delay < 1 {
			return 0, fmt.Errorf("converter: frame %d (%s): delay must be at least 1ms", i, f.Filename)
		}
		if f.Delay < min {
			min = f.Delay
		}
	}
	return int(min), nil
}
