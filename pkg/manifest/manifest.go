// Package manifest builds the ordered frame list a conversion runs on.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slidecast/slidecast/pkg/converter"
)

// Entry is one slide of a JSON manifest:
//
//	[{"file": "page1.png", "delay": 1500}, ...]
type Entry struct {
	File  string `json:"file"`
	Delay uint   `json:"delay"`
}

var ErrEmpty = errors.New("manifest: no entries")

// Parse turns manifest JSON into frame specs, keeping file order.
func Parse(data []byte) ([]converter.FrameSpec, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	frames := make([]converter.FrameSpec, len(entries))
	for i, e := range entries {
		if e.File == "" {
			return nil, fmt.Errorf("manifest: entry %d: missing file", i)
		}
		if e.Delay < 1 {
			return nil, fmt.Errorf("manifest: entry %d (%s): delay must be at least 1ms", i, e.File)
		}
		frames[i] = converter.FrameSpec{Filename: e.File, Delay: e.Delay}
	}
	return frames, nil
}

// Uniform builds a frame list giving every named slide the same delay.
func Uniform(names []string, delay uint) []converter.FrameSpec {
	frames := make([]converter.FrameSpec, len(names))
	for i, n := range names {
		frames[i] = converter.FrameSpec{Filename: n, Delay: delay}
	}
	return frames
}
