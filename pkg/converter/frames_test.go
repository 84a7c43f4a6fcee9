package converter

import (
	"errors"
	"testing"

	"github.com/asticode/go-astiav"
)

func TestCodecIDFor(t *testing.T) {
	tests := []struct {
		filename string
		want     astiav.CodecID
	}{
		{"a.png", astiav.CodecIDPng},
		{"a.PNG", astiav.CodecIDPng},
		{"slides/page1.Png", astiav.CodecIDPng},
		{"a.jpg", astiav.CodecIDMjpeg},
		{"a.jpeg", astiav.CodecIDMjpeg},
		{"a", astiav.CodecIDMjpeg},
		{"png", astiav.CodecIDPng},
		{"", astiav.CodecIDMjpeg},
	}
	for _, tt := range tests {
		if got := codecIDFor(tt.filename); got != tt.want {
			t.Errorf("codecIDFor(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestLowestDelay(t *testing.T) {
	tests := []struct {
		name    string
		frames  []FrameSpec
		want    int
		wantErr error
	}{
		{
			name:    "empty sequence",
			wantErr: ErrEmptyInput,
		},
		{
			name:   "single frame",
			frames: []FrameSpec{{Filename: "a.png", Delay: 1500}},
			want:   1500,
		},
		{
			name: "minimum wins",
			frames: []FrameSpec{
				{Filename: "a.png", Delay: 100},
				{Filename: "b.png", Delay: 200},
				{Filename: "c.png", Delay: 100},
			},
			want: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lowestDelay(tt.frames)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("lowestDelay() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("lowestDelay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLowestDelayRejectsZero(t *testing.T) {
	_, err := lowestDelay([]FrameSpec{{Filename: "a.png", Delay: 0}})
	if err == nil {
		t.Fatal("expected an error for a zero delay")
	}
	if errors.Is(err, ErrEmptyInput) {
		t.Errorf("zero delay must not report ErrEmptyInput, got %v", err)
	}
}
