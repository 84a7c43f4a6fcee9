package converter

import (
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/slidecast/slidecast/pkg/logger"
)

func TestEven(t *testing.T) {
	tests := []struct{ n, want int }{
		{101, 102},
		{99, 100},
		{100, 100},
		{1, 2},
		{0, 0},
	}
	for _, tt := range tests {
		if got := even(tt.n); got != tt.want {
			t.Errorf("even(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func newRasterFrame(t *testing.T, w, h int, pf astiav.PixelFormat) *astiav.Frame {
	t.Helper()
	f := astiav.AllocFrame()
	f.SetWidth(w)
	f.SetHeight(h)
	f.SetPixelFormat(pf)
	if err := f.AllocBuffer(1); err != nil {
		f.Free()
		t.Fatalf("allocating frame buffer: %v", err)
	}
	return f
}

// The destination geometry is fixed by the first frame (padded to
// even); a later frame with different source geometry rebuilds the
// resampling plan exactly once and still lands in the same geometry.
func TestScaleStageFixedGeometry(t *testing.T) {
	first := newRasterFrame(t, 101, 99, astiav.PixelFormatRgb24)
	defer first.Free()

	s, err := newScaleStage(first, logger.Default())
	if err != nil {
		t.Fatalf("newScaleStage() error = %v", err)
	}
	defer s.close()

	if s.dstW != 102 || s.dstH != 100 {
		t.Fatalf("destination geometry = %dx%d, want 102x100", s.dstW, s.dstH)
	}

	dst := astiav.AllocFrame()
	defer dst.Free()

	first.SetPts(0)
	if err = s.scale(first, dst); err != nil {
		t.Fatalf("scale(first) error = %v", err)
	}
	if s.rebuilds != 0 {
		t.Fatalf("rebuilds after first frame = %d, want 0", s.rebuilds)
	}
	if dst.Width() != 102 || dst.Height() != 100 {
		t.Errorf("scaled geometry = %dx%d, want 102x100", dst.Width(), dst.Height())
	}
	if dst.PixelFormat() != astiav.PixelFormatYuv420P {
		t.Errorf("scaled pixel format = %v, want yuv420p", dst.PixelFormat())
	}

	second := newRasterFrame(t, 64, 48, astiav.PixelFormatRgb24)
	defer second.Free()
	second.SetPts(7)
	if err = s.scale(second, dst); err != nil {
		t.Fatalf("scale(second) error = %v", err)
	}
	if s.rebuilds != 1 {
		t.Errorf("rebuilds after geometry change = %d, want 1", s.rebuilds)
	}
	if dst.Width() != 102 || dst.Height() != 100 {
		t.Errorf("scaled geometry = %dx%d, want the fixed 102x100", dst.Width(), dst.Height())
	}
	if dst.Pts() != 7 {
		t.Errorf("scaled pts = %d, want 7 (copied from the source)", dst.Pts())
	}

	// same geometry again: the cached plan is reused
	if err = s.scale(second, dst); err != nil {
		t.Fatalf("scale(second, again) error = %v", err)
	}
	if s.rebuilds != 1 {
		t.Errorf("rebuilds after repeated geometry = %d, want still 1", s.rebuilds)
	}
}
