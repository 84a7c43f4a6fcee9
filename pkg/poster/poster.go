// Package poster renders a small JPEG preview of a slide.
package poster

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const jpegQuality = 90

// Render decodes one slide image and returns a JPEG preview whose
// longer side is at most bound pixels. Smaller slides pass through
// unscaled.
func Render(slide []byte, bound int) ([]byte, error) {
	if bound < 1 {
		return nil, fmt.Errorf("poster: size bound %d is too small", bound)
	}
	src, _, err := image.Decode(bytes.NewReader(slide))
	if err != nil {
		return nil, fmt.Errorf("poster: decoding slide: %w", err)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > bound || h > bound {
		scale := float64(bound) / float64(max(w, h))
		dw := max(1, int(float64(w)*scale))
		dh := max(1, int(float64(h)*scale))
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
		src = dst
	}
	out := new(bytes.Buffer)
	if err := jpeg.Encode(out, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("poster: encoding: %w", err)
	}
	return out.Bytes(), nil
}
