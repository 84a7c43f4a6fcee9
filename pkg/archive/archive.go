// Package archive reads slide images out of an in-memory ZIP file.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("entry not found")

type Reader struct {
	zr *zip.Reader
}

func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return &Reader{zr: zr}, nil
}

// Entry returns the full contents of the named entry.
// The read is checked against the length declared in the archive.
func (r *Reader) Entry(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name != name || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("archive: opening %q: %w", name, err)
		}
		defer rc.Close()
		b := make([]byte, f.UncompressedSize64)
		if _, err := io.ReadFull(rc, b); err != nil {
			return nil, fmt.Errorf("archive: reading %q: %w", name, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("archive: %q: %w", name, ErrNotFound)
}

// ImageNames lists the archive's image entries in natural order,
// i.e. numbers inside the names compare by value (page2 < page10).
func (r *Reader) ImageNames() []string {
	var names []string
	for _, f := range r.zr.File {
		if f.FileInfo().IsDir() || !isImage(f.Name) {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		return naturalLess(path.Base(names[i]), path.Base(names[j]))
	})
	return names
}

func isImage(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		da, db := digitPrefix(a), digitPrefix(b)
		if da > 0 && db > 0 {
			na, nb := numValue(a[:da]), numValue(b[:db])
			if na != nb {
				return na < nb
			}
			a, b = a[da:], b[db:]
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return a < b
}

func digitPrefix(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func numValue(s string) uint64 {
	var v uint64
	for i := 0; i < len(s); i++ {
		v = v*10 + uint64(s[i]-'0')
	}
	return v
}
