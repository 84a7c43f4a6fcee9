package manifest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/slidecast/slidecast/pkg/converter"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []converter.FrameSpec
		wantErr bool
	}{
		{
			name: "two slides",
			data: `[{"file": "a.png", "delay": 100}, {"file": "b.png", "delay": 2000}]`,
			want: []converter.FrameSpec{
				{Filename: "a.png", Delay: 100},
				{Filename: "b.png", Delay: 2000},
			},
		},
		{
			name:    "not json",
			data:    `delays: nope`,
			wantErr: true,
		},
		{
			name:    "missing file",
			data:    `[{"delay": 100}]`,
			wantErr: true,
		},
		{
			name:    "zero delay",
			data:    `[{"file": "a.png", "delay": 0}]`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse([]byte(`[]`)); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse([]) error = %v, want ErrEmpty", err)
	}
}

func TestUniform(t *testing.T) {
	got := Uniform([]string{"a.png", "b.png"}, 750)
	want := []converter.FrameSpec{
		{Filename: "a.png", Delay: 750},
		{Filename: "b.png", Delay: 750},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uniform() = %v, want %v", got, want)
	}
}
