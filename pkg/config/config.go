package config

import (
	"flag"
)

type Config struct {
	Slidecast Slidecast
}

type Slidecast struct {
	Debug bool `fig:"debug"`
	// DefaultDelay is the per-slide display time in milliseconds used
	// when the caller provides no manifest.
	DefaultDelay uint   `fig:"defaultDelay" default:"1000"`
	Output       string `fig:"output" default:"slideshow.mp4"`
	Poster       Poster
}

type Poster struct {
	// Width bounds the longer side of the generated poster image.
	Width int `fig:"width" default:"320"`
}

func NewConfig() (conf Config) {
	if err := LoadConfig(&conf); err != nil {
		panic(err)
	}
	return
}

// ParseFlags updates config values from passed runtime flags.
// Define own flags with default value set to the current config param.
// The caller is responsible for the flag.Parse() call.
func (c *Config) ParseFlags() {
	flag.BoolVar(&c.Slidecast.Debug, "debug", c.Slidecast.Debug, "enable debug logging")
	flag.UintVar(&c.Slidecast.DefaultDelay, "delay", c.Slidecast.DefaultDelay, "per-slide display time (ms) without a manifest")
	flag.IntVar(&c.Slidecast.Poster.Width, "poster-width", c.Slidecast.Poster.Width, "poster image size bound (px)")
}
