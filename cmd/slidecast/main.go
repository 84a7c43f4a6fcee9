package main

import (
	"errors"
	goflag "flag"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/slidecast/slidecast/pkg/archive"
	"github.com/slidecast/slidecast/pkg/config"
	"github.com/slidecast/slidecast/pkg/converter"
	"github.com/slidecast/slidecast/pkg/logger"
	"github.com/slidecast/slidecast/pkg/manifest"
	sos "github.com/slidecast/slidecast/pkg/os"
	"github.com/slidecast/slidecast/pkg/poster"
	flag "github.com/spf13/pflag"
)

var Version = "?"

func main() {
	conf := config.NewConfig()
	conf.ParseFlags()

	output := flag.StringP("output", "o", conf.Slidecast.Output, "output video path")
	manifestPath := flag.String("manifest", "", "JSON manifest with per-slide delays")
	posterPath := flag.String("poster", "", "write a JPEG poster of the first slide")
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	flag.Parse()

	log := logger.NewConsole(conf.Slidecast.Debug, "sc", false)
	log.Info().Msgf("slidecast %s", Version)

	if flag.NArg() != 1 {
		log.Fatal().Msg("usage: slidecast [options] <archive.zip>")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't read the archive")
	}
	frames, err := loadFrames(data, *manifestPath, conf.Slidecast.DefaultDelay)
	if err != nil {
		log.Fatal().Err(err).Msg("couldn't build the frame list")
	}

	if dir := filepath.Dir(*output); dir != "." {
		if err = sos.CheckCreateDir(dir); err != nil {
			log.Fatal().Err(err).Msg("couldn't create the output directory")
		}
	}

	// one writer per output path
	lock := flock.New(*output + ".lock")
	locked, err := lock.TryLock()
	if err != nil || !locked {
		log.Fatal().Err(err).Msgf("output %s is locked by another conversion", *output)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	if err = converter.New(log).Convert(data, frames, *output); err != nil {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
		log.Fatal().Err(err).Msg("conversion failed")
	}
	log.Info().Msgf("wrote %s (%d slides)", *output, len(frames))

	if *posterPath != "" {
		if err = writePoster(data, frames[0].Filename, *posterPath, conf.Slidecast.Poster.Width); err != nil {
			log.Error().Err(err).Msg("poster failed")
		} else {
			log.Info().Msgf("wrote %s", *posterPath)
		}
	}
}

func loadFrames(archiveBytes []byte, manifestPath string, delay uint) ([]converter.FrameSpec, error) {
	if manifestPath != "" {
		m, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, err
		}
		return manifest.Parse(m)
	}
	r, err := archive.NewReader(archiveBytes)
	if err != nil {
		return nil, err
	}
	names := r.ImageNames()
	if len(names) == 0 {
		return nil, errors.New("no image entries in the archive")
	}
	return manifest.Uniform(names, delay), nil
}

func writePoster(archiveBytes []byte, first, path string, width int) error {
	r, err := archive.NewReader(archiveBytes)
	if err != nil {
		return err
	}
	slide, err := r.Entry(first)
	if err != nil {
		return err
	}
	img, err := poster.Render(slide, width)
	if err != nil {
		return err
	}
	return sos.WriteFile(path, img, 0644)
}
