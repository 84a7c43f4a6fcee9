package config

import "testing"

func TestConfigDefaults(t *testing.T) {
	conf := NewConfig()
	if conf.Slidecast.DefaultDelay == 0 {
		t.Errorf("expected a non-zero default delay")
	}
	if conf.Slidecast.Output == "" {
		t.Errorf("expected a default output path")
	}
	if conf.Slidecast.Poster.Width <= 0 {
		t.Errorf("expected a positive poster width, got %v", conf.Slidecast.Poster.Width)
	}
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("SLIDECAST_SLIDECAST_DEBUG", "true")
	var conf Config
	if err := LoadConfig(&conf); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !conf.Slidecast.Debug {
		t.Errorf("expected debug to be set from the environment")
	}
}
