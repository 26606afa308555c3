// Package config loads runtime configuration from the environment, with an
// optional per-album YAML override for extractor and matching settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AlbumConfigName is the optional per-album override file, looked up in
// the album root.
const AlbumConfigName = "face-search.yaml"

type Config struct {
	Extractor ExtractorConfig
	Match     MatchConfig
}

type ExtractorConfig struct {
	URL       string // base URL of the face-embedding service
	Dimension int    // expected embedding length, 0 disables the check
}

type MatchConfig struct {
	Tolerance float64 // maximum distance to count as the same identity
	Metric    string  // "euclidean" or "cosine"
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Load builds the configuration from environment variables.
func Load() *Config {
	return &Config{
		Extractor: ExtractorConfig{
			URL:       os.Getenv("EXTRACTOR_URL"),
			Dimension: envInt("EXTRACTOR_DIM", 0),
		},
		Match: MatchConfig{
			Tolerance: envFloat("MATCH_TOLERANCE", 0.6),
			Metric:    envString("MATCH_METRIC", "euclidean"),
		},
	}
}

// albumFile mirrors the YAML override file.
type albumFile struct {
	ExtractorURL   string  `yaml:"extractor_url"`
	ExtractorDim   int     `yaml:"extractor_dim"`
	MatchTolerance float64 `yaml:"match_tolerance"`
	MatchMetric    string  `yaml:"match_metric"`
}

// ApplyAlbumFile overlays settings from <albumRoot>/face-search.yaml if the
// file exists. Unset fields keep their current values.
func (c *Config) ApplyAlbumFile(albumRoot string) error {
	path := filepath.Join(albumRoot, AlbumConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading album config: %w", err)
	}

	var f albumFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing '%s': %w", path, err)
	}

	if f.ExtractorURL != "" {
		c.Extractor.URL = f.ExtractorURL
	}
	if f.ExtractorDim > 0 {
		c.Extractor.Dimension = f.ExtractorDim
	}
	if f.MatchTolerance > 0 {
		c.Match.Tolerance = f.MatchTolerance
	}
	if f.MatchMetric != "" {
		c.Match.Metric = f.MatchMetric
	}
	return nil
}
