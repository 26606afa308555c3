package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EXTRACTOR_URL", "")
	t.Setenv("EXTRACTOR_DIM", "")
	t.Setenv("MATCH_TOLERANCE", "")
	t.Setenv("MATCH_METRIC", "")

	cfg := Load()
	if cfg.Extractor.URL != "" {
		t.Errorf("expected empty extractor URL, got %s", cfg.Extractor.URL)
	}
	if cfg.Extractor.Dimension != 0 {
		t.Errorf("expected dimension check disabled by default, got %d", cfg.Extractor.Dimension)
	}
	if cfg.Match.Tolerance != 0.6 {
		t.Errorf("expected default tolerance 0.6, got %v", cfg.Match.Tolerance)
	}
	if cfg.Match.Metric != "euclidean" {
		t.Errorf("expected default metric euclidean, got %s", cfg.Match.Metric)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXTRACTOR_URL", "http://faces:9000")
	t.Setenv("EXTRACTOR_DIM", "128")
	t.Setenv("MATCH_TOLERANCE", "0.45")
	t.Setenv("MATCH_METRIC", "cosine")

	cfg := Load()
	if cfg.Extractor.URL != "http://faces:9000" {
		t.Errorf("unexpected extractor URL %s", cfg.Extractor.URL)
	}
	if cfg.Extractor.Dimension != 128 {
		t.Errorf("unexpected dimension %d", cfg.Extractor.Dimension)
	}
	if cfg.Match.Tolerance != 0.45 {
		t.Errorf("unexpected tolerance %v", cfg.Match.Tolerance)
	}
	if cfg.Match.Metric != "cosine" {
		t.Errorf("unexpected metric %s", cfg.Match.Metric)
	}
}

func TestLoadInvalidToleranceFallsBack(t *testing.T) {
	t.Setenv("MATCH_TOLERANCE", "-3")
	if cfg := Load(); cfg.Match.Tolerance != 0.6 {
		t.Errorf("expected fallback tolerance for negative value, got %v", cfg.Match.Tolerance)
	}

	t.Setenv("MATCH_TOLERANCE", "banana")
	if cfg := Load(); cfg.Match.Tolerance != 0.6 {
		t.Errorf("expected fallback tolerance for garbage value, got %v", cfg.Match.Tolerance)
	}
}

func TestApplyAlbumFile(t *testing.T) {
	root := t.TempDir()
	content := "extractor_url: http://album-local:7000\nextractor_dim: 512\nmatch_tolerance: 0.5\n"
	if err := os.WriteFile(filepath.Join(root, AlbumConfigName), []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	t.Setenv("MATCH_METRIC", "cosine")
	cfg := Load()
	if err := cfg.ApplyAlbumFile(root); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if cfg.Extractor.URL != "http://album-local:7000" {
		t.Errorf("album file should override extractor URL, got %s", cfg.Extractor.URL)
	}
	if cfg.Extractor.Dimension != 512 {
		t.Errorf("album file should override dimension, got %d", cfg.Extractor.Dimension)
	}
	if cfg.Match.Tolerance != 0.5 {
		t.Errorf("album file should override tolerance, got %v", cfg.Match.Tolerance)
	}
	// Unset fields keep their current values.
	if cfg.Match.Metric != "cosine" {
		t.Errorf("metric should be untouched, got %s", cfg.Match.Metric)
	}
}

func TestApplyAlbumFileMissingIsNoop(t *testing.T) {
	cfg := Load()
	before := *cfg
	if err := cfg.ApplyAlbumFile(t.TempDir()); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if *cfg != before {
		t.Error("missing album file must not change the config")
	}
}

func TestApplyAlbumFileMalformed(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, AlbumConfigName), []byte("extractor_url: [unclosed"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := Load().ApplyAlbumFile(root); err == nil {
		t.Error("expected error for malformed album file, got nil")
	}
}
