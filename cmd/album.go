package cmd

import (
	"context"
	"fmt"

	"github.com/lakshayg/face-search/internal/album"
	"github.com/lakshayg/face-search/internal/config"
	"github.com/lakshayg/face-search/internal/face"
	"github.com/lakshayg/face-search/internal/index"
	"github.com/lakshayg/face-search/internal/syncer"
)

// albumContext bundles everything a command needs to work on one album.
type albumContext struct {
	cfg     *config.Config
	scanner *album.Scanner
	store   *index.Store
}

// openAlbum validates the album path, loads configuration (env plus the
// optional per-album file) and attaches to the index, creating it when
// create is set and none exists.
func openAlbum(albumPath string, create bool) (*albumContext, error) {
	scanner, err := album.NewScanner(albumPath, nil)
	if err != nil {
		return nil, err
	}

	cfg := config.Load()
	if err := cfg.ApplyAlbumFile(scanner.Root()); err != nil {
		return nil, err
	}

	indexPath := index.Path(scanner.Root())
	var store *index.Store
	if index.Exists(indexPath) {
		fmt.Printf("Reading '%s'\n", indexPath)
		store, err = index.Open(indexPath, nil)
	} else if create {
		fmt.Printf("Initializing '%s'\n", indexPath)
		store, err = index.Initialize(indexPath, nil)
	} else {
		return nil, fmt.Errorf("%w at '%s'", index.ErrNotFound, indexPath)
	}
	if err != nil {
		return nil, err
	}

	return &albumContext{cfg: cfg, scanner: scanner, store: store}, nil
}

func (a *albumContext) Close() {
	a.store.Close()
}

func (a *albumContext) extractor() face.Extractor {
	ext := face.NewHTTPExtractor(a.cfg.Extractor.URL)
	if a.cfg.Extractor.Dimension > 0 {
		return face.CheckedExtractor{Extractor: ext, Dim: a.cfg.Extractor.Dimension}
	}
	return ext
}

func (a *albumContext) matcher() *face.Matcher {
	return &face.Matcher{
		Extractor: a.extractor(),
		Comparator: face.DistanceComparator{
			Metric:    face.Metric(a.cfg.Match.Metric),
			Tolerance: a.cfg.Match.Tolerance,
		},
	}
}

// syncAlbum scans the album and indexes any files the store has not seen.
func (a *albumContext) syncAlbum(ctx context.Context, progress bool) error {
	files, err := a.scanner.Scan()
	if err != nil {
		return err
	}

	report, err := syncer.Sync(ctx, a.store, a.scanner.Root(), files, a.extractor(), syncer.Options{Progress: progress})
	if err != nil {
		return err
	}

	if report.Indexed > 0 {
		fmt.Printf("Indexed %d file(s), %d face(s)\n", report.Indexed, report.Faces)
	}
	if len(report.Failed) > 0 {
		fmt.Printf("%d file(s) failed and will be retried on the next sync\n", len(report.Failed))
	}
	return nil
}
