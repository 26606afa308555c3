// Package syncer brings an album index up to date with the image files
// currently on disk.
package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"

	"github.com/lakshayg/face-search/internal/face"
	"github.com/lakshayg/face-search/internal/index"
)

// Options controls sync behavior.
type Options struct {
	// Progress renders a progress bar while indexing.
	Progress bool
}

// FileError records a per-file failure during sync.
type FileError struct {
	Filename string
	Err      error
}

// Report summarizes one sync run.
type Report struct {
	// Indexed counts files recorded during this run.
	Indexed int
	// Faces counts embeddings recorded during this run.
	Faces int
	// Failed lists files that could not be processed. They are absent
	// from the store and will be retried on the next run.
	Failed []FileError
}

// Sync records every file in currentFiles that the store has not seen yet,
// in lexicographic order. Failures are isolated per file: a file that
// cannot be read or embedded is reported, skipped and reconsidered next
// run. Running Sync twice over an unchanged album does zero work the
// second time.
func Sync(ctx context.Context, store *index.Store, albumRoot string, currentFiles []string, extractor face.Extractor, opts Options) (*Report, error) {
	known, err := store.ListFilenames()
	if err != nil {
		return nil, fmt.Errorf("listing indexed files: %w", err)
	}

	var newFiles []string
	for _, name := range currentFiles {
		if !known[name] {
			newFiles = append(newFiles, name)
		}
	}
	sort.Strings(newFiles)

	report := &Report{}
	if len(newFiles) == 0 {
		return report, nil
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(len(newFiles)), "indexing")
	}

	for _, name := range newFiles {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := indexFile(ctx, store, albumRoot, name, extractor, report); err != nil {
			report.Failed = append(report.Failed, FileError{Filename: name, Err: err})
			fmt.Fprintf(os.Stderr, "Warning: failed to index %s: %v\n", name, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return report, nil
}

func indexFile(ctx context.Context, store *index.Store, albumRoot, name string, extractor face.Extractor, report *Report) error {
	data, err := os.ReadFile(filepath.Join(albumRoot, filepath.FromSlash(name)))
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	vectors, err := extractor.Extract(ctx, data)
	if err != nil {
		return fmt.Errorf("extracting faces: %w", err)
	}

	// Zero faces still records the entry, so the file is not reprocessed.
	if err := store.RecordEntry(name, vectors); err != nil {
		return err
	}
	report.Indexed++
	report.Faces += len(vectors)
	return nil
}
