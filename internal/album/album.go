// Package album enumerates the image files under an album root.
package album

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/lakshayg/face-search/internal/index"
)

// sniffLen is how many leading bytes are read to identify a file type.
const sniffLen = 32

// Sniffer decides whether a file's leading bytes look like a supported
// image format. Injected into the scanner so format support is an explicit
// capability, not global decoder registration.
type Sniffer interface {
	IsImage(header []byte) bool
}

// Scanner lists the indexable image files under an album root.
type Scanner struct {
	root    string
	sniffer Sniffer
}

// NewScanner validates the album root and returns a scanner over it. A nil
// sniffer selects MagicSniffer.
func NewScanner(root string, sniffer Sniffer) (*Scanner, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("could not find '%s'", root)
		}
		return nil, fmt.Errorf("checking album path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("album '%s' needs to be a directory", root)
	}
	if sniffer == nil {
		sniffer = MagicSniffer{}
	}
	return &Scanner{root: root, sniffer: sniffer}, nil
}

// Root returns the album root path.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the album recursively and returns the relative paths of all
// files whose content sniffs as an image, POSIX-normalized (forward
// slashes, NFC) and sorted lexicographically. Non-image files, non-regular
// files and the index file itself are skipped; unreadable files are skipped
// rather than failing the whole scan.
func (s *Scanner) Scan() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return fmt.Errorf("relativizing '%s': %w", path, err)
		}
		name := norm.NFC.String(filepath.ToSlash(rel))
		if name == index.FileName {
			return nil
		}

		ok, err := s.sniffFile(path)
		if err != nil {
			// A file that vanished or cannot be read is not part of the
			// current snapshot.
			return nil
		}
		if ok {
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking album: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

func (s *Scanner) sniffFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, sniffLen)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return false, err
	}
	return s.sniffer.IsImage(header[:n]), nil
}
