package discovery

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tyrtlekarma/internal/domain"
)

// DefaultMountPrefix is where the harness serves the base directory
const DefaultMountPrefix = "/base/"

// Scanner builds a manifest from the files under a directory, the way the
// harness would list them after serving that directory.
type Scanner struct {
	skipDirs    map[string]bool
	mountPrefix string
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, mountPrefix: DefaultMountPrefix}
}

// Scan walks root and returns a manifest of every regular file, keyed by
// mount prefix plus slash-separated relative path, in lexical order.
// The value of each entry is the file's modification time in Unix milliseconds.
func (s *Scanner) Scan(root string) (*domain.Manifest, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("base path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path is not a directory: %s", root)
	}

	manifest := domain.NewManifest()
	err = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if p != root && (strings.HasPrefix(name, ".") || s.skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		manifest.Add(path.Join(s.mountPrefix, filepath.ToSlash(rel)), fi.ModTime().UnixMilli())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return manifest, nil
}
