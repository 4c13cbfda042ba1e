package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
)

type FileInfo struct {
	Path string
	Size int64
}

// Scanner finds source files under a root directory.
type Scanner struct {
	rootDir    string
	extensions map[string]bool
	skip       func(path string) bool
}

// New returns a Scanner for files under rootDir with one of the given
// extensions. Without extensions every regular file matches.
func New(rootDir string, extensions ...string) *Scanner {
	s := &Scanner{rootDir: rootDir}
	if len(extensions) > 0 {
		s.extensions = make(map[string]bool, len(extensions))
		for _, ext := range extensions {
			s.extensions[ext] = true
		}
	}
	return s
}

// Skip sets a predicate for paths to leave out. A skipped directory is
// not descended into.
func (s *Scanner) Skip(fn func(path string) bool) *Scanner {
	s.skip = fn
	return s
}

// Scan walks the root directory and returns matching files sorted by path.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if s.skip != nil && s.skip(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if s.isTargetFile(path) {
			info, err := d.Info()
			if err != nil {
				return err
			}
			files = append(files, FileInfo{
				Path: path,
				Size: info.Size(),
			})
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	return s.extensions[filepath.Ext(path)]
}
