package store

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

const fileExt = ".json"

// Dir keeps one file per key under a directory, the desktop stand-in for a
// browser's local storage. Keys map to file names, so they must not contain
// path separators; Set rejects such keys.
type Dir struct {
	root string
}

func OpenDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

func (s *Dir) path(key string) string {
	return filepath.Join(s.root, key+fileExt)
}

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, `/\`) && key != "." && key != ".."
}

func (s *Dir) Get(key string) (string, bool) {
	if !validKey(key) {
		return "", false
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *Dir) Set(key, value string) error {
	if !validKey(key) {
		return os.ErrInvalid
	}
	return os.WriteFile(s.path(key), []byte(value), 0o644)
}

func (s *Dir) Delete(key string) error {
	if !validKey(key) {
		return os.ErrInvalid
	}
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Dir) Keys() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		log.Printf("store: reading %s: %v", s.root, err)
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	return keys
}
