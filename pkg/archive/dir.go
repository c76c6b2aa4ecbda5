package archive

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirStore keeps each blob as a file in a directory.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore, creating dir if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, failure("create directory", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *DirStore) Dir() string { return s.dir }

// Put writes data to name, replacing any existing blob. The write goes to
// a temporary file that is renamed into place.
func (s *DirStore) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return failure("put", name, err)
	}

	f, err := os.CreateTemp(s.dir, ".tmp-"+name+"-*")
	if err != nil {
		return failure("put", name, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return failure("put", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return failure("put", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp)
		return failure("put", name, err)
	}
	return nil
}

// Get reads the blob stored under name.
func (s *DirStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, failure("get", name, err)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(name)
		}
		return nil, failure("get", name, err)
	}
	return data, nil
}

// List returns blob names in lexical order.
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, failure("list", "", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, failure("list", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type()&fs.ModeType != 0 || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
