// Package discover expands command-line arguments into an ordered list of
// OBJ input files.
package discover

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
)

// Extension is the input file extension, matched case-insensitively.
const Extension = ".obj"

// ErrNotFound is returned for arguments that do not exist.
var ErrNotFound = errors.New("path not found")

// Finder resolves input arguments using an afs storage service.
type Finder struct {
	fs afs.Service
}

// New creates a Finder backed by the local file system.
func New() *Finder {
	return &Finder{fs: afs.New()}
}

// Inputs expands args in order. A directory becomes its *.obj files sorted by
// name (subdirectories are not descended); a file is kept as given.
func (f *Finder) Inputs(ctx context.Context, args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		location, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		ok, err := f.fs.Exists(ctx, location)
		if err != nil || !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, arg)
		}
		object, err := f.fs.Object(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, arg, err)
		}
		if !object.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := f.Dir(ctx, arg)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// Dir lists the *.obj regular files directly inside dir, sorted by name.
func (f *Finder) Dir(ctx context.Context, dir string) ([]string, error) {
	location, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	objects, err := f.fs.List(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, o := range objects {
		if o.IsDir() || !strings.EqualFold(filepath.Ext(o.Name()), Extension) {
			continue
		}
		names = append(names, o.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}
