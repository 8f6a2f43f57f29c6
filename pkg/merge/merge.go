// Package merge combines OBJ files into one document with one named
// sub-object per source.
//
// Each source is written as a marker ("o name" / "g name"), its vertex data
// verbatim, then its faces, lines, points and passthrough statements in
// source order. Element indices are shifted by the number of records of the
// same type contributed by earlier sources, so every reference in the output
// resolves against the output's own tables.
package merge

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Faultbox/objmerge/pkg/obj"
	"github.com/viant/afs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Merger merges OBJ files.
type Merger struct {
	opts Options
	fs   afs.Service
	log  *zap.Logger
}

// New creates a Merger. Zero fields of opts take their defaults.
func New(opts Options) *Merger {
	def := DefaultOptions()
	if opts.Markers == "" {
		opts.Markers = def.Markers
	}
	if opts.MaxSuffix == 0 {
		opts.MaxSuffix = def.MaxSuffix
	}
	if opts.Workers < 1 {
		opts.Workers = def.Workers
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{
		opts: opts,
		fs:   afs.New(),
		log:  log,
	}
}

// Merge merges inputs with default options.
func Merge(ctx context.Context, inputs []string, output string) (*Summary, error) {
	return New(DefaultOptions()).Merge(ctx, inputs, output)
}

// Merge parses every input in order, merges them and writes the result to
// output, replacing any existing file. On error nothing is written and an
// existing output is left untouched.
func (m *Merger) Merge(ctx context.Context, inputs []string, output string) (*Summary, error) {
	meshes, err := m.parseAll(ctx, inputs)
	if err != nil {
		return nil, err
	}

	doc := newDocument(m.opts)
	for _, mesh := range meshes {
		if err := doc.append(mesh); err != nil {
			return nil, err
		}
		m.log.Debug("appended source",
			zap.String("source", mesh.Path),
			zap.String("name", doc.summary.Names[len(doc.summary.Names)-1]),
			zap.Int("vertices", mesh.Vertices),
			zap.Int("faces", mesh.Faces),
			zap.Int("vertex_offset", doc.offsets.Vertex-mesh.Vertices),
		)
	}

	data := doc.buf.Bytes()
	if err := writeAtomic(output, data); err != nil {
		return nil, err
	}

	sum := doc.summary
	sum.Output = output
	sum.Bytes = len(data)
	if sum.Checksum, err = Checksum(data); err != nil {
		return nil, fmt.Errorf("checksum: %w", err)
	}

	m.log.Info("merge complete",
		zap.String("output", output),
		zap.Int("sources", sum.Sources),
		zap.Int("vertices", sum.Vertices),
		zap.Int("faces", sum.Faces),
		zap.String("checksum", sum.Checksum),
	)
	return &sum, nil
}

// parseAll parses every input. With Workers > 1 the parse runs concurrently;
// the returned error is always the one for the earliest failing input.
func (m *Merger) parseAll(ctx context.Context, inputs []string) ([]*obj.Mesh, error) {
	meshes := make([]*obj.Mesh, len(inputs))
	if m.opts.Workers < 2 || len(inputs) < 2 {
		for i, path := range inputs {
			mesh, err := m.parseSource(ctx, path)
			if err != nil {
				return nil, err
			}
			meshes[i] = mesh
		}
		return meshes, nil
	}

	errs := make([]error, len(inputs))
	var g errgroup.Group
	g.SetLimit(m.opts.Workers)
	for i, path := range inputs {
		g.Go(func() error {
			meshes[i], errs[i] = m.parseSource(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

// parseSource reads one input and parses it.
func (m *Merger) parseSource(ctx context.Context, path string) (*obj.Mesh, error) {
	data, err := m.read(ctx, path)
	if err != nil {
		return nil, err
	}
	mesh, err := obj.ParseBytes(data, path)
	if err != nil {
		return nil, err
	}
	m.log.Debug("parsed source",
		zap.String("source", path),
		zap.Int("records", len(mesh.Records)),
	)
	return mesh, nil
}

func (m *Merger) read(ctx context.Context, path string) ([]byte, error) {
	location := path
	if abs, err := filepath.Abs(path); err == nil {
		location = abs
	}
	ok, err := m.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	data, err := m.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotFound, path, err)
	}
	return data, nil
}
