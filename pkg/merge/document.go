package merge

import (
	"bytes"

	"github.com/Faultbox/objmerge/pkg/obj"
)

// Offsets are the running counts of records already emitted into the
// merged document. A source's local index i maps to i + offset.
type Offsets struct {
	Vertex  int `yaml:"vertex"`
	Texture int `yaml:"texture"`
	Normal  int `yaml:"normal"`
}

// Advance returns the offsets after appending m.
func (o Offsets) Advance(m *obj.Mesh) Offsets {
	return Offsets{
		Vertex:  o.Vertex + m.Vertices,
		Texture: o.Texture + m.TexCoords,
		Normal:  o.Normal + m.Normals,
	}
}

// Rewrite maps a source-local reference into the merged tables.
func (o Offsets) Rewrite(ref obj.Ref) obj.Ref {
	return ref.Offset(o.Vertex, o.Texture, o.Normal)
}

// document accumulates the merged output one source at a time.
type document struct {
	buf     bytes.Buffer
	offsets Offsets
	names   *nameSet
	opts    Options
	summary Summary
}

func newDocument(opts Options) *document {
	d := &document{
		names: newNameSet(opts.MaxSuffix),
		opts:  opts,
	}
	d.buf.WriteString(Header)
	d.buf.WriteString("\n\n")
	return d
}

// append adds one source: marker, vertex data, then elements and
// passthrough lines in source order.
func (d *document) append(m *obj.Mesh) error {
	if d.opts.Strict {
		if err := checkRanges(m); err != nil {
			return err
		}
	}

	name, err := d.names.claim(m.Name)
	if err != nil {
		return err
	}

	if d.opts.Markers != MarkersGroup {
		d.line("o " + name)
	}
	if d.opts.Markers != MarkersObject {
		d.line("g " + name)
	}

	for _, rec := range m.VertexData() {
		d.line(rec.Raw)
	}

	refs := make([]obj.Ref, 0, 8)
	for i := range m.Records {
		rec := &m.Records[i]
		switch {
		case rec.Kind.IsVertexData(), rec.Kind == obj.KindGroup:
			continue
		case rec.Kind.IsElement():
			refs = refs[:0]
			for _, ref := range rec.Refs {
				refs = append(refs, d.offsets.Rewrite(ref))
			}
			d.line(obj.FormatElement(rec.Kind, refs))
		default:
			d.line(rec.Raw)
		}
	}

	d.summary.add(name, m, d.offsets)
	d.offsets = d.offsets.Advance(m)
	return nil
}

func (d *document) line(s string) {
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
}

// checkRanges rejects references beyond the mesh's own tables.
func checkRanges(m *obj.Mesh) error {
	for _, rec := range m.Records {
		for _, ref := range rec.Refs {
			var kind obj.Kind
			var index, count int
			switch {
			case ref.V > m.Vertices:
				kind, index, count = obj.KindVertex, ref.V, m.Vertices
			case ref.VT > m.TexCoords:
				kind, index, count = obj.KindTexCoord, ref.VT, m.TexCoords
			case ref.VN > m.Normals:
				kind, index, count = obj.KindNormal, ref.VN, m.Normals
			default:
				continue
			}
			return &IndexError{File: m.Path, Line: rec.Line, Kind: kind, Index: index, Count: count}
		}
	}
	return nil
}
