// Package obj provides a line-level model and parser for Wavefront OBJ files.
//
// The model keeps every line of the source. Vertex data and passthrough lines
// are stored verbatim; face, line and point elements are decoded into index
// references so they can be renumbered.
package obj

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/objmerge/pkg/math"
)

// Kind identifies the type of an OBJ record.
type Kind uint8

// Record kinds.
const (
	KindPassthrough Kind = iota // Comments, usemtl, s, mtllib, unknown statements
	KindVertex                  // v
	KindTexCoord                // vt
	KindNormal                  // vn
	KindFace                    // f
	KindLine                    // l
	KindPoint                   // p
	KindGroup                   // o, g
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPassthrough:
		return "Passthrough"
	case KindVertex:
		return "Vertex"
	case KindTexCoord:
		return "TexCoord"
	case KindNormal:
		return "Normal"
	case KindFace:
		return "Face"
	case KindLine:
		return "Line"
	case KindPoint:
		return "Point"
	case KindGroup:
		return "Group"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Keyword returns the statement keyword for element kinds.
func (k Kind) Keyword() string {
	switch k {
	case KindFace:
		return "f"
	case KindLine:
		return "l"
	case KindPoint:
		return "p"
	}
	return ""
}

// IsVertexData returns true for v, vt and vn records.
func (k Kind) IsVertexData() bool {
	return k == KindVertex || k == KindTexCoord || k == KindNormal
}

// IsElement returns true for records that reference vertex data by index.
func (k Kind) IsElement() bool {
	return k == KindFace || k == KindLine || k == KindPoint
}

// Ref is one corner of an element. Indices are absolute and 1-based;
// zero means the component is absent.
type Ref struct {
	V  int
	VT int
	VN int
}

// String formats the reference using the shortest OBJ form that keeps every
// present component: "v", "v/vt", "v//vn" or "v/vt/vn".
func (r Ref) String() string {
	v := strconv.Itoa(r.V)
	switch {
	case r.VT == 0 && r.VN == 0:
		return v
	case r.VN == 0:
		return v + "/" + strconv.Itoa(r.VT)
	case r.VT == 0:
		return v + "//" + strconv.Itoa(r.VN)
	default:
		return v + "/" + strconv.Itoa(r.VT) + "/" + strconv.Itoa(r.VN)
	}
}

// Offset returns r shifted by the given counts. Absent components stay absent.
func (r Ref) Offset(v, vt, vn int) Ref {
	out := Ref{V: r.V + v}
	if r.VT != 0 {
		out.VT = r.VT + vt
	}
	if r.VN != 0 {
		out.VN = r.VN + vn
	}
	return out
}

// Record is one logical line of an OBJ file.
type Record struct {
	Kind Kind
	Line int    // 1-based line number of the first physical line
	Raw  string // Trimmed source text
	Refs []Ref  // Element references, local to the file (elements only)
}

// Format renders the record as an OBJ line without a trailing newline.
// Elements are rebuilt from Refs; everything else is written verbatim.
func (r *Record) Format() string {
	if !r.Kind.IsElement() {
		return r.Raw
	}
	return FormatElement(r.Kind, r.Refs)
}

// FormatElement renders an element statement from its references.
func FormatElement(kind Kind, refs []Ref) string {
	var sb strings.Builder
	sb.WriteString(kind.Keyword())
	for _, ref := range refs {
		sb.WriteByte(' ')
		sb.WriteString(ref.String())
	}
	return sb.String()
}

// Mesh is a parsed OBJ file.
type Mesh struct {
	Name    string // Base name of the source, without extension
	Path    string // Source path as given to the parser
	Records []Record

	// Record counts per kind.
	Vertices  int
	TexCoords int
	Normals   int
	Faces     int
	Lines     int
	Points    int
	Groups    int

	Bounds math.Bounds // Bounds of all vertex positions
}

// Elements returns the number of face, line and point records.
func (m *Mesh) Elements() int {
	return m.Faces + m.Lines + m.Points
}

// VertexData returns the v, vt and vn records in file order.
func (m *Mesh) VertexData() []Record {
	out := make([]Record, 0, m.Vertices+m.TexCoords+m.Normals)
	for _, rec := range m.Records {
		if rec.Kind.IsVertexData() {
			out = append(out, rec)
		}
	}
	return out
}
