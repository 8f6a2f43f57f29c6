package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/objmerge/pkg/math"
)

// ErrParse matches every *ParseError with errors.Is.
var ErrParse = errors.New("obj parse error")

// Parse errors wrapped by *ParseError.
var (
	ErrInvalidIndex     = errors.New("invalid index")
	ErrZeroIndex        = errors.New("index 0 is not valid")
	ErrIndexUnderflow   = errors.New("relative index before start of file")
	ErrMissingVertex    = errors.New("missing vertex index")
	ErrMalformedRef     = errors.New("malformed element reference")
	ErrEmptyElement     = errors.New("element has no references")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrTooFewComponents = errors.New("too few components")
)

// maxLineSize bounds a single logical line.
const maxLineSize = 16 * 1024 * 1024

// ParseError reports a line that claims to be geometry but cannot be read.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %v", e.File, e.Line, ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) hold for any *ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ParseFile opens and parses the OBJ file at path.
func ParseFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// ParseBytes parses OBJ data held in memory.
func ParseBytes(data []byte, path string) (*Mesh, error) {
	return Parse(bytes.NewReader(data), path)
}

// Parse reads OBJ statements from r. The path names the source in errors
// and provides the mesh name.
//
// Negative (relative) indices are resolved against the number of records of
// the same type defined before the statement, so every Ref in the result is
// absolute within this file. Positive indices are not range-checked.
func Parse(r io.Reader, path string) (*Mesh, error) {
	m := &Mesh{
		Name: MeshName(path),
		Path: path,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for {
		text, start, ok := nextLogicalLine(scanner, &lineNo)
		if !ok {
			break
		}
		if text == "" {
			continue
		}
		rec, err := m.parseRecord(text, start)
		if err != nil {
			return nil, &ParseError{File: path, Line: start, Err: err}
		}
		m.Records = append(m.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// MeshName derives a mesh name from a file path: the base name without its
// extension, or "unnamed" when that is empty.
func MeshName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "unnamed"
	}
	return name
}

// nextLogicalLine joins backslash continuations and returns the trimmed text
// with the number of its first physical line.
func nextLogicalLine(scanner *bufio.Scanner, lineNo *int) (string, int, bool) {
	var sb strings.Builder
	start := 0
	for scanner.Scan() {
		*lineNo++
		if start == 0 {
			start = *lineNo
		}
		line := strings.TrimSpace(scanner.Text())
		if cont, found := strings.CutSuffix(line, `\`); found {
			sb.WriteString(cont)
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(line)
		return strings.TrimSpace(sb.String()), start, true
	}
	if start != 0 {
		// Continuation on the last line.
		return strings.TrimSpace(sb.String()), start, true
	}
	return "", 0, false
}

func (m *Mesh) parseRecord(text string, line int) (Record, error) {
	rec := Record{Kind: KindPassthrough, Line: line, Raw: text}
	if text[0] == '#' {
		return rec, nil
	}

	fields := strings.Fields(text)
	switch fields[0] {
	case "v":
		coords, err := parseFloats(fields[1:], 3)
		if err != nil {
			return rec, err
		}
		rec.Kind = KindVertex
		m.Vertices++
		m.Bounds.Extend(math.Vec3{X: coords[0], Y: coords[1], Z: coords[2]})
	case "vt":
		if _, err := parseFloats(fields[1:], 1); err != nil {
			return rec, err
		}
		rec.Kind = KindTexCoord
		m.TexCoords++
	case "vn":
		if _, err := parseFloats(fields[1:], 3); err != nil {
			return rec, err
		}
		rec.Kind = KindNormal
		m.Normals++
	case "f", "l", "p":
		refs, err := m.parseRefs(fields[1:])
		if err != nil {
			return rec, err
		}
		rec.Refs = refs
		switch fields[0] {
		case "f":
			rec.Kind = KindFace
			m.Faces++
		case "l":
			rec.Kind = KindLine
			m.Lines++
		default:
			rec.Kind = KindPoint
			m.Points++
		}
	case "o", "g":
		rec.Kind = KindGroup
		m.Groups++
	}
	return rec, nil
}

func parseFloats(fields []string, min int) ([]float64, error) {
	if len(fields) < min {
		return nil, fmt.Errorf("%w: want at least %d, got %d", ErrTooFewComponents, min, len(fields))
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidNumber, f)
		}
		out[i] = v
	}
	return out, nil
}

func (m *Mesh) parseRefs(tokens []string) ([]Ref, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyElement
	}
	refs := make([]Ref, len(tokens))
	for i, tok := range tokens {
		parts := strings.Split(tok, "/")
		if len(parts) > 3 {
			return nil, fmt.Errorf("%w %q", ErrMalformedRef, tok)
		}
		if parts[0] == "" {
			return nil, fmt.Errorf("%w in %q", ErrMissingVertex, tok)
		}

		var err error
		if refs[i].V, err = resolveIndex(parts[0], m.Vertices); err != nil {
			return nil, err
		}
		if len(parts) > 1 && parts[1] != "" {
			if refs[i].VT, err = resolveIndex(parts[1], m.TexCoords); err != nil {
				return nil, err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if refs[i].VN, err = resolveIndex(parts[2], m.Normals); err != nil {
				return nil, err
			}
		}
	}
	return refs, nil
}

// resolveIndex converts an OBJ index token to an absolute 1-based index.
// count is the number of records of that type defined so far.
func resolveIndex(tok string, count int) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidIndex, tok)
	}
	switch {
	case n > 0:
		return n, nil
	case n == 0:
		return 0, ErrZeroIndex
	}
	abs := count + 1 + n
	if abs < 1 {
		return 0, fmt.Errorf("%w: %d with %d defined", ErrIndexUnderflow, n, count)
	}
	return abs, nil
}
