package merge

import (
	"fmt"

	"github.com/Faultbox/objmerge/pkg/math"
	"github.com/Faultbox/objmerge/pkg/obj"
	"github.com/minio/highwayhash"
)

// checksumKey is the fixed HighwayHash key for output checksums.
var checksumKey = []byte("objmerge.highwayhash.key.0000000")

// Summary describes a completed merge.
type Summary struct {
	Output    string          `yaml:"output"`
	Sources   int             `yaml:"sources"`
	Vertices  int             `yaml:"vertices"`
	TexCoords int             `yaml:"texcoords"`
	Normals   int             `yaml:"normals"`
	Faces     int             `yaml:"faces"`
	Names     []string        `yaml:"names"`
	Objects   []ObjectSummary `yaml:"objects"`
	Bytes     int             `yaml:"bytes"`
	Checksum  string          `yaml:"checksum"` // HighwayHash-64 of the output, hex

	bounds math.Bounds
}

// ObjectSummary describes one sub-object of the merged document.
type ObjectSummary struct {
	Name      string  `yaml:"name"`
	Source    string  `yaml:"source"`
	Vertices  int     `yaml:"vertices"`
	TexCoords int     `yaml:"texcoords"`
	Normals   int     `yaml:"normals"`
	Faces     int     `yaml:"faces"`
	Elements  int     `yaml:"elements"`
	Offsets   Offsets `yaml:"offsets"` // Offsets applied to this source's indices
}

// Bounds returns the bounding box of every merged vertex position.
func (s *Summary) Bounds() math.Bounds {
	return s.bounds
}

func (s *Summary) add(name string, m *obj.Mesh, off Offsets) {
	s.Sources++
	s.Vertices += m.Vertices
	s.TexCoords += m.TexCoords
	s.Normals += m.Normals
	s.Faces += m.Faces
	s.Names = append(s.Names, name)
	s.Objects = append(s.Objects, ObjectSummary{
		Name:      name,
		Source:    m.Path,
		Vertices:  m.Vertices,
		TexCoords: m.TexCoords,
		Normals:   m.Normals,
		Faces:     m.Faces,
		Elements:  m.Elements(),
		Offsets:   off,
	})
	s.bounds = s.bounds.Union(m.Bounds)
}

// Checksum returns the hex HighwayHash-64 of data, as stored in Summary.
func Checksum(data []byte) (string, error) {
	h, err := highwayhash.New64(checksumKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
