package math

import "fmt"

// Bounds is an axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	Min, Max Vec3
	valid    bool
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p Vec3) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union returns a box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	switch {
	case !other.valid:
		return b
	case !b.valid:
		return other
	}
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max), valid: true}
}

// IsEmpty reports whether no point was ever added.
func (b Bounds) IsEmpty() bool {
	return !b.valid
}

// Size returns the extent along each axis.
func (b Bounds) Size() Vec3 {
	if !b.valid {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// String formats the box as "min..max".
func (b Bounds) String() string {
	if !b.valid {
		return "(empty)"
	}
	return fmt.Sprintf("(%g, %g, %g)..(%g, %g, %g)",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
