package merge

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objmerge/pkg/obj"
)

// Merge failure kinds, matched with errors.Is.
var (
	ErrInputNotFound          = errors.New("input not found")
	ErrParse                  = obj.ErrParse
	ErrOutputWrite            = errors.New("output write failed")
	ErrNameCollisionExhausted = errors.New("name collision suffixes exhausted")
	ErrIndexOutOfRange        = errors.New("index out of range")
)

// IndexError reports an element reference beyond its source's tables.
// It is only produced when Options.Strict is set.
type IndexError struct {
	File  string
	Line  int
	Kind  obj.Kind // Vertex, TexCoord or Normal
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %s %d of %d",
		e.File, e.Line, ErrIndexOutOfRange, e.Kind, e.Index, e.Count)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) hold for any *IndexError.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
