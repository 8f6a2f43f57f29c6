package merge

import (
	"fmt"
)

// DefaultMaxSuffix is the highest collision suffix tried before giving up.
const DefaultMaxSuffix = 9999

// nameSet hands out unique sub-object names.
type nameSet struct {
	used      map[string]struct{}
	maxSuffix int
}

func newNameSet(maxSuffix int) *nameSet {
	if maxSuffix < 2 {
		maxSuffix = DefaultMaxSuffix
	}
	return &nameSet{
		used:      make(map[string]struct{}),
		maxSuffix: maxSuffix,
	}
}

// claim returns base if unused, otherwise base_2, base_3, ...
func (s *nameSet) claim(base string) (string, error) {
	if _, taken := s.used[base]; !taken {
		s.used[base] = struct{}{}
		return base, nil
	}
	for i := 2; i <= s.maxSuffix; i++ {
		name := fmt.Sprintf("%s_%d", base, i)
		if _, taken := s.used[name]; !taken {
			s.used[name] = struct{}{}
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q after _%d", ErrNameCollisionExhausted, base, s.maxSuffix)
}
