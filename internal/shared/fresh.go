package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// TempPrefix starts every generated temporary name
const TempPrefix = "tmp."

// Fresh mints temporary names for one function body. It is owned by a single
// translation and never shared between functions.
type Fresh struct {
	counter int
}

// NewFresh returns a counter whose first name is tmp.1
func NewFresh() *Fresh {
	return &Fresh{}
}

// FreshAfter returns a counter that continues past every temporary in names
func FreshAfter(names []Var) *Fresh {
	f := NewFresh()
	for _, name := range names {
		if n, ok := TempIndex(name); ok && n > f.counter {
			f.counter = n
		}
	}
	return f
}

// Next returns a name not handed out before
func (f *Fresh) Next() Var {
	f.counter++
	return fmt.Sprintf("%s%d", TempPrefix, f.counter)
}

// Count returns how many names have been minted or reserved
func (f *Fresh) Count() int {
	return f.counter
}

// IsTemp reports whether name was generated by a Fresh counter
func IsTemp(name Var) bool {
	_, ok := TempIndex(name)
	return ok
}

// TempIndex extracts n from tmp.<n>
func TempIndex(name Var) (int, bool) {
	rest, ok := strings.CutPrefix(name, TempPrefix)
	if !ok || rest == "" {
		return 0, false
	}

	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
