package shared

import (
	"fmt"

	"nanopass/internal/pretty"
)

// Loc is a storage location. No pass assigns locations yet; the vocabulary
// exists for a future register allocator.
type Loc interface {
	isLoc()
	Doc() pretty.Doc
	String() string
}

// Memory is a numbered memory cell
type Memory uint8

// Register names one of the machine registers
type Register int

const (
	A Register = iota
	B
	X
)

func (Memory) isLoc()   {}
func (Register) isLoc() {}

func (m Memory) String() string {
	return fmt.Sprintf("@%d", uint8(m))
}

func (r Register) String() string {
	switch r {
	case A:
		return "%a"
	case B:
		return "%b"
	case X:
		return "%x"
	default:
		return fmt.Sprintf("%%r%d", int(r))
	}
}

func (m Memory) Doc() pretty.Doc   { return pretty.Text(m.String()) }
func (r Register) Doc() pretty.Doc { return pretty.Text(r.String()) }
