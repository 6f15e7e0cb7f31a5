package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/netsurf-plan9/libcss"
)

// Operand is the value part of a declaration. It is exactly one of
// Inherit, Keyword or Dimension.
type Operand interface {
	operand()
}

func (Inherit) operand()   {}
func (Keyword) operand()   {}
func (Dimension) operand() {}

// Inherit takes the value from the parent element.
type Inherit struct{}

// Keyword is a value tag with no operands, such as MarginAuto. It must
// not be the opcode's payload value; use Dimension for that.
type Keyword Value

// Dimension is a value tag followed by a length and unit.
type Dimension struct {
	Value  Value
	Length Fixed
	Unit   Unit
}

// Declaration is one compiled property value prior to serialisation.
type Declaration struct {
	Op        Opcode
	Important bool
	Operand   Operand
}

// OPV returns the header word for d.
func (d Declaration) OPV() OPV {
	var flags Flags
	if d.Important {
		flags |= FlagImportant
	}
	var value Value
	switch o := d.Operand.(type) {
	case Inherit:
		flags |= FlagInherit
	case Keyword:
		value = Value(o)
	case Dimension:
		value = o.Value
	}
	return BuildOPV(d.Op, flags, value)
}

// Size returns the number of bytes Encode writes for d.
func (d Declaration) Size() int {
	return InstructionSize(d.OPV())
}

// Encode writes d to the start of dst and returns the number of bytes
// written. dst must hold at least d.Size() bytes.
func (d Declaration) Encode(dst []byte) int {
	opv := d.OPV()
	binary.LittleEndian.PutUint32(dst, uint32(opv))
	if !HasPayload(opv) {
		return OPVSize
	}
	dim, _ := d.Operand.(Dimension)
	binary.LittleEndian.PutUint32(dst[OPVSize:], uint32(dim.Length))
	binary.LittleEndian.PutUint32(dst[OPVSize+4:], uint32(dim.Unit))
	return OPVSize + PayloadSize
}

func (d Declaration) String() string {
	var s string
	switch o := d.Operand.(type) {
	case Inherit:
		s = "inherit"
	case Keyword:
		if name, ok := KeywordName(d.Op, Value(o)); ok {
			s = name
		} else {
			s = fmt.Sprintf("0x%04x", uint16(o))
		}
	case Dimension:
		if o.Unit == UnitPct {
			s = o.Length.String() + "%"
		} else {
			s = o.Length.String() + o.Unit.String()
		}
	default:
		s = "?"
	}
	if d.Important {
		s += " !important"
	}
	return d.Op.String() + ": " + s
}

// Decode reads one instruction from the start of b. It returns the
// declaration and the number of bytes consumed.
func Decode(b []byte) (Declaration, int, error) {
	if len(b) < OPVSize {
		return Declaration{}, 0, fmt.Errorf("bytecode: truncated header (%d bytes): %w", len(b), libcss.ErrInvalid)
	}
	opv := OPV(binary.LittleEndian.Uint32(b))
	if !Known(opv.Opcode()) {
		return Declaration{}, 0, fmt.Errorf("bytecode: unknown opcode 0x%03x: %w", uint16(opv.Opcode()), libcss.ErrInvalid)
	}

	d := Declaration{
		Op:        opv.Opcode(),
		Important: opv.Flags().IsImportant(),
	}
	switch {
	case opv.Flags().IsInherit():
		d.Operand = Inherit{}
	case HasPayload(opv):
		if len(b) < OPVSize+PayloadSize {
			return Declaration{}, 0, fmt.Errorf("bytecode: truncated operands for %s: %w", d.Op, libcss.ErrInvalid)
		}
		d.Operand = Dimension{
			Value:  opv.Value(),
			Length: Fixed(int32(binary.LittleEndian.Uint32(b[OPVSize:]))),
			Unit:   Unit(binary.LittleEndian.Uint32(b[OPVSize+4:])),
		}
	default:
		d.Operand = Keyword(opv.Value())
	}
	return d, InstructionSize(opv), nil
}

// DecodeAll decodes every instruction in b.
func DecodeAll(b []byte) ([]Declaration, error) {
	var out []Declaration
	for off := 0; off < len(b); {
		d, n, err := Decode(b[off:])
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", off, err)
		}
		out = append(out, d)
		off += n
	}
	return out, nil
}

// SetImportant sets FlagImportant on every instruction in b.
func SetImportant(b []byte) error {
	for off := 0; off < len(b); {
		if len(b)-off < OPVSize {
			return fmt.Errorf("bytecode: truncated header at offset %d: %w", off, libcss.ErrInvalid)
		}
		opv := OPV(binary.LittleEndian.Uint32(b[off:]))
		n := InstructionSize(opv)
		if len(b)-off < n {
			return fmt.Errorf("bytecode: truncated operands at offset %d: %w", off, libcss.ErrInvalid)
		}
		opv = BuildOPV(opv.Opcode(), opv.Flags()|FlagImportant, opv.Value())
		binary.LittleEndian.PutUint32(b[off:], uint32(opv))
		off += n
	}
	return nil
}
