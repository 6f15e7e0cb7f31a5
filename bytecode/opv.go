package bytecode

// OPV is the header word of an instruction:
//
//	bits  0-9   opcode
//	bits 10-17  flags
//	bits 18-31  value
type OPV uint32

const (
	opcodeMask = 0x3ff
	flagsShift = 10
	flagsMask  = 0xff
	valueShift = 18
	valueMask  = 0x3fff
)

// Sizes in bytes of the header and of the optional operand pair.
const (
	OPVSize     = 4
	PayloadSize = 8
)

func BuildOPV(op Opcode, flags Flags, value Value) OPV {
	return OPV(uint32(op)&opcodeMask |
		(uint32(flags)&flagsMask)<<flagsShift |
		(uint32(value)&valueMask)<<valueShift)
}

func (v OPV) Opcode() Opcode { return Opcode(uint32(v) & opcodeMask) }
func (v OPV) Flags() Flags   { return Flags((uint32(v) >> flagsShift) & flagsMask) }
func (v OPV) Value() Value   { return Value((uint32(v) >> valueShift) & valueMask) }

// HasPayload reports whether an instruction with header v is followed by a
// length and unit. Encoders and decoders both use this rule, so the size of
// an instruction is a function of its header alone.
func HasPayload(v OPV) bool {
	if v.Flags().IsInherit() {
		return false
	}
	want, ok := payloadValues[v.Opcode()]
	return ok && v.Value() == want
}

// InstructionSize returns the encoded size of an instruction with header v.
func InstructionSize(v OPV) int {
	if HasPayload(v) {
		return OPVSize + PayloadSize
	}
	return OPVSize
}
