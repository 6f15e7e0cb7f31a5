package bytecode

// Opcode identifies the property an instruction applies to. Only the low
// ten bits are encoded.
type Opcode uint16

const (
	OpMarginTop    Opcode = 0x030
	OpMarginRight  Opcode = 0x031
	OpMarginBottom Opcode = 0x032
	OpMarginLeft   Opcode = 0x033
)

var opcodeNames = map[Opcode]string{
	OpMarginTop:    "margin-top",
	OpMarginRight:  "margin-right",
	OpMarginBottom: "margin-bottom",
	OpMarginLeft:   "margin-left",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unknown"
}

type Flags uint8

const (
	FlagImportant Flags = 1 << 0
	FlagInherit   Flags = 1 << 1
)

func (f Flags) IsImportant() bool { return f&FlagImportant != 0 }
func (f Flags) IsInherit() bool   { return f&FlagInherit != 0 }

// Value is the per-opcode value tag. Only the low fourteen bits are encoded.
type Value uint16

// Values shared by the margin-{top,right,bottom,left} opcodes.
const (
	MarginAuto Value = 0x0000
	MarginSet  Value = 0x0080
)

// payloadValues maps each opcode to the value that is followed by a
// length and unit. An opcode missing from this table is not decodable.
var payloadValues = map[Opcode]Value{
	OpMarginTop:    MarginSet,
	OpMarginRight:  MarginSet,
	OpMarginBottom: MarginSet,
	OpMarginLeft:   MarginSet,
}

var keywordNames = map[Opcode]map[Value]string{
	OpMarginTop:    {MarginAuto: "auto"},
	OpMarginRight:  {MarginAuto: "auto"},
	OpMarginBottom: {MarginAuto: "auto"},
	OpMarginLeft:   {MarginAuto: "auto"},
}

// KeywordName returns the CSS keyword a value without operands stands for.
func KeywordName(op Opcode, v Value) (string, bool) {
	name, ok := keywordNames[op][v]
	return name, ok
}

// Known reports whether op has a defined encoding.
func Known(op Opcode) bool {
	_, ok := payloadValues[op]
	return ok
}
