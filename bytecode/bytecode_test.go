package bytecode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/netsurf-plan9/libcss"
)

func TestBuildOPV(t *testing.T) {
	tests := []struct {
		name  string
		op    Opcode
		flags Flags
		value Value
		want  OPV
	}{
		{"plain", OpMarginTop, 0, MarginAuto, 0x030},
		{"inherit", OpMarginLeft, FlagInherit, 0, 0x033 | 2<<10},
		{"set", OpMarginRight, 0, MarginSet, 0x031 | 0x80<<18},
		{"important set", OpMarginBottom, FlagImportant, MarginSet, 0x032 | 1<<10 | 0x80<<18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildOPV(tt.op, tt.flags, tt.value)
			if got != tt.want {
				t.Fatalf("BuildOPV = 0x%08x, want 0x%08x", uint32(got), uint32(tt.want))
			}
			if got.Opcode() != tt.op {
				t.Errorf("Opcode() = %v, want %v", got.Opcode(), tt.op)
			}
			if got.Flags() != tt.flags {
				t.Errorf("Flags() = %d, want %d", got.Flags(), tt.flags)
			}
			if got.Value() != tt.value {
				t.Errorf("Value() = 0x%x, want 0x%x", got.Value(), tt.value)
			}
		})
	}
}

func TestHasPayload(t *testing.T) {
	tests := []struct {
		name string
		opv  OPV
		want bool
	}{
		{"set", BuildOPV(OpMarginTop, 0, MarginSet), true},
		{"important set", BuildOPV(OpMarginTop, FlagImportant, MarginSet), true},
		{"auto", BuildOPV(OpMarginTop, 0, MarginAuto), false},
		{"inherit", BuildOPV(OpMarginTop, FlagInherit, 0), false},
		{"inherit with set value", BuildOPV(OpMarginTop, FlagInherit, MarginSet), false},
		{"unknown opcode", BuildOPV(0x3ff, 0, MarginSet), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPayload(tt.opv); got != tt.want {
				t.Errorf("HasPayload = %v, want %v", got, tt.want)
			}
			want := OPVSize
			if tt.want {
				want += PayloadSize
			}
			if got := InstructionSize(tt.opv); got != want {
				t.Errorf("InstructionSize = %d, want %d", got, want)
			}
		})
	}
}

func TestDeclarationEncode(t *testing.T) {
	tests := []struct {
		name string
		decl Declaration
		want []byte
	}{
		{
			name: "inherit",
			decl: Declaration{Op: OpMarginTop, Operand: Inherit{}},
			want: []byte{0x30, 0x08, 0x00, 0x00},
		},
		{
			name: "auto",
			decl: Declaration{Op: OpMarginLeft, Operand: Keyword(MarginAuto)},
			want: []byte{0x33, 0x00, 0x00, 0x00},
		},
		{
			name: "10px",
			decl: Declaration{Op: OpMarginTop, Operand: Dimension{Value: MarginSet, Length: IntToFixed(10), Unit: UnitPx}},
			want: []byte{
				0x30, 0x00, 0x00, 0x02,
				0x00, 0x28, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "-1em",
			decl: Declaration{Op: OpMarginBottom, Operand: Dimension{Value: MarginSet, Length: IntToFixed(-1), Unit: UnitEm}},
			want: []byte{
				0x32, 0x00, 0x00, 0x02,
				0x00, 0xfc, 0xff, 0xff,
				0x02, 0x00, 0x00, 0x00,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.decl.Size(); got != len(tt.want) {
				t.Fatalf("Size() = %d, want %d", got, len(tt.want))
			}
			buf := make([]byte, tt.decl.Size())
			if n := tt.decl.Encode(buf); n != len(buf) {
				t.Errorf("Encode wrote %d bytes, want %d", n, len(buf))
			}
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("Encode = % x, want % x", buf, tt.want)
			}

			got, n, err := Decode(buf)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if n != len(buf) {
				t.Errorf("Decode consumed %d, want %d", n, len(buf))
			}
			if got != tt.decl {
				t.Errorf("Decode = %+v, want %+v", got, tt.decl)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	set := make([]byte, 12)
	Declaration{Op: OpMarginTop, Operand: Dimension{Value: MarginSet, Unit: UnitPx}}.Encode(set)

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"short header", []byte{0x30, 0x00}},
		{"unknown opcode", []byte{0xff, 0x03, 0x00, 0x00}},
		{"truncated payload", set[:8]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.input)
			if !errors.Is(err, libcss.ErrInvalid) {
				t.Errorf("Decode error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDecodeAllAndSetImportant(t *testing.T) {
	decls := []Declaration{
		{Op: OpMarginTop, Operand: Dimension{Value: MarginSet, Length: IntToFixed(1), Unit: UnitPx}},
		{Op: OpMarginRight, Operand: Keyword(MarginAuto)},
		{Op: OpMarginBottom, Operand: Inherit{}},
		{Op: OpMarginLeft, Operand: Dimension{Value: MarginSet, Length: FloatToFixed(12.5), Unit: UnitPct}},
	}
	var size int
	for _, d := range decls {
		size += d.Size()
	}
	buf := make([]byte, size)
	off := 0
	for _, d := range decls {
		off += d.Encode(buf[off:])
	}

	got, err := DecodeAll(buf)
	if err != nil {
		t.Fatalf("DecodeAll error: %v", err)
	}
	if len(got) != len(decls) {
		t.Fatalf("DecodeAll = %d declarations, want %d", len(got), len(decls))
	}
	for i := range decls {
		if got[i] != decls[i] {
			t.Errorf("declaration %d = %+v, want %+v", i, got[i], decls[i])
		}
	}

	if err := SetImportant(buf); err != nil {
		t.Fatalf("SetImportant error: %v", err)
	}
	got, err = DecodeAll(buf)
	if err != nil {
		t.Fatalf("DecodeAll after SetImportant error: %v", err)
	}
	for i, d := range got {
		if !d.Important {
			t.Errorf("declaration %d not important", i)
		}
		d.Important = false
		if d != decls[i] {
			t.Errorf("declaration %d = %+v, want %+v apart from importance", i, d, decls[i])
		}
	}

	if err := SetImportant(buf[:len(buf)-1]); !errors.Is(err, libcss.ErrInvalid) {
		t.Errorf("SetImportant on truncated input = %v, want ErrInvalid", err)
	}
}

func TestDeclarationString(t *testing.T) {
	tests := []struct {
		decl Declaration
		want string
	}{
		{Declaration{Op: OpMarginTop, Operand: Inherit{}}, "margin-top: inherit"},
		{Declaration{Op: OpMarginLeft, Operand: Keyword(MarginAuto), Important: true}, "margin-left: auto !important"},
		{Declaration{Op: OpMarginRight, Operand: Dimension{Value: MarginSet, Length: FloatToFixed(1.5), Unit: UnitEm}}, "margin-right: 1.5em"},
		{Declaration{Op: OpMarginBottom, Operand: Dimension{Value: MarginSet, Length: IntToFixed(50), Unit: UnitPct}}, "margin-bottom: 50%"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.decl.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnits(t *testing.T) {
	tests := []struct {
		name   string
		unit   Unit
		length bool
		angle  bool
		time   bool
		freq   bool
	}{
		{"px", UnitPx, true, false, false, false},
		{"PC", UnitPc, true, false, false, false},
		{"deg", UnitDeg, false, true, false, false},
		{"Rad", UnitRad, false, true, false, false},
		{"ms", UnitMs, false, false, true, false},
		{"s", UnitS, false, false, true, false},
		{"kHz", UnitKHz, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := LookupUnit(tt.name)
			if !ok {
				t.Fatalf("LookupUnit(%q) not found", tt.name)
			}
			if u != tt.unit {
				t.Errorf("LookupUnit(%q) = %v, want %v", tt.name, u, tt.unit)
			}
			if u.IsLength() != tt.length || u.IsAngle() != tt.angle || u.IsTime() != tt.time || u.IsFreq() != tt.freq {
				t.Errorf("classes of %v = length:%v angle:%v time:%v freq:%v", u, u.IsLength(), u.IsAngle(), u.IsTime(), u.IsFreq())
			}
		})
	}

	for _, name := range []string{"%", "", "vw", "pxx", "\u017F", "\u212Ahz", "m\u017F"} {
		if _, ok := LookupUnit(name); ok {
			t.Errorf("LookupUnit(%q) found, want not found", name)
		}
	}

	want := []string{"px", "ex", "em", "in", "cm", "mm", "pt", "pc"}
	got := LengthUnitNames()
	if len(got) != len(want) {
		t.Fatalf("LengthUnitNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LengthUnitNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		f    Fixed
		want string
	}{
		{IntToFixed(10), "10"},
		{IntToFixed(-3), "-3"},
		{FloatToFixed(0.5), "0.5"},
		{FloatToFixed(2.25), "2.25"},
		{0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.f.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
