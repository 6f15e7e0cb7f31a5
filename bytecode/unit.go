package bytecode

import "github.com/netsurf-plan9/libcss/intern"

// Unit is a unit code. The high bits classify the unit; the low bits select
// a unit within its class. Lengths occupy class zero.
type Unit uint32

const (
	UnitPx Unit = 0
	UnitEx Unit = 1
	UnitEm Unit = 2
	UnitIn Unit = 3
	UnitCm Unit = 4
	UnitMm Unit = 5
	UnitPt Unit = 6
	UnitPc Unit = 7

	UnitPct Unit = 1 << 8

	UnitAngle Unit = 1 << 9
	UnitDeg   Unit = UnitAngle + 0
	UnitGrad  Unit = UnitAngle + 1
	UnitRad   Unit = UnitAngle + 2

	UnitTime Unit = 1 << 10
	UnitMs   Unit = UnitTime + 0
	UnitS    Unit = UnitTime + 1

	UnitFreq Unit = 1 << 11
	UnitHz   Unit = UnitFreq + 0
	UnitKHz  Unit = UnitFreq + 1
)

func (u Unit) IsPercentage() bool { return u&UnitPct != 0 }
func (u Unit) IsAngle() bool      { return u&UnitAngle != 0 }
func (u Unit) IsTime() bool       { return u&UnitTime != 0 }
func (u Unit) IsFreq() bool       { return u&UnitFreq != 0 }

// IsLength reports whether u is in the length class.
func (u Unit) IsLength() bool {
	return u&(UnitPct|UnitAngle|UnitTime|UnitFreq) == 0
}

var unitNames = []struct {
	unit Unit
	name string
}{
	{UnitPx, "px"},
	{UnitEx, "ex"},
	{UnitEm, "em"},
	{UnitIn, "in"},
	{UnitCm, "cm"},
	{UnitMm, "mm"},
	{UnitPt, "pt"},
	{UnitPc, "pc"},
	{UnitPct, "%"},
	{UnitDeg, "deg"},
	{UnitGrad, "grad"},
	{UnitRad, "rad"},
	{UnitMs, "ms"},
	{UnitS, "s"},
	{UnitHz, "hz"},
	{UnitKHz, "khz"},
}

func (u Unit) String() string {
	for _, n := range unitNames {
		if n.unit == u {
			return n.name
		}
	}
	return "unknown"
}

// LookupUnit returns the unit named by a dimension suffix. Matching is
// ASCII case-insensitive. "%" is not a dimension suffix and is not found.
func LookupUnit(name string) (Unit, bool) {
	name = intern.ToLower(name)
	for _, n := range unitNames {
		if n.unit != UnitPct && n.name == name {
			return n.unit, true
		}
	}
	return 0, false
}

// LengthUnitNames returns the suffixes of the length units in code order.
func LengthUnitNames() []string {
	var names []string
	for _, n := range unitNames {
		if n.unit.IsLength() {
			names = append(names, n.name)
		}
	}
	return names
}
