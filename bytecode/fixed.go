package bytecode

import "strconv"

// Fixed is a signed fixed-point number with RadixPoint fractional bits.
type Fixed int32

const RadixPoint = 10

func IntToFixed(i int32) Fixed {
	return Fixed(i << RadixPoint)
}

func FloatToFixed(f float64) Fixed {
	return Fixed(f * (1 << RadixPoint))
}

func (f Fixed) Float64() float64 {
	return float64(f) / (1 << RadixPoint)
}

func (f Fixed) String() string {
	return strconv.FormatFloat(f.Float64(), 'f', -1, 64)
}
