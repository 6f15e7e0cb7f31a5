package properties

import "github.com/netsurf-plan9/libcss/bytecode"

const (
	maxIntPart = 1<<(31-bytecode.RadixPoint) - 1
	maxFracPow = 1000000
)

// parseNumber reads a decimal number from the start of data and returns it
// in fixed point together with the number of bytes read. Zero bytes read
// means data does not start with a number. Exponents are not recognised.
// Magnitudes too large for the fixed-point range are clamped.
func parseNumber(data string, intOnly bool) (bytecode.Fixed, int) {
	var (
		sign     int32 = 1
		intpart  int32
		fracpart int32
		pwr      int32 = 1
		digits   bool
		i        int
	)

	if i < len(data) && (data[i] == '-' || data[i] == '+') {
		if data[i] == '-' {
			sign = -1
		}
		i++
	}

	for ; i < len(data) && isDigit(data[i]); i++ {
		digits = true
		if intpart < 1<<22 {
			intpart = intpart*10 + int32(data[i]-'0')
		}
	}

	if !intOnly && i+1 < len(data) && data[i] == '.' && isDigit(data[i+1]) {
		digits = true
		for i++; i < len(data) && isDigit(data[i]); i++ {
			if pwr < maxFracPow {
				pwr *= 10
				fracpart = fracpart*10 + int32(data[i]-'0')
			}
		}
	}

	if !digits {
		return 0, 0
	}

	if pwr > 1 {
		fracpart = ((1<<bytecode.RadixPoint)*fracpart + pwr/2) / pwr
		if fracpart >= 1<<bytecode.RadixPoint {
			intpart++
			fracpart &= 1<<bytecode.RadixPoint - 1
		}
	}

	// Out of range magnitudes saturate to the largest fixed-point value.
	if intpart > maxIntPart {
		intpart = maxIntPart
		fracpart = 1<<bytecode.RadixPoint - 1
	}

	return bytecode.Fixed(sign * (intpart<<bytecode.RadixPoint | fracpart)), i
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
