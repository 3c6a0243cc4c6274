// Package format renders decoded call-data values for confirmation screens.
package format

import (
	"strings"

	"github.com/holiman/uint256"
)

// Amount renders a big-endian magnitude of at most 32 bytes as "<ticker> <value>",
// scaled down by decimals. Trailing fractional zeros are trimmed.
func Amount(raw []byte, decimals uint8, ticker string) string {
	if len(raw) > 32 {
		raw = raw[len(raw)-32:]
	}
	value := adjustDecimals(new(uint256.Int).SetBytes(raw).Dec(), int(decimals))
	if ticker == "" {
		return value
	}
	return ticker + " " + value
}

func adjustDecimals(digits string, decimals int) string {
	if decimals == 0 {
		return digits
	}
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	split := len(digits) - decimals
	whole, frac := digits[:split], strings.TrimRight(digits[split:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
