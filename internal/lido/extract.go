package lido

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func extractAmount(chunk Word) Word {
	return chunk
}

// extractLength parses a uint16 array length from a length-prefix word. The
// upper 30 bytes must be zero and the count must be non-zero.
func extractLength(chunk Word) (uint16, error) {
	v := new(uint256.Int).SetBytes32(chunk[:])
	if !v.IsUint64() || v.Uint64() > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %s does not fit uint16", ErrMalformedLength, v.Dec())
	}
	if v.IsZero() {
		return 0, fmt.Errorf("%w: zero", ErrMalformedLength)
	}
	return uint16(v.Uint64()), nil
}

func extractAddress(chunk Word) common.Address {
	return common.BytesToAddress(chunk[WordLength-common.AddressLength:])
}
