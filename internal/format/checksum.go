package format

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ChecksumAddress returns the EIP-55 mixed-case hex of addr without the 0x prefix.
// The hasher is reset before use.
func ChecksumAddress(addr common.Address, hasher crypto.KeccakState) string {
	lower := []byte(hexutil.Encode(addr[:])[2:])

	var digest [32]byte
	hasher.Reset()
	hasher.Write(lower)
	hasher.Read(digest[:])

	for i, ch := range lower {
		if ch < 'a' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble > 7 {
			lower[i] = ch - ('a' - 'A')
		}
	}
	return string(lower)
}
