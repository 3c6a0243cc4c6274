package lido

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorIDsMatchSignatures(t *testing.T) {
	signatures := map[Selector]string{
		SelectorSubmit:                             "submit(address)",
		SelectorWrap:                               "wrap(uint256)",
		SelectorUnwrap:                             "unwrap(uint256)",
		SelectorRequestWithdrawals:                 "requestWithdrawals(uint256[],address)",
		SelectorRequestWithdrawalsWstETH:           "requestWithdrawalsWstETH(uint256[],address)",
		SelectorRequestWithdrawalsWithPermit:       "requestWithdrawalsWithPermit(uint256[],address,(uint256,uint256,uint8,bytes32,bytes32))",
		SelectorRequestWithdrawalsWstETHWithPermit: "requestWithdrawalsWstETHWithPermit(uint256[],address,(uint256,uint256,uint8,bytes32,bytes32))",
		SelectorClaimWithdrawals:                   "claimWithdrawals(uint256[],uint256[])",
	}
	require.Len(t, signatures, len(Selectors))

	for sel, sig := range signatures {
		var want [4]byte
		copy(want[:], crypto.Keccak256([]byte(sig))[:4])

		id, err := sel.ID()
		require.NoError(t, err)
		assert.Equal(t, want, id, sig)

		got, ok := LookupSelector(want)
		require.True(t, ok, sig)
		assert.Equal(t, sel, got)
	}
}

func TestInitClaimUsesHeadPointer(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)

	calldata, err := parsed.Pack("claimWithdrawals",
		[]*big.Int{big.NewInt(1), big.NewInt(2)},
		[]*big.Int{big.NewInt(10), big.NewInt(20)},
	)
	require.NoError(t, err)

	c, err := Init(calldata)
	require.NoError(t, err)
	assert.Equal(t, SelectorClaimWithdrawals, c.Selector)
	assert.Equal(t, FieldAmountLength, c.NextField)
	assert.Equal(t, uint32(SelectorLength), c.GateCheckpoint)
	assert.Equal(t, uint32(64), c.GateOffset)
}

func TestInitPermitUnit(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)

	permit := struct {
		Value    *big.Int
		Deadline *big.Int
		V        uint8
		R        [32]byte
		S        [32]byte
	}{Value: big.NewInt(1), Deadline: big.NewInt(2), V: 27}

	calldata, err := parsed.Pack("requestWithdrawalsWstETHWithPermit",
		[]*big.Int{big.NewInt(1)},
		common.HexToAddress("0x1111111111111111111111111111111111111111"),
		permit,
	)
	require.NoError(t, err)

	c, err := Init(calldata)
	require.NoError(t, err)
	assert.Equal(t, FieldAddress, c.NextField)
	assert.Equal(t, uint8(1), c.Skip)
	assert.Equal(t, WstETHTicker, c.Ticker)
	assert.Equal(t, uint8(WstETHDecimals), c.Decimals)
}

func TestInitRejectsBadCalldata(t *testing.T) {
	_, err := Init([]byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrMalformedCalldata)

	_, err = Init([]byte{0xde, 0xad, 0xbe, 0xef})
	require.ErrorIs(t, err, ErrUnknownSelector)

	id, err := SelectorClaimWithdrawals.ID()
	require.NoError(t, err)
	zeroHead := append(id[:], make([]byte, WordLength)...)
	_, err = Init(zeroHead)
	require.ErrorIs(t, err, ErrMalformedCalldata)
}

func TestNewContextUnknownSelector(t *testing.T) {
	_, err := NewContext(SelectorUnknown)
	require.ErrorIs(t, err, ErrUnknownSelector)
}

func TestSelectorFamilies(t *testing.T) {
	cases := map[Selector]string{
		SelectorSubmit:                             "stake",
		SelectorWrap:                               "wrap",
		SelectorUnwrap:                             "wrap",
		SelectorRequestWithdrawalsWithPermit:       "permit",
		SelectorRequestWithdrawalsWstETHWithPermit: "permit",
		SelectorRequestWithdrawals:                 "request",
		SelectorRequestWithdrawalsWstETH:           "request",
		SelectorClaimWithdrawals:                   "claim",
		SelectorUnknown:                            "none",
	}
	for sel, want := range cases {
		assert.Equal(t, want, sel.Family().String(), sel.String())
	}
	assert.Equal(t, "family(9)", Family(9).String())
}
