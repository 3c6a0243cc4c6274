package lido

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

// Units of the amounts shown on confirmation screens.
const (
	EtherTicker    = "ETH"
	EtherDecimals  = 18
	StETHTicker    = "stETH"
	StETHDecimals  = 18
	WstETHTicker   = "wstETH"
	WstETHDecimals = 18
)

// defaultHeadSize is the head of a call taking two dynamic arrays.
const defaultHeadSize = 2 * WordLength

// InitConfig is the starting decoder state for one selector.
type InitConfig struct {
	NextField      Field
	Skip           uint8
	GateCheckpoint uint32
	GateOffset     uint32
	Decimals       uint8
	Ticker         string
}

var initConfigs = map[Selector]InitConfig{
	SelectorSubmit: {NextField: FieldReferral},
	SelectorWrap:   {NextField: FieldAmount},
	SelectorUnwrap: {NextField: FieldAmount},
	// The _amounts head pointer precedes _owner; the permit value follows it.
	SelectorRequestWithdrawalsWithPermit: {
		NextField: FieldAddress,
		Skip:      1,
		Decimals:  StETHDecimals,
		Ticker:    StETHTicker,
	},
	SelectorRequestWithdrawalsWstETHWithPermit: {
		NextField: FieldAddress,
		Skip:      1,
		Decimals:  WstETHDecimals,
		Ticker:    WstETHTicker,
	},
	SelectorRequestWithdrawals: {
		NextField: FieldAddress,
		Skip:      1,
		Decimals:  StETHDecimals,
		Ticker:    StETHTicker,
	},
	SelectorRequestWithdrawalsWstETH: {
		NextField: FieldAddress,
		Skip:      1,
		Decimals:  WstETHDecimals,
		Ticker:    WstETHTicker,
	},
	// Jump over both head pointers straight to the _requestIds length.
	SelectorClaimWithdrawals: {
		NextField:      FieldAmountLength,
		GateCheckpoint: SelectorLength,
		GateOffset:     defaultHeadSize,
	},
}

// InitConfigFor returns the starting configuration of a selector.
func InitConfigFor(sel Selector) (InitConfig, bool) {
	cfg, ok := initConfigs[sel]
	return cfg, ok
}

// NewContext builds a fresh context for a recognized selector.
func NewContext(sel Selector) (*Context, error) {
	cfg, ok := initConfigs[sel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSelector, sel)
	}
	return &Context{
		Selector:       sel,
		NextField:      cfg.NextField,
		Skip:           cfg.Skip,
		GateCheckpoint: cfg.GateCheckpoint,
		GateOffset:     cfg.GateOffset,
		Decimals:       cfg.Decimals,
		Ticker:         cfg.Ticker,
	}, nil
}

// Init recognizes the selector of the call data and builds its context. When
// the call data carries a head pointer for a gated array, the gate targets
// that pointer instead of the canonical head size.
func Init(calldata []byte) (*Context, error) {
	if len(calldata) < SelectorLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedCalldata, len(calldata))
	}
	var id [SelectorLength]byte
	copy(id[:], calldata[:SelectorLength])
	sel, ok := LookupSelector(id)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnknownSelector, id)
	}

	c, err := NewContext(sel)
	if err != nil {
		return nil, err
	}

	if c.GateOffset != 0 && len(calldata) >= SelectorLength+WordLength {
		head := new(uint256.Int).SetBytes32(calldata[SelectorLength : SelectorLength+WordLength])
		if !head.IsUint64() || head.Uint64() > math.MaxUint32-uint64(c.GateCheckpoint) || head.IsZero() {
			return nil, fmt.Errorf("%w: head pointer %s", ErrMalformedCalldata, head.Dec())
		}
		c.GateOffset = uint32(head.Uint64())
	}
	return c, nil
}
