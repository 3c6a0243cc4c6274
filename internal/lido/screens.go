package lido

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"lidoClearSign/internal/format"
)

// Screen is one confirmation screen.
type Screen struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type screenKind uint8

const (
	screenAmount screenKind = iota + 1
	screenAddress
)

// Selectors without a layout have no screens at this layer.
var screenLayouts = map[Selector][]screenKind{
	SelectorSubmit:                       {screenAmount},
	SelectorWrap:                         {screenAmount},
	SelectorUnwrap:                       {screenAmount},
	SelectorRequestWithdrawalsWithPermit: {screenAddress, screenAmount},
}

// TxContent is the host-owned transaction data screens may read.
type TxContent struct {
	// Value is the big-endian native value attached to the transaction.
	Value []byte
}

// AmountFormatter renders a big-endian magnitude with its unit.
type AmountFormatter func(raw []byte, decimals uint8, ticker string) string

// AddressFormatter renders an address in checksum case without the 0x prefix.
type AddressFormatter func(addr common.Address, hasher crypto.KeccakState) string

// Resolver maps a decoded context and a screen index to screen content.
type Resolver struct {
	formatAmount  AmountFormatter
	formatAddress AddressFormatter
	newHasher     func() crypto.KeccakState
	logger        *zap.Logger
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

func WithAmountFormatter(f AmountFormatter) ResolverOption {
	return func(r *Resolver) { r.formatAmount = f }
}

func WithAddressFormatter(f AddressFormatter) ResolverOption {
	return func(r *Resolver) { r.formatAddress = f }
}

func NewResolver(logger *zap.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		formatAmount:  format.Amount,
		formatAddress: format.ChecksumAddress,
		newHasher:     crypto.NewKeccakState,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ScreenCount returns how many screens a selector defines.
func ScreenCount(sel Selector) int {
	return len(screenLayouts[sel])
}

// Query resolves a screen index. On error the returned screen is empty.
func (r *Resolver) Query(c *Context, tx TxContent, index uint8) (Screen, error) {
	layout := screenLayouts[c.Selector]
	if int(index) >= len(layout) {
		r.logger.Debug("invalid screen index", zap.Stringer("selector", c.Selector), zap.Uint8("index", index))
		return Screen{}, fmt.Errorf("%w: %d for %s", ErrInvalidScreen, index, c.Selector)
	}

	switch layout[index] {
	case screenAmount:
		return r.amountScreen(c, tx)
	case screenAddress:
		return r.addressScreen(c)
	default:
		return Screen{}, fmt.Errorf("%w: %d for %s", ErrInvalidScreen, index, c.Selector)
	}
}

func (r *Resolver) amountScreen(c *Context, tx TxContent) (Screen, error) {
	switch c.Selector {
	case SelectorSubmit:
		// Staked ether travels as the transaction value, not as call data.
		return Screen{Title: "Stake", Body: r.formatAmount(tx.Value, EtherDecimals, EtherTicker)}, nil
	case SelectorUnwrap:
		return Screen{Title: "Unwrap", Body: r.formatAmount(c.Amount[:], WstETHDecimals, WstETHTicker)}, nil
	case SelectorWrap:
		return Screen{Title: "Wrap", Body: r.formatAmount(c.Amount[:], StETHDecimals, StETHTicker)}, nil
	case SelectorRequestWithdrawalsWithPermit:
		return Screen{Title: "Value", Body: r.formatAmount(c.Amount[:], c.Decimals, c.Ticker)}, nil
	default:
		r.logger.Debug("unhandled selector", zap.Stringer("selector", c.Selector))
		return Screen{}, fmt.Errorf("%w: no amount screen for %s", ErrInvalidScreen, c.Selector)
	}
}

func (r *Resolver) addressScreen(c *Context) (Screen, error) {
	if c.Selector != SelectorRequestWithdrawalsWithPermit {
		r.logger.Debug("unhandled selector", zap.Stringer("selector", c.Selector))
		return Screen{}, fmt.Errorf("%w: no address screen for %s", ErrInvalidScreen, c.Selector)
	}
	return Screen{Title: "Owner", Body: "0x" + r.formatAddress(c.Address, r.newHasher())}, nil
}
