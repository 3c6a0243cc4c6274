package lido

import (
	"github.com/ethereum/go-ethereum/common"
)

// WordLength is the size of one ABI-encoded call-data word.
const WordLength = 32

// SelectorLength is the size of the function ID preceding the parameters.
const SelectorLength = 4

// Word is one 32-byte call-data word.
type Word [WordLength]byte

// Field marks which call-data field the decoder expects next.
type Field uint8

const (
	// FieldUnset is the "no active sequence" state of a context nobody initialized.
	FieldUnset Field = iota
	FieldReferral
	FieldAddress
	FieldAmountLength
	FieldAmount
	FieldAmountTwo
	// FieldNone is reached once every tracked field has been decoded.
	FieldNone
)

func (f Field) String() string {
	switch f {
	case FieldUnset:
		return "UNSET"
	case FieldReferral:
		return "REFERRAL"
	case FieldAddress:
		return "ADDRESS"
	case FieldAmountLength:
		return "AMOUNT_LENGTH"
	case FieldAmount:
		return "AMOUNT"
	case FieldAmountTwo:
		return "AMOUNT_TWO"
	case FieldNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// FoundFlags records auxiliary facts established outside the field sequence.
type FoundFlags uint8

const (
	TokenSentFound FoundFlags = 1 << iota
	TokenReceivedFound
)

// Context is the per-transaction decoder record. It is owned by a single
// transaction and must not be shared between concurrent invocations.
type Context struct {
	Selector  Selector
	NextField Field

	// Skip counts upcoming chunks to ignore unconditionally.
	Skip uint8
	// GateOffset is relative to GateCheckpoint; zero disables gating.
	GateOffset     uint32
	GateCheckpoint uint32

	Amount      Word
	AmountTwo   Word
	ArrayLength uint16

	Address          common.Address
	AddressSecondary common.Address

	// Decimals and Ticker give the unit of Amount for selectors whose unit is
	// not fixed by the screen itself.
	Decimals uint8
	Ticker   string

	Found FoundFlags
	Valid bool
}

// Done reports whether the field sequence reached its terminal state.
func (c *Context) Done() bool {
	return c.NextField == FieldNone
}
