package lido

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// cursor is the part of a context a field sequence reads.
type cursor struct {
	field       Field
	arrayLength uint16
}

// update is the context mutation produced by one sequence step.
type update struct {
	amount      *Word
	amountTwo   *Word
	address     *common.Address
	arrayLength uint16
}

func (u update) apply(c *Context) {
	if u.amount != nil {
		c.Amount = *u.amount
	}
	if u.amountTwo != nil {
		c.AmountTwo = *u.amountTwo
	}
	if u.address != nil {
		c.Address = *u.address
	}
	if u.arrayLength != 0 {
		c.ArrayLength = u.arrayLength
	}
}

// sequence consumes one chunk for a selector family and returns the next
// expected field together with the mutation to apply.
type sequence func(cur cursor, chunk Word) (Field, update, error)

var sequences = map[Family]sequence{
	FamilyStake:   stakeSequence,
	FamilyWrap:    wrapSequence,
	FamilyPermit:  permitSequence,
	FamilyRequest: requestSequence,
	FamilyClaim:   claimSequence,
}

func unexpected(cur cursor) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedField, cur.field)
}

// submit(address _referral). The referral is not displayed.
func stakeSequence(cur cursor, _ Word) (Field, update, error) {
	if cur.field != FieldReferral {
		return cur.field, update{}, unexpected(cur)
	}
	return FieldNone, update{}, nil
}

// wrap(uint256) and unwrap(uint256). Any chunk past the amount is an error.
func wrapSequence(cur cursor, chunk Word) (Field, update, error) {
	if cur.field != FieldAmount {
		return cur.field, update{}, unexpected(cur)
	}
	amount := extractAmount(chunk)
	return FieldNone, update{amount: &amount}, nil
}

// Owner then permit value; deadline and signature words that follow are ignored.
func permitSequence(cur cursor, chunk Word) (Field, update, error) {
	switch cur.field {
	case FieldAddress:
		addr := extractAddress(chunk)
		return FieldAmount, update{address: &addr}, nil
	case FieldAmount:
		amount := extractAmount(chunk)
		return FieldNone, update{amount: &amount}, nil
	case FieldNone:
		return FieldNone, update{}, nil
	default:
		return cur.field, update{}, unexpected(cur)
	}
}

func requestSequence(cur cursor, chunk Word) (Field, update, error) {
	switch cur.field {
	case FieldAddress:
		addr := extractAddress(chunk)
		return FieldAmountLength, update{address: &addr}, nil
	case FieldAmountLength, FieldAmount, FieldAmountTwo, FieldNone:
		return amountArray(cur, chunk)
	default:
		return cur.field, update{}, unexpected(cur)
	}
}

// Only the first two request IDs are tracked; remaining IDs and the hints array are ignored.
func claimSequence(cur cursor, chunk Word) (Field, update, error) {
	return amountArray(cur, chunk)
}

// amountArray decodes a uint256[] length prefix followed by up to two elements.
func amountArray(cur cursor, chunk Word) (Field, update, error) {
	switch cur.field {
	case FieldAmountLength:
		length, err := extractLength(chunk)
		if err != nil {
			return cur.field, update{}, err
		}
		return FieldAmount, update{arrayLength: length}, nil
	case FieldAmount:
		amount := extractAmount(chunk)
		if cur.arrayLength > 1 {
			return FieldAmountTwo, update{amount: &amount}, nil
		}
		return FieldNone, update{amount: &amount}, nil
	case FieldAmountTwo:
		amount := extractAmount(chunk)
		return FieldNone, update{amountTwo: &amount}, nil
	case FieldNone:
		return FieldNone, update{}, nil
	default:
		return cur.field, update{}, unexpected(cur)
	}
}
