package lido

import (
	"fmt"
	"sync"
)

// Selector identifies which supported contract function a transaction invokes.
type Selector uint8

const (
	SelectorUnknown Selector = iota
	SelectorSubmit
	SelectorWrap
	SelectorUnwrap
	SelectorRequestWithdrawals
	SelectorRequestWithdrawalsWstETH
	SelectorRequestWithdrawalsWithPermit
	SelectorRequestWithdrawalsWstETHWithPermit
	SelectorClaimWithdrawals
)

// Selectors lists every supported selector in registry order.
var Selectors = []Selector{
	SelectorSubmit,
	SelectorWrap,
	SelectorUnwrap,
	SelectorRequestWithdrawals,
	SelectorRequestWithdrawalsWstETH,
	SelectorRequestWithdrawalsWithPermit,
	SelectorRequestWithdrawalsWstETHWithPermit,
	SelectorClaimWithdrawals,
}

var methodNames = map[Selector]string{
	SelectorSubmit:                             "submit",
	SelectorWrap:                               "wrap",
	SelectorUnwrap:                             "unwrap",
	SelectorRequestWithdrawals:                 "requestWithdrawals",
	SelectorRequestWithdrawalsWstETH:           "requestWithdrawalsWstETH",
	SelectorRequestWithdrawalsWithPermit:       "requestWithdrawalsWithPermit",
	SelectorRequestWithdrawalsWstETHWithPermit: "requestWithdrawalsWstETHWithPermit",
	SelectorClaimWithdrawals:                   "claimWithdrawals",
}

// MethodName returns the ABI method name, or "" for an unknown selector.
func (s Selector) MethodName() string {
	return methodNames[s]
}

func (s Selector) String() string {
	if name, ok := methodNames[s]; ok {
		return name
	}
	return fmt.Sprintf("selector(%d)", uint8(s))
}

// Family groups selectors sharing one call-data field sequence.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyStake
	FamilyWrap
	FamilyPermit
	FamilyRequest
	FamilyClaim
)

var familyNames = [...]string{
	FamilyNone:    "none",
	FamilyStake:   "stake",
	FamilyWrap:    "wrap",
	FamilyPermit:  "permit",
	FamilyRequest: "request",
	FamilyClaim:   "claim",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("family(%d)", uint8(f))
}

func (s Selector) Family() Family {
	switch s {
	case SelectorSubmit:
		return FamilyStake
	case SelectorWrap, SelectorUnwrap:
		return FamilyWrap
	case SelectorRequestWithdrawalsWithPermit, SelectorRequestWithdrawalsWstETHWithPermit:
		return FamilyPermit
	case SelectorRequestWithdrawals, SelectorRequestWithdrawalsWstETH:
		return FamilyRequest
	case SelectorClaimWithdrawals:
		return FamilyClaim
	default:
		return FamilyNone
	}
}

var (
	selectorIDs     map[[4]byte]Selector
	selectorIDsOnce sync.Once
	selectorIDsErr  error
)

func selectorRegistry() (map[[4]byte]Selector, error) {
	selectorIDsOnce.Do(func() {
		parsed, err := ABI()
		if err != nil {
			selectorIDsErr = fmt.Errorf("parse lido abi: %w", err)
			return
		}
		ids := make(map[[4]byte]Selector, len(methodNames))
		for sel, name := range methodNames {
			method, ok := parsed.Methods[name]
			if !ok {
				selectorIDsErr = fmt.Errorf("abi has no method %s", name)
				return
			}
			var id [4]byte
			copy(id[:], method.ID)
			ids[id] = sel
		}
		selectorIDs = ids
	})
	return selectorIDs, selectorIDsErr
}

// LookupSelector recognizes a 4-byte function ID.
func LookupSelector(id [4]byte) (Selector, bool) {
	ids, err := selectorRegistry()
	if err != nil {
		return SelectorUnknown, false
	}
	sel, ok := ids[id]
	return sel, ok
}

// ID returns the 4-byte function ID of a supported selector.
func (s Selector) ID() ([4]byte, error) {
	ids, err := selectorRegistry()
	if err != nil {
		return [4]byte{}, err
	}
	for id, sel := range ids {
		if sel == s {
			return id, nil
		}
	}
	return [4]byte{}, fmt.Errorf("%w: %s", ErrUnknownSelector, s)
}
