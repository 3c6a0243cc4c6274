package lido

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

func uintWord(v uint64) Word {
	var w Word
	new(big.Int).SetUint64(v).FillBytes(w[:])
	return w
}

func bigWord(v *big.Int) Word {
	var w Word
	v.FillBytes(w[:])
	return w
}

func addressWord(addr common.Address) Word {
	var w Word
	copy(w[WordLength-common.AddressLength:], addr.Bytes())
	return w
}

func param(index int, value Word) Parameter {
	return Parameter{Offset: uint32(SelectorLength + index*WordLength), Value: value}
}
