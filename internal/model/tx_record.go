package model

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TxRecord is the normalized representation of a contract call to decode.
type TxRecord struct {
	ChainID     uint64 `json:"chain_id"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	TxIndex     uint64 `json:"tx_index"`
	To          string `json:"to"`
	// Value is the attached native value in wei, decimal or 0x-prefixed hex.
	Value     string `json:"value"`
	Input     string `json:"input"`
	Timestamp uint64 `json:"timestamp"`
}

// InputBytes decodes the hex call data.
func (r TxRecord) InputBytes() ([]byte, error) {
	data, err := hexutil.Decode(strings.TrimSpace(r.Input))
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return data, nil
}

// ValueInt parses the native value; an empty value is zero.
func (r TxRecord) ValueInt() (*big.Int, error) {
	raw := strings.TrimSpace(r.Value)
	if raw == "" {
		return new(big.Int), nil
	}
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		v, err := hexutil.DecodeBig(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		return v, nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid value: %s", raw)
	}
	return v, nil
}
