package model

// DecodeError records a decode failure for a transaction.
type DecodeError struct {
	ChainID     uint64 `json:"chain_id"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	To          string `json:"to"`
	Selector    string `json:"selector"`
	Reason      string `json:"reason"`
	Error       string `json:"error"`
}
