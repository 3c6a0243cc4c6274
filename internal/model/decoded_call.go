package model

// Screen is one rendered confirmation screen.
type Screen struct {
	Index uint8  `json:"index"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ChunkStats counts what happened to each call-data word.
type ChunkStats struct {
	Consumed int `json:"consumed"`
	Skipped  int `json:"skipped"`
	Deferred int `json:"deferred"`
}

// DecodedCall is a decoded contract call with its confirmation screens.
type DecodedCall struct {
	ChainID     uint64     `json:"chain_id"`
	BlockNumber uint64     `json:"block_number"`
	TxHash      string     `json:"tx_hash"`
	To          string     `json:"to"`
	Selector    string     `json:"selector"`
	Method      string     `json:"method"`
	Value       string     `json:"value"`
	Owner       string     `json:"owner,omitempty"`
	ArrayLength uint16     `json:"array_length,omitempty"`
	Amount      string     `json:"amount,omitempty"`
	AmountTwo   string     `json:"amount_two,omitempty"`
	Ticker      string     `json:"ticker,omitempty"`
	Decimals    uint8      `json:"decimals,omitempty"`
	Screens     []Screen   `json:"screens"`
	Chunks      ChunkStats `json:"chunks"`
	Timestamp   uint64     `json:"timestamp"`
}
