package scanner

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"lidoClearSign/internal/model"
)

// BuildTxRecord normalizes a mined transaction for decoding.
func BuildTxRecord(chainID, blockNumber, txIndex, timestamp uint64, tx *types.Transaction) model.TxRecord {
	to := ""
	if tx.To() != nil {
		to = tx.To().Hex()
	}

	return model.TxRecord{
		ChainID:     chainID,
		BlockNumber: blockNumber,
		TxHash:      tx.Hash().Hex(),
		TxIndex:     txIndex,
		To:          to,
		Value:       tx.Value().String(),
		Input:       hexutil.Encode(tx.Data()),
		Timestamp:   timestamp,
	}
}
