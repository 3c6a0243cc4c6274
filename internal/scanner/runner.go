package scanner

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"lidoClearSign/internal/chain"
	"lidoClearSign/internal/clearsign"
	"lidoClearSign/internal/metrics"
	"lidoClearSign/internal/model"
	"lidoClearSign/internal/storage"
)

// Chain is the RPC surface used by the runner.
type Chain interface {
	GetChainID(ctx context.Context) (*big.Int, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	Block(ctx context.Context, number uint64) (chain.Block, error)
}

// Decoder turns a transaction into a decoded call.
type Decoder interface {
	Decode(record model.TxRecord) (*model.DecodedCall, error)
}

// RunConfig holds runtime settings for the scanner.
type RunConfig struct {
	FromBlock    uint64
	ToBlock      uint64
	Contracts    []common.Address
	BatchSize    uint64
	MaxRetries   int
	RetryBackoff time.Duration
}

// Runner walks blocks, decodes calls sent to the configured contracts and
// writes the results to storage.
type Runner struct {
	cfg        RunConfig
	chain      Chain
	decoder    Decoder
	storage    storage.Storage
	checkpoint CheckpointStore
	metrics    *metrics.Metrics
	logger     *zap.Logger
	contracts  map[common.Address]struct{}
	seen       map[string]struct{}
}

// NewRunner builds a Runner with its dependencies. checkpoint may be nil.
func NewRunner(
	cfg RunConfig,
	chainClient Chain,
	decoder Decoder,
	storageSink storage.Storage,
	checkpoint CheckpointStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	contracts := make(map[common.Address]struct{}, len(cfg.Contracts))
	for _, addr := range cfg.Contracts {
		contracts[addr] = struct{}{}
	}
	return &Runner{
		cfg:        cfg,
		chain:      chainClient,
		decoder:    decoder,
		storage:    storageSink,
		checkpoint: checkpoint,
		metrics:    m,
		logger:     logger,
		contracts:  contracts,
		seen:       make(map[string]struct{}),
	}
}

// Run executes the scan loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.decoder == nil {
		return fmt.Errorf("decoder is nil")
	}
	if r.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	if len(r.contracts) == 0 {
		return fmt.Errorf("at least one contract address is required")
	}

	var chainID *big.Int
	err := r.retry(ctx, "eth_chainId", func(ctx context.Context) error {
		var err error
		chainID, err = r.chain.GetChainID(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}
	chainIDValue := chainID.Uint64()

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		err := r.retry(ctx, "eth_blockNumber", func(ctx context.Context) error {
			var err error
			to, err = r.chain.LatestBlockNumber(ctx)
			return err
		})
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
	}

	if r.checkpoint != nil {
		last, ok, err := r.checkpoint.Load(ctx)
		if err != nil {
			return err
		}
		if ok && last >= from {
			from = last + 1
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", last), zap.Uint64("from", from))
		}
	}

	if from > to {
		r.logger.Info("nothing to scan", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, blockRange := range ranges {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := r.scanRange(ctx, chainIDValue, blockRange); err != nil {
			return err
		}

		if r.checkpoint != nil {
			if err := r.checkpoint.Save(ctx, blockRange.To); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Runner) scanRange(ctx context.Context, chainID uint64, blockRange BlockRange) error {
	var (
		calls  []model.DecodedCall
		failed []model.DecodeError
	)

	for number := blockRange.From; number <= blockRange.To; number++ {
		var block chain.Block
		err := r.retry(ctx, "eth_getBlockByNumber", func(ctx context.Context) error {
			var err error
			block, err = r.chain.Block(ctx, number)
			if err != nil {
				r.logger.Warn("block fetch failed", zap.Error(err), zap.Uint64("block_number", number))
			}
			return err
		})
		if err != nil {
			return fmt.Errorf("block %d: %w", number, err)
		}

		for i, tx := range block.Transactions {
			if tx.To() == nil {
				continue
			}
			if _, ok := r.contracts[*tx.To()]; !ok {
				continue
			}
			if !clearsign.CanDecode(tx.Data()) {
				continue
			}
			if r.isDuplicate(chainID, tx.Hash()) {
				continue
			}

			record := BuildTxRecord(chainID, block.Number, uint64(i), block.Timestamp, tx)
			call, err := r.decoder.Decode(record)
			if err != nil {
				r.logger.Warn("decode failed", zap.Error(err), zap.String("tx_hash", record.TxHash))
				failed = append(failed, clearsign.NewDecodeError(record, err))
				continue
			}
			calls = append(calls, *call)
		}

		if number == blockRange.To {
			break
		}
	}

	if err := r.storage.PutDecodedBatch(ctx, calls); err != nil {
		return fmt.Errorf("store decoded calls: %w", err)
	}
	if err := r.storage.PutErrorBatch(ctx, failed); err != nil {
		return fmt.Errorf("store decode errors: %w", err)
	}
	r.metrics.RecordBlocks(int(blockRange.To - blockRange.From + 1))

	r.logger.Info("batch complete",
		zap.Int("calls", len(calls)),
		zap.Int("errors", len(failed)),
		zap.Uint64("from", blockRange.From),
		zap.Uint64("to", blockRange.To),
	)
	return nil
}

func (r *Runner) retry(ctx context.Context, method string, fn func(context.Context) error) error {
	return withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(int, error) {
		r.metrics.RecordRPCRetry(method)
	}, fn)
}

func (r *Runner) isDuplicate(chainID uint64, hash common.Hash) bool {
	id := fmt.Sprintf("%d:%s", chainID, hash.Hex())
	if _, ok := r.seen[id]; ok {
		return true
	}
	r.seen[id] = struct{}{}
	return false
}
