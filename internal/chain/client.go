package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Block is the subset of a block the scanner needs.
type Block struct {
	Number       uint64
	Timestamp    uint64
	Transactions []*types.Transaction
}

// Transaction is a mined transaction with its block coordinates.
type Transaction struct {
	Tx          *types.Transaction
	BlockNumber uint64
	TxIndex     uint64
	Timestamp   uint64
}

// Client wraps go-ethereum RPC and provides helper methods.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	mu      sync.RWMutex
	tsCache map[uint64]uint64
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
		tsCache:   make(map[uint64]uint64),
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetChainID returns the chain ID.
func (c *Client) GetChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// LatestBlockNumber returns the latest block number.
func (c *Client) LatestBlockNumber(ctx context.Context) (uint64, error) {
	return c.ethClient.BlockNumber(ctx)
}

// Block returns the block with its transactions.
func (c *Client) Block(ctx context.Context, number uint64) (Block, error) {
	block, err := c.ethClient.BlockByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return Block{}, err
	}

	c.mu.Lock()
	c.tsCache[number] = block.Time()
	c.mu.Unlock()

	return Block{
		Number:       block.NumberU64(),
		Timestamp:    block.Time(),
		Transactions: block.Transactions(),
	}, nil
}

// BlockTimestamp returns the block timestamp, using an in-memory cache.
func (c *Client) BlockTimestamp(ctx context.Context, number uint64) (uint64, error) {
	c.mu.RLock()
	ts, ok := c.tsCache[number]
	c.mu.RUnlock()
	if ok {
		return ts, nil
	}

	header, err := c.ethClient.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return 0, err
	}

	ts = header.Time
	c.mu.Lock()
	c.tsCache[number] = ts
	c.mu.Unlock()

	return ts, nil
}

// Transaction looks up a mined transaction by hash.
func (c *Client) Transaction(ctx context.Context, hash common.Hash) (Transaction, error) {
	tx, pending, err := c.ethClient.TransactionByHash(ctx, hash)
	if err != nil {
		return Transaction{}, err
	}
	if pending {
		return Transaction{}, fmt.Errorf("transaction %s is pending", hash.Hex())
	}

	receipt, err := c.ethClient.TransactionReceipt(ctx, hash)
	if err != nil {
		return Transaction{}, fmt.Errorf("receipt %s: %w", hash.Hex(), err)
	}
	if receipt.BlockNumber == nil || !receipt.BlockNumber.IsUint64() {
		return Transaction{}, fmt.Errorf("receipt %s has no block number", hash.Hex())
	}
	blockNumber := receipt.BlockNumber.Uint64()

	ts, err := c.BlockTimestamp(ctx, blockNumber)
	if err != nil {
		return Transaction{}, fmt.Errorf("block timestamp %d: %w", blockNumber, err)
	}

	return Transaction{
		Tx:          tx,
		BlockNumber: blockNumber,
		TxIndex:     uint64(receipt.TransactionIndex),
		Timestamp:   ts,
	}, nil
}
