package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lidoClearSign/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS decoded_calls (
	chain_id     BIGINT      NOT NULL,
	tx_hash      TEXT        NOT NULL,
	block_number BIGINT      NOT NULL,
	to_address   TEXT        NOT NULL,
	selector     TEXT        NOT NULL,
	method       TEXT        NOT NULL,
	value        NUMERIC     NOT NULL,
	owner        TEXT,
	array_length INTEGER,
	amount       NUMERIC,
	amount_two   NUMERIC,
	ticker       TEXT,
	decimals     SMALLINT,
	screens      JSONB       NOT NULL,
	chunks       JSONB       NOT NULL,
	block_ts     BIGINT      NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (chain_id, tx_hash)
);
CREATE TABLE IF NOT EXISTS decode_errors (
	id           BIGSERIAL PRIMARY KEY,
	chain_id     BIGINT      NOT NULL,
	tx_hash      TEXT        NOT NULL,
	block_number BIGINT      NOT NULL,
	to_address   TEXT        NOT NULL,
	selector     TEXT        NOT NULL,
	reason       TEXT        NOT NULL,
	error        TEXT        NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS scanner_state (
	name                 TEXT PRIMARY KEY,
	last_processed_block BIGINT      NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL
);
`

// Store provides Postgres persistence for decoded calls.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables used by the store when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

// PutDecodedBatch implements storage.Storage.
func (s *Store) PutDecodedBatch(ctx context.Context, calls []model.DecodedCall) error {
	return s.UpsertDecodedCalls(ctx, calls)
}

// PutErrorBatch implements storage.Storage.
func (s *Store) PutErrorBatch(ctx context.Context, errs []model.DecodeError) error {
	return s.InsertDecodeErrors(ctx, errs)
}

// UpsertDecodedCalls inserts or updates decoded calls.
func (s *Store) UpsertDecodedCalls(ctx context.Context, calls []model.DecodedCall) error {
	if len(calls) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, call := range calls {
		screens, err := json.Marshal(call.Screens)
		if err != nil {
			return fmt.Errorf("marshal screens: %w", err)
		}
		chunks, err := json.Marshal(call.Chunks)
		if err != nil {
			return fmt.Errorf("marshal chunks: %w", err)
		}
		batch.Queue(`
			INSERT INTO decoded_calls (
				chain_id, tx_hash, block_number, to_address, selector, method, value,
				owner, array_length, amount, amount_two, ticker, decimals,
				screens, chunks, block_ts, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,now(),now())
			ON CONFLICT (chain_id, tx_hash)
			DO UPDATE SET
				block_number = EXCLUDED.block_number,
				to_address = EXCLUDED.to_address,
				selector = EXCLUDED.selector,
				method = EXCLUDED.method,
				value = EXCLUDED.value,
				owner = EXCLUDED.owner,
				array_length = EXCLUDED.array_length,
				amount = EXCLUDED.amount,
				amount_two = EXCLUDED.amount_two,
				ticker = EXCLUDED.ticker,
				decimals = EXCLUDED.decimals,
				screens = EXCLUDED.screens,
				chunks = EXCLUDED.chunks,
				block_ts = EXCLUDED.block_ts,
				updated_at = now()
		`,
			int64(call.ChainID),
			call.TxHash,
			int64(call.BlockNumber),
			call.To,
			call.Selector,
			call.Method,
			numericOrZero(call.Value),
			nullable(call.Owner),
			int32(call.ArrayLength),
			nullable(call.Amount),
			nullable(call.AmountTwo),
			nullable(call.Ticker),
			int16(call.Decimals),
			screens,
			chunks,
			int64(call.Timestamp),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range calls {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertDecodeErrors appends decode failures.
func (s *Store) InsertDecodeErrors(ctx context.Context, errs []model.DecodeError) error {
	if len(errs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range errs {
		batch.Queue(`
			INSERT INTO decode_errors (
				chain_id, tx_hash, block_number, to_address, selector, reason, error, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,now())
		`,
			int64(e.ChainID),
			e.TxHash,
			int64(e.BlockNumber),
			e.To,
			e.Selector,
			e.Reason,
			e.Error,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range errs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_processed_block for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var block int64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_block FROM scanner_state WHERE name=$1`, name)
	if err := row.Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(block), true, nil
}

// SaveState upserts last_processed_block for a name.
func (s *Store) SaveState(ctx context.Context, name string, block uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scanner_state (name, last_processed_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed_block = EXCLUDED.last_processed_block, updated_at = now()
	`, name, int64(block))
	return err
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func numericOrZero(value string) string {
	if value == "" {
		return "0"
	}
	return value
}
