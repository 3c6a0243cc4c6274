package storage

import (
	"context"

	"lidoClearSign/internal/model"
)

// Storage defines a sink for decoded calls and decode failures.
type Storage interface {
	PutDecodedBatch(ctx context.Context, calls []model.DecodedCall) error
	PutErrorBatch(ctx context.Context, errs []model.DecodeError) error
}

// Multi fans a batch out to several sinks, stopping at the first failure.
type Multi []Storage

func (m Multi) PutDecodedBatch(ctx context.Context, calls []model.DecodedCall) error {
	for _, s := range m {
		if err := s.PutDecodedBatch(ctx, calls); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) PutErrorBatch(ctx context.Context, errs []model.DecodeError) error {
	for _, s := range m {
		if err := s.PutErrorBatch(ctx, errs); err != nil {
			return err
		}
	}
	return nil
}
