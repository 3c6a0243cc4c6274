package storage

import (
	"context"
	"errors"
	"testing"

	"lidoClearSign/internal/model"
)

type countingSink struct {
	calls int
	errs  int
	fail  error
}

func (c *countingSink) PutDecodedBatch(_ context.Context, calls []model.DecodedCall) error {
	if c.fail != nil {
		return c.fail
	}
	c.calls += len(calls)
	return nil
}

func (c *countingSink) PutErrorBatch(_ context.Context, errs []model.DecodeError) error {
	if c.fail != nil {
		return c.fail
	}
	c.errs += len(errs)
	return nil
}

func TestMultiFansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := Multi{a, b}

	if err := m.PutDecodedBatch(context.Background(), make([]model.DecodedCall, 2)); err != nil {
		t.Fatalf("put decoded: %v", err)
	}
	if err := m.PutErrorBatch(context.Background(), make([]model.DecodeError, 1)); err != nil {
		t.Fatalf("put errors: %v", err)
	}
	if a.calls != 2 || b.calls != 2 || a.errs != 1 || b.errs != 1 {
		t.Fatalf("unexpected counts: %+v %+v", a, b)
	}
}

func TestMultiStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	after := &countingSink{}
	m := Multi{&countingSink{fail: boom}, after}

	if err := m.PutDecodedBatch(context.Background(), make([]model.DecodedCall, 1)); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if after.calls != 0 {
		t.Fatalf("sink after failure must not be called")
	}
}
