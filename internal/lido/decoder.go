package lido

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

// Result tells the host what happened to a provided parameter.
type Result uint8

const (
	// ResultConsumed means the chunk reached the field sequence.
	ResultConsumed Result = iota
	// ResultSkipped means the chunk was ignored because of the skip counter.
	ResultSkipped
	// ResultDeferred means the offset gate is waiting for a later chunk.
	// It is not an error.
	ResultDeferred
)

func (r Result) String() string {
	switch r {
	case ResultConsumed:
		return "consumed"
	case ResultSkipped:
		return "skipped"
	case ResultDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Parameter is one call-data word tagged with its byte offset in the call data.
type Parameter struct {
	Offset uint32
	Value  Word
}

// Decoder feeds call-data parameters into a transaction context.
type Decoder struct {
	logger *zap.Logger
}

func NewDecoder(logger *zap.Logger) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{logger: logger}
}

// Provide processes one parameter. A non-nil error is fatal for the transaction.
func (d *Decoder) Provide(c *Context, p Parameter) (Result, error) {
	d.logger.Debug("provide parameter",
		zap.Uint32("offset", p.Offset),
		zap.String("value", hexutil.Encode(p.Value[:])),
	)

	if c.Skip > 0 {
		c.Skip--
		return ResultSkipped, nil
	}

	if !passGate(c, p.Offset) {
		d.logger.Debug("parameter deferred",
			zap.Uint32("gate_offset", c.GateOffset),
			zap.Uint32("gate_checkpoint", c.GateCheckpoint),
			zap.Uint32("offset", p.Offset),
		)
		return ResultDeferred, nil
	}

	seq, ok := sequences[c.Selector.Family()]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownSelector, c.Selector)
		d.logger.Warn("selector not supported", zap.Stringer("selector", c.Selector), zap.Error(err))
		return ResultConsumed, err
	}

	next, upd, err := seq(cursor{field: c.NextField, arrayLength: c.ArrayLength}, p.Value)
	if err != nil {
		d.logger.Warn("param not supported",
			zap.Stringer("selector", c.Selector),
			zap.Stringer("next_field", c.NextField),
			zap.Uint32("offset", p.Offset),
			zap.Error(err),
		)
		return ResultConsumed, err
	}
	upd.apply(c)
	c.NextField = next
	c.Valid = true
	return ResultConsumed, nil
}

// passGate reports whether the chunk at offset may be decoded now. A match
// clears the gate, so gating applies to one target offset per configuration.
func passGate(c *Context, offset uint32) bool {
	if c.GateOffset != 0 && offset != c.GateCheckpoint+c.GateOffset {
		return false
	}
	c.GateOffset = 0
	return true
}
