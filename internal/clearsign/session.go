package clearsign

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"lidoClearSign/internal/lido"
	"lidoClearSign/internal/metrics"
	"lidoClearSign/internal/model"
)

// Session plays the host role: it initializes a context per transaction,
// streams the call data word by word and collects the confirmation screens.
type Session struct {
	decoder  *lido.Decoder
	resolver *lido.Resolver
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewSession(logger *zap.Logger, m *metrics.Metrics) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		decoder:  lido.NewDecoder(logger.Named("decoder")),
		resolver: lido.NewResolver(logger.Named("resolver")),
		metrics:  m,
		logger:   logger,
	}
}

// CanDecode reports whether the call data starts with a supported selector.
func CanDecode(input []byte) bool {
	if len(input) < lido.SelectorLength {
		return false
	}
	var id [lido.SelectorLength]byte
	copy(id[:], input)
	_, ok := lido.LookupSelector(id)
	return ok
}

// Decode runs one transaction through the decoder and the screen resolver.
func (s *Session) Decode(record model.TxRecord) (*model.DecodedCall, error) {
	call, err := s.decode(record)
	if err != nil {
		s.metrics.RecordFailure(FailureReason(err))
		return nil, err
	}
	s.metrics.RecordDecoded(call.Method)
	return call, nil
}

func (s *Session) decode(record model.TxRecord) (*model.DecodedCall, error) {
	input, err := record.InputBytes()
	if err != nil {
		return nil, err
	}
	value, err := record.ValueInt()
	if err != nil {
		return nil, err
	}

	c, err := lido.Init(input)
	if err != nil {
		return nil, err
	}
	payload := input[lido.SelectorLength:]
	if len(payload)%lido.WordLength != 0 {
		return nil, fmt.Errorf("%w: %d parameter bytes", lido.ErrMalformedCalldata, len(payload))
	}
	if common.IsHexAddress(record.To) {
		c.AddressSecondary = common.HexToAddress(record.To)
	}

	var stats model.ChunkStats
	for i := 0; i*lido.WordLength < len(payload); i++ {
		p := lido.Parameter{Offset: uint32(lido.SelectorLength + i*lido.WordLength)}
		copy(p.Value[:], payload[i*lido.WordLength:])

		res, err := s.decoder.Provide(c, p)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		s.metrics.RecordChunk(res.String())
		switch res {
		case lido.ResultConsumed:
			stats.Consumed++
		case lido.ResultSkipped:
			stats.Skipped++
		case lido.ResultDeferred:
			stats.Deferred++
		}
	}
	if !c.Done() {
		return nil, fmt.Errorf("%w: still expecting %s", lido.ErrIncomplete, c.NextField)
	}

	tx := lido.TxContent{Value: value.Bytes()}
	count := lido.ScreenCount(c.Selector)
	screens := make([]model.Screen, 0, count)
	for i := 0; i < count; i++ {
		screen, err := s.resolver.Query(c, tx, uint8(i))
		if err != nil {
			return nil, fmt.Errorf("screen %d: %w", i, err)
		}
		screens = append(screens, model.Screen{Index: uint8(i), Title: screen.Title, Body: screen.Body})
	}

	id, err := c.Selector.ID()
	if err != nil {
		return nil, err
	}

	call := &model.DecodedCall{
		ChainID:     record.ChainID,
		BlockNumber: record.BlockNumber,
		TxHash:      record.TxHash,
		To:          record.To,
		Selector:    hexutil.Encode(id[:]),
		Method:      c.Selector.MethodName(),
		Value:       value.String(),
		Ticker:      c.Ticker,
		Decimals:    c.Decimals,
		Screens:     screens,
		Chunks:      stats,
		Timestamp:   record.Timestamp,
	}

	switch c.Selector.Family() {
	case lido.FamilyWrap:
		call.Amount = wordDecimal(c.Amount)
	case lido.FamilyPermit:
		call.Owner = c.Address.Hex()
		call.Amount = wordDecimal(c.Amount)
	case lido.FamilyRequest, lido.FamilyClaim:
		if c.Selector.Family() == lido.FamilyRequest {
			call.Owner = c.Address.Hex()
		}
		call.ArrayLength = c.ArrayLength
		call.Amount = wordDecimal(c.Amount)
		if c.ArrayLength > 1 {
			call.AmountTwo = wordDecimal(c.AmountTwo)
		}
	}

	s.logger.Debug("call decoded",
		zap.String("tx_hash", record.TxHash),
		zap.String("method", call.Method),
		zap.Int("screens", len(screens)),
	)
	return call, nil
}

func wordDecimal(w lido.Word) string {
	return new(uint256.Int).SetBytes32(w[:]).Dec()
}

// FailureReason classifies a decode error for metrics and error records.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, lido.ErrUnexpectedField):
		return "unexpected_field"
	case errors.Is(err, lido.ErrMalformedLength):
		return "malformed_length"
	case errors.Is(err, lido.ErrUnknownSelector):
		return "unknown_selector"
	case errors.Is(err, lido.ErrInvalidScreen):
		return "invalid_screen"
	case errors.Is(err, lido.ErrMalformedCalldata):
		return "malformed_calldata"
	case errors.Is(err, lido.ErrIncomplete):
		return "incomplete"
	default:
		return "invalid_record"
	}
}

// NewDecodeError builds the failure record for a transaction.
func NewDecodeError(record model.TxRecord, err error) model.DecodeError {
	selector := ""
	input := strings.TrimSpace(record.Input)
	if len(input) >= 2+2*lido.SelectorLength {
		selector = strings.ToLower(input[:2+2*lido.SelectorLength])
	}
	return model.DecodeError{
		ChainID:     record.ChainID,
		BlockNumber: record.BlockNumber,
		TxHash:      record.TxHash,
		To:          record.To,
		Selector:    selector,
		Reason:      FailureReason(err),
		Error:       err.Error(),
	}
}
