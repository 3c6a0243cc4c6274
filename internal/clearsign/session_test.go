package clearsign

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"lidoClearSign/internal/lido"
	"lidoClearSign/internal/metrics"
	"lidoClearSign/internal/model"
)

func packCall(t *testing.T, method string, args ...interface{}) string {
	t.Helper()
	parsed, err := lido.ABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		t.Fatalf("pack %s: %v", method, err)
	}
	return hexutil.Encode(data)
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid int %s", s)
	}
	return v
}

func newTestSession() *Session {
	return NewSession(zap.NewNop(), metrics.NewMetrics(prometheus.NewRegistry()))
}

type permitInput struct {
	Value    *big.Int
	Deadline *big.Int
	V        uint8
	R        [32]byte
	S        [32]byte
}

func TestDecodeWrap(t *testing.T) {
	record := model.TxRecord{
		ChainID: 1,
		TxHash:  "0xabc",
		To:      "0x7f39C581F595B53c5cb19bD0b3f8dA6c935E2Ca0",
		Input:   packCall(t, "wrap", mustBig(t, "1500000000000000000")),
	}

	call, err := newTestSession().Decode(record)
	if err != nil {
		t.Fatalf("decode wrap: %v", err)
	}
	if call.Method != "wrap" || call.Selector != "0xea598cb0" {
		t.Fatalf("method mismatch: %s %s", call.Method, call.Selector)
	}
	if call.Amount != "1500000000000000000" {
		t.Fatalf("amount mismatch: %s", call.Amount)
	}
	if len(call.Screens) != 1 || call.Screens[0].Title != "Wrap" || call.Screens[0].Body != "stETH 1.5" {
		t.Fatalf("screens mismatch: %+v", call.Screens)
	}
	if call.Chunks.Consumed != 1 {
		t.Fatalf("chunk stats mismatch: %+v", call.Chunks)
	}
}

func TestDecodeSubmitShowsNativeValue(t *testing.T) {
	referral := common.HexToAddress("0x1111111111111111111111111111111111111111")
	record := model.TxRecord{
		Value: "2000000000000000000",
		Input: packCall(t, "submit", referral),
	}

	call, err := newTestSession().Decode(record)
	if err != nil {
		t.Fatalf("decode submit: %v", err)
	}
	if len(call.Screens) != 1 || call.Screens[0].Title != "Stake" || call.Screens[0].Body != "ETH 2" {
		t.Fatalf("screens mismatch: %+v", call.Screens)
	}
	if call.Amount != "" || call.Owner != "" {
		t.Fatalf("submit must not decode amount or owner: %+v", call)
	}
}

func TestDecodePermit(t *testing.T) {
	owner := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	permit := permitInput{
		Value:    mustBig(t, "3000000000000000000"),
		Deadline: big.NewInt(1_900_000_000),
		V:        28,
		R:        [32]byte{1},
		S:        [32]byte{2},
	}
	record := model.TxRecord{
		Input: packCall(t, "requestWithdrawalsWithPermit",
			[]*big.Int{mustBig(t, "1000000000000000000"), mustBig(t, "2000000000000000000")},
			owner,
			permit,
		),
	}

	call, err := newTestSession().Decode(record)
	if err != nil {
		t.Fatalf("decode permit: %v", err)
	}
	if call.Owner != owner.Hex() || call.Amount != "3000000000000000000" {
		t.Fatalf("decoded fields mismatch: %+v", call)
	}
	want := []model.Screen{
		{Index: 0, Title: "Owner", Body: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{Index: 1, Title: "Value", Body: "stETH 3"},
	}
	if len(call.Screens) != len(want) {
		t.Fatalf("screens mismatch: %+v", call.Screens)
	}
	for i := range want {
		if call.Screens[i] != want[i] {
			t.Fatalf("screen %d mismatch: %+v != %+v", i, call.Screens[i], want[i])
		}
	}
	// head pointer skipped; owner, permit value and 7 trailing words consumed
	if call.Chunks.Skipped != 1 || call.Chunks.Consumed != 9 {
		t.Fatalf("chunk stats mismatch: %+v", call.Chunks)
	}
}

func TestDecodeRequestWithdrawals(t *testing.T) {
	owner := common.HexToAddress("0x2222222222222222222222222222222222222222")
	record := model.TxRecord{
		Input: packCall(t, "requestWithdrawalsWstETH",
			[]*big.Int{big.NewInt(100), big.NewInt(200), big.NewInt(300)},
			owner,
		),
	}

	call, err := newTestSession().Decode(record)
	if err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if call.Owner != owner.Hex() || call.ArrayLength != 3 {
		t.Fatalf("decoded fields mismatch: %+v", call)
	}
	if call.Amount != "100" || call.AmountTwo != "200" {
		t.Fatalf("amounts mismatch: %s %s", call.Amount, call.AmountTwo)
	}
	if call.Ticker != lido.WstETHTicker {
		t.Fatalf("ticker mismatch: %s", call.Ticker)
	}
	if len(call.Screens) != 0 {
		t.Fatalf("expected no screens, got %+v", call.Screens)
	}
}

func TestDecodeClaimWithdrawals(t *testing.T) {
	record := model.TxRecord{
		Input: packCall(t, "claimWithdrawals",
			[]*big.Int{big.NewInt(5), big.NewInt(6), big.NewInt(7)},
			[]*big.Int{big.NewInt(50), big.NewInt(60), big.NewInt(70)},
		),
	}

	call, err := newTestSession().Decode(record)
	if err != nil {
		t.Fatalf("decode claim: %v", err)
	}
	if call.ArrayLength != 3 || call.Amount != "5" || call.AmountTwo != "6" {
		t.Fatalf("decoded fields mismatch: %+v", call)
	}
	if call.Owner != "" {
		t.Fatalf("claim has no owner: %s", call.Owner)
	}
	if call.Chunks.Deferred != 2 {
		t.Fatalf("expected head pointers deferred: %+v", call.Chunks)
	}
}

func TestDecodeFailures(t *testing.T) {
	wrap := packCall(t, "wrap", big.NewInt(1))
	selectorOnly := wrap[:2+2*lido.SelectorLength]

	cases := []struct {
		name   string
		record model.TxRecord
		target error
		reason string
	}{
		{"trailing word", model.TxRecord{Input: wrap + strings.Repeat("00", 31) + "ff"}, lido.ErrUnexpectedField, "unexpected_field"},
		{"truncated", model.TxRecord{Input: selectorOnly}, lido.ErrIncomplete, "incomplete"},
		{"partial word", model.TxRecord{Input: wrap + "ff"}, lido.ErrMalformedCalldata, "malformed_calldata"},
		{"unknown selector", model.TxRecord{Input: "0xdeadbeef"}, lido.ErrUnknownSelector, "unknown_selector"},
		{"zero length", model.TxRecord{Input: packCall(t, "requestWithdrawals", []*big.Int{}, common.Address{})}, lido.ErrMalformedLength, "malformed_length"},
	}

	s := newTestSession()
	for _, tc := range cases {
		_, err := s.Decode(tc.record)
		if !errors.Is(err, tc.target) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.target, err)
		}
		if reason := FailureReason(err); reason != tc.reason {
			t.Fatalf("%s: reason mismatch: %s", tc.name, reason)
		}
	}
}

func TestCanDecode(t *testing.T) {
	input, err := hexutil.Decode(packCall(t, "unwrap", big.NewInt(1)))
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}
	if !CanDecode(input) {
		t.Fatalf("expected unwrap to be decodable")
	}
	if CanDecode([]byte{0xa9, 0x05, 0x9c, 0xbb}) {
		t.Fatalf("erc20 transfer must not be decodable")
	}
	if CanDecode(nil) {
		t.Fatalf("empty input must not be decodable")
	}
}

func TestNewDecodeError(t *testing.T) {
	record := model.TxRecord{ChainID: 1, BlockNumber: 7, TxHash: "0xabc", To: "0xdef", Input: "0xEA598CB000"}
	got := NewDecodeError(record, fmt.Errorf("wrap: %w", lido.ErrIncomplete))
	if got.Selector != "0xea598cb0" || got.Reason != "incomplete" || got.BlockNumber != 7 {
		t.Fatalf("unexpected decode error: %+v", got)
	}

	short := NewDecodeError(model.TxRecord{Input: "0x12"}, lido.ErrMalformedCalldata)
	if short.Selector != "" || short.Reason != "malformed_calldata" {
		t.Fatalf("unexpected decode error: %+v", short)
	}
}
