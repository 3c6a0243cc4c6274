package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lidoClearSign/internal/clearsign"
	"lidoClearSign/internal/lido"
	"lidoClearSign/internal/model"
)

type recordingStore struct {
	batches [][]model.DecodedCall
}

func (r *recordingStore) UpsertDecodedCalls(_ context.Context, calls []model.DecodedCall) error {
	batch := make([]model.DecodedCall, len(calls))
	copy(batch, calls)
	r.batches = append(r.batches, batch)
	return nil
}

func readJSONL(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestDecodeStream(t *testing.T) {
	parsed, err := lido.ABI()
	require.NoError(t, err)
	wrap, err := parsed.Pack("wrap", big.NewInt(250_000_000_000_000_000))
	require.NoError(t, err)

	records := []model.TxRecord{
		{ChainID: 1, BlockNumber: 1, TxHash: "0x01", Input: hexutil.Encode(wrap)},
		{ChainID: 1, BlockNumber: 2, TxHash: "0x02", Input: "0xa9059cbb"},
		{ChainID: 1, BlockNumber: 3, TxHash: "0x03", Input: hexutil.Encode(wrap[:20])},
	}
	var in bytes.Buffer
	for _, record := range records {
		line, err := json.Marshal(record)
		require.NoError(t, err)
		in.Write(line)
		in.WriteByte('\n')
	}
	in.WriteString("\n{not json}\n")

	dir := t.TempDir()
	outPath := filepath.Join(dir, "calls.jsonl")
	errPath := filepath.Join(dir, "errors.jsonl")
	outWriter, err := newJSONLWriter(outPath, false)
	require.NoError(t, err)
	errWriter, err := newJSONLWriter(errPath, false)
	require.NoError(t, err)

	store := &recordingStore{}
	stats, err := decodeStream(context.Background(), strings.NewReader(in.String()), clearsign.NewSession(zap.NewNop(), nil), outWriter, errWriter, store)
	require.NoError(t, err)
	require.NoError(t, outWriter.Close())
	require.NoError(t, errWriter.Close())

	assert.Equal(t, decodeStats{total: 4, decoded: 1, skipped: 1, failed: 2}, stats)

	calls := readJSONL(t, outPath)
	require.Len(t, calls, 1)
	var call model.DecodedCall
	require.NoError(t, json.Unmarshal([]byte(calls[0]), &call))
	assert.Equal(t, "0x01", call.TxHash)
	require.Len(t, call.Screens, 1)
	assert.Equal(t, "stETH 0.25", call.Screens[0].Body)

	failures := readJSONL(t, errPath)
	require.Len(t, failures, 2)
	var first model.DecodeError
	require.NoError(t, json.Unmarshal([]byte(failures[0]), &first))
	assert.Equal(t, "0x03", first.TxHash)
	assert.Equal(t, "malformed_calldata", first.Reason)

	require.Len(t, store.batches, 1)
	assert.Equal(t, "0x01", store.batches[0][0].TxHash)
}

func TestDecodeStreamWithoutStore(t *testing.T) {
	dir := t.TempDir()
	outWriter, err := newJSONLWriter(filepath.Join(dir, "calls.jsonl"), false)
	require.NoError(t, err)
	defer outWriter.Close()
	errWriter, err := newJSONLWriter(filepath.Join(dir, "errors.jsonl"), false)
	require.NoError(t, err)
	defer errWriter.Close()

	stats, err := decodeStream(context.Background(), strings.NewReader(""), clearsign.NewSession(nil, nil), outWriter, errWriter, nil)
	require.NoError(t, err)
	assert.Equal(t, decodeStats{}, stats)
}
