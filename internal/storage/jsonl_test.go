package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"lidoClearSign/internal/model"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return lines
}

func TestJsonlStorageAppends(t *testing.T) {
	dir := t.TempDir()
	callsPath := filepath.Join(dir, "out", "calls.jsonl")
	errorsPath := filepath.Join(dir, "out", "errors.jsonl")
	s := NewJsonlStorage(callsPath, errorsPath)
	ctx := context.Background()

	first := []model.DecodedCall{{TxHash: "0x01", Method: "wrap", Amount: "1"}}
	second := []model.DecodedCall{{TxHash: "0x02", Method: "unwrap"}, {TxHash: "0x03", Method: "submit"}}
	if err := s.PutDecodedBatch(ctx, first); err != nil {
		t.Fatalf("put first batch: %v", err)
	}
	if err := s.PutDecodedBatch(ctx, second); err != nil {
		t.Fatalf("put second batch: %v", err)
	}
	if err := s.PutErrorBatch(ctx, []model.DecodeError{{TxHash: "0x04", Reason: "incomplete"}}); err != nil {
		t.Fatalf("put errors: %v", err)
	}

	lines := readLines(t, callsPath)
	if len(lines) != 3 {
		t.Fatalf("expected 3 call lines, got %d", len(lines))
	}
	var decoded model.DecodedCall
	if err := json.Unmarshal([]byte(lines[2]), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.TxHash != "0x03" || decoded.Method != "submit" {
		t.Fatalf("last line mismatch: %+v", decoded)
	}

	if lines := readLines(t, errorsPath); len(lines) != 1 {
		t.Fatalf("expected 1 error line, got %d", len(lines))
	}
}

func TestJsonlStorageDisabledStream(t *testing.T) {
	dir := t.TempDir()
	callsPath := filepath.Join(dir, "calls.jsonl")
	s := NewJsonlStorage(callsPath, "")

	if err := s.PutErrorBatch(context.Background(), []model.DecodeError{{TxHash: "0x01"}}); err != nil {
		t.Fatalf("put errors: %v", err)
	}
	if _, err := os.Stat(callsPath); !os.IsNotExist(err) {
		t.Fatalf("calls file must not be created, stat err: %v", err)
	}
}
