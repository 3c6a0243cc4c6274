package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lidoClearSign/internal/model"
)

// JsonlStorage appends decoded calls and decode errors to two JSONL files.
// An empty path disables that stream.
type JsonlStorage struct {
	callsPath  string
	errorsPath string
	mu         sync.Mutex
}

func NewJsonlStorage(callsPath, errorsPath string) *JsonlStorage {
	return &JsonlStorage{callsPath: callsPath, errorsPath: errorsPath}
}

// PutDecodedBatch appends a batch of decoded calls as JSON lines.
func (s *JsonlStorage) PutDecodedBatch(_ context.Context, calls []model.DecodedCall) error {
	if len(calls) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(calls))
	for _, call := range calls {
		values = append(values, call)
	}
	return s.appendLines(s.callsPath, values)
}

// PutErrorBatch appends a batch of decode errors as JSON lines.
func (s *JsonlStorage) PutErrorBatch(_ context.Context, errs []model.DecodeError) error {
	if len(errs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(errs))
	for _, e := range errs {
		values = append(values, e)
	}
	return s.appendLines(s.errorsPath, values)
}

func (s *JsonlStorage) appendLines(path string, values []interface{}) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, value := range values {
		line, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
