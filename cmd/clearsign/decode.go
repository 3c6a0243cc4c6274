package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lidoClearSign/internal/clearsign"
	"lidoClearSign/internal/config"
	"lidoClearSign/internal/model"
	"lidoClearSign/internal/storage/postgres"
)

const pgBatchSize = 500

func runDecode(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDecode(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	outWriter, err := newJSONLWriter(cfg.Out, false)
	if err != nil {
		return err
	}
	defer outWriter.Close()

	errWriter, err := newJSONLWriter(cfg.Errors, false)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	logger.Info("decode start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Bool("postgres", store != nil),
	)

	var sink callStore
	if store != nil {
		sink = store
	}

	session := clearsign.NewSession(logger, nil)
	stats, err := decodeStream(ctx, inputFile, session, outWriter, errWriter, sink)
	if err != nil {
		return err
	}

	logger.Info("decode complete",
		zap.Int("total", stats.total),
		zap.Int("decoded", stats.decoded),
		zap.Int("skipped", stats.skipped),
		zap.Int("failed", stats.failed),
	)

	return nil
}

type decodeStats struct {
	total, decoded, skipped, failed int
}

// callStore receives decoded calls in batches.
type callStore interface {
	UpsertDecodedCalls(ctx context.Context, calls []model.DecodedCall) error
}

func decodeStream(
	ctx context.Context,
	in io.Reader,
	session *clearsign.Session,
	outWriter *jsonlWriter,
	errWriter *jsonlWriter,
	store callStore,
) (decodeStats, error) {
	var (
		stats   decodeStats
		pending []model.DecodedCall
	)
	flush := func() error {
		if store == nil || len(pending) == 0 {
			return nil
		}
		if err := store.UpsertDecodedCalls(ctx, pending); err != nil {
			return fmt.Errorf("store decoded calls: %w", err)
		}
		pending = pending[:0]
		return nil
	}

	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.total++

		var record model.TxRecord
		if err := json.Unmarshal(line, &record); err != nil {
			stats.failed++
			writeDecodeError(errWriter, model.DecodeError{Reason: "invalid_record", Error: err.Error()})
			continue
		}

		input, err := record.InputBytes()
		if err != nil {
			stats.failed++
			writeDecodeError(errWriter, clearsign.NewDecodeError(record, err))
			continue
		}
		if !clearsign.CanDecode(input) {
			stats.skipped++
			continue
		}

		call, err := session.Decode(record)
		if err != nil {
			stats.failed++
			writeDecodeError(errWriter, clearsign.NewDecodeError(record, err))
			continue
		}

		if err := outWriter.Write(call); err != nil {
			return stats, err
		}
		stats.decoded++

		if store != nil {
			pending = append(pending, *call)
			if len(pending) >= pgBatchSize {
				if err := flush(); err != nil {
					return stats, err
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}

	return stats, flush()
}

type jsonlWriter struct {
	file   *os.File
	writer *bufio.Writer
}

func newJSONLWriter(path string, appendMode bool) (*jsonlWriter, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &jsonlWriter{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

func (w *jsonlWriter) Write(value interface{}) error {
	line, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := w.writer.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

func (w *jsonlWriter) Close() error {
	if w == nil {
		return nil
	}
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

func writeDecodeError(writer *jsonlWriter, errRecord model.DecodeError) {
	if writer == nil {
		return
	}
	_ = writer.Write(errRecord)
}
