package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, program string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", program, sessionStart.Format("20060102_150405")),
	)
}

// OpenLogFile creates the logs directory if needed and opens a fresh
// session log for program.
func OpenLogFile(logsDir, program string, sessionStart time.Time) (*os.File, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating logs dir: %w", err)
	}
	path := LogFilePath(logsDir, program, sessionStart)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) // #nosec G304 -- path built from config
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

// NewLogProvider builds an OTel log provider that exports pretty-printed
// records to w in batches.
func NewLogProvider(w io.Writer, batchTimeout time.Duration) (*sdklog.LoggerProvider, error) {
	if w == nil {
		return nil, fmt.Errorf("otel log provider needs a writer")
	}
	exporter, err := stdoutlog.New(
		stdoutlog.WithWriter(w),
		stdoutlog.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file log exporter: %w", err)
	}
	proc := sdklog.NewBatchProcessor(exporter, sdklog.WithExportTimeout(batchTimeout))
	return sdklog.NewLoggerProvider(sdklog.WithProcessor(proc)), nil
}
