package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// BatchLogger tees structured logs for one scan batch into a log file kept
// next to the scan records, so a finished output directory carries its own
// execution history.
type BatchLogger struct {
	*Logger
	batchID string
	logFile *os.File
	mu      sync.Mutex
}

func NewBatchLogger(batchID, outputDir string, level logrus.Level) (*BatchLogger, error) {
	baseLogger := NewLogger(level)

	logFilePath := filepath.Join(outputDir, "scan.log")
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create batch log file: %w", err)
	}

	header := fmt.Sprintf("\n=== Scan Batch Started: %s ===\n", time.Now().Format(time.RFC3339))
	header += fmt.Sprintf("Batch ID: %s\n", batchID)
	header += fmt.Sprintf("Output Directory: %s\n", outputDir)
	header += "==========================================\n\n"
	logFile.WriteString(header)

	baseLogger.Logger.SetOutput(io.MultiWriter(os.Stdout, logFile))

	return &BatchLogger{
		Logger:  baseLogger,
		batchID: batchID,
		logFile: logFile,
	}, nil
}

func (bl *BatchLogger) Close() error {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	footer := fmt.Sprintf("\n=== Scan Batch Ended: %s ===\n", time.Now().Format(time.RFC3339))
	bl.logFile.WriteString(footer)
	return bl.logFile.Close()
}
