package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"webprint/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// waitForDir polls until the driver has created the output directory
func (s *scanService) waitForDir(ctx context.Context, dir string) bool {
	if _, err := os.Stat(dir); err == nil {
		return true
	}

	s.logger.Info("Waiting for output directory to be created", logger.Fields{"dir": dir})

	timeout := time.After(5 * time.Minute)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			s.logger.Error("Timeout waiting for output directory", logger.Fields{"dir": dir})
			return false
		case <-ticker.C:
			if _, err := os.Stat(dir); err == nil {
				return true
			}
		case <-ctx.Done():
			return false
		}
	}
}

// monitorRecords watches the output directory and counts scan records as
// the driver produces them, keeping the database row's progress current.
// Updates are throttled to avoid a write per record. Progress is written
// by scan ID so the monitor never shares mutable state with the run
// goroutine.
func (s *scanService) monitorRecords(ctx context.Context, scanID, outputDir string) {
	if !s.waitForDir(ctx, outputDir) {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Error("Failed to create directory watcher", logger.Fields{"error": err, "dir": outputDir})
		return
	}
	defer watcher.Close()

	if err := watcher.Add(outputDir); err != nil {
		s.logger.Error("Error adding directory to watcher", logger.Fields{"error": err, "dir": outputDir})
		return
	}

	seen := make(map[string]bool)
	updatePending := false

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && filepath.Ext(event.Name) == ".json" {
				if !seen[event.Name] {
					seen[event.Name] = true
					updatePending = true
				}
			}

		case <-ticker.C:
			if updatePending {
				if err := s.scanDao.UpdateScanProgress(scanID, len(seen)); err != nil {
					s.logger.Error("Failed to update scan progress", logger.Fields{
						"error":   err,
						"scan_id": scanID,
					})
				}
				updatePending = false
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("Directory watcher error", logger.Fields{"error": err, "dir": outputDir})

		case <-ctx.Done():
			s.logger.Info("Stopping record monitor", logger.Fields{"dir": outputDir})
			return
		}
	}
}
