// Package report converts a directory of per-target fingerprint records
// into a single CSV report of operator-selected plugin fields.
package report

import (
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"webprint/pkg/errors"
	"webprint/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Format identifies the log format the fingerprinting tool was asked to
// emit. Only JSON is implemented; WhatWeb's XML logs are not supported.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

type Aggregator struct {
	logger *logger.Logger
}

type AggregatorOpt func(*Aggregator)

func WithLogger(l *logger.Logger) AggregatorOpt {
	return func(a *Aggregator) {
		a.logger = l
	}
}

func NewAggregator(opts ...AggregatorOpt) *Aggregator {
	a := &Aggregator{
		logger: logger.NewLogger(logrus.InfoLevel),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate reads every scan record in inputFolder, extracts the requested
// plugin fields for each record and writes them as CSV rows to outputFile,
// one row per record plus a header. Records are processed in lexical
// filename order so reruns over the same folder are byte-identical.
//
// The destination is replaced atomically: on any write failure no partial
// report is left behind. Returns the number of records written.
func (a *Aggregator) Aggregate(inputFolder string, format Format, fields []string, outputFile string) (int, error) {
	if len(fields) == 0 {
		return 0, errors.NewInputError("", errors.ErrNoPluginFields)
	}

	if format != FormatJSON {
		return 0, fmt.Errorf("log format %q: %w", string(format), errors.ErrUnsupportedFormat)
	}

	logFiles, err := a.collectLogFiles(inputFolder, format)
	if err != nil {
		return 0, err
	}

	a.logger.WithFields(logger.Fields{
		"input_folder": inputFolder,
		"log_files":    len(logFiles),
		"fields":       fields,
	}).Info("Aggregating scan records")

	rows := make([][]string, 0, len(logFiles))
	for _, logFile := range logFiles {
		record, err := a.parseRecord(logFile)
		if err != nil {
			return 0, err
		}

		row := make([]string, 0, len(fields))
		for _, field := range fields {
			row = append(row, lookupField(record, field).Cell())
		}
		rows = append(rows, row)
	}

	if err := a.writeReport(outputFile, fields, rows); err != nil {
		return 0, err
	}

	a.logger.WithFields(logger.Fields{
		"output_file": outputFile,
		"records":     len(rows),
	}).Info("Report written")

	return len(rows), nil
}

// collectLogFiles enumerates the record files matching the format's
// extension, sorted lexically for deterministic output ordering
func (a *Aggregator) collectLogFiles(inputFolder string, format Format) ([]string, error) {
	info, err := os.Stat(inputFolder)
	if err != nil {
		return nil, errors.NewInputError(inputFolder, err)
	}
	if !info.IsDir() {
		return nil, errors.NewInputError(inputFolder, stderrors.New("not a directory"))
	}

	logFiles, err := filepath.Glob(filepath.Join(inputFolder, "*."+string(format)))
	if err != nil {
		return nil, errors.NewInputError(inputFolder, err)
	}
	if len(logFiles) == 0 {
		return nil, errors.NewInputError(inputFolder, errors.ErrNoLogFiles)
	}

	sort.Strings(logFiles)
	return logFiles, nil
}

// parseRecord decodes one scan record: a JSON object keyed by plugin name
func (a *Aggregator) parseRecord(logFile string) (map[string]interface{}, error) {
	data, err := os.ReadFile(logFile)
	if err != nil {
		return nil, errors.NewParseError(logFile, err)
	}

	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.NewParseError(logFile, err)
	}

	return record, nil
}

// writeReport writes header and rows to a temp file in the destination
// directory and renames it into place, so a failed write never leaves a
// truncated report at the destination path
func (a *Aggregator) writeReport(outputFile string, header []string, rows [][]string) error {
	dir := filepath.Dir(outputFile)
	tmp, err := os.CreateTemp(dir, ".webprint-report-*")
	if err != nil {
		return errors.NewOutputError(outputFile, err)
	}

	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		cleanup()
		return errors.NewOutputError(outputFile, err)
	}
	if err := w.WriteAll(rows); err != nil {
		cleanup()
		return errors.NewOutputError(outputFile, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		cleanup()
		return errors.NewOutputError(outputFile, err)
	}

	// CreateTemp opens the file 0600; the finished report should be
	// readable like a normally created file
	if err := tmp.Chmod(0644); err != nil {
		cleanup()
		return errors.NewOutputError(outputFile, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.NewOutputError(outputFile, err)
	}

	if err := os.Rename(tmp.Name(), outputFile); err != nil {
		os.Remove(tmp.Name())
		return errors.NewOutputError(outputFile, err)
	}

	return nil
}
