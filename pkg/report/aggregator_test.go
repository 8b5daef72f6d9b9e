package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webprint/pkg/errors"
	"webprint/pkg/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecord(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func readReport(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestAggregate_WhatWebScenario(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "exampleorg.json", `{"HTTPServer": "nginx", "IP": ["203.0.113.5"]}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	aggregator := report.NewAggregator()
	records, err := aggregator.Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer", "IP", "X-Powered-By"}, outputFile)

	require.NoError(t, err)
	assert.Equal(t, 1, records)
	assert.Equal(t, "HTTPServer,IP,X-Powered-By\nnginx,203.0.113.5,\n", readReport(t, outputFile))
}

func TestAggregate_RowAndColumnCounts(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "a.json", `{"HTTPServer": "nginx"}`)
	writeRecord(t, inputDir, "b.json", `{"IP": "203.0.113.7"}`)
	writeRecord(t, inputDir, "c.json", `{}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	records, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer", "IP"}, outputFile)
	require.NoError(t, err)
	assert.Equal(t, 3, records)

	lines := strings.Split(strings.TrimRight(readReport(t, outputFile), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 2, len(strings.Split(line, ",")), "every row keeps the header's column count: %q", line)
	}
}

func TestAggregate_RecordsSortedByFilename(t *testing.T) {
	inputDir := t.TempDir()
	// Written out of order on purpose
	writeRecord(t, inputDir, "zebraorg.json", `{"HTTPServer": "zebra-server"}`)
	writeRecord(t, inputDir, "alphaorg.json", `{"HTTPServer": "alpha-server"}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer"}, outputFile)
	require.NoError(t, err)

	assert.Equal(t, "HTTPServer\nalpha-server\nzebra-server\n", readReport(t, outputFile))
}

func TestAggregate_ListValuesJoined(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "multihomed.json", `{"IP": ["203.0.113.5", "203.0.113.6", "198.51.100.1"]}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"IP"}, outputFile)
	require.NoError(t, err)

	assert.Equal(t, "IP\n203.0.113.5; 203.0.113.6; 198.51.100.1\n", readReport(t, outputFile))
}

func TestAggregate_Idempotent(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "one.json", `{"HTTPServer": "nginx", "HTTPStatus": 200}`)
	writeRecord(t, inputDir, "two.json", `{"HTTPServer": "apache", "X-Powered-By": ["PHP/8.2", "WordPress"]}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")
	fields := []string{"HTTPServer", "HTTPStatus", "X-Powered-By"}

	aggregator := report.NewAggregator()
	_, err := aggregator.Aggregate(inputDir, report.FormatJSON, fields, outputFile)
	require.NoError(t, err)
	first := readReport(t, outputFile)

	_, err = aggregator.Aggregate(inputDir, report.FormatJSON, fields, outputFile)
	require.NoError(t, err)

	assert.Equal(t, first, readReport(t, outputFile))
}

func TestAggregate_QuotesCellsContainingDelimiters(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "commas.json", `{"Title": "Welcome, friend"}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"Title"}, outputFile)
	require.NoError(t, err)

	assert.Equal(t, "Title\n\"Welcome, friend\"\n", readReport(t, outputFile))
}

func TestAggregate_UnsupportedFormat(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "exampleorg.json", `{"HTTPServer": "nginx"}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	for _, format := range []report.Format{report.FormatXML, report.Format("yaml"), report.Format("")} {
		_, err := report.NewAggregator().Aggregate(inputDir, format, []string{"HTTPServer"}, outputFile)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)

		_, statErr := os.Stat(outputFile)
		assert.True(t, os.IsNotExist(statErr), "no output file may be created for format %q", format)
	}
}

func TestAggregate_EmptyFieldList(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "exampleorg.json", `{"HTTPServer": "nginx"}`)

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		nil, filepath.Join(t.TempDir(), "report.csv"))

	var inputErr *errors.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, errors.ErrNoPluginFields)
}

func TestAggregate_MissingInputFolder(t *testing.T) {
	_, err := report.NewAggregator().Aggregate(filepath.Join(t.TempDir(), "does-not-exist"),
		report.FormatJSON, []string{"HTTPServer"}, filepath.Join(t.TempDir(), "report.csv"))

	var inputErr *errors.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestAggregate_NoLogFiles(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "notes.txt", "not a scan record")

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer"}, filepath.Join(t.TempDir(), "report.csv"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoLogFiles)
}

func TestAggregate_MalformedRecordAbortsRun(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "good.json", `{"HTTPServer": "nginx"}`)
	writeRecord(t, inputDir, "mangled.json", `ERROR: SSL_connect returned=1`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer"}, outputFile)

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.File, "mangled.json")

	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr), "no partial report may be left behind")
}

func TestAggregate_OutputErrorLeavesNoPartialFile(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "exampleorg.json", `{"HTTPServer": "nginx"}`)

	outputFile := filepath.Join(t.TempDir(), "missing-subdir", "report.csv")

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer"}, outputFile)

	var outputErr *errors.OutputError
	require.ErrorAs(t, err, &outputErr)
	assert.Equal(t, outputFile, outputErr.Path)

	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAggregate_ReportHasRegularFilePermissions(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "exampleorg.json", `{"HTTPServer": "nginx"}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer"}, outputFile)
	require.NoError(t, err)

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestAggregate_OverwritesExistingReport(t *testing.T) {
	inputDir := t.TempDir()
	writeRecord(t, inputDir, "exampleorg.json", `{"HTTPServer": "nginx"}`)

	outputFile := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(outputFile, []byte("stale content from a previous run\n"), 0644))

	_, err := report.NewAggregator().Aggregate(inputDir, report.FormatJSON,
		[]string{"HTTPServer"}, outputFile)
	require.NoError(t, err)

	assert.Equal(t, "HTTPServer\nnginx\n", readReport(t, outputFile))
}
