// Package scanner drives the external fingerprinting tool across a target
// list, producing one JSON scan record per target in the output directory.
package scanner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"webprint/pkg/errors"
	"webprint/pkg/logger"
	"webprint/pkg/runner"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Summary describes one finished scan batch
type Summary struct {
	Total     int
	Failed    int
	OutputDir string
}

type DriverOpts struct {
	tool      ToolConfig
	runner    runner.CommandRunner
	outputDir string
	progress  bool
	postHooks []string
	logger    *logger.Logger
}

type OptFunc func(*DriverOpts)

// Driver runs the fingerprinting tool once per target, strictly
// sequentially. Failed invocations are logged and counted but do not stop
// the batch; the tool leaves its own error payload in the target's record
// file and the aggregator parses those uniformly.
type Driver struct {
	DriverOpts
	seenNames map[string]string
}

func NewDriver(opts ...OptFunc) (*Driver, error) {
	o := DriverOpts{
		runner:    runner.NewSimpleRunner(),
		outputDir: "./scans",
		logger:    logger.NewLogger(logrus.InfoLevel),
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.tool.Command == "" {
		return nil, errors.ErrToolNotConfigured
	}

	return &Driver{
		DriverOpts: o,
		seenNames:  make(map[string]string),
	}, nil
}

func WithTool(tool ToolConfig) OptFunc {
	return func(o *DriverOpts) {
		o.tool = tool
	}
}

func WithRunner(r runner.CommandRunner) OptFunc {
	return func(o *DriverOpts) {
		o.runner = r
	}
}

func WithOutputDir(dir string) OptFunc {
	return func(o *DriverOpts) {
		o.outputDir = dir
	}
}

func WithProgress(enabled bool) OptFunc {
	return func(o *DriverOpts) {
		o.progress = enabled
	}
}

func WithPostHooks(names []string) OptFunc {
	return func(o *DriverOpts) {
		o.postHooks = names
	}
}

func WithLogger(l *logger.Logger) OptFunc {
	return func(o *DriverOpts) {
		o.logger = l
	}
}

// Run scans every target listed in targetsFile. Blank lines and lines
// starting with '#' are skipped.
func (d *Driver) Run(ctx context.Context, targetsFile string) (*Summary, error) {
	targets, err := d.readTargets(targetsFile)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, errors.NewInputError(targetsFile, fmt.Errorf("no targets found"))
	}

	if err := os.MkdirAll(d.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", d.outputDir, err)
	}

	d.logger.WithFields(logger.Fields{
		"targets":    len(targets),
		"output_dir": d.outputDir,
		"tool":       d.tool.Command,
	}).Info("Starting scan batch")

	var bar *progressbar.ProgressBar
	if d.progress {
		bar = progressbar.Default(int64(len(targets)), "scanning")
	}

	summary := &Summary{Total: len(targets), OutputDir: d.outputDir}

	for _, target := range targets {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if err := d.scanTarget(ctx, target); err != nil {
			summary.Failed++
			d.logger.WithFields(logger.Fields{
				"target": target,
			}).WithError(err).Error("Target scan failed, continuing with next target")
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	d.logger.WithFields(logger.Fields{
		"total":  summary.Total,
		"failed": summary.Failed,
	}).Info("Scan batch finished")

	if err := d.runPostHooks(ctx, summary); err != nil {
		return summary, err
	}

	return summary, nil
}

func (d *Driver) scanTarget(ctx context.Context, target string) error {
	stem := TargetFilename(target)
	if prev, collided := d.seenNames[stem]; collided && prev != target {
		d.logger.WithFields(logger.Fields{
			"target":   target,
			"previous": prev,
			"filename": stem + ".json",
		}).Warn("Record filename collision, earlier target's record will be overwritten")
	}
	d.seenNames[stem] = target

	outputFile := filepath.Join(d.outputDir, stem+".json")

	args, err := d.tool.BuildArgs(&TargetOptions{
		Target:     target,
		OutputFile: outputFile,
	})
	if err != nil {
		return errors.NewToolError(target, fmt.Errorf("failed to build arguments: %w", err))
	}

	d.logger.WithTarget(target, outputFile).Debug("Executing fingerprint command")

	if err := d.runner.Run(ctx, d.tool.Command, args); err != nil {
		return errors.NewToolError(target, err)
	}

	return nil
}

func (d *Driver) readTargets(targetsFile string) ([]string, error) {
	file, err := os.Open(targetsFile)
	if err != nil {
		return nil, errors.NewInputError(targetsFile, err)
	}
	defer file.Close()

	var targets []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.NewInputError(targetsFile, err)
	}

	return targets, nil
}

func (d *Driver) runPostHooks(ctx context.Context, summary *Summary) error {
	for _, name := range d.postHooks {
		hook := GetPostHook(name)
		if hook == nil {
			d.logger.WithFields(logger.Fields{
				"hook_name": name,
			}).Warn("Post hook not found, skipping")
			continue
		}

		hookCtx := HookContext{
			Ctx:       ctx,
			OutputDir: d.outputDir,
			Summary:   summary,
		}

		if err := hook.PostHook(hookCtx); err != nil {
			d.logger.WithFields(logger.Fields{
				"hook_name": name,
			}).WithError(err).Error("Post hook failed")
			return fmt.Errorf("post hook %s failed: %w", name, err)
		}

		d.logger.WithFields(logger.Fields{
			"hook_name": name,
		}).Info("Post hook completed successfully")
	}
	return nil
}
