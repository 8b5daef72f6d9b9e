package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"webprint/pkg/logger"

	"github.com/sirupsen/logrus"
)

var safeCommand = regexp.MustCompile(`^[a-zA-Z0-9_\-./]+$`)

// SimpleRunner is a basic command runner that executes the fingerprinting
// tool via exec.CommandContext, capturing stdout and stderr for the logs.
type SimpleRunner struct {
	logger *logger.Logger
}

// NewSimpleRunner creates a new SimpleRunner instance
func NewSimpleRunner() *SimpleRunner {
	return &SimpleRunner{
		logger: logger.NewLogger(logrus.InfoLevel),
	}
}

func (r *SimpleRunner) Run(ctx context.Context, command string, args []string) error {
	if err := r.validateCommand(command); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	for i, arg := range args {
		if err := r.validateArgument(arg); err != nil {
			return fmt.Errorf("invalid argument at index %d (%s): %w", i, arg, err)
		}
	}

	r.logger.WithFields(logger.Fields{
		"command": command,
		"args":    args,
	}).Debug("Executing command")

	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if stderr.Len() > 0 {
			r.logger.WithFields(logger.Fields{
				"stderr": stderr.String(),
			}).Error("Command stderr output")
		}

		errorMsg := fmt.Sprintf("execution failed: %v", err)
		if stderr.Len() > 0 {
			errorMsg = fmt.Sprintf("%s\nstderr: %s", errorMsg, stderr.String())
		}
		return fmt.Errorf("%s", errorMsg)
	}

	if stdout.Len() > 0 {
		r.logger.WithFields(logger.Fields{
			"stdout": stdout.String(),
		}).Debug("Command stdout output")
	}

	return nil
}

// validateCommand validates that a command is safe to execute
func (r *SimpleRunner) validateCommand(command string) error {
	if command == "" {
		return fmt.Errorf("command is empty")
	}
	if !safeCommand.MatchString(command) {
		return fmt.Errorf("unsafe characters in command: %s", command)
	}
	return nil
}

// validateArgument validates that a command argument is safe
func (r *SimpleRunner) validateArgument(arg string) error {
	if arg == "" {
		return nil
	}

	// Shell metacharacters that could enable command injection
	dangerous := []string{";", "|", "`", "$", "(", ")", "\n", "\r", "<", ">"}
	for _, char := range dangerous {
		if strings.Contains(arg, char) {
			return fmt.Errorf("argument contains dangerous character: %s", char)
		}
	}

	// '&' separates query parameters in URLs but shell jobs elsewhere
	if strings.Contains(arg, "&") && !strings.Contains(arg, "://") {
		return fmt.Errorf("argument contains dangerous character: &")
	}

	// Allow .. in URLs but not in file paths
	if strings.Contains(arg, "..") && !strings.Contains(arg, "://") {
		return fmt.Errorf("path traversal detected in argument")
	}

	return nil
}
