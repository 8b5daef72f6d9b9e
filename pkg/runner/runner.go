package runner

import "context"

// CommandRunner executes an external command with its arguments. The scan
// driver only depends on this interface so tests can substitute a fake.
type CommandRunner interface {
	Run(ctx context.Context, command string, args []string) error
}
