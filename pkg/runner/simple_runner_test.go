package runner_test

import (
	"context"
	"testing"

	"webprint/pkg/runner"
)

func TestSimpleRunner_Run(t *testing.T) {
	simpleRunner := runner.NewSimpleRunner()

	ctx := context.Background()
	err := simpleRunner.Run(ctx, "echo", []string{"test"})
	if err != nil {
		t.Fatalf("SimpleRunner.Run failed: %v", err)
	}

	// URL arguments pass validation even though they contain dots
	err = simpleRunner.Run(ctx, "echo", []string{"http://example.org/some/../path"})
	if err != nil {
		t.Fatalf("SimpleRunner.Run rejected URL argument: %v", err)
	}

	// Query strings keep their parameter separators
	err = simpleRunner.Run(ctx, "echo", []string{"http://example.org/search?a=1&b=2"})
	if err != nil {
		t.Fatalf("SimpleRunner.Run rejected URL with query string: %v", err)
	}
}

func TestSimpleRunner_Validation(t *testing.T) {
	simpleRunner := runner.NewSimpleRunner()
	ctx := context.Background()

	testCases := []struct {
		name        string
		command     string
		args        []string
		expectError bool
	}{
		{
			name:        "plain command",
			command:     "echo",
			args:        []string{"hello"},
			expectError: false,
		},
		{
			name:        "empty command",
			command:     "",
			args:        nil,
			expectError: true,
		},
		{
			name:        "shell metacharacter in command",
			command:     "echo;rm",
			args:        nil,
			expectError: true,
		},
		{
			name:        "command substitution in argument",
			command:     "echo",
			args:        []string{"$(whoami)"},
			expectError: true,
		},
		{
			name:        "pipe in argument",
			command:     "echo",
			args:        []string{"a|b"},
			expectError: true,
		},
		{
			name:        "ampersand outside a URL",
			command:     "echo",
			args:        []string{"a&b"},
			expectError: true,
		},
		{
			name:        "ampersand in URL query string",
			command:     "echo",
			args:        []string{"https://example.org/?a=1&b=2"},
			expectError: false,
		},
		{
			name:        "path traversal in file argument",
			command:     "echo",
			args:        []string{"../../etc/passwd"},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := simpleRunner.Run(ctx, tc.command, tc.args)

			if tc.expectError && err == nil {
				t.Errorf("Expected error for %s, but got none", tc.name)
			}
			if !tc.expectError && err != nil {
				t.Errorf("Expected success for %s, but got error: %v", tc.name, err)
			}
		})
	}
}

func TestSimpleRunner_ImplementsInterface(t *testing.T) {
	var _ runner.CommandRunner = (*runner.SimpleRunner)(nil)
}
