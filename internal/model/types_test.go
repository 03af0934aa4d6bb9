package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssignment_String verifies the NAME=VALUE rendering used for
// exec.Cmd.Env entries.
func TestAssignment_String(t *testing.T) {
	tests := []struct {
		assignment Assignment
		expected   string
	}{
		{Assignment{Name: "FOO", Value: "bar"}, "FOO=bar"},
		{Assignment{Name: "EMPTY", Value: ""}, "EMPTY="},
		{Assignment{Name: "URL", Value: "a=b=c"}, "URL=a=b=c"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.assignment.String())
		})
	}
}

func TestEnvironmentModification_IsEmpty(t *testing.T) {
	assert.True(t, EnvironmentModification{}.IsEmpty())
	assert.False(t, EnvironmentModification{ClearEnv: true}.IsEmpty())
	assert.False(t, EnvironmentModification{UnsetVars: []string{"A"}}.IsEmpty())
	assert.False(t, EnvironmentModification{SetVars: []Assignment{{Name: "A"}}}.IsEmpty())
	assert.False(t, EnvironmentModification{EnvFiles: []string{".env"}}.IsEmpty())
}

// TestChildCommandLine splits the program from its arguments.
func TestChildCommandLine(t *testing.T) {
	t.Run("program only", func(t *testing.T) {
		c := ChildCommandLine{"printenv"}
		assert.Equal(t, "printenv", c.Program())
		assert.Empty(t, c.Args())
	})

	t.Run("program with args", func(t *testing.T) {
		c := ChildCommandLine{"echo", "-i", "X=Y"}
		assert.Equal(t, "echo", c.Program())
		assert.Equal(t, []string{"-i", "X=Y"}, c.Args())
	})

	t.Run("empty", func(t *testing.T) {
		var c ChildCommandLine
		assert.Equal(t, "", c.Program())
		assert.Nil(t, c.Args())
	})
}

// TestValidateName covers the rules shared by the classifier and the
// env-file loader.
func TestValidateName(t *testing.T) {
	tests := []struct {
		input    string
		hasError bool
	}{
		{"PATH", false},
		{"lower_case", false},
		{"-weird", false},
		{"", true},
		{"A=B", true},
		{"NUL\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitUsage, "no command provided")
		assert.Equal(t, ExitUsage, err.Code)
		assert.Equal(t, "no command provided", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.False(t, err.Silent())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitCannotInvoke, "cannot run ./script.sh", inner)
		assert.Equal(t, ExitCannotInvoke, err.Code)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitCannotInvoke, "cannot run ./script.sh", inner)
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("silent exit", func(t *testing.T) {
		err := ExitWith(42)
		assert.Equal(t, ExitCode(42), err.Code)
		assert.True(t, err.Silent())
		assert.Equal(t, "exit status 42", err.Error())
	})
}
