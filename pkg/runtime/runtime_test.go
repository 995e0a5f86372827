package runtime

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oneshot/pkg/install"
)

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "NET_RAW", NetRaw.String())
	assert.Equal(t, "NET_ADMIN", NetAdmin.String())
	assert.Equal(t, "Capability(0)", Capability(0).String())
}

func TestParseCapability(t *testing.T) {
	tests := []struct {
		input       string
		expected    Capability
		expectError bool
	}{
		{"NET_RAW", NetRaw, false},
		{"net-raw", NetRaw, false},
		{"Net_Admin", NetAdmin, false},
		{" net-admin ", NetAdmin, false},
		{"SYS_ADMIN", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseCapability(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestParseCapabilities(t *testing.T) {
	caps, err := ParseCapabilities([]string{"net-admin", "NET_RAW"})
	require.NoError(t, err)
	assert.Equal(t, []Capability{NetAdmin, NetRaw}, caps)

	_, err = ParseCapabilities([]string{"net-raw", "bogus"})
	assert.ErrorContains(t, err, "bogus")
}

func TestNewRunRequest_CopiesCapabilities(t *testing.T) {
	caps := []Capability{NetRaw}
	script := install.NewBuilder().WithApk(install.With("git")).Build()

	req := NewRunRequest("alpine:latest", "/tmp/out", caps, script)
	caps[0] = NetAdmin

	assert.Equal(t, "alpine:latest", req.Image())
	assert.Equal(t, "/tmp/out", req.OutputDir())
	assert.Equal(t, []Capability{NetRaw}, req.Capabilities())
	assert.Equal(t, script, req.InstallCommand())

	got := req.Capabilities()
	got[0] = NetAdmin
	assert.Equal(t, []Capability{NetRaw}, req.Capabilities())
}

func TestError_Kinds(t *testing.T) {
	cause := errors.New("exec: \"podman\": executable file not found in $PATH")

	initErr := NewInitError(cause)
	assert.ErrorIs(t, initErr, ErrInit)
	assert.NotErrorIs(t, initErr, ErrExecution)
	assert.ErrorIs(t, initErr, cause)
	assert.Equal(t, cause.Error(), initErr.Cause)

	execErr := fmt.Errorf("shell: %w", NewExecutionError(cause))
	assert.ErrorIs(t, execErr, ErrExecution)
	assert.Contains(t, execErr.Error(), "error while executing")

	var typed *Error
	require.ErrorAs(t, execErr, &typed)
	assert.Equal(t, ErrExecution, typed.Kind)
}
