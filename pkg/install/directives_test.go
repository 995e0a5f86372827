package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolchain(t *testing.T) {
	tests := []struct {
		input       string
		expected    Toolchain
		expectError bool
	}{
		{"apk", Apk, false},
		{"  Cargo ", Cargo, false},
		{"RUBYGEMS", Rubygems, false},
		{"flatpak", Flatpak, false},
		{"brew", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tc, err := ParseToolchain(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tc)
		})
	}
}

func TestDirectives_AbsentAndEmptyAreDistinct(t *testing.T) {
	d := Directives{}
	d.Request(Cargo)

	assert.True(t, d.Packages(Cargo).Requested())
	assert.Empty(t, d.Packages(Cargo).Names())
	assert.False(t, d.Packages(Apk).Requested())
	assert.Equal(t, "apk add --no-cache cargo", d.Script().String())
}

func TestDirectives_RequestAppends(t *testing.T) {
	d := Directives{}
	d.Request(Git, "repoA")
	d.Request(Git, "repoB")

	assert.Equal(t, []string{"repoA", "repoB"}, d.Packages(Git).Names())
}

func TestDirectives_ScriptUsesCanonicalOrder(t *testing.T) {
	d := Directives{
		Pip:   {"requests"},
		Apk:   {"curl"},
		Cargo: {},
		Git:   {"https://example.com/r.git"},
	}

	expected := "apk update && apk add --no-cache curl" +
		" && apk add --no-cache git && git clone https://example.com/r.git" +
		" && apk add --no-cache cargo" +
		" && apk add --no-cache python3 py3-pip && pip install requests"

	// Map iteration order must not leak into the script.
	for range 10 {
		assert.Equal(t, expected, d.Script().String())
	}
	assert.Equal(t, []Toolchain{Apk, Git, Cargo, Pip}, d.Requested())
}

func TestDirectives_EmptySetBuildsEmptyScript(t *testing.T) {
	assert.True(t, Directives{}.Script().Empty())
	assert.Nil(t, Directives{}.Requested())
}
