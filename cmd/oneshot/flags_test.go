package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oneshot/internal/config"
	"oneshot/pkg/install"
)

func TestPackageList_Set(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{name: "bare flag", values: []string{bareFlag}, expected: nil},
		{name: "single value", values: []string{"ripgrep"}, expected: []string{"ripgrep"}},
		{name: "comma separated", values: []string{"ripgrep,fd-find"}, expected: []string{"ripgrep", "fd-find"}},
		{name: "repeated", values: []string{"ripgrep", "bat"}, expected: []string{"ripgrep", "bat"}},
		{name: "blank entries dropped", values: []string{"a,, b ,"}, expected: []string{"a", "b"}},
		{name: "duplicates kept", values: []string{"a", "a"}, expected: []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list packageList
			for _, v := range tt.values {
				require.NoError(t, list.Set(v))
			}
			assert.True(t, list.set)
			assert.Equal(t, tt.expected, list.names)
		})
	}
}

func TestPackageList_Unset(t *testing.T) {
	var list packageList
	assert.False(t, list.set)
	assert.Equal(t, "", list.String())
	assert.Equal(t, "packages", list.Type())
}

func parseSessionFlags(t *testing.T, args ...string) (*sessionFlags, *cobra.Command) {
	t.Helper()
	var flags sessionFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return &flags, cmd
}

func TestSessionFlags_Directives(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected install.Directives
	}{
		{
			name:     "nothing requested",
			args:     nil,
			expected: install.Directives{},
		},
		{
			name:     "bare toolchain flag requests bootstrap only",
			args:     []string{"--from-cargo"},
			expected: install.Directives{install.Cargo: {}},
		},
		{
			name: "values and repeats",
			args: []string{"--from-apk", "curl,jq", "--from-apk=git", "--from-uv=numpy", "--from-uv=pandas"},
			expected: install.Directives{
				install.Apk: {"curl", "jq", "git"},
				install.Uv:  {"numpy", "pandas"},
			},
		},
		{
			name: "every toolchain",
			args: []string{
				"--from-apk=a", "--from-git=https://example.com/r.git", "--from-cargo", "--from-uv",
				"--from-bun", "--from-npm=typescript", "--from-pip", "--from-rubygems=rails", "--from-flatpak",
			},
			expected: install.Directives{
				install.Apk:      {"a"},
				install.Git:      {"https://example.com/r.git"},
				install.Cargo:    {},
				install.Uv:       {},
				install.Bun:      {},
				install.Npm:      {"typescript"},
				install.Pip:      {},
				install.Rubygems: {"rails"},
				install.Flatpak:  {},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, _ := parseSessionFlags(t, tt.args...)
			assert.Equal(t, tt.expected, flags.directives())
		})
	}
}

func TestSessionFlags_ApkRequiresValue(t *testing.T) {
	var flags sessionFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)

	err := cmd.ParseFlags([]string{"--from-apk"})
	assert.ErrorContains(t, err, "flag needs an argument")
}

func TestSessionFlags_Options(t *testing.T) {
	settings := &config.Settings{
		Image:        "rust",
		OutputDir:    "/srv/out",
		Capabilities: []string{"NET_RAW"},
		Runtime:      config.RuntimeSettings{Name: "podman", Binary: "/usr/bin/podman"},
		Images:       []config.ImageEntry{{Name: "go", URL: "docker.io/library/golang:alpine", Tags: "golang"}},
	}

	t.Run("config values apply without flags", func(t *testing.T) {
		flags, cmd := parseSessionFlags(t)
		opts, err := flags.options(cmd, settings)
		require.NoError(t, err)

		assert.Equal(t, "rust", opts.Image)
		assert.Equal(t, "/srv/out", opts.OutputDir)
		assert.Equal(t, []string{"NET_RAW"}, opts.Capabilities)
		assert.Equal(t, "podman", opts.Runtime)
		assert.Equal(t, "/usr/bin/podman", opts.Binary)

		img, ok := opts.Catalog.Lookup("golang")
		require.True(t, ok)
		assert.Equal(t, "go", img.Name)
	})

	t.Run("explicit flags override config", func(t *testing.T) {
		flags, cmd := parseSessionFlags(t, "-i", "bun", "-o", "/tmp/x", "-c", "net-admin,net-raw")
		opts, err := flags.options(cmd, settings)
		require.NoError(t, err)

		assert.Equal(t, "bun", opts.Image)
		assert.Equal(t, "/tmp/x", opts.OutputDir)
		assert.Equal(t, []string{"net-admin", "net-raw"}, opts.Capabilities)
	})

	t.Run("explicitly empty image flag overrides config", func(t *testing.T) {
		flags, cmd := parseSessionFlags(t, "--image=")
		opts, err := flags.options(cmd, settings)
		require.NoError(t, err)
		assert.Equal(t, "", opts.Image)
	})

	t.Run("invalid catalog entry", func(t *testing.T) {
		bad := *settings
		bad.Images = []config.ImageEntry{{Name: "x", URL: "Not Valid"}}

		flags, cmd := parseSessionFlags(t)
		_, err := flags.options(cmd, &bad)
		assert.ErrorContains(t, err, "invalid image reference")
	})
}

func TestExpandToolchainArgs(t *testing.T) {
	root := newRootCmd(&cli{})

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "space separated values",
			args:     []string{"shell", "--from-uv", "numpy", "pandas"},
			expected: []string{"shell", "--from-uv=numpy", "--from-uv=pandas"},
		},
		{
			name:     "stops at the next flag",
			args:     []string{"run", "--from-npm", "typescript", "-s", "tsc"},
			expected: []string{"run", "--from-npm=typescript", "-s", "tsc"},
		},
		{
			name:     "bare flag stays bare",
			args:     []string{"run", "--from-cargo", "-i", "rust"},
			expected: []string{"run", "--from-cargo", "-i", "rust"},
		},
		{
			name:     "inline values untouched",
			args:     []string{"shell", "--from-apk=curl", "--from-git=https://example.com/r.git"},
			expected: []string{"shell", "--from-apk=curl", "--from-git=https://example.com/r.git"},
		},
		{
			name:     "values of other flags are skipped",
			args:     []string{"run", "-s", "--from-uv", "--image", "--from-pip"},
			expected: []string{"run", "-s", "--from-uv", "--image", "--from-pip"},
		},
		{
			name:     "combined shorthands",
			args:     []string{"-v", "run", "-vs", "--from-uv", "--from-pip", "requests"},
			expected: []string{"-v", "run", "-vs", "--from-uv", "--from-pip=requests"},
		},
		{
			name:     "persistent flag value before the command",
			args:     []string{"--config", "oneshot.yaml", "shell", "--from-rubygems", "rails"},
			expected: []string{"--config", "oneshot.yaml", "shell", "--from-rubygems=rails"},
		},
		{
			name:     "after double dash",
			args:     []string{"shell", "--", "--from-uv", "numpy"},
			expected: []string{"shell", "--", "--from-uv", "numpy"},
		},
		{
			name:     "unknown toolchain untouched",
			args:     []string{"shell", "--from-brew", "jq"},
			expected: []string{"shell", "--from-brew", "jq"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandToolchainArgs(root, tt.args))
		})
	}
}
