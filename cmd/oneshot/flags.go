package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"oneshot/internal/app"
	"oneshot/internal/config"
	errs "oneshot/internal/errors"
	"oneshot/pkg/install"
)

// bareFlag is the value pflag assigns when a toolchain flag is given without "=".
const bareFlag = " "

// packageList collects package names from comma-separated or repeated flag values and
// remembers whether the flag was given at all.
type packageList struct {
	names []string
	set   bool
}

func (p *packageList) String() string {
	return strings.Join(p.names, ",")
}

func (p *packageList) Set(value string) error {
	p.set = true
	if value == bareFlag {
		return nil
	}
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			p.names = append(p.names, name)
		}
	}
	return nil
}

func (p *packageList) Type() string {
	return "packages"
}

// expandToolchainArgs rewrites "--from-uv numpy pandas" into repeated "--from-uv=numpy"
// arguments. A toolchain flag consumes the following arguments up to the next one that
// starts with "-"; when none follow it stays bare. Values of other flags and everything
// after "--" are left alone.
func expandToolchainArgs(root *cobra.Command, args []string) []string {
	long, short := valueFlags(root)

	out := make([]string, 0, len(args))
	seenCommand := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case seenCommand && isToolchainFlag(arg):
			n := 0
			for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				n++
				out = append(out, arg+"="+args[i])
			}
			if n == 0 {
				out = append(out, arg)
			}
			continue
		}

		out = append(out, arg)
		if takesNextArg(arg, long, short) && i+1 < len(args) {
			i++
			out = append(out, args[i])
		} else if !strings.HasPrefix(arg, "-") {
			seenCommand = true
		}
	}
	return out
}

// isToolchainFlag reports whether arg is a toolchain flag without an inline value.
func isToolchainFlag(arg string) bool {
	name, ok := strings.CutPrefix(arg, "--from-")
	if !ok {
		return false
	}
	tc, err := install.ParseToolchain(name)
	return err == nil && string(tc) == name
}

// valueFlags collects the long names and shorthands of flags that read their value from
// the next argument.
func valueFlags(root *cobra.Command) (map[string]bool, map[byte]bool) {
	long := map[string]bool{}
	short := map[byte]bool{}
	collect := func(f *pflag.Flag) {
		if f.NoOptDefVal != "" || f.Value.Type() == "bool" {
			return
		}
		long[f.Name] = true
		if f.Shorthand != "" {
			short[f.Shorthand[0]] = true
		}
	}

	cmds := []*cobra.Command{root}
	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = append(cmds[1:], cmd.Commands()...)
		cmd.PersistentFlags().VisitAll(collect)
		cmd.Flags().VisitAll(collect)
	}
	return long, short
}

func takesNextArg(arg string, long map[string]bool, short map[byte]bool) bool {
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		return !strings.Contains(name, "=") && long[name]
	}
	shorthands, ok := strings.CutPrefix(arg, "-")
	if !ok {
		return false
	}
	// In "-vs" the last shorthand may take the next argument; an earlier one that takes
	// a value reads the rest of the argument instead.
	for i := 0; i < len(shorthands); i++ {
		if short[shorthands[i]] {
			return i == len(shorthands)-1
		}
	}
	return false
}

var toolchainUsage = map[install.Toolchain]string{
	install.Apk:      "install packages with apk",
	install.Git:      "clone git repositories; without a value only git is installed",
	install.Cargo:    "install crates with cargo; without a value only cargo is installed",
	install.Uv:       "install packages with uv in /app/venv; without a value only uv is installed",
	install.Bun:      "install packages with bun; without a value only bun is installed",
	install.Npm:      "install global npm packages; without a value only node and npm are installed",
	install.Pip:      "install packages with pip; without a value only python3 and pip are installed",
	install.Rubygems: "install gems; without a value only ruby is installed",
	install.Flatpak:  "install flathub applications; without a value only flatpak is installed",
}

// sessionFlags are shared by the run and shell commands.
type sessionFlags struct {
	image        string
	outputDir    string
	capabilities []string
	toolchains   map[install.Toolchain]*packageList
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.image, "image", "i", "", "container image, or @alias from 'oneshot images' (default from config, else alpine:latest)")
	flags.StringVarP(&f.outputDir, "output-dir", "o", "", "host directory mounted at /OUTPUT (default is the current directory)")
	flags.StringSliceVarP(&f.capabilities, "cap-add", "c", nil, "add a container capability: net-raw, net-admin")

	f.toolchains = make(map[install.Toolchain]*packageList, len(install.Toolchains))
	for _, tc := range install.Toolchains {
		list := &packageList{}
		f.toolchains[tc] = list
		name := "from-" + string(tc)
		flags.Var(list, name, toolchainUsage[tc])
		if tc != install.Apk {
			flags.Lookup(name).NoOptDefVal = bareFlag
		}
	}
}

// directives returns the toolchains that were named on the command line.
func (f *sessionFlags) directives() install.Directives {
	d := install.Directives{}
	for _, tc := range install.Toolchains {
		if list := f.toolchains[tc]; list != nil && list.set {
			d.Request(tc, list.names...)
		}
	}
	return d
}

// options merges flags over config settings. Flags win only when given explicitly.
func (f *sessionFlags) options(cmd *cobra.Command, settings *config.Settings) (app.Options, error) {
	c, err := settings.Catalog()
	if err != nil {
		return app.Options{}, errs.NewConfigError(
			"Image catalog in the config file is invalid",
			err.Error(),
			"Fix the images section of "+settings.Source,
			err,
		)
	}

	opts := app.Options{
		Image:        settings.Image,
		OutputDir:    settings.OutputDir,
		Capabilities: settings.Capabilities,
		Directives:   f.directives(),
		Runtime:      settings.Runtime.Name,
		Binary:       settings.Runtime.Binary,
		Catalog:      c,
	}

	flags := cmd.Flags()
	if flags.Changed("image") {
		opts.Image = f.image
	}
	if flags.Changed("output-dir") {
		opts.OutputDir = f.outputDir
	}
	if flags.Changed("cap-add") {
		opts.Capabilities = f.capabilities
	}

	return opts, nil
}
