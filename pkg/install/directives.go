package install

import (
	"fmt"
	"strings"
)

// Toolchain identifies a package ecosystem that can be enabled in the container.
type Toolchain string

const (
	Apk      Toolchain = "apk"
	Git      Toolchain = "git"
	Cargo    Toolchain = "cargo"
	Uv       Toolchain = "uv"
	Bun      Toolchain = "bun"
	Npm      Toolchain = "npm"
	Pip      Toolchain = "pip"
	Rubygems Toolchain = "rubygems"
	Flatpak  Toolchain = "flatpak"
)

// Toolchains lists every toolchain in the order Directives.Script applies them.
var Toolchains = []Toolchain{Apk, Git, Cargo, Uv, Bun, Npm, Pip, Rubygems, Flatpak}

// ParseToolchain maps a toolchain name to its Toolchain.
func ParseToolchain(name string) (Toolchain, error) {
	needle := Toolchain(strings.ToLower(strings.TrimSpace(name)))
	for _, tc := range Toolchains {
		if tc == needle {
			return tc, nil
		}
	}
	return "", fmt.Errorf("unknown toolchain %q", name)
}

// Directives is an install directive set. A key that is present requests the
// toolchain even when its list is empty; a missing key leaves it untouched.
type Directives map[Toolchain][]string

// Request marks a toolchain as requested, appending names to any already present.
func (d Directives) Request(tc Toolchain, names ...string) {
	d[tc] = append(d[tc], names...)
	if d[tc] == nil {
		d[tc] = []string{}
	}
}

// Packages returns the optional package list for a toolchain.
func (d Directives) Packages(tc Toolchain) Packages {
	names, ok := d[tc]
	if !ok {
		return None()
	}
	return With(names...)
}

// Requested returns the requested toolchains in application order.
func (d Directives) Requested() []Toolchain {
	var out []Toolchain
	for _, tc := range Toolchains {
		if _, ok := d[tc]; ok {
			out = append(out, tc)
		}
	}
	return out
}

// Script builds the install command for the whole set in canonical toolchain order.
func (d Directives) Script() Command {
	return NewBuilder().
		WithApk(d.Packages(Apk)).
		WithGit(d.Packages(Git)).
		WithCargo(d.Packages(Cargo)).
		WithUv(d.Packages(Uv)).
		WithBun(d.Packages(Bun)).
		WithNpm(d.Packages(Npm)).
		WithPip(d.Packages(Pip)).
		WithRubygems(d.Packages(Rubygems)).
		WithFlatpak(d.Packages(Flatpak)).
		Build()
}
