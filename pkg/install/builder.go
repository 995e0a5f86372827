// Package install turns toolchain directives into the shell script that prepares a
// oneshot container before the user's shell or command runs.
//
// Package names and repository URLs are interpolated into the script verbatim. Callers
// that accept untrusted input should run it through internal/scriptcheck first.
package install

import (
	"fmt"
	"strings"
)

// statementSeparator short-circuits the script on the first failing statement.
const statementSeparator = " && "

// Packages is an optional list of packages or repositories for one toolchain.
// The zero value means the toolchain was not requested at all.
type Packages struct {
	names     []string
	requested bool
}

// None returns a Packages value that leaves the toolchain out of the script.
func None() Packages {
	return Packages{}
}

// With requests a toolchain. Calling it without names installs only the manager.
func With(names ...string) Packages {
	return Packages{names: append([]string{}, names...), requested: true}
}

// Requested reports whether the toolchain should be touched.
func (p Packages) Requested() bool {
	return p.requested
}

// Names returns a copy of the requested names in input order.
func (p Packages) Names() []string {
	return append([]string(nil), p.names...)
}

// Command is a built install script. The zero value is an empty script.
type Command struct {
	script string
}

// String returns the joined statements.
func (c Command) String() string {
	return c.script
}

// Empty reports whether the script has no statements.
func (c Command) Empty() bool {
	return c.script == ""
}

// Then appends a trailing command so the result is a valid shell line.
func (c Command) Then(trailing string) string {
	if c.script == "" {
		return trailing
	}
	return c.script + statementSeparator + trailing
}

// Builder accumulates install statements in call order.
type Builder struct {
	statements []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) push(statements ...string) {
	b.statements = append(b.statements, statements...)
}

// pushJoined appends one statement installing every name, if there are any.
func (b *Builder) pushJoined(prefix string, names []string) {
	if len(names) == 0 {
		return
	}
	b.push(prefix + " " + strings.Join(names, " "))
}

// WithApk refreshes the apk index and installs packages with apk.
func (b *Builder) WithApk(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push("apk update")
	b.pushJoined("apk add --no-cache", pkgs.names)
	return b
}

// WithCargo installs cargo and then crates with cargo install.
func (b *Builder) WithCargo(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push("apk add --no-cache cargo")
	b.pushJoined("cargo install", pkgs.names)
	return b
}

// WithUv creates a virtualenv at /app/venv, installs uv into it and then the packages.
// The venv is deactivated and activated again afterwards.
func (b *Builder) WithUv(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push(
		"apk add --no-cache python3 py3-pip",
		"python3 -m venv /app/venv",
		". /app/venv/bin/activate",
		"pip install uv",
	)
	b.pushJoined("uv pip install", pkgs.names)
	// Redundant re-activation; kept so generated scripts stay byte-compatible.
	b.push("deactivate", ". /app/venv/bin/activate")
	return b
}

// WithBun installs bun through its install script and puts it on PATH.
func (b *Builder) WithBun(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push(
		"apk add --no-cache curl bash",
		"curl -fsSL https://bun.sh/install | bash",
		"export PATH=/root/.bun/bin:$PATH",
	)
	b.pushJoined("bun install", pkgs.names)
	return b
}

// WithGit installs git and clones each repository with its own statement.
func (b *Builder) WithGit(repos Packages) *Builder {
	if !repos.requested {
		return b
	}
	b.push("apk add --no-cache git")
	for _, repo := range repos.names {
		b.push(fmt.Sprintf("git clone %s", repo))
	}
	return b
}

// WithRubygems installs ruby and then gems.
func (b *Builder) WithRubygems(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push("apk add --no-cache ruby")
	b.pushJoined("gem install", pkgs.names)
	return b
}

// WithNpm installs node and npm and then global npm packages.
func (b *Builder) WithNpm(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push("apk add --no-cache nodejs npm")
	b.pushJoined("npm install -g", pkgs.names)
	return b
}

// WithPip installs python3 and pip and then packages into the system interpreter.
func (b *Builder) WithPip(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push("apk add --no-cache python3 py3-pip")
	b.pushJoined("pip install", pkgs.names)
	return b
}

// WithFlatpak installs flatpak, registers flathub and installs each package separately.
func (b *Builder) WithFlatpak(pkgs Packages) *Builder {
	if !pkgs.requested {
		return b
	}
	b.push(
		"apk add --no-cache flatpak",
		"flatpak remote-add --if-not-exists flathub https://flathub.org/repo/flathub.flatpakrepo",
	)
	for _, pkg := range pkgs.names {
		b.push(fmt.Sprintf("flatpak install -y flathub %s", pkg))
	}
	return b
}

// Build joins the accumulated statements and resets the builder.
func (b *Builder) Build() Command {
	cmd := Command{script: strings.Join(b.statements, statementSeparator)}
	b.statements = nil
	return cmd
}
