// Package scriptcheck inspects install directives before they are interpolated into
// the container's install script. It only reports findings; nothing is rejected.
package scriptcheck

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"mvdan.cc/sh/v3/syntax"

	"oneshot/pkg/install"
)

// Finding describes one directive value that may not behave as a plain argument.
type Finding struct {
	Toolchain install.Toolchain
	Value     string
	Reason    string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %q: %s", f.Toolchain, f.Value, f.Reason)
}

// Check reports values that the shell would not treat as one literal word, and git
// repositories that point at the host filesystem, which the container cannot see.
func Check(d install.Directives) []Finding {
	var findings []Finding
	for _, tc := range d.Requested() {
		for _, value := range d.Packages(tc).Names() {
			if reason := wordProblem(value); reason != "" {
				findings = append(findings, Finding{Toolchain: tc, Value: value, Reason: reason})
				continue
			}
			if tc == install.Git {
				if reason := repositoryProblem(value); reason != "" {
					findings = append(findings, Finding{Toolchain: tc, Value: value, Reason: reason})
				}
			}
		}
	}
	return findings
}

// Parse reports whether the script is syntactically valid POSIX shell.
func Parse(script string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	if _, err := parser.Parse(strings.NewReader(script), "install"); err != nil {
		return fmt.Errorf("install script does not parse: %w", err)
	}
	return nil
}

func wordProblem(value string) string {
	if strings.TrimSpace(value) == "" {
		return "empty value"
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	file, err := parser.Parse(strings.NewReader("x "+value), "")
	if err != nil {
		return "not valid shell: " + err.Error()
	}
	if len(file.Stmts) != 1 {
		return "contains a statement separator"
	}
	stmt := file.Stmts[0]
	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok || stmt.Background || len(stmt.Redirs) > 0 {
		return "contains shell control syntax"
	}
	if len(call.Args) != 2 {
		return "splits into multiple words"
	}
	if lit := call.Args[1].Lit(); lit != value {
		return "contains quoting or expansions"
	}
	return ""
}

func repositoryProblem(repo string) string {
	endpoint, err := transport.NewEndpoint(repo)
	if err != nil {
		return "not a git endpoint: " + err.Error()
	}
	if endpoint.Protocol == "file" {
		return "resolves to a local path that does not exist inside the container"
	}
	return ""
}
