// Package tmpl renders user-supplied Go templates for command output.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// shellQuote returns a shell-safe quoted string. It wraps the string in single
// quotes and escapes any existing single quotes using the '\'' technique.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

var funcs = template.FuncMap{
	"shq":   shellQuote,
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"check": checkbox,
}

// Template is a parsed template that can be executed repeatedly.
type Template struct {
	t *template.Template
}

// Parse compiles text. Keys missing from the data are an error at execution.
//
// Available template functions:
//   - shq: Shell-quote a string
//   - join: Join string slice with separator (e.g., join .Args " ")
//   - upper, lower: Change case
//   - check: Render a bool as "[x]" or "[ ]"
func Parse(text string) (*Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{t: t}, nil
}

// Execute renders the template with data.
func (t *Template) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Render parses and executes tmpl in one step.
func Render(tmpl string, data any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
