// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed markdown.md.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("markdown.md.tmpl").ParseFS(tmplFS, "markdown.md.tmpl"))

type markdownRow struct {
	Path        string
	Type        string
	Required    bool
	Constraints string
}

// Markdown renders the property tree of s as a markdown table.
func Markdown(title, format string, s *Schema) ([]byte, error) {
	var rows []markdownRow
	for n := range Walk(s) {
		typ := TypeOf(n.Schema)
		if typ == "" {
			typ = "any"
		}
		rows = append(rows, markdownRow{
			Path:        n.Path,
			Type:        typ,
			Required:    n.Required,
			Constraints: formatConstraints(Constraints(n.Schema)),
		})
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, map[string]any{
		"Title":  title,
		"Format": format,
		"Rows":   rows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func formatConstraints(c []string) string {
	if len(c) == 0 {
		return "-"
	}
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = "`" + strings.ReplaceAll(v, "|", `\|`) + "`"
	}
	return strings.Join(parts, ", ")
}
