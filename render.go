package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// moduleRecord ties a generated page back to its module identifier. Records
// live for one run only and are consumed by the index builder.
type moduleRecord struct {
	module string
	file   string
}

// hasSubstance reports whether the file has at least minLines lines that are
// neither blank nor full-line comments. Unreadable files fail the check, so a
// read error silently suppresses the page.
func hasSubstance(path string, minLines int) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}
		if count++; count >= minLines {
			return true
		}
	}
	return false
}

// renderPage emits the stub page for one module: an H1 with the module
// identifier and the mkdocstrings directive that inlines the module's
// documentation when the site is rendered.
func renderPage(w io.Writer, module string) {
	fmt.Fprintf(w, "# %s\n\n", module)
	fmt.Fprintf(w, "::: %s\n", module)
	fmt.Fprintln(w, "    options:")
	fmt.Fprintln(w, "      show_root_heading: true")
	fmt.Fprintln(w, "      show_source: true")
	fmt.Fprintln(w, "      heading_level: 2")
	fmt.Fprintln(w, "      members_order: source")
}

func writePage(path, module string) error {
	var buf bytes.Buffer
	renderPage(&buf, module)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// groupKey picks the index group for a module: the second dotted segment when
// one exists, otherwise the fallback group. Odd-shaped identifiers land in
// the fallback group without diagnostics.
func groupKey(module string) string {
	segments := strings.Split(module, ".")
	if len(segments) >= 2 {
		return segments[1]
	}
	return fallbackGroup
}

// renderIndex emits the grouped module listing. Records must already be
// sorted by module identifier; group order follows ascending key order so the
// output is stable across runs.
func renderIndex(w io.Writer, records []moduleRecord, title, intro string) {
	fmt.Fprintf(w, "# %s\n\n", title)
	fmt.Fprintf(w, "%s\n\n", intro)

	groups := make(map[string][]moduleRecord)
	for _, rec := range records {
		key := groupKey(rec.module)
		groups[key] = append(groups[key], rec)
	}
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	caser := cases.Title(language.English)
	for _, key := range keys {
		fmt.Fprintf(w, "### %s\n\n", caser.String(key))
		for _, rec := range groups[key] {
			fmt.Fprintf(w, "- [%s](%s)\n", rec.module, rec.file)
		}
		fmt.Fprintln(w)
	}
}

func writeIndex(path string, records []moduleRecord, title, intro string) error {
	var buf bytes.Buffer
	renderIndex(&buf, records, title, intro)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
