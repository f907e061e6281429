package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateTree(t *testing.T) {
	tmp := t.TempDir()
	var buf bytes.Buffer
	if err := run([]string{"-C", ".", "-o", tmp, "./testdata/cacao"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}

	page := readOutput(t, tmp, "core.state.md")
	assertContains(t, page, "# cacao.core.state")
	assertContains(t, page, "::: cacao.core.state")
	assertContains(t, page, "show_root_heading: true")
	assertContains(t, page, "members_order: source")

	root := readOutput(t, tmp, "cacao.md")
	assertContains(t, root, "# cacao")
	assertContains(t, root, "::: cacao")

	readOutput(t, tmp, "ui.components.md")
	readOutput(t, tmp, "utilities.md")

	out := buf.String()
	assertContains(t, out, "generating API reference")
	assertContains(t, out, "core.state.md")
	assertContains(t, out, "done, 4 pages")
}

func TestSkippedModulesProduceNoPages(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"-C", ".", "-o", tmp, "./testdata/cacao"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{
		"core.md",            // initializer with too little substance
		"core.mixins.md",     // comment-only module
		"core.test_state.md", // test_ exclusion
		"ui._internal.md",    // privacy convention
		"__pycache__.state.md",
		"templates.page.md",
	} {
		if _, err := os.Stat(filepath.Join(tmp, name)); err == nil {
			t.Fatalf("expected no page %s", name)
		}
	}
}

func TestIndexGroupsAndOrder(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"-C", ".", "-o", tmp, "./testdata/cacao"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	index := readOutput(t, tmp, "modules.md")
	assertContains(t, index, "# API Reference")
	assertContains(t, index, "### Core")
	assertContains(t, index, "### Main")
	assertContains(t, index, "### Ui")
	assertContains(t, index, "### Utilities")
	assertContains(t, index, "[cacao.core.state](core.state.md)")
	assertContains(t, index, "[cacao](cacao.md)")
	assertContains(t, index, "[cacao.ui.components](ui.components.md)")
	assertOrdered(t, index, "### Core", "### Main", "### Ui", "### Utilities")
}

func TestEmptyTreeWritesNoIndex(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "thin.py"), "# marker\nVERSION = 1\n")
	out := t.TempDir()
	var buf bytes.Buffer
	if err := run([]string{"-C", ".", "-o", out, src}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "modules.md")); err == nil {
		t.Fatalf("expected no index for an empty result")
	}
	assertContains(t, buf.String(), "done, 0 pages")
}

func TestCheckoutPathDoesNotExcludeModules(t *testing.T) {
	proj := filepath.Join(t.TempDir(), "test_projects", "demo")
	writeFile(t, filepath.Join(proj, "cacao", "state.py"), "\"\"\"State.\"\"\"\na = 1\nb = 2\nc = 3\n")
	out := t.TempDir()
	var buf bytes.Buffer
	if err := run([]string{"-C", proj, "-o", out}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	readOutput(t, out, "state.md")
	readOutput(t, out, "modules.md")
	assertContains(t, buf.String(), "done, 1 pages")
}

func TestGenerationIsIdempotent(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	for _, out := range []string{first, second} {
		if err := run([]string{"-C", ".", "-o", out, "./testdata/cacao"}, io.Discard); err != nil {
			t.Fatalf("run: %v", err)
		}
	}
	entries, err := os.ReadDir(first)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected generated files")
	}
	for _, entry := range entries {
		a, err := os.ReadFile(filepath.Join(first, entry.Name()))
		if err != nil {
			t.Fatalf("read first %s: %v", entry.Name(), err)
		}
		b, err := os.ReadFile(filepath.Join(second, entry.Name()))
		if err != nil {
			t.Fatalf("read second %s: %v", entry.Name(), err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("output %s differs between runs", entry.Name())
		}
	}
}

func TestConfigFileDrivesGeneration(t *testing.T) {
	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, configFileName), strings.Join([]string{
		`source = "src"`,
		`output = "ref"`,
		`index_title = "Widget Reference"`,
	}, "\n")+"\n")
	writeFile(t, filepath.Join(proj, "src", "widget.py"), "\"\"\"Widget.\"\"\"\na = 1\nb = 2\nc = 3\n")

	if err := run([]string{"-C", proj}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	index := readOutput(t, filepath.Join(proj, "ref"), "modules.md")
	assertContains(t, index, "# Widget Reference")
	assertContains(t, index, "[src.widget](widget.md)")
}

func TestProjectRootDiscovery(t *testing.T) {
	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, "mkdocs.yml"), "site_name: demo\n")
	writeFile(t, filepath.Join(proj, "cacao", "state.py"), "\"\"\"State.\"\"\"\na = 1\nb = 2\nc = 3\n")
	nested := filepath.Join(proj, "cacao")

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	if err := run([]string{}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	readOutput(t, filepath.Join(proj, "docs", "api", "reference"), "state.md")
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, configFileName), `output = "ignored"`+"\n")
	writeFile(t, filepath.Join(proj, "cacao", "state.py"), "\"\"\"State.\"\"\"\na = 1\nb = 2\nc = 3\n")
	out := t.TempDir()
	t.Setenv("CACAO_DOCMD_OUTPUT", out)

	if err := run([]string{"-C", proj}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	readOutput(t, out, "state.md")
	if _, err := os.Stat(filepath.Join(proj, "ignored")); err == nil {
		t.Fatalf("config file output should have been overridden")
	}
}

func TestHelpFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "cacao-docmd [flags] [source-dir]")
	assertContains(t, out, "--no-default-excludes")
	assertContains(t, out, "completion  Generate shell completion scripts")
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"completion", "bash"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected completion output")
	}
	assertContains(t, buf.String(), "__start_cacao-docmd")
}

func TestGenDocsCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", tmp}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var foundRoot bool
	for _, f := range files {
		if f.Name() == "cacao-docmd.md" {
			foundRoot = true
			break
		}
	}
	if !foundRoot {
		t.Fatalf("expected cacao-docmd.md in docs output, got %v", files)
	}
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\n%s", needle, haystack)
	}
}

func assertOrdered(t *testing.T, text string, needles ...string) {
	t.Helper()
	last := -1
	for _, needle := range needles {
		idx := strings.Index(text, needle)
		if idx == -1 {
			t.Fatalf("missing %q in output\n\n%s", needle, text)
		}
		if idx <= last {
			t.Fatalf("expected %q to appear later in output\n\n%s", needle, text)
		}
		last = idx
	}
}
