package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultSourceDir = "cacao"
	defaultOutputDir = "docs/api/reference"
	defaultSuffix    = ".py"
	defaultMinLines  = 3

	initializerFile = "__init__.py"
	privacyMarker   = "_"
	commentPrefix   = "#"

	configFileName = ".cacao-docmd.toml"
	indexFileName  = "modules.md"
	fallbackGroup  = "main"

	defaultIndexTitle = "API Reference"
	defaultIndexIntro = "Generated reference pages for the public cacao modules."
)

// defaultExcludes is the production exclusion set: bytecode caches, test
// modules, compiled bytecode files, and HTML template packages.
var defaultExcludes = []string{"__pycache__", "test_", ".pyc", "templates/"}

// fileConfig mirrors the keys accepted in .cacao-docmd.toml.
type fileConfig struct {
	Source     string   `toml:"source"`
	Output     string   `toml:"output"`
	Suffix     string   `toml:"suffix"`
	Exclude    []string `toml:"exclude"`
	MinLines   int      `toml:"min_lines"`
	IndexTitle string   `toml:"index_title"`
	IndexIntro string   `toml:"index_intro"`
}

// loadFileConfig reads a TOML config. When path is empty the default config
// file is tried at baseDir and a missing file is not an error; an explicit
// path must exist.
func loadFileConfig(path, baseDir string) (fileConfig, error) {
	var cfg fileConfig
	implicit := path == ""
	if implicit {
		path = filepath.Join(baseDir, configFileName)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if implicit && os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv layers CACAO_DOCMD_* environment variables over cfg. A .env file
// at baseDir is honored when present, so it resolves against the same
// directory as the TOML config.
func applyEnv(cfg *fileConfig, baseDir string) {
	_ = godotenv.Load(filepath.Join(baseDir, ".env"))

	cfg.Source = getEnv("CACAO_DOCMD_SOURCE", cfg.Source)
	cfg.Output = getEnv("CACAO_DOCMD_OUTPUT", cfg.Output)
	cfg.Suffix = getEnv("CACAO_DOCMD_SUFFIX", cfg.Suffix)
	cfg.IndexTitle = getEnv("CACAO_DOCMD_INDEX_TITLE", cfg.IndexTitle)
	cfg.IndexIntro = getEnv("CACAO_DOCMD_INDEX_INTRO", cfg.IndexIntro)
	if v := os.Getenv("CACAO_DOCMD_EXCLUDE"); v != "" {
		cfg.Exclude = splitList(v)
	}
	if v := os.Getenv("CACAO_DOCMD_MIN_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MinLines = n
		}
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// rootMarkers identify a project root when walking upward from the working
// directory.
var rootMarkers = []string{configFileName, "mkdocs.yml", "pyproject.toml"}

// findProjectRoot walks up from start looking for a root marker. It returns
// "" when no marker exists on the path to the filesystem root.
func findProjectRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
