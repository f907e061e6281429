package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
)

type options struct {
	outputDir         string
	suffix            string
	excludes          []string
	noDefaultExcludes bool
	minLines          int
	configPath        string
	chdir             string
	indexTitle        string
}

// genConfig is the fully resolved configuration for one generation run, after
// flags, environment, config file, and defaults have been merged.
type genConfig struct {
	sourceDir  string
	outputDir  string
	suffix     string
	excludes   []string
	minLines   int
	indexTitle string
	indexIntro string
}

type cliApp struct {
	stdout io.Writer
	opts   options
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, positionals []string, changed func(string) bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := app.resolveConfig(positionals, changed)
	if err != nil {
		return err
	}
	return app.generate(ctx, cfg)
}

// resolveConfig merges the configuration layers. Precedence, highest first:
// command line, CACAO_DOCMD_* environment, TOML config file, built-in
// defaults. Relative paths resolve against the project base directory.
func (app *cliApp) resolveConfig(positionals []string, changed func(string) bool) (genConfig, error) {
	baseDir := app.opts.chdir
	if baseDir == "" {
		if baseDir = findProjectRoot("."); baseDir == "" {
			baseDir = "."
		}
	}

	file, err := loadFileConfig(app.opts.configPath, baseDir)
	if err != nil {
		return genConfig{}, err
	}
	applyEnv(&file, baseDir)

	cfg := genConfig{
		sourceDir:  defaultSourceDir,
		outputDir:  app.opts.outputDir,
		suffix:     app.opts.suffix,
		minLines:   app.opts.minLines,
		indexTitle: app.opts.indexTitle,
		indexIntro: defaultIndexIntro,
	}
	if file.Source != "" {
		cfg.sourceDir = file.Source
	}
	if len(positionals) == 1 {
		cfg.sourceDir = positionals[0]
	}
	if file.Output != "" && !changed("output") {
		cfg.outputDir = file.Output
	}
	if file.Suffix != "" && !changed("suffix") {
		cfg.suffix = file.Suffix
	}
	if file.MinLines > 0 && !changed("min-lines") {
		cfg.minLines = file.MinLines
	}
	if file.IndexTitle != "" && !changed("index-title") {
		cfg.indexTitle = file.IndexTitle
	}
	if file.IndexIntro != "" {
		cfg.indexIntro = file.IndexIntro
	}

	if !app.opts.noDefaultExcludes {
		cfg.excludes = append(cfg.excludes, defaultExcludes...)
	}
	cfg.excludes = append(cfg.excludes, file.Exclude...)
	cfg.excludes = append(cfg.excludes, app.opts.excludes...)

	if !filepath.IsAbs(cfg.sourceDir) {
		cfg.sourceDir = filepath.Join(baseDir, cfg.sourceDir)
	}
	if !filepath.IsAbs(cfg.outputDir) {
		cfg.outputDir = filepath.Join(baseDir, cfg.outputDir)
	}
	return cfg, nil
}

// generate is the single sequential pass: scan the tree, emit one page per
// module that passes the content filter, then write the grouped index. The
// index is skipped entirely when no page was written.
func (app *cliApp) generate(ctx context.Context, cfg genConfig) error {
	fmt.Fprintf(app.stdout, "cacao-docmd: generating API reference from %s into %s\n", cfg.sourceDir, cfg.outputDir)

	files, err := scanTree(cfg)
	if err != nil {
		return err
	}

	var records []moduleRecord
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !hasSubstance(f.path, cfg.minLines) {
			continue
		}
		outPath := filepath.Join(cfg.outputDir, f.outName)
		if err := writePage(outPath, f.module); err != nil {
			return err
		}
		fmt.Fprintf(app.stdout, "generated %s\n", outPath)
		records = append(records, moduleRecord{module: f.module, file: f.outName})
	}

	if len(records) > 0 {
		// records inherit scanTree's module ordering, which renderIndex
		// requires.
		indexPath := filepath.Join(cfg.outputDir, indexFileName)
		if err := writeIndex(indexPath, records, cfg.indexTitle, cfg.indexIntro); err != nil {
			return err
		}
		fmt.Fprintf(app.stdout, "generated index %s\n", indexPath)
	}

	fmt.Fprintf(app.stdout, "cacao-docmd: done, %d pages\n", len(records))
	return nil
}
