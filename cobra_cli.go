package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
cacao-docmd generates the markdown API reference for a cacao source tree.
It walks the source directory, writes one stub page per public module carrying
a mkdocstrings directive, and builds a grouped modules.md index:

  • One flattened <segments>.md page per module that passes the content filter
  • A modules.md index grouped by top-level subpackage
  • Shell completion generation for bash, zsh, fish, and PowerShell
  • A gen-docs helper that emits markdown reference docs for the CLI itself

Run it with no arguments from anywhere inside the project: the tool locates
the project root and uses the conventional source and output directories.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout}
	cmd := &cobra.Command{
		Use:           "cacao-docmd [flags] [source-dir]",
		Short:         "Generate markdown API reference pages for a cacao tree",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.outputDir, "output", "o", defaultOutputDir, "directory that receives the generated markdown pages")
	flags.StringVar(&app.opts.suffix, "suffix", defaultSuffix, "source file suffix to consider")
	flags.StringArrayVarP(&app.opts.excludes, "exclude", "x", nil, "additional path substrings to exclude (repeatable)")
	flags.BoolVar(&app.opts.noDefaultExcludes, "no-default-excludes", false, "drop the built-in exclusion set (caches, tests, bytecode, templates)")
	flags.IntVar(&app.opts.minLines, "min-lines", defaultMinLines, "minimum substantive lines a module needs to get a page")
	flags.StringVarP(&app.opts.configPath, "config", "c", "", "TOML config file (default: "+configFileName+" at the project root)")
	flags.StringVarP(&app.opts.chdir, "chdir", "C", "", "resolve paths relative to this directory instead of the discovered project root")
	flags.StringVar(&app.opts.indexTitle, "index-title", defaultIndexTitle, "title of the modules.md index page")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, args, cmd.Flags().Changed)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const longDesc = `Generate shell completion scripts for cacao-docmd.

The output should be evaluated by your shell. For example:

  # bash
  cacao-docmd completion bash > /usr/local/etc/bash_completion.d/cacao-docmd

  # zsh
  cacao-docmd completion zsh > "${fpath[1]}/_cacao-docmd"

  # fish
  cacao-docmd completion fish | source

  # PowerShell
  cacao-docmd completion powershell | Out-String | Invoke-Expression
`
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a markdown file per command, suitable for publishing the CLI reference
alongside the generated API docs.

Example:

  cacao-docmd gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
