// # cacao-docmd
//
// `cacao-docmd` generates the markdown API reference for a cacao source
// tree. It walks the source directory, writes one stub page per public
// module, and builds a grouped `modules.md` index. Each page carries a
// mkdocstrings directive (`::: module`), so the actual documentation body is
// rendered later by the docs site build; this tool only decides which modules
// get a page and how the reference is laid out.
//
// Key behavior:
//
//   - walk the source tree for files with the source suffix (`.py` by
//     default), skipping cache directories, test modules, compiled bytecode,
//     and template packages.
//   - honor the privacy convention: files whose name starts with `_` are
//     private and get no page, with `__init__.py` as the one exception.
//   - derive the dotted module identifier from the file's relative path; a
//     package initializer collapses into its package, and the top-level
//     initializer becomes the root module itself.
//   - skip modules with fewer than three substantive lines (blank lines and
//     full-line comments do not count), so marker-only files never produce
//     empty stub pages.
//   - group the index by top-level subpackage, with single-segment modules
//     collected under `Main`.
//
// ## Usage
//
//	cacao-docmd [flags] [source-dir]
//
// Run with no arguments from anywhere inside the project: the tool walks
// upward to the project root (marked by `.cacao-docmd.toml`, `mkdocs.yml`, or
// `pyproject.toml`) and uses the conventional `cacao` source directory and
// `docs/api/reference` output directory.
//
// Examples:
//
//   - Regenerate the reference with the defaults:
//
//     cacao-docmd
//
//   - Generate into a scratch directory for review:
//
//     cacao-docmd -o /tmp/ref ./cacao
//
//   - Drop the built-in exclusions and add your own:
//
//     cacao-docmd --no-default-excludes -x fixtures/ -x _generated
//
// ## Configuration
//
// Besides flags, settings can come from a `.cacao-docmd.toml` file at the
// project root (keys: `source`, `output`, `suffix`, `exclude`, `min_lines`,
// `index_title`, `index_intro`) and from `CACAO_DOCMD_*` environment
// variables, with a `.env` file honored when present. Flags win over the
// environment, which wins over the config file.
//
// ## Output
//
// Page filenames flatten the module path: `cacao/core/state.py` becomes
// `core.state.md` containing `# cacao.core.state` and its directive. The
// index links every generated page, grouped under an H3 heading per
// subpackage. When no module qualifies, no files are written at all,
// including the index.
package main
