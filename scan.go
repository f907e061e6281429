package main

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// moduleFile is one accepted source file together with its derived identity.
type moduleFile struct {
	path    string // on-disk location of the source file
	module  string // dotted module identifier, e.g. cacao.core.state
	outName string // flattened page filename, e.g. core.state.md
}

// initializerStem is the package-initializer filename without its extension.
var initializerStem = strings.TrimSuffix(initializerFile, filepath.Ext(initializerFile))

// scanTree walks cfg.sourceDir and returns the candidate modules sorted by
// module identifier. Exclusion substrings match against the root-prefixed
// relative slash path (`cacao/core/state.py`), never the checkout location;
// privacy-named files are dropped unless they are the package initializer.
func scanTree(cfg genConfig) ([]moduleFile, error) {
	rootName := filepath.Base(filepath.Clean(cfg.sourceDir))
	var files []moduleFile
	err := filepath.WalkDir(cfg.sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), cfg.suffix) {
			return nil
		}
		rel, err := filepath.Rel(cfg.sourceDir, path)
		if err != nil {
			return err
		}
		if containsAny(rootName+"/"+filepath.ToSlash(rel), cfg.excludes) {
			return nil
		}
		if strings.HasPrefix(d.Name(), privacyMarker) && d.Name() != initializerFile {
			return nil
		}
		module, outName := deriveModule(rootName, rel, cfg.suffix)
		files = append(files, moduleFile{path: path, module: module, outName: outName})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].module < files[j].module
	})
	return files, nil
}

// deriveModule turns a source-root-relative path into the dotted module
// identifier and the flattened page filename. A trailing initializer segment
// collapses out; the bare root initializer maps to the root name itself.
func deriveModule(rootName, rel, suffix string) (module, outName string) {
	trimmed := strings.TrimSuffix(filepath.ToSlash(rel), suffix)
	segments := strings.Split(trimmed, "/")
	if segments[len(segments)-1] == initializerStem {
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		return rootName, rootName + ".md"
	}
	joined := strings.Join(segments, ".")
	return rootName + "." + joined, joined + ".md"
}

func containsAny(path string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(path, needle) {
			return true
		}
	}
	return false
}
