package main

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// buildPackageRel is the build package's directory relative to this
// generator's module root.
const buildPackageRel = "build"

// -------------------------
// Import inference
// -------------------------
//
// The generated code always calls into the build package. Its import path
// is, in order of preference:
//   (1) spec.imports.build when set;
//   (2) <module path of the module containing this generator>/build.

func inferBuildImport(spec *Spec) (string, error) {
	if p := strings.TrimSpace(spec.Imports.Build); p != "" {
		return p, nil
	}

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", &cmdError{msg: "cannot infer build import: runtime.Caller failed"}
	}

	modRoot, modPath, err := findModule(filepath.Dir(thisFile))
	if err != nil {
		return "", fmt.Errorf("cannot infer build import: cannot find go.mod for generator module: %w", err)
	}

	buildDir := filepath.Join(modRoot, filepath.FromSlash(buildPackageRel))
	if !exists(buildDir, true) {
		return "", &cmdError{msg: "cannot infer build import: expected build package dir at " + filepath.ToSlash(buildDir)}
	}

	return modPath + "/" + buildPackageRel, nil
}

// buildImportSpec imports the build package under the name the generated
// code calls it by.
func buildImportSpec(importPath string) ImportSpec {
	if path.Base(importPath) == buildPackageRel {
		return ImportSpec{Path: importPath}
	}
	return ImportSpec{Alias: buildPackageRel, Path: importPath}
}

// -------------------------
// go.mod helpers
// -------------------------

type cmdError struct{ msg string }

func (e *cmdError) Error() string { return e.msg }

// findModule walks up from startDir to the nearest go.mod and returns its
// directory and module path.
func findModule(startDir string) (modRoot string, modPath string, err error) {
	for dir := startDir; ; {
		gomod := filepath.Join(dir, "go.mod")
		if exists(gomod, false) {
			mod, rerr := readModulePath(gomod)
			if rerr != nil {
				return "", "", rerr
			}
			return dir, mod, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", &cmdError{msg: "could not find go.mod starting from " + filepath.ToSlash(startDir)}
		}
		dir = parent
	}
}

// readModulePath returns the argument of the module directive in gomod.
func readModulePath(gomod string) (string, error) {
	f, err := os.Open(gomod)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "module" {
			continue
		}
		if len(fields) < 2 || strings.Trim(fields[1], `"`) == "" {
			return "", &cmdError{msg: "go.mod has empty module path at " + filepath.ToSlash(gomod)}
		}
		return strings.Trim(fields[1], `"`), nil
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", &cmdError{msg: "go.mod missing module directive at " + filepath.ToSlash(gomod)}
}

// exists reports whether p exists and is a directory (dir) or a file (!dir).
func exists(p string, dir bool) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir() == dir
}

// -------------------------
// Import merging
// -------------------------

// mergeImports dedupes imports by (alias, path) and sorts them by path.
func mergeImports(required []ImportSpec, extra []ImportSpec) []ImportSpec {
	type key struct {
		path  string
		alias string
	}
	seen := map[key]struct{}{}
	out := make([]ImportSpec, 0, len(required)+len(extra))

	add := func(imp ImportSpec) {
		imp.Path = strings.TrimSpace(imp.Path)
		k := key{path: imp.Path, alias: imp.Alias}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, imp)
	}

	for _, imp := range required {
		add(imp)
	}
	for _, imp := range extra {
		add(imp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Alias < out[j].Alias
		}
		return out[i].Path < out[j].Path
	})
	return out
}
