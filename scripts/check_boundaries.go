package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "doodle"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule lists what a layer may import besides the standard library.
// Entries starting with "/" are relative to the owning module directory.
type layerRule struct {
	name    string
	allowed []string
}

var layerRules = map[string]layerRule{
	"domain": {
		name: "domain",
		allowed: []string{
			"/domain",
			"golang.org/x/text",
			"github.com/google/uuid",
		},
	},
	"application": {
		name: "application",
		allowed: []string{
			"/application",
			"/domain",
			"/ports",
			modulePath + "/contracts",
			"golang.org/x/text",
			"github.com/google/uuid",
		},
	},
	"ports": {
		name: "ports",
		allowed: []string{
			"/ports",
			modulePath + "/contracts",
			"github.com/golang/mock",
		},
	},
}

func main() {
	violations := collectViolations("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File == violations[j].File {
			if violations[i].Line == violations[j].Line {
				return violations[i].Import < violations[j].Import
			}
			return violations[i].Line < violations[j].Line
		}
		return violations[i].File < violations[j].File
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		parts := strings.Split(filepath.ToSlash(path), "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}
		// contexts/<context>/<module>/<layer>/...
		modulePrefix := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
		imports, err := readImports(path)
		if err != nil {
			violations = append(violations, violation{File: filepath.ToSlash(path), Line: 1, Rule: "file must parse"})
			return nil
		}
		violations = append(violations, checkImports(filepath.ToSlash(path), parts[3], modulePrefix, imports)...)
		return nil
	})

	return violations
}

type importLine struct {
	Path string
	Line int
}

func readImports(path string) ([]importLine, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}
	out := make([]importLine, 0, len(file.Imports))
	for _, imp := range file.Imports {
		out = append(out, importLine{
			Path: strings.Trim(imp.Path.Value, "\""),
			Line: fset.Position(imp.Pos()).Line,
		})
	}
	return out, nil
}

func checkImports(file string, layer string, modulePrefix string, imports []importLine) []violation {
	var violations []violation
	rule, layered := layerRules[layer]

	for _, imp := range imports {
		add := func(reason string) {
			violations = append(violations, violation{File: file, Line: imp.Line, Import: imp.Path, Rule: reason})
		}

		if strings.HasPrefix(imp.Path, modulePath+"/contexts/") && !hasPrefix(imp.Path, modulePrefix) {
			add("cross-module imports are forbidden")
		}
		if !layered {
			continue
		}
		if strings.Contains(imp.Path, "/adapters/") {
			add(rule.name + " must not import adapters")
		}
		if strings.HasPrefix(imp.Path, modulePath+"/internal/") {
			add(rule.name + " must not import runtime infrastructure")
		}
		if !isStdlib(imp.Path) && !isAllowed(imp.Path, resolveAllowed(rule.allowed, modulePrefix)) {
			add(rule.name + " import is outside explicit allowlist")
		}
	}
	return violations
}

func resolveAllowed(allowed []string, modulePrefix string) []string {
	out := make([]string, 0, len(allowed))
	for _, entry := range allowed {
		if strings.HasPrefix(entry, "/") {
			entry = modulePrefix + entry
		}
		out = append(out, entry)
	}
	return out
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
