package core_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/salesquery"

// imports returns the imports of every non-test Go file under dir, keyed by
// file path relative to the module root.
func imports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()
	out := make(map[string][]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range f.Imports {
			out[path] = append(out[path], strings.Trim(imp.Path.Value, `"`))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", dir, err)
	}
	return out
}

func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

// TestCoreImportsOnlyStdlib verifies pkg/core stays a leaf package.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	if _, err := os.Stat("result.go"); err != nil {
		t.Skip("not running from pkg/core")
	}
	for file, imps := range imports(t, ".") {
		for _, imp := range imps {
			if !isStdlib(imp) {
				t.Errorf("%s imports forbidden package: %s", file, imp)
			}
		}
	}
}

// TestPkgDoesNotImportInternal verifies nothing under pkg/ reaches into
// internal/, so the adapters stay usable on their own.
func TestPkgDoesNotImportInternal(t *testing.T) {
	for file, imps := range imports(t, "..") {
		for _, imp := range imps {
			if strings.HasPrefix(imp, modulePath+"/internal/") {
				t.Errorf("%s imports internal package: %s (pkg must not import internal packages)", file, imp)
			}
		}
	}
}

// TestQueriesAreDriverAgnostic verifies the catalogue and runner only see
// connections through interfaces, never a concrete driver.
func TestQueriesAreDriverAgnostic(t *testing.T) {
	forbidden := []string{
		modulePath + "/pkg/adapters/",
		"modernc.org/sqlite",
		"github.com/marcboeker/go-duckdb",
		"github.com/jackc/pgx",
	}

	for _, dir := range []string{"../../internal/catalog", "../../internal/runner"} {
		for file, imps := range imports(t, dir) {
			for _, imp := range imps {
				for _, bad := range forbidden {
					if strings.HasPrefix(imp, bad) {
						t.Errorf("%s imports driver package: %s", file, imp)
					}
				}
			}
		}
	}
}
