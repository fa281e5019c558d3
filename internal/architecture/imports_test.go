package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type importRef struct {
	file string
	imp  string
}

// walkImports visits every import of every Go file under internal/.
func walkImports(t *testing.T, visit func(rel, imp string)) string {
	t.Helper()

	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}

	internalDir := filepath.Join(root, "internal")
	fset := token.NewFileSet()
	walkErr := filepath.WalkDir(internalDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "node_modules", ".gocache", "testdata":
				return filepath.SkipDir
			default:
				return nil
			}
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			if spec == nil || spec.Path == nil {
				continue
			}
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			visit(filepath.ToSlash(rel), imp)
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}
	return modulePath
}

func TestImportBoundaries(t *testing.T) {
	type violation struct {
		importRef
		rule string
	}
	var violations []violation
	var modulePath string
	var refs []importRef
	modulePath = walkImports(t, func(rel, imp string) {
		refs = append(refs, importRef{file: rel, imp: imp})
	})

	for _, ref := range refs {
		layer := layerFor(ref.file)
		if layer == "" {
			continue
		}
		for _, bad := range disallowedImports(modulePath, layer) {
			if strings.HasPrefix(ref.imp, bad) {
				violations = append(violations, violation{importRef: ref, rule: bad})
				break
			}
		}
	}

	if len(violations) > 0 {
		var b strings.Builder
		b.WriteString("import boundary violations:\n")
		for _, v := range violations {
			fmt.Fprintf(&b, "- %s imports %q (disallowed: %q)\n", v.file, v.imp, v.rule)
		}
		t.Fatal(b.String())
	}
}

// gin belongs to the two HTTP surfaces.
func TestGinStaysInTransport(t *testing.T) {
	var violations []importRef
	walkImports(t, func(rel, imp string) {
		if !strings.HasPrefix(imp, "github.com/gin-gonic/") && !strings.HasPrefix(imp, "github.com/gin-contrib/") {
			return
		}
		if strings.HasPrefix(rel, "internal/http/") || strings.HasPrefix(rel, "internal/dbworker/httpapi/") {
			return
		}
		violations = append(violations, importRef{file: rel, imp: imp})
	})
	if len(violations) > 0 {
		var b strings.Builder
		b.WriteString("gin imports found outside internal/http and internal/dbworker/httpapi:\n")
		for _, v := range violations {
			fmt.Fprintf(&b, "- %s imports %q\n", v.file, v.imp)
		}
		t.Fatal(b.String())
	}
}

func layerFor(rel string) string {
	switch {
	case strings.HasPrefix(rel, "internal/platform/"):
		return "platform"
	case strings.HasPrefix(rel, "internal/domain/"):
		return "domain"
	case strings.HasPrefix(rel, "internal/modules/"):
		return "modules"
	case strings.HasPrefix(rel, "internal/data/"):
		return "data"
	case strings.HasPrefix(rel, "internal/services/"):
		return "services"
	case strings.HasPrefix(rel, "internal/dbworker/"):
		return "dbworker"
	default:
		return ""
	}
}

func disallowedImports(modulePath string, layer string) []string {
	var (
		web      = modulePath + "/internal/http"
		app      = modulePath + "/internal/app"
		services = modulePath + "/internal/services"
		modules  = modulePath + "/internal/modules/"
		data     = modulePath + "/internal/data/"
		worker   = modulePath + "/internal/dbworker/"
		realtime = modulePath + "/internal/realtime"
	)
	switch layer {
	case "platform":
		return []string{modules, web, services, data, realtime, app, worker}
	case "domain":
		return []string{modules, web, services, data, realtime, app, worker}
	case "modules":
		return []string{web, services, data, realtime, app, worker}
	case "data":
		return []string{modules, web, services, realtime, app, worker}
	case "services":
		return []string{web, app, worker}
	case "dbworker":
		return []string{web + "/handlers", web + "/response", services, modules, realtime, modulePath + "/internal/app/"}
	default:
		return nil
	}
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		mp := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		if mp == "" {
			return "", fmt.Errorf("empty module path in %s", goModPath)
		}
		return mp, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
