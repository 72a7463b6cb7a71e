// Command write_boundary_report checks that the read side stays read only: no method in
// internal/services may call a repo write directly. Writes belong to the aggregates in
// internal/data/aggregates. The report is printed as JSON and the exit status is 1 when
// any violation is found.
package main

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type repoField struct {
	Struct   string `json:"struct"`
	Name     string `json:"name"`
	RepoType string `json:"repo_type"`
}

type violation struct {
	Func   string `json:"func"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Field  string `json:"field"`
	Method string `json:"method"`
}

type boundaryReport struct {
	Package         string      `json:"package"`
	RepoFields      []repoField `json:"repo_fields"`
	MethodsScanned  int         `json:"methods_scanned"`
	RepoReadCalls   int         `json:"repo_read_calls"`
	Violations      []violation `json:"violations"`
	AggregateFields []string    `json:"aggregate_fields"`
}

var repoWriteMethods = map[string]bool{
	"Create":        true,
	"Ensure":        true,
	"Upsert":        true,
	"LockForUpdate": true,
}

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	dir := filepath.Join(root, "internal", "services")
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		name := fi.Name()
		return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
	}, 0)
	if err != nil {
		exitf("parse dir: %v", err)
	}
	pkg, ok := pkgs["services"]
	if !ok {
		exitf("services package not found in %s", dir)
	}

	files := make(map[string]*ast.File, len(pkg.Files))
	for path, f := range pkg.Files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		files[filepath.ToSlash(rel)] = f
	}

	report := analyze(fset, "services", files)
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		exitf("marshal report: %v", err)
	}
	fmt.Println(string(out))
	if len(report.Violations) > 0 {
		os.Exit(1)
	}
}

func analyze(fset *token.FileSet, pkgName string, files map[string]*ast.File) boundaryReport {
	report := boundaryReport{Package: pkgName}

	repoFields := map[string]repoField{}
	aggFields := map[string]bool{}
	for _, f := range files {
		collectFields(f, repoFields, aggFields)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		scanFuncs(fset, files[name], name, repoFields, &report)
	}

	for _, rf := range repoFields {
		report.RepoFields = append(report.RepoFields, rf)
	}
	sort.Slice(report.RepoFields, func(i, j int) bool {
		if report.RepoFields[i].Struct == report.RepoFields[j].Struct {
			return report.RepoFields[i].Name < report.RepoFields[j].Name
		}
		return report.RepoFields[i].Struct < report.RepoFields[j].Struct
	})
	report.AggregateFields = sortedKeys(aggFields)
	return report
}

// collectFields records struct fields typed repos.*Repo or domainagg.*Aggregate.
func collectFields(file *ast.File, repoFields map[string]repoField, aggFields map[string]bool) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok || st.Fields == nil {
				continue
			}
			for _, field := range st.Fields.List {
				sel, ok := field.Type.(*ast.SelectorExpr)
				if !ok {
					continue
				}
				pkgIdent, ok := sel.X.(*ast.Ident)
				if !ok {
					continue
				}
				for _, n := range field.Names {
					switch {
					case pkgIdent.Name == "repos" && strings.HasSuffix(sel.Sel.Name, "Repo"):
						repoFields[n.Name] = repoField{Struct: ts.Name.Name, Name: n.Name, RepoType: sel.Sel.Name}
					case pkgIdent.Name == "domainagg" && strings.HasSuffix(sel.Sel.Name, "Aggregate"):
						aggFields[ts.Name.Name+"."+n.Name] = true
					}
				}
			}
		}
	}
}

// scanFuncs inspects every call of the form x.<...>.<repoField>.<Method>(...).
func scanFuncs(fset *token.FileSet, file *ast.File, relFile string, repoFields map[string]repoField, report *boundaryReport) {
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		report.MethodsScanned++
		funcName := fd.Name.Name
		if fd.Recv != nil && len(fd.Recv.List) > 0 {
			funcName = recvType(fd.Recv.List[0]) + "." + funcName
		}

		ast.Inspect(fd.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			fnSel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			fieldSel, ok := fnSel.X.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			field := fieldSel.Sel.Name
			if _, ok := repoFields[field]; !ok {
				return true
			}
			method := fnSel.Sel.Name
			if !repoWriteMethods[method] {
				report.RepoReadCalls++
				return true
			}
			report.Violations = append(report.Violations, violation{
				Func:   funcName,
				File:   relFile,
				Line:   fset.Position(call.Pos()).Line,
				Field:  field,
				Method: method,
			})
			return true
		})
	}
}

func recvType(field *ast.Field) string {
	switch t := field.Type.(type) {
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.Name
		}
	case *ast.Ident:
		return t.Name
	}
	return ""
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
