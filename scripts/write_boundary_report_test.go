package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

const readOnlySrc = `package services

import "example/repos"

type FooDeps struct {
	Courses     repos.CourseRepo
	Enrollments repos.EnrollmentRepo
}

type fooService struct{ deps FooDeps }

func (s *fooService) Get(dbc any) error {
	_, err := s.deps.Courses.GetByID(dbc, nil)
	return err
}
`

const writingSrc = `package services

import "example/repos"

type barService struct {
	enrollments repos.EnrollmentRepo
}

func (s *barService) Sneak(dbc any) error {
	_, err := s.enrollments.Ensure(dbc, "l", nil)
	return err
}
`

func parse(t *testing.T, fset *token.FileSet, name, src string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(fset, name, src, 0)
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return f
}

func TestAnalyzeReadOnlyService(t *testing.T) {
	fset := token.NewFileSet()
	report := analyze(fset, "services", map[string]*ast.File{
		"internal/services/foo.go": parse(t, fset, "foo.go", readOnlySrc),
	})
	if len(report.Violations) != 0 {
		t.Fatalf("unexpected violations: %+v", report.Violations)
	}
	if report.RepoReadCalls != 1 || len(report.RepoFields) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestAnalyzeFlagsRepoWrites(t *testing.T) {
	fset := token.NewFileSet()
	report := analyze(fset, "services", map[string]*ast.File{
		"internal/services/bar.go": parse(t, fset, "bar.go", writingSrc),
	})
	if len(report.Violations) != 1 {
		t.Fatalf("want 1 violation, got %+v", report.Violations)
	}
	v := report.Violations[0]
	if v.Func != "barService.Sneak" || v.Method != "Ensure" || v.Field != "enrollments" || v.Line != 10 {
		t.Fatalf("unexpected violation: %+v", v)
	}
}
