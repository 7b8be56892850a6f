package main

import (
	"strings"
	"testing"
)

func TestLintFlagsMissingMarker(t *testing.T) {
	l := newLinter()
	src := "package q\n\nconst QBad = `select 1`\n"
	if err := l.lintSource("q.go", src); err != nil {
		t.Fatalf("lintSource error: %v", err)
	}
	got := l.finish()
	if len(got) != 1 || got[0].name != "QBad" || got[0].line != 3 {
		t.Fatalf("unexpected violations: %+v", got)
	}
}

func TestLintFlagsDuplicateMarkers(t *testing.T) {
	l := newLinter()
	src := "package q\n\n" +
		"const QOne = `--sql 11111111-2222-3333-4444-555555555555\nselect 1`\n" +
		"const QTwo = `--sql 11111111-2222-3333-4444-555555555555\nselect 2`\n"
	if err := l.lintSource("q.go", src); err != nil {
		t.Fatalf("lintSource error: %v", err)
	}
	got := l.finish()
	if len(got) != 1 || got[0].name != "QTwo" || !strings.Contains(got[0].message, "QOne") {
		t.Fatalf("unexpected violations: %+v", got)
	}
}

func TestLintIgnoresProse(t *testing.T) {
	l := newLinter()
	src := "package q\n\nconst msg = \"Scan the QR code with your banking app\"\n"
	if err := l.lintSource("q.go", src); err != nil {
		t.Fatalf("lintSource error: %v", err)
	}
	if got := l.finish(); len(got) != 0 {
		t.Fatalf("unexpected violations: %+v", got)
	}
}

func TestRepositoryQueriesPass(t *testing.T) {
	l := newLinter()
	if err := l.lintPath("../../sqlinline"); err != nil {
		t.Fatalf("lintPath error: %v", err)
	}
	if got := l.finish(); len(got) != 0 {
		t.Fatalf("sqlinline has marker problems: %+v", got)
	}
	if len(l.markers) == 0 {
		t.Fatal("no SQL constants found in sqlinline")
	}
}
