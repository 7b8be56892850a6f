package migrator

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/lib/pq"

	"tipjar/migrations"
)

func TestLoadSortsByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_second.sql": {Data: []byte("SELECT 2;")},
		"0001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":       {Data: []byte("ignored")},
	}
	got, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != 2 || got[0].Version != "0001_first" || got[1].Version != "0002_second" {
		t.Fatalf("unexpected migrations: %+v", got)
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	fsys := fstest.MapFS{"0001_empty.sql": {Data: []byte("  \n")}}
	if _, err := Load(fsys); err == nil {
		t.Fatal("expected error for empty migration")
	}
}

func TestPending(t *testing.T) {
	all := []Migration{{Version: "0001"}, {Version: "0002"}, {Version: "0003"}}
	got := Pending(all, map[string]bool{"0001": true, "0003": true})
	if len(got) != 1 || got[0].Version != "0002" {
		t.Fatalf("unexpected pending: %+v", got)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	got, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) < 2 || got[0].Version != "0001_init" {
		t.Fatalf("unexpected embedded migrations: %+v", got)
	}
	if !strings.Contains(strings.ToLower(got[0].SQL), "create table") {
		t.Fatal("init migration does not create tables")
	}
}

func TestDescribeIncludesPQDetail(t *testing.T) {
	err := describe("apply 0001", &pq.Error{Code: "42P07", Message: "relation exists", Detail: "accounts"})
	if !strings.Contains(err.Error(), "42P07") || !strings.Contains(err.Error(), "accounts") {
		t.Fatalf("unexpected message: %v", err)
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		t.Fatal("describe must keep the original error")
	}
}
