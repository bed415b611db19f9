package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	fixzip "github.com/hidez8891/zip"
)

func TestReport(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "final.log")
	if err := os.WriteFile(logFile, []byte("log line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	r.Store("final.log", logFile)
	r.Store("absent.log", filepath.Join(dir, "absent.log"))
	r.StoreData("editor/dump.txt", []byte("slide 0"))
	r.StoreData("editor/dump.txt", []byte("slide 1"))
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q", r.Name())
	}

	zr, err := fixzip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	contents := make(map[string]string)
	var names []string
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		contents[f.Name] = string(data)
		name, _, _ := strings.Cut(f.Name, ".txt-")
		names = append(names, name)
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"MANIFEST", "editor/dump", "editor/dump.txt", "final.log"}, names); diff != "" {
		t.Errorf("archive entries mismatch (-want +got):\n%s", diff)
	}
	if contents["final.log"] != "log line\n" || contents["editor/dump.txt"] != "slide 0" {
		t.Errorf("contents = %v", contents)
	}
}

func TestReportNil(t *testing.T) {
	var r *Report
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report has name")
	}
}

func TestReportOverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "one")
	r.Store("a", "one")
	defer func() {
		if recover() == nil {
			t.Error("overwriting entry did not panic")
		}
	}()
	r.Store("a", "two")
}
