package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"carousel/persist"
)

func TestSlideFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"slide-10.xhtml", "slide-2.xhtml", "slide-1.xhtml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<html/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := slideFiles(dir)
	if err != nil {
		t.Fatalf("slideFiles: %v", err)
	}
	for i := range got {
		got[i] = filepath.Base(got[i])
	}
	want := []string{"slide-1.xhtml", "slide-2.xhtml", "slide-10.xhtml"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("slideFiles mismatch (-want +got):\n%s", diff)
	}

	if _, err := slideFiles(t.TempDir()); err == nil {
		t.Error("expected error for directory without slides")
	}
}

func TestBundleName(t *testing.T) {
	tests := []struct {
		name string
		id   string
		path string
		want string
	}{
		{"id", "c-42", "/tmp/doc.json", "c-42.zip"},
		{"document name", "", "/tmp/summer sale.json", "summer sale.zip"},
		{"blank id", "  ", "deck.json", "deck.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bundleName(&persist.Document{ID: tt.id}, tt.path); got != tt.want {
				t.Errorf("bundleName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.xhtml")

	f, err := createFile(name, false)
	if err != nil {
		t.Fatalf("createFile: %v", err)
	}
	f.Close()

	if _, err := createFile(name, false); err == nil {
		t.Error("expected error for existing file without overwrite")
	}
	f, err = createFile(name, true)
	if err != nil {
		t.Fatalf("createFile with overwrite: %v", err)
	}
	f.Close()
}
