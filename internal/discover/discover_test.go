package discover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverBasic(t *testing.T) {
	dir := t.TempDir()

	// Create a Go file and a Python file
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("def main(): pass\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	files, err := Discover(ctx, dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	for _, f := range files {
		if f.Path == "" {
			t.Error("expected non-empty Path")
		}
		if f.RelPath == "" {
			t.Error("expected non-empty RelPath")
		}
	}
}

func TestDiscoverSkipsIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "node_modules", "lib.js"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "main.go" {
		t.Fatalf("expected only main.go, got %v", files)
	}
}

func TestDiscoverHonorsIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keep.go"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "generated.go"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	ignoreFile := filepath.Join(dir, ".ignore")
	if err := os.WriteFile(ignoreFile, []byte("generated.go\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(context.Background(), dir, &Options{IgnoreFile: ignoreFile})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	var relPaths []string
	for _, f := range files {
		relPaths = append(relPaths, f.RelPath)
	}
	for _, rel := range relPaths {
		if rel == "generated.go" {
			t.Fatalf("expected generated.go to be excluded, got %v", relPaths)
		}
	}
}

func TestDiscoverCancellation(t *testing.T) {
	dir := t.TempDir()

	// Create a file so the directory isn't empty
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // pre-cancel

	_, err := Discover(ctx, dir, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
