package sandbox

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandPathsWalksDirectoryAndFiltersExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "image.png"), "binary")
	writeFile(t, filepath.Join(root, "src", "util.go"), "package src")

	v := NewValidator(root, "")
	got := ExpandPaths(v, []string{root}, nil)

	names := make(map[string]bool)
	for _, f := range got {
		names[filepath.Base(f)] = true
	}
	if !names["main.go"] || !names["util.go"] {
		t.Errorf("expected main.go and util.go, got %v", got)
	}
	if names["image.png"] {
		t.Error("image.png should have been filtered by extension")
	}
}

func TestExpandPathsSkipsExcludedAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.go"), "package app")
	writeFile(t, filepath.Join(root, "node_modules", "pkg.go"), "package pkg")
	writeFile(t, filepath.Join(root, ".hidden", "secret.go"), "package hidden")

	v := NewValidator(root, "")
	got := ExpandPaths(v, []string{root}, nil)

	for _, f := range got {
		if filepath.Base(f) == "pkg.go" || filepath.Base(f) == "secret.go" {
			t.Errorf("expected excluded/hidden directory contents to be skipped, found %s", f)
		}
	}
}

func TestExpandPathsSkipsSignatureDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.go"), "package app")

	toolDir := filepath.Join(root, "vendored-tool")
	for _, sig := range signatureFiles[:signatureThreshold] {
		full := filepath.Join(toolDir, sig)
		writeFile(t, full, "")
	}
	writeFile(t, filepath.Join(toolDir, "internal.go"), "package internal")

	v := NewValidator(root, "")
	got := ExpandPaths(v, []string{root}, nil)

	for _, f := range got {
		if filepath.Base(f) == "internal.go" {
			t.Error("expected the signature-detected directory's contents to be skipped")
		}
	}
}

func TestExpandPathsIncludesDirectFileRegardlessOfExtension(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "data.bin")
	writeFile(t, path, "raw bytes")

	v := NewValidator(root, "")
	got := ExpandPaths(v, []string{path}, nil)

	if len(got) != 1 || got[0] != path {
		t.Errorf("got %v, want [%s] (direct file args bypass extension filtering)", got, path)
	}
}

func TestExpandPathsDedupesAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.go"), "package b")
	writeFile(t, filepath.Join(root, "a.go"), "package a")

	v := NewValidator(root, "")
	got := ExpandPaths(v, []string{root, root}, nil)

	if len(got) != 2 {
		t.Fatalf("expected dedup to produce 2 entries, got %d: %v", len(got), got)
	}
	if filepath.Base(got[0]) != "a.go" || filepath.Base(got[1]) != "b.go" {
		t.Errorf("expected sorted order [a.go b.go], got %v", got)
	}
}
