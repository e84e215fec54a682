package sandbox

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathRejectsRelative(t *testing.T) {
	v := NewValidator(t.TempDir(), "")
	if _, err := v.ValidatePath("relative/path.go"); err == nil {
		t.Fatal("expected a RelativePathError")
	} else if _, ok := err.(*RelativePathError); !ok {
		t.Errorf("error type = %T, want *RelativePathError", err)
	}
}

func TestValidatePathRejectsOutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	v := NewValidator(root, "")

	if _, err := v.ValidatePath(filepath.Join(outside, "x.go")); err == nil {
		t.Fatal("expected an OutsideRootError")
	} else if _, ok := err.(*OutsideRootError); !ok {
		t.Errorf("error type = %T, want *OutsideRootError", err)
	}
}

func TestValidatePathAcceptsPathInsideRoot(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "sub", "file.go")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("package sub"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := NewValidator(root, "")
	resolved, err := v.ValidatePath(target)
	if err != nil {
		t.Fatalf("ValidatePath: %v", err)
	}
	if resolved != target {
		t.Errorf("resolved = %q, want %q", resolved, target)
	}
}

func TestValidatePathRejectsHomeOverrideRoot(t *testing.T) {
	home := t.TempDir()
	v := NewValidator(home, home)

	if _, err := v.ValidatePath(home); err == nil {
		t.Fatal("expected a HomeRootError")
	} else if _, ok := err.(*HomeRootError); !ok {
		t.Errorf("error type = %T, want *HomeRootError", err)
	}
}

func TestValidatePathAllowsHomeSubdirectory(t *testing.T) {
	home := t.TempDir()
	sub := filepath.Join(home, "projects")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	v := NewValidator(home, home)
	if _, err := v.ValidatePath(sub); err != nil {
		t.Errorf("expected home subdirectory to be allowed, got %v", err)
	}
}

func TestIsHomeDirectoryRootPattern(t *testing.T) {
	cases := map[string]bool{
		"/Users/john":          true,
		"/Users/john/projects": false,
		"/home/ubuntu":         true,
		"/home/ubuntu/code":    false,
	}
	for path, want := range cases {
		if got := isHomeDirectoryRootPattern(path); got != want {
			t.Errorf("isHomeDirectoryRootPattern(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestIsSignatureDirectoryDetectsOwnSourceTree(t *testing.T) {
	dir := t.TempDir()
	for _, sig := range signatureFiles[:signatureThreshold] {
		full := filepath.Join(dir, sig)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if !IsSignatureDirectory(dir) {
		t.Error("expected a directory with enough signature files to be detected")
	}
}

func TestIsSignatureDirectoryIgnoresFewSignatures(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, signatureFiles[0])
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if IsSignatureDirectory(dir) {
		t.Error("expected a directory with only one signature file to not be detected")
	}
}
