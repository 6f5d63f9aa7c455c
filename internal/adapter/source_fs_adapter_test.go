package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "gooze.dev/pkg/gomutest/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.go"), "package main\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.go"), "package nested\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, _ os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.go")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s when recursive is false", forbidden)
			}
		}

		if !containsPath(visited, filepath.Join(root, "main.go")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.go")
		writeTestFile(t, child, "package nested\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, _ os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file when recursive")
		}
	})
}

func TestLocalSourceFSAdapter_ReadWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "main.go")
	content := "package main\n" + "func main() {}\n"

	if err := adapter.WriteFile(m.Path(path), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_MkdirRemove(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := adapter.MkdirAll(m.Path(dir)); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	empty, err := adapter.IsEmptyDir(m.Path(dir))
	if err != nil || !empty {
		t.Fatalf("IsEmptyDir() = %v, %v; want true, nil", empty, err)
	}

	file := filepath.Join(dir, "x.go")
	writeTestFile(t, file, "package x\n")

	if empty, _ := adapter.IsEmptyDir(m.Path(dir)); empty {
		t.Fatalf("IsEmptyDir() = true for directory with a file")
	}

	if err := adapter.Remove(m.Path(file)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if err := adapter.Remove(m.Path(file)); err != nil {
		t.Fatalf("Remove() of missing file error = %v", err)
	}

	if err := adapter.Remove(m.Path(dir)); err != nil {
		t.Fatalf("Remove() of empty dir error = %v", err)
	}

	empty, err = adapter.IsEmptyDir(m.Path(dir))
	if err != nil || empty {
		t.Fatalf("IsEmptyDir() of missing dir = %v, %v; want false, nil", empty, err)
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.go")
	writeTestFile(t, path, "package main\n")

	info, err := adapter.FileInfo(m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() {
		t.Fatalf("FileInfo() reported file as directory")
	}

	dirInfo, err := adapter.FileInfo(m.Path(root))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !dirInfo.IsDir() {
		t.Fatalf("FileInfo() reported directory as file")
	}
}

func TestLocalSourceFSAdapter_AbsPath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	got, err := adapter.AbsPath("main.go")
	if err != nil {
		t.Fatalf("AbsPath() error = %v", err)
	}

	if !filepath.IsAbs(string(got)) || filepath.Base(string(got)) != "main.go" {
		t.Fatalf("AbsPath() = %s", got)
	}
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	goModDir := filepath.Join(root, "project")
	mustMkdir(t, goModDir)
	writeTestFile(t, filepath.Join(goModDir, "go.mod"), "module example.com/project\n\ngo 1.25\n")

	subDir := filepath.Join(goModDir, "sub", "pkg")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got, err := adapter.FindProjectRoot(m.Path(filepath.Join(subDir, "file.go")))
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}

	if got != m.Path(goModDir) {
		t.Fatalf("FindProjectRoot() = %s, want %s", got, goModDir)
	}

	modulePath, err := adapter.ModulePath(got)
	if err != nil {
		t.Fatalf("ModulePath() error = %v", err)
	}

	if modulePath != "example.com/project" {
		t.Fatalf("ModulePath() = %s, want example.com/project", modulePath)
	}
}

func TestLocalSourceFSAdapter_ModulePathErrors(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	if _, err := adapter.ModulePath(m.Path(root)); err == nil {
		t.Fatalf("ModulePath() expected error without go.mod")
	}

	writeTestFile(t, filepath.Join(root, "go.mod"), "go 1.25\n")

	if _, err := adapter.ModulePath(m.Path(root)); err == nil {
		t.Fatalf("ModulePath() expected error without module directive")
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
