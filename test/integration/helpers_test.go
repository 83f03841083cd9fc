//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // HOME, holds .chef/ and .berkshelf/
	ChefDir      string // HOME/.chef
	CookbooksDir string // cookbook_path
	ProjectDir   string // a working directory below HOME
}

// setupTestEnv creates an isolated home with a knife config and points HOME
// and git's global config at it. The env vars are restored after the test.
func setupTestEnv(t *testing.T, knifeYAML string) *testEnv {
	t.Helper()

	home := t.TempDir()
	env := &testEnv{
		HomeDir:      home,
		ChefDir:      filepath.Join(home, ".chef"),
		CookbooksDir: filepath.Join(home, "cookbooks"),
		ProjectDir:   filepath.Join(home, "work", "project"),
	}

	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("KITCHEN_CONFIG", "")

	for _, dir := range []string{env.ChefDir, env.CookbooksDir, env.ProjectDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	writeFile(t, filepath.Join(env.ChefDir, "knife.yaml"), knifeYAML)

	return env
}

// gitGlobal sets a key in the isolated global git config.
func gitGlobal(t *testing.T, key, value string) {
	t.Helper()
	out, err := exec.Command("git", "config", "--global", key, value).CombinedOutput()
	if err != nil {
		t.Fatalf("git config --global %s: %v\n%s", key, err, out)
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
