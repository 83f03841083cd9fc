package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/knife-kitchen/kitchen/internal/config"
	"github.com/knife-kitchen/kitchen/internal/console"
	"github.com/knife-kitchen/kitchen/internal/gitconfig"
	"github.com/knife-kitchen/kitchen/internal/platform"
	"github.com/spf13/viper"
)

func TestRunHealthyWorkstation(t *testing.T) {
	env := newEnv(t)
	out, warnings, err := env.run(t)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if warnings != 0 {
		t.Errorf("warnings = %d, want 0\n%s", warnings, out)
	}

	wantOrder := []string{
		"Check location of knife config",
		"Check chef basics",
		"Check author and copyright info",
		"Check keys exist",
		"Check proxy configuration",
		"Check GIT/Gerrit",
		"Check Vagrant",
		"Check berkshelf",
		"Done !!!",
	}
	pos := -1
	for _, header := range wantOrder {
		i := strings.Index(out, header)
		if i < 0 {
			t.Fatalf("output missing %q\n%s", header, out)
		}
		if i < pos {
			t.Errorf("%q out of order", header)
		}
		pos = i
	}

	wantLines := []string{
		"  [ OK ] chef_server_url is set to 'https://chef.example.com/organizations/acme'",
		"  [ OK ] cookbook_copyright is set to 'Acme'",
		"  [ OK ] the git user.name is set to Jane Doe",
		"  [ OK ] the git core.autocrlf is set to 'input' which is correct for OSX/Linux systems",
		"  [ OK ] git 2.43.0 found at /usr/bin/git",
		"  [ OK ] SSL verify is turned off",
	}
	for _, line := range wantLines {
		if !containsLine(out, line) {
			t.Errorf("output missing line %q\n%s", line, out)
		}
	}
}

func TestRunMissingChefServerURL(t *testing.T) {
	env := newEnv(t)
	env.settings.ChefServerURL = ""

	out, warnings, err := env.run(t)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !containsLine(out, "  [WARN] chef_server_url is not set") {
		t.Errorf("missing WARN line\n%s", out)
	}
	hint := "         chef_server_url should be set to point to your chef server (https://<server.name>/organizations/<orgname>)"
	if !containsLine(out, hint) {
		t.Errorf("missing guidance line\n%s", out)
	}
	if !strings.Contains(out, "Berkshelf chef_server_url does not match knife config") {
		t.Errorf("Berkshelf check should flag the mismatch\n%s", out)
	}
	if warnings != 2 {
		t.Errorf("warnings = %d, want 2\n%s", warnings, out)
	}
}

// Removing one setting must only change the lines about that setting.
func TestChecksAreIndependent(t *testing.T) {
	base := newEnv(t)
	baseline, _, err := base.run(t)
	if err != nil {
		t.Fatalf("baseline Run() error = %v", err)
	}

	tests := []struct {
		key   string
		clear func(*config.Settings)
	}{
		{config.KeyChefServerURL, func(s *config.Settings) { s.ChefServerURL = "" }},
		{config.KeyCookbookPath, func(s *config.Settings) { s.CookbookPath = nil }},
		{config.KeyCookbookCopyright, func(s *config.Settings) { s.CookbookCopyright = "" }},
		{config.KeyCookbookEmail, func(s *config.Settings) { s.CookbookEmail = "" }},
		{config.KeyClientKey, func(s *config.Settings) { s.ClientKey = "" }},
		{config.KeyValidationKey, func(s *config.Settings) { s.ValidationKey = "" }},
		{config.KeyValidationClientName, func(s *config.Settings) { s.ValidationClientName = "" }},
		{config.KeyHTTPProxy, func(s *config.Settings) { s.HTTPProxy = "" }},
		{config.KeyNoProxy, func(s *config.Settings) { s.NoProxy = "" }},
		{config.KeyReviewHost, func(s *config.Settings) { s.ReviewHost = "" }},
		{config.KeyVagrantBoxURL, func(s *config.Settings) { s.VagrantBoxURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			env := newEnv(t)
			tt.clear(env.settings)
			out, warnings, err := env.run(t)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if warnings == 0 {
				t.Errorf("clearing %s produced no warning", tt.key)
			}
			// Paths in the two environments differ, so compare line shapes
			// with the temp roots masked.
			got := withoutKey(mask(out, env.root), tt.key)
			want := withoutKey(mask(baseline, base.root), tt.key)
			if got != want {
				t.Errorf("unrelated lines changed after clearing %s\n--- got\n%s\n--- want\n%s", tt.key, got, want)
			}
		})
	}
}

func TestRunConfigFileMissingStops(t *testing.T) {
	tests := []struct {
		name       string
		configFile func(root string) string
		wantLine   string
	}{
		{
			name:       "unset",
			configFile: func(string) string { return "" },
			wantLine:   "  [WARN] config_file is not set",
		},
		{
			name:       "not found",
			configFile: func(root string) string { return filepath.Join(root, "nope", "knife.yaml") },
			wantLine:   "which cannot be found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			env.settings.ConfigFile = tt.configFile(env.root)

			out, _, err := env.run(t)
			if !errors.Is(err, ErrConfigFileNotFound) {
				t.Fatalf("Run() error = %v, want ErrConfigFileNotFound", err)
			}
			if !strings.Contains(out, tt.wantLine) {
				t.Errorf("output missing %q\n%s", tt.wantLine, out)
			}
			if strings.Contains(out, "Check chef basics") {
				t.Errorf("run continued past a missing config\n%s", out)
			}
		})
	}
}

func TestRunConfigFileUnreadable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{
			name:     "unsupported format",
			err:      viper.UnsupportedConfigError("rb"),
			wantHint: "         The config file must be one of knife.yaml, knife.yml, knife.json, knife.toml",
		},
		{
			name:     "parse failure",
			err:      errors.New("yaml: line 1: did not find expected node content"),
			wantHint: "         yaml: line 1: did not find expected node content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			var buf bytes.Buffer
			d := New(env.settings,
				WithOutput(console.Plain(&buf)),
				WithGit(env.git),
				WithConfigError(&config.FileError{Path: env.settings.ConfigFile, Err: tt.err}),
			)

			err := d.Run(context.Background())
			if !errors.Is(err, ErrConfigFileUnreadable) {
				t.Fatalf("Run() error = %v, want ErrConfigFileUnreadable", err)
			}
			out := buf.String()
			want := "  [WARN] config_file is set to '" + env.settings.ConfigFile + "' which cannot be read"
			if !containsLine(out, want) {
				t.Errorf("output missing %q\n%s", want, out)
			}
			if !containsLine(out, tt.wantHint) {
				t.Errorf("output missing %q\n%s", tt.wantHint, out)
			}
			if strings.Contains(out, "Check chef basics") {
				t.Errorf("run continued past an unreadable config\n%s", out)
			}
		})
	}
}

func TestCookbookPathMultipleValues(t *testing.T) {
	env := newEnv(t)
	missing := filepath.Join(env.root, "gone")
	env.settings.CookbookPath = config.PathList{env.settings.CookbookPath.First(), missing}

	out, _, err := env.run(t)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, line := range []string{
		"  [WARN] cookbook_path has multiple values",
		"  [ OK ] cookbook_path is set to '" + env.settings.CookbookPath[0] + "'",
		"  [WARN] cookbook_path is set to '" + missing + "' which cannot be found",
	} {
		if !containsLine(out, line) {
			t.Errorf("output missing line %q\n%s", line, out)
		}
	}
}

func TestAutoCRLF(t *testing.T) {
	tests := []struct {
		family platform.Family
		value  string
		want   string
	}{
		{platform.Unix, "input", "  [ OK ] the git core.autocrlf is set to 'input' which is correct for OSX/Linux systems"},
		{platform.Windows, "true", "  [ OK ] the git core.autocrlf is set to 'true' which is correct for Windows systems"},
		{platform.Unix, "true", "  [WARN] the git core.autocrlf is set to 'true' but OSX/Linux should use 'input' to prevent line ending problems"},
		{platform.Windows, "input", "  [WARN] the git core.autocrlf is set to 'input' but Windows should use 'true' to prevent line ending problems"},
		{platform.Unix, "", "  [WARN] the git core.autocrlf is set to ''"},
		{platform.Unknown, "input", "  [WARN] the git core.autocrlf is set to 'input' but the line ending convention for this platform is unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.family.String()+"/"+tt.value, func(t *testing.T) {
			var buf bytes.Buffer
			git := healthyGit()
			git.values[gitconfig.KeyAutoCRLF] = tt.value
			d := New(&config.Settings{}, WithOutput(console.Plain(&buf)), WithGit(git), WithPlatform(tt.family))

			d.checkAutoCRLF(context.Background())

			if !containsLine(buf.String(), tt.want) {
				t.Errorf("got %q, want line %q", buf.String(), tt.want)
			}
		})
	}
}

func TestGitChecks(t *testing.T) {
	t.Run("not installed", func(t *testing.T) {
		var buf bytes.Buffer
		git := &fakeGit{lookErr: errors.New("not found"), values: map[string]string{}}
		d := New(&config.Settings{}, WithOutput(console.Plain(&buf)), WithGit(git), WithPlatform(platform.Unix))

		d.CheckGit(context.Background())

		out := buf.String()
		for _, line := range []string{
			"  [WARN] git is not installed or not on your PATH",
			"  [WARN] the git user.name is not set. Add it using:-",
			"         git config --global user.name <username>",
			"         git config --global user.email <email address>",
			"  [WARN] we don't seem to have a git remote called gerrit.",
			"         git review -s",
		} {
			if !containsLine(out, line) {
				t.Errorf("output missing line %q\n%s", line, out)
			}
		}
	})

	t.Run("too old", func(t *testing.T) {
		var buf bytes.Buffer
		git := healthyGit()
		git.version = semver.MustParse("1.7.9")
		d := New(&config.Settings{}, WithOutput(console.Plain(&buf)), WithGit(git), WithPlatform(platform.Unix))

		d.checkGitBinary(context.Background())

		want := "  [WARN] git 1.7.9 found at /usr/bin/git is older than 1.7.10"
		if !containsLine(buf.String(), want) {
			t.Errorf("got %q, want line %q", buf.String(), want)
		}
	})

	t.Run("version unknown", func(t *testing.T) {
		var buf bytes.Buffer
		git := healthyGit()
		git.versionErr = errors.New("boom")
		d := New(&config.Settings{}, WithOutput(console.Plain(&buf)), WithGit(git))

		d.checkGitBinary(context.Background())

		if !strings.Contains(buf.String(), "version could not be determined") {
			t.Errorf("got %q", buf.String())
		}
	})
}

func TestBerkshelfMissing(t *testing.T) {
	env := newEnv(t)
	env.berksPath = filepath.Join(env.root, "no-berks", "config.json")

	out, _, err := env.run(t)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "[WARN] Berkshelf Config is set to") {
		t.Errorf("missing Berkshelf WARN\n%s", out)
	}
	if !containsLine(out, "         You dont have a Berkshelf config. Try running 'berks config'") {
		t.Errorf("missing Berkshelf hint\n%s", out)
	}
	if strings.Contains(out, "Done !!!") {
		t.Errorf("Done printed without a Berkshelf config\n%s", out)
	}
}

func TestBerkshelfMismatch(t *testing.T) {
	env := newEnv(t)
	writeFile(t, env.berksPath, `{
  "ssl": {"verify": true},
  "chef": {
    "chef_server_url": "https://other.example.com",
    "validation_key_path": "/elsewhere/validator.pem",
    "client_key": "/elsewhere/client.pem"
  }
}`)

	out, warnings, err := env.run(t)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, line := range []string{
		"  [WARN] SSL verify is 'true'... you should set it to 'false' to allow connecting to Chef server",
		"  [WARN] Berkshelf chef_server_url does not match knife config. It's set to 'https://other.example.com'",
		"  [WARN] Berkshelf validation_key_path does not match knife config. It's set to '/elsewhere/validator.pem'",
		"  [WARN] Berkshelf client_key does not match knife config. It's set to '/elsewhere/client.pem'",
		"Done !!!",
	} {
		if !containsLine(out, line) {
			t.Errorf("output missing line %q\n%s", line, out)
		}
	}
	if warnings != 4 {
		t.Errorf("warnings = %d, want 4\n%s", warnings, out)
	}
}

func TestBerkshelfSchemaIssues(t *testing.T) {
	env := newEnv(t)
	writeFile(t, env.berksPath, `{"ssl": {"verify": false}}`)

	out, _, err := env.run(t)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "[WARN] Berkshelf config ") {
		t.Errorf("schema issues not reported\n%s", out)
	}
	if !containsLine(out, "Done !!!") {
		t.Errorf("Berkshelf section did not finish\n%s", out)
	}
}

func TestBerkshelfUnparseable(t *testing.T) {
	env := newEnv(t)
	writeFile(t, env.berksPath, `{"ssl": `)

	out, _, err := env.run(t)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "[WARN] Berkshelf config cannot be parsed") {
		t.Errorf("parse failure not reported\n%s", out)
	}
}

// ─── Test Helpers ───

type fakeGit struct {
	path       string
	lookErr    error
	version    *semver.Version
	versionErr error
	values     map[string]string
}

func (g *fakeGit) LookPath() (string, error) {
	if g.lookErr != nil {
		return "", g.lookErr
	}
	return g.path, nil
}

func (g *fakeGit) Version(context.Context) (*semver.Version, error) {
	if g.versionErr != nil {
		return nil, g.versionErr
	}
	return g.version, nil
}

func (g *fakeGit) Get(_ context.Context, key string) string {
	return g.values[key]
}

func healthyGit() *fakeGit {
	return &fakeGit{
		path:    "/usr/bin/git",
		version: semver.MustParse("2.43.0"),
		values: map[string]string{
			gitconfig.KeyUserName:  "Jane Doe",
			gitconfig.KeyUserEmail: "jane@example.com",
			gitconfig.KeyAutoCRLF:  "input",
			gitconfig.KeyGerritURL: "ssh://jane@review.example.com:29418/cookbooks",
		},
	}
}

type env struct {
	root      string
	settings  *config.Settings
	git       *fakeGit
	berksPath string
}

// newEnv lays out a workstation where every check passes.
func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	chef := filepath.Join(root, ".chef")
	cookbooks := filepath.Join(root, "cookbooks")
	if err := os.MkdirAll(cookbooks, 0o755); err != nil {
		t.Fatal(err)
	}
	configFile := filepath.Join(chef, "knife.yaml")
	clientKey := filepath.Join(chef, "client.pem")
	validationKey := filepath.Join(chef, "validator.pem")
	writeFile(t, configFile, "node_name: jane\n")
	writeFile(t, clientKey, "key")
	writeFile(t, validationKey, "key")

	berksPath := filepath.Join(root, ".berkshelf", "config.json")
	writeFile(t, berksPath, `{
  // written by berks config
  "ssl": {"verify": false},
  "chef": {
    "chef_server_url": "https://chef.example.com/organizations/acme",
    "validation_key_path": "`+filepath.ToSlash(validationKey)+`",
    "client_key": "`+filepath.ToSlash(clientKey)+`",
  },
}`)

	return &env{
		root: root,
		settings: &config.Settings{
			ConfigFile:           configFile,
			ChefServerURL:        "https://chef.example.com/organizations/acme",
			CookbookPath:         config.PathList{cookbooks},
			CookbookCopyright:    "Acme",
			CookbookEmail:        "cookbooks@example.com",
			ClientKey:            clientKey,
			ValidationKey:        validationKey,
			ValidationClientName: "acme-validator",
			HTTPProxy:            "http://proxy.example.com:3128",
			HTTPSProxy:           "http://proxy.example.com:3128",
			BootstrapProxy:       "http://proxy.example.com:3128",
			NoProxy:              "localhost,*.example.com",
			ReviewHost:           "review.example.com",
			VagrantBox:           "ge_windows2008r2",
			VagrantBoxURL:        "http://boxes.example.com/ge_windows2008r2.box",
		},
		git:       healthyGit(),
		berksPath: berksPath,
	}
}

func (e *env) run(t *testing.T) (string, int, error) {
	t.Helper()
	var buf bytes.Buffer
	w := console.Plain(&buf)
	d := New(e.settings,
		WithOutput(w),
		WithGit(e.git),
		WithPlatform(platform.Unix),
		WithBerkshelfPath(e.berksPath),
	)
	err := d.Run(context.Background())
	return buf.String(), w.Warnings(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func containsLine(out, want string) bool {
	for _, line := range strings.Split(out, "\n") {
		if line == want {
			return true
		}
	}
	return false
}

func mask(out, root string) string {
	return strings.ReplaceAll(out, root, "ROOT")
}

// withoutKey drops every line mentioning key along with the hint lines
// that follow it.
func withoutKey(out, key string) string {
	var kept []string
	skipping := false
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, key) {
			skipping = true
			continue
		}
		if skipping && strings.HasPrefix(line, "         ") {
			continue
		}
		skipping = false
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
