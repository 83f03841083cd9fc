package gitconfig

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
)

// Config keys the doctor reads.
const (
	KeyUserName    = "user.name"
	KeyUserEmail   = "user.email"
	KeyAutoCRLF    = "core.autocrlf"
	KeyGerritURL   = "remote.gerrit.url"
	DefaultBinary  = "git"
	MinimumVersion = "1.7.10"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// Client runs git commands.
type Client struct {
	Binary string // defaults to "git"
	Dir    string // working directory, defaults to the process's
	Logger *log.Logger
}

// New returns a Client for the git on PATH.
func New(logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{Binary: DefaultBinary, Logger: logger}
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return DefaultBinary
	}
	return c.Binary
}

func (c *Client) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

// LookPath returns the resolved path of the git binary.
func (c *Client) LookPath() (string, error) {
	return exec.LookPath(c.binary())
}

// Get returns the trimmed value of key, or "" when it is unset or git fails.
func (c *Client) Get(ctx context.Context, key string) string {
	out, err := c.run(ctx, "config", "--get", key)
	if err != nil {
		c.logger().Debug("git config query failed", "key", key, "err", err)
		return ""
	}
	return out
}

// Version returns the installed git version.
func (c *Client) Version(ctx context.Context) (*semver.Version, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return nil, fmt.Errorf("running %s --version: %w", c.binary(), err)
	}
	return ParseVersion(out)
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary(), args...)
	cmd.Dir = c.Dir
	c.logger().Debug("running git", "args", strings.Join(args, " "))
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ParseVersion extracts a semantic version from "git --version" output such
// as "git version 2.41.0.windows.1" or "git version 2.39.2 (Apple Git-143)".
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version number in %q", output)
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(m[1] + "." + m[2] + "." + patch)
}

// AtLeastMinimum reports whether v satisfies MinimumVersion.
func AtLeastMinimum(v *semver.Version) bool {
	c, err := semver.NewConstraint(">= " + MinimumVersion)
	if err != nil {
		return false
	}
	return c.Check(v)
}
