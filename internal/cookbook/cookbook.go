package cookbook

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/knife-kitchen/kitchen/internal/config"
	"github.com/knife-kitchen/kitchen/internal/scaffold"
)

//go:embed all:skeleton
var skeletonFS embed.FS

const skeletonRoot = "skeleton"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

var (
	// ErrInvalidName is returned for cookbook names that are not a single
	// path segment of letters, digits, '-' and '_'.
	ErrInvalidName = errors.New("invalid cookbook name")

	// ErrNoCookbookPath is returned when cookbook_path is not configured.
	ErrNoCookbookPath = errors.New("cookbook_path is not set")
)

// ValidateName checks that name can be used as a cookbook directory name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w %q: must match pattern [A-Za-z0-9][A-Za-z0-9_-]*", ErrInvalidName, name)
	}
	return nil
}

// Dir returns the directory the cookbook lives in: the first entry of
// cookbook_path joined with name. Additional cookbook paths are ignored.
func Dir(name string, s *config.Settings) (string, error) {
	base := s.CookbookPath.First()
	if base == "" {
		return "", ErrNoCookbookPath
	}
	return filepath.Join(config.ExpandPath(base), name), nil
}

// Create renders the base cookbook layout into Dir(name, s). Existing files
// are left untouched.
func Create(name string, s *config.Settings, ctx scaffold.Context, opts ...scaffold.Option) (*scaffold.Result, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	dir, err := Dir(name, s)
	if err != nil {
		return nil, err
	}
	result, err := scaffold.Scaffold(skeletonFS, skeletonRoot, dir, ctx, opts...)
	if err != nil {
		return result, fmt.Errorf("creating cookbook %s: %w", name, err)
	}
	return result, nil
}

// ContextParams returns the cookbook-authoring parameters from s. Callers
// fill in the box and port values before building a scaffold.Context.
func ContextParams(name string, s *config.Settings) scaffold.Params {
	return scaffold.Params{
		CookbookName:  name,
		VagrantBox:    s.VagrantBox,
		VagrantBoxURL: s.VagrantBoxURL,
		ReviewHost:    s.ReviewHost,
		Copyright:     s.CookbookCopyright,
		Email:         s.CookbookEmail,
		License:       s.CookbookLicense,
	}
}
