package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Result holds the outcome of a scaffold run. Paths are target paths.
type Result struct {
	TargetDir   string
	DirsCreated []string
	Files       []string
	Skipped     []string
}

type options struct {
	output io.Writer
	logger *log.Logger
}

// Option configures Scaffold.
type Option func(*options)

// WithOutput sets where progress lines are printed. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithLogger sets the logger used for debug messages.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func defaultOptions() *options {
	return &options{
		output: io.Discard,
		logger: log.New(io.Discard),
	}
}

// Scaffold renders the template tree rooted at root in src into targetRoot.
//
// Directories are mirrored (created when missing); regular files are
// rendered with ctx unless something already exists at the target path, in
// which case they are skipped. Any other entry kind aborts the run with an
// *UnsupportedEntryError before later siblings are processed. Entries are
// visited in lexical order. Files written before an error stay on disk.
func Scaffold(src fs.FS, root, targetRoot string, ctx Context, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	result := &Result{TargetDir: targetRoot}
	if err := scaffoldDir(src, root, targetRoot, ctx, o, result); err != nil {
		return result, err
	}
	return result, nil
}

func scaffoldDir(src fs.FS, dir, target string, ctx Context, o *options, result *Result) error {
	exists, err := pathExists(target)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Fprintf(o.output, "Create Dir:  %s\n", target)
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", target, err)
		}
		result.DirsCreated = append(result.DirsCreated, target)
	}

	entries, err := fs.ReadDir(src, dir)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		srcPath := path.Join(dir, entry.Name())
		dstPath := filepath.Join(target, entry.Name())

		mode := entry.Type()
		switch {
		case mode.IsDir():
			if err := scaffoldDir(src, srcPath, dstPath, ctx, o, result); err != nil {
				return err
			}

		case mode.IsRegular():
			exists, err := pathExists(dstPath)
			if err != nil {
				return err
			}
			if exists {
				o.logger.Debug("skipping existing file", "path", dstPath)
				result.Skipped = append(result.Skipped, dstPath)
				continue
			}
			if err := renderFile(src, srcPath, dstPath, ctx, o); err != nil {
				return err
			}
			result.Files = append(result.Files, dstPath)

		default:
			return &UnsupportedEntryError{Path: srcPath, Mode: mode}
		}
	}
	return nil
}

func renderFile(src fs.FS, srcPath, dstPath string, ctx Context, o *options) error {
	content, err := fs.ReadFile(src, srcPath)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", srcPath, err)
	}

	rendered, err := Render(content, ctx, srcPath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dstPath, rendered, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dstPath, err)
	}
	fmt.Fprintf(o.output, "Render file: %s\n", dstPath)
	o.logger.Debug("rendered template", "template", srcPath, "bytes", len(rendered))
	return nil
}

// pathExists reports whether anything (file, directory or link) is at p.
func pathExists(p string) (bool, error) {
	_, err := os.Lstat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", p, err)
}
