package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSet is the template set used when none is named.
const DefaultSet = "default"

const builtinRoot = "templates"

//go:embed all:templates
var builtinFS embed.FS

// Origin says where a template set was found.
type Origin string

const (
	OriginUser    Origin = "user"
	OriginBuiltin Origin = "built-in"
)

// Set is a named template tree.
type Set struct {
	Name     string
	Origin   Origin
	Location string // directory on disk, or the embedded path
	FS       fs.FS
	Root     string
}

// Scaffold renders the set into targetRoot.
func (s *Set) Scaffold(targetRoot string, ctx Context, opts ...Option) (*Result, error) {
	return Scaffold(s.FS, s.Root, targetRoot, ctx, opts...)
}

// FindSet resolves a template set by name. Sets under userDir take
// precedence over the built-in ones. userDir may be empty or missing.
func FindSet(name, userDir string) (*Set, error) {
	if name == "" {
		name = DefaultSet
	}
	if !fs.ValidPath(name) || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w %q: invalid name", ErrUnknownTemplateSet, name)
	}

	if userDir != "" {
		location := filepath.Join(userDir, name)
		if info, err := os.Stat(location); err == nil && info.IsDir() {
			return &Set{
				Name:     name,
				Origin:   OriginUser,
				Location: location,
				FS:       os.DirFS(userDir),
				Root:     name,
			}, nil
		}
	}

	root := path.Join(builtinRoot, name)
	if info, err := fs.Stat(builtinFS, root); err == nil && info.IsDir() {
		return &Set{
			Name:     name,
			Origin:   OriginBuiltin,
			Location: root,
			FS:       builtinFS,
			Root:     root,
		}, nil
	}

	available, _ := ListSets(userDir)
	names := make([]string, 0, len(available))
	for _, s := range available {
		names = append(names, s.Name)
	}
	return nil, fmt.Errorf("%w %q; available template sets: %s",
		ErrUnknownTemplateSet, name, strings.Join(names, ", "))
}

// ListSets returns every resolvable set, user sets shadowing built-in sets
// of the same name, sorted by name.
func ListSets(userDir string) ([]*Set, error) {
	byName := make(map[string]*Set)

	entries, err := fs.ReadDir(builtinFS, builtinRoot)
	if err != nil {
		return nil, fmt.Errorf("reading built-in templates: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		root := path.Join(builtinRoot, e.Name())
		byName[e.Name()] = &Set{Name: e.Name(), Origin: OriginBuiltin, Location: root, FS: builtinFS, Root: root}
	}

	if userDir != "" {
		userEntries, err := os.ReadDir(userDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading template directory %s: %w", userDir, err)
		}
		for _, e := range userEntries {
			if !e.IsDir() {
				continue
			}
			byName[e.Name()] = &Set{
				Name:     e.Name(),
				Origin:   OriginUser,
				Location: filepath.Join(userDir, e.Name()),
				FS:       os.DirFS(userDir),
				Root:     e.Name(),
			}
		}
	}

	sets := make([]*Set, 0, len(byName))
	for _, s := range byName {
		sets = append(sets, s)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Name < sets[j].Name })
	return sets, nil
}
