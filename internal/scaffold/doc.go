// Package scaffold materializes a template tree into a target directory. It
// powers the "create" command: every file under the template tree is
// rendered by substituting <%= name %> placeholders from a closed Context,
// directories are mirrored, and files that already exist in the target are
// never overwritten, so re-running a scaffold preserves manual edits.
//
// As in ERB, "<%%" renders as a literal "<%", which lets a template set ship
// Chef .erb templates of its own.
package scaffold
