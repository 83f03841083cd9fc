// Package gitconfig queries the git CLI for the settings the doctor checks:
// single config values via "git config --get" and the installed git version.
// A failed or empty query is reported as an absent value, never as an error.
package gitconfig
