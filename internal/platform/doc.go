// Package platform answers the OS questions the tools branch on: which
// line-ending family the host belongs to (resolved once from runtime.GOOS
// into a Family value) and whether native symlinks can be created.
package platform
