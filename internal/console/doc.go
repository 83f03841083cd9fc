// Package console writes the colored status lines shared by the create and
// doctor commands. Color is applied only when the destination is a terminal
// and NO_COLOR is unset; the plain text is identical either way so output
// can be grepped and tested.
package console
