package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrUnknownTemplateSet is returned when no template set has the requested name.
var ErrUnknownTemplateSet = errors.New("unknown template set")

// UnsupportedEntryError reports a template tree entry that is neither a
// regular file nor a directory.
type UnsupportedEntryError struct {
	Path string
	Mode fs.FileMode
}

func (e *UnsupportedEntryError) Error() string {
	return fmt.Sprintf("cannot process %s: %s", kindName(e.Mode), e.Path)
}

// UnknownPlaceholderError reports a <%= name %> expression whose name is not
// in the Context.
type UnknownPlaceholderError struct {
	File string
	Line int
	Name string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("%s:%d: unknown placeholder %q", e.File, e.Line, e.Name)
}

// ExpressionError reports a malformed <%= %> expression.
type ExpressionError struct {
	File   string
	Line   int
	Reason string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

func kindName(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode&fs.ModeNamedPipe != 0:
		return "fifo"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeCharDevice != 0:
		return "characterSpecial"
	case mode&fs.ModeDevice != 0:
		return "blockSpecial"
	default:
		return "unknown"
	}
}
