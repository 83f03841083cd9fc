package scaffold

import (
	"bytes"
	"regexp"
	"strconv"
)

var (
	tagStart  = []byte("<%")
	openTag   = []byte("<%=")
	escapeTag = []byte("<%%")
	closeTag  = []byte("%>")

	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Render substitutes every <%= name %> expression in content with the value
// bound to name in ctx. As in ERB, <%% is written out as a literal <%, so a
// template can emit ERB tags of its own. Other text, including <% %> tags
// without "=", is copied unchanged. file is used only in error messages.
func Render(content []byte, ctx Context, file string) ([]byte, error) {
	if !bytes.Contains(content, openTag) && !bytes.Contains(content, escapeTag) {
		return content, nil
	}

	var out bytes.Buffer
	out.Grow(len(content))

	rest := content
	offset := 0
	for {
		start := bytes.Index(rest, tagStart)
		if start < 0 {
			out.Write(rest)
			return out.Bytes(), nil
		}
		out.Write(rest[:start])

		switch {
		case bytes.HasPrefix(rest[start:], escapeTag):
			out.Write(tagStart)
			consumed := start + len(escapeTag)
			rest = rest[consumed:]
			offset += consumed
			continue
		case !bytes.HasPrefix(rest[start:], openTag):
			out.Write(tagStart)
			consumed := start + len(tagStart)
			rest = rest[consumed:]
			offset += consumed
			continue
		}

		exprStart := start + len(openTag)
		end := bytes.Index(rest[exprStart:], closeTag)
		if end < 0 {
			return nil, &ExpressionError{
				File:   file,
				Line:   lineAt(content, offset+start),
				Reason: "unterminated <%= expression",
			}
		}

		expr := string(bytes.TrimSpace(rest[exprStart : exprStart+end]))
		if !identPattern.MatchString(expr) {
			return nil, &ExpressionError{
				File:   file,
				Line:   lineAt(content, offset+start),
				Reason: "expression " + strconv.Quote(expr) + " is not a placeholder name",
			}
		}
		value, ok := ctx.Lookup(expr)
		if !ok {
			return nil, &UnknownPlaceholderError{
				File: file,
				Line: lineAt(content, offset+start),
				Name: expr,
			}
		}
		out.WriteString(value)

		consumed := exprStart + end + len(closeTag)
		rest = rest[consumed:]
		offset += consumed
	}
}

func lineAt(content []byte, pos int) int {
	return bytes.Count(content[:pos], []byte("\n")) + 1
}
