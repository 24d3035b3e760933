package ninja

import (
	"log/slog"
	"strings"
)

// Escape returns s escaped for a value position (the right-hand side of a
// binding). Only the interpolation marker needs escaping there: spaces,
// colons and pipes are literal text inside a value.
//
//	Escape("$foo")     // "$$foo"
//	Escape("foo: bar") // "foo: bar"
func Escape(s string) string {
	if !strings.ContainsRune(s, '$') {
		return s
	}

	return strings.ReplaceAll(s, "$", "$$")
}

// EscapePath returns s escaped for a path position (outputs, inputs, default
// targets, include paths). Spaces separate paths and colons terminate the
// output list, so both are escaped along with the interpolation marker.
//
//	EscapePath("my file.c") // "my$ file.c"
//	EscapePath("C:/x")      // "C$:/x"
func EscapePath(s string) string {
	if !strings.ContainsAny(s, "$ :") {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s) + len(s)/4)

	for i := range len(s) {
		switch c := s[i]; c {
		case '$', ' ', ':':
			sb.WriteByte('$')
			sb.WriteByte(c)

		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// escapeLeadingSpace escapes the run of spaces at the start of an already
// rendered value. Ninja skips whitespace following "=", so those spaces
// would otherwise be lost.
func escapeLeadingSpace(s string) string {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}

	if n == 0 {
		return s
	}

	return strings.Repeat("$ ", n) + s[n:]
}

// IsIdentifier reports whether s is a valid name for a variable, rule or
// pool: one or more of [A-Za-z0-9_.-].
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if !isIdentByte(s[i]) {
			return false
		}
	}

	return true
}

func isIdentByte(c byte) bool {
	return isSimpleVarByte(c) || c == '.'
}

// isSimpleVarByte reports whether c may appear in an unbraced reference
// ("$name").
func isSimpleVarByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

// ValidateIdentifier returns an error wrapping [ErrInvalidInput] unless name
// is a valid identifier. The kind ("rule", "pool", "variable", ...) is
// attached to the error for logging.
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return ErrEmptyName.With(slog.String("kind", kind))
	}

	if !IsIdentifier(name) {
		return ErrBadIdentifier.With(
			slog.String("kind", kind),
			slog.String("name", name),
		)
	}

	return nil
}

// ValidatePath returns an error wrapping [ErrInvalidInput] unless p can be
// written in a path position. Empty paths and paths containing a line
// terminator, NUL or "|" have no escaped form.
func ValidatePath(p string) error {
	if p == "" || strings.ContainsAny(p, "\r\n\x00|") {
		return ErrBadPath.With(slog.String("path", p))
	}

	return nil
}

// ValidateText returns an error wrapping [ErrInvalidInput] if s contains a
// character that cannot appear in a value: a line terminator or NUL.
func ValidateText(s string) error {
	if strings.ContainsAny(s, "\r\n\x00") {
		return ErrBadText.With(slog.String("text", s))
	}

	return nil
}

// validatePaths validates every element of paths.
func validatePaths(paths []string) error {
	for _, p := range paths {
		if err := ValidatePath(p); err != nil {
			return err
		}
	}

	return nil
}

// validateTemplate checks that s is well-formed value text: every "$"
// starts one of the escapes ninja understands.
func validateTemplate(s string) error {
	if err := ValidateText(s); err != nil {
		return err
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			continue
		}

		i++

		if i >= len(s) {
			return ErrBadEscape.With(slog.String("text", s))
		}

		switch c := s[i]; {
		case c == '$' || c == ' ' || c == ':':

		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 || !IsIdentifier(s[i+1:i+end]) {
				return ErrBadEscape.With(slog.String("text", s))
			}

			i += end

		case isSimpleVarByte(c):
			for i+1 < len(s) && isSimpleVarByte(s[i+1]) {
				i++
			}

		default:
			return ErrBadEscape.With(slog.String("text", s))
		}
	}

	return nil
}
