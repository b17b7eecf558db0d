package metadata

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

// ErrEmptyName indicates a short name was requested for an empty package name.
var ErrEmptyName = errors.New("package name is empty")

// namespacePrefixes are stripped from the start of a package name before
// camel-casing. Only one prefix is removed.
var namespacePrefixes = []string{"postcss-", "cssnano-util-"}

// ShortName derives the display identifier of a package: a leading
// "postcss-" or "cssnano-util-" is removed and the rest is camel-cased,
// so "cssnano-util-get-arguments" becomes "getArguments".
func ShortName(pkgName string) (string, error) {
	if pkgName == "" {
		return "", ErrEmptyName
	}

	name := pkgName
	for _, prefix := range namespacePrefixes {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			name = rest
			break
		}
	}

	return camelCase(name), nil
}

func isWordSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}

// camelCase joins separator-delimited words: the first word lower-cased,
// every following word with an upper-case first letter.
func camelCase(s string) string {
	words := strings.FieldsFunc(s, isWordSeparator)

	var b strings.Builder
	b.Grow(len(s))
	for i, word := range words {
		word = strings.ToLower(word)
		if i == 0 {
			b.WriteString(word)
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(word[size:])
	}
	return b.String()
}
