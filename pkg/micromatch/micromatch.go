// Package micromatch translates extended-glob ("extglob") pattern syntax
// into an anchored regex source compatible with github.com/dlclark/regexp2.
//
// Plain regexp (RE2) cannot express the negative-lookahead form produced by
// the "!(...)" operator, so the output of this package is only ever fed to
// regexp2.Compile, never to the standard library regexp package.
package micromatch

import (
	"strings"

	"github.com/corvid-labs/globhunt/pkg/globerr"
)

// ExtendedChars are the characters whose presence in a pattern forces
// translation through this package rather than the plain glob-set engine.
const ExtendedChars = "@!+?()[]{}|"

// HasExtended reports whether pattern contains any extended-glob metachar.
func HasExtended(pattern string) bool {
	return strings.ContainsAny(pattern, ExtendedChars)
}

// ToRegex converts an extended-glob pattern to an anchored regex source.
// A "re:" prefix bypasses translation entirely; the remainder is returned
// verbatim (still expected to be anchored by the caller if desired).
func ToRegex(pattern string) (string, error) {
	if rest, ok := strings.CutPrefix(pattern, "re:"); ok {
		return rest, nil
	}
	body, err := translate(pattern)
	if err != nil {
		return "", err
	}
	return "^" + body + "$", nil
}

// translate converts pattern to regex body without the outer anchors, so
// that extglob alternatives (which must not be individually anchored) can
// reuse it.
func translate(pattern string) (string, error) {
	toks := tokenize(pattern)
	var out strings.Builder
	i := 0

	for i < len(toks) {
		tok := toks[i]

		switch {
		case tok.kind == kindEscaped:
			out.WriteString(escapeRegexChar(tok.ch))
			i++

		case tok.kind == kindChar && isExtOperator(tok.ch) && peekIsOpenParen(toks, i+1):
			operator := tok.ch
			j := i + 2 // skip operator + '('
			inner, end, err := collectBalanced(toks, j, '(', ')')
			if err != nil {
				return "", err
			}
			body, err := translateExtglobAlternatives(inner, operator)
			if err != nil {
				return "", err
			}
			out.WriteString(body)
			i = end + 1

		case tok.kind == kindChar && tok.ch == '[':
			inner, end, err := collectBalanced(toks, i+1, '[', ']')
			if err != nil {
				return "", err
			}
			out.WriteString(translateCharClass(inner))
			i = end + 1

		case tok.kind == kindChar && tok.ch == '{':
			inner, end, err := collectBalanced(toks, i+1, '{', '}')
			if err != nil {
				return "", err
			}
			alts := splitTopLevelComma(inner)
			parts := make([]string, 0, len(alts))
			for _, a := range alts {
				p, err := translate(tokensToString(a))
				if err != nil {
					return "", err
				}
				parts = append(parts, p)
			}
			out.WriteString("(?:")
			out.WriteString(strings.Join(parts, "|"))
			out.WriteString(")")
			i = end + 1

		case tok.kind == kindChar && tok.ch == '?':
			out.WriteString(".")
			i++
		case tok.kind == kindChar && tok.ch == '*':
			out.WriteString(".*")
			i++
		case tok.kind == kindChar && tok.ch == '+':
			out.WriteString(".+")
			i++
		case tok.kind == kindChar && (tok.ch == '.' || tok.ch == '^' || tok.ch == '$'):
			out.WriteString(escapeRegexChar(tok.ch))
			i++
		case tok.kind == kindChar:
			out.WriteString(escapeRegexChar(tok.ch))
			i++
		default:
			out.WriteRune(tok.ch)
			i++
		}
	}

	return out.String(), nil
}

func translateExtglobAlternatives(inner []token, operator rune) (string, error) {
	alts := splitTopLevelPipe(inner)
	parts := make([]string, 0, len(alts))
	for _, a := range alts {
		p, err := translate(tokensToString(a))
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	joined := strings.Join(parts, "|")

	switch operator {
	case '@':
		return "(?:" + joined + ")", nil
	case '?':
		return "(?:" + joined + ")?", nil
	case '*':
		return "(?:" + joined + ")*", nil
	case '+':
		return "(?:" + joined + ")+", nil
	case '!':
		return "(?!(?:" + joined + ")).*", nil
	default:
		return "", globerr.New(globerr.InvalidPattern, "invalid extglob operator")
	}
}

func translateCharClass(inner []token) string {
	var class strings.Builder
	negated := false
	for idx, t := range inner {
		if idx == 0 && t.kind == kindChar && t.ch == '!' {
			negated = true
			continue
		}
		if t.kind == kindEscaped {
			class.WriteByte('\\')
		}
		class.WriteRune(t.ch)
	}
	if negated {
		return "[^" + class.String() + "]"
	}
	return "[" + class.String() + "]"
}

func isExtOperator(ch rune) bool {
	switch ch {
	case '@', '!', '+', '?', '*':
		return true
	default:
		return false
	}
}

func peekIsOpenParen(toks []token, i int) bool {
	return i < len(toks) && toks[i].kind == kindChar && toks[i].ch == '('
}

// collectBalanced scans toks starting at index i (which must point just
// past the opener) for a balanced run of open/close, returning the tokens
// inside and the index of the matching closer.
func collectBalanced(toks []token, i int, open, close rune) ([]token, int, error) {
	depth := 1
	var inner []token
	for ; i < len(toks); i++ {
		t := toks[i]
		if t.kind == kindChar && t.ch == open {
			depth++
		} else if t.kind == kindChar && t.ch == close {
			depth--
			if depth == 0 {
				return inner, i, nil
			}
		}
		inner = append(inner, t)
	}
	return nil, 0, globerr.New(globerr.InvalidPattern, "unbalanced group delimiters")
}

func splitTopLevelPipe(toks []token) [][]token {
	return splitTopLevelOn(toks, '|')
}

func splitTopLevelComma(toks []token) [][]token {
	return splitTopLevelOn(toks, ',')
}

func splitTopLevelOn(toks []token, sep rune) [][]token {
	var groups [][]token
	var cur []token
	depth := 0
	for _, t := range toks {
		if t.kind == kindChar {
			switch t.ch {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				if depth > 0 {
					depth--
				}
			}
		}
		if t.kind == kindChar && t.ch == sep && depth == 0 {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)
	return groups
}

func tokensToString(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.kind == kindEscaped {
			sb.WriteByte('\\')
		}
		sb.WriteRune(t.ch)
	}
	return sb.String()
}

func escapeRegexChar(c rune) string {
	switch c {
	case '.', '^', '$', '|', '(', ')', '[', ']', '{', '}', '+', '?', '*', '\\':
		return "\\" + string(c)
	default:
		return string(c)
	}
}

type tokenKind int

const (
	kindChar tokenKind = iota
	kindEscaped
)

type token struct {
	kind tokenKind
	ch   rune
}

func tokenize(s string) []token {
	var out []token
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			out = append(out, token{kind: kindEscaped, ch: runes[i+1]})
			i++
			continue
		}
		out = append(out, token{kind: kindChar, ch: runes[i]})
	}
	return out
}
