package highlight

import (
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/relens/internal/markup"
)

// entities are the only sequences markup.Escape produces.
var entities = []string{"&amp;", "&lt;", "&gt;"}

// Lexer scans an escaped pattern.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a lexer over already escaped input.
func NewLexer(escaped string) *Lexer {
	return &Lexer{input: escaped}
}

// Tokenize escapes translated and splits it into classified tokens.
// The concatenated token texts always equal markup.Escape(translated).
func Tokenize(translated string) []Token {
	l := NewLexer(markup.Escape(translated))
	var tokens []Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token, or false at end of input.
func (l *Lexer) NextToken() (Token, bool) {
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	rest := l.input[start:]

	switch ch := rest[0]; {
	case strings.HasPrefix(rest, "(?:"):
		return l.emit(start, 3, CategoryGroup), true
	case ch == '(' || ch == ')':
		return l.emit(start, 1, CategoryGroup), true
	case ch == '[':
		return l.bracketed(start, ']', CategoryClass), true
	case ch == '{':
		return l.bracketed(start, '}', CategoryQuant), true
	case ch == '\\':
		return l.escapeSeq(start), true
	case ch == '*' || ch == '+' || ch == '?':
		return l.emit(start, 1, CategoryQuant), true
	case ch == '|':
		return l.emit(start, 1, CategoryAlt), true
	case isSpecial(ch):
		// stray ] or }
		return l.plainChar(start), true
	default:
		return l.plainRun(start), true
	}
}

func (l *Lexer) emit(start, n int, cat Category) Token {
	l.pos = start + n
	return Token{Text: l.input[start:l.pos], Category: cat, Pos: start}
}

// bracketed matches open...close with at least one character inside; the
// first close wins.
func (l *Lexer) bracketed(start int, closer byte, cat Category) Token {
	idx := strings.IndexByte(l.input[start+1:], closer)
	if idx <= 0 {
		return l.plainChar(start)
	}
	return l.emit(start, idx+2, cat)
}

// escapeSeq handles \ plus one character. An entity after the backslash
// counts as one character.
func (l *Lexer) escapeSeq(start int) Token {
	next := start + 1
	if next >= len(l.input) {
		return l.plainChar(start)
	}
	if n := entityLen(l.input[next:]); n > 0 {
		return l.emit(start, 1+n, CategoryLiteral)
	}
	_, size := utf8.DecodeRuneInString(l.input[next:])
	return l.emit(start, 1+size, CategoryLiteral)
}

func (l *Lexer) plainChar(start int) Token {
	tok := l.emit(start, 1, CategoryPlain)
	tok.Units = []Unit{{Text: tok.Text, Category: CategoryPlain}}
	return tok
}

// plainRun consumes the maximal run of non-special characters and splits it
// into literal units (ASCII alphanumerics) and filler units.
func (l *Lexer) plainRun(start int) Token {
	var units []Unit
	fillerStart := -1
	flush := func(end int) {
		if fillerStart >= 0 {
			units = append(units, Unit{Text: l.input[fillerStart:end], Category: CategoryPlain})
			fillerStart = -1
		}
	}

	i := start
	for i < len(l.input) && !isSpecial(l.input[i]) {
		ch := l.input[i]
		switch {
		case isAlnum(ch):
			flush(i)
			units = append(units, Unit{Text: l.input[i : i+1], Category: CategoryLiteral})
			i++
		case ch == '&':
			if fillerStart < 0 {
				fillerStart = i
			}
			i += max(entityLen(l.input[i:]), 1)
		default:
			if fillerStart < 0 {
				fillerStart = i
			}
			_, size := utf8.DecodeRuneInString(l.input[i:])
			i += size
		}
	}
	flush(i)

	l.pos = i
	return Token{Text: l.input[start:i], Category: CategoryPlain, Pos: start, Units: units}
}

func entityLen(s string) int {
	for _, e := range entities {
		if strings.HasPrefix(s, e) {
			return len(e)
		}
	}
	return 0
}

func isSpecial(ch byte) bool {
	return strings.IndexByte(`(){}[]*+?|\`, ch) >= 0
}

func isAlnum(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
