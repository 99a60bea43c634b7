// Package lexer splits a SQL statement into tokens.
package lexer

import (
	"fmt"
	"iter"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

type Kind int

const (
	EOF Kind = iota
	Keyword
	Ident
	Integer
	Real
	String
	LParen
	RParen
	Comma
	Semicolon
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Keyword:
		return "keyword"
	case Ident:
		return "identifier"
	case Integer:
		return "integer literal"
	case Real:
		return "real literal"
	case String:
		return "string literal"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	case Semicolon:
		return "';'"
	default:
		return "unknown"
	}
}

// Span locates a token in the source. Offset and End are byte offsets,
// Line and Column are 1-based.
type Span struct {
	Offset int
	End    int
	Line   int
	Column int
}

type Token struct {
	Kind Kind
	// Text is the token as it should be interpreted: keywords upper-cased,
	// string literals unquoted.
	Text string
	// Raw is the exact source text.
	Raw  string
	Span Span
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Keyword:
		return t.Text
	case LParen, RParen, Comma, Semicolon:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%s %s", t.Kind, t.Raw)
	}
}

// Is reports whether t is the given keyword.
func (t Token) Is(keyword string) bool {
	return t.Kind == Keyword && t.Text == keyword
}

var keywords = map[string]struct{}{
	"CREATE":  {},
	"TABLE":   {},
	"INSERT":  {},
	"INTO":    {},
	"VALUES":  {},
	"NOT":     {},
	"NULL":    {},
	"UNIQUE":  {},
	"PRIMARY": {},
	"KEY":     {},
	"TRUE":    {},
	"FALSE":   {},
}

func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// Error is returned for malformed input such as an unterminated string.
type Error struct {
	Msg  string
	Span Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Span.Line, e.Span.Column, e.Msg)
}

// Rules are tried in order; the first match wins. Unterminated and Illegal
// catch everything the real rules reject so the scanner itself never fails.
var sqlLexer = plexer.MustSimple([]plexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Unterminated", Pattern: `'(?:[^']|'')*`},
	{Name: "Real", Pattern: `[-+]?(?:\d+\.\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Integer", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(),;]`},
	{Name: "Illegal", Pattern: `.`},
})

var symbols = func() map[plexer.TokenType]string {
	out := make(map[plexer.TokenType]string)
	for name, tt := range sqlLexer.Symbols() {
		out[tt] = name
	}
	return out
}()

// Lexer produces tokens one at a time. It is restartable through Reset.
type Lexer struct {
	src  string
	lx   plexer.Lexer
	done bool
	last Span
}

func New(src string) *Lexer {
	l := &Lexer{src: src}
	l.Reset()
	return l
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.lx = nil
	l.done = false
	l.last = Span{Line: 1, Column: 1}
}

// Next returns the next token. After EOF or an error it keeps returning the
// same EOF token.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return l.eof(), nil
	}
	if l.lx == nil {
		lx, err := sqlLexer.LexString("", l.src)
		if err != nil {
			l.done = true
			return Token{}, &Error{Msg: err.Error(), Span: l.last}
		}
		l.lx = lx
	}

	for {
		pt, err := l.lx.Next()
		if err != nil {
			l.done = true
			return Token{}, &Error{Msg: err.Error(), Span: l.last}
		}
		if pt.EOF() {
			l.done = true
			return l.eof(), nil
		}

		span := Span{
			Offset: pt.Pos.Offset,
			End:    pt.Pos.Offset + len(pt.Value),
			Line:   pt.Pos.Line,
			Column: pt.Pos.Column,
		}
		l.last = span

		tok := Token{Raw: pt.Value, Text: pt.Value, Span: span}
		switch symbols[pt.Type] {
		case "Comment", "Whitespace":
			continue
		case "String":
			tok.Kind = String
			tok.Text = strings.ReplaceAll(pt.Value[1:len(pt.Value)-1], "''", "'")
		case "Unterminated":
			l.done = true
			return Token{}, &Error{Msg: "unterminated string literal", Span: span}
		case "Real":
			tok.Kind = Real
		case "Integer":
			tok.Kind = Integer
		case "Ident":
			if up := strings.ToUpper(pt.Value); IsKeyword(up) {
				tok.Kind = Keyword
				tok.Text = up
			} else {
				tok.Kind = Ident
			}
		case "Punct":
			switch pt.Value {
			case "(":
				tok.Kind = LParen
			case ")":
				tok.Kind = RParen
			case ",":
				tok.Kind = Comma
			default:
				tok.Kind = Semicolon
			}
		default:
			l.done = true
			return Token{}, &Error{Msg: fmt.Sprintf("illegal character %q", pt.Value), Span: span}
		}
		return tok, nil
	}
}

func (l *Lexer) eof() Token {
	end := len(l.src)
	line, col := 1, 1
	for _, r := range l.src {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Token{Kind: EOF, Span: Span{Offset: end, End: end, Line: line, Column: col}}
}

// Tokenize returns a lazy token sequence over src. The sequence ends after
// EOF (which is not yielded) or after the first error. Ranging over it again
// starts from the beginning.
func Tokenize(src string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		l := New(src)
		for {
			tok, err := l.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if tok.Kind == EOF {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// All collects every token of src, without the trailing EOF.
func All(src string) ([]Token, error) {
	var out []Token
	for tok, err := range Tokenize(src) {
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}
