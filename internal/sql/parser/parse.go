package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tuannm99/sqlrite/internal/sql/lexer"
)

// Error is a syntax error: the token at Pos did not match what the grammar
// expected.
type Error struct {
	Pos      lexer.Span
	Expected string
	Found    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: expected %s, found %s",
		e.Pos.Line, e.Pos.Column, e.Expected, e.Found)
}

// Parse parses a single SQL statement into an AST. A terminating ';' is
// optional; anything after it is an error.
func Parse(sql string) (Statement, error) {
	p := &parser{lx: lexer.New(sql)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var (
		stmt Statement
		err  error
	)
	switch {
	case p.tok.Is("CREATE"):
		stmt, err = p.parseCreateTable()
	case p.tok.Is("INSERT"):
		stmt, err = p.parseInsert()
	default:
		return nil, p.errorf("CREATE or INSERT")
	}
	if err != nil {
		return nil, err
	}

	if p.tok.Kind == lexer.Semicolon {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.errorf("end of statement")
	}
	return stmt, nil
}

// parser is a recursive-descent parser with one token of lookahead.
type parser struct {
	lx  *lexer.Lexer
	tok lexer.Token
}

func (p *parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(expected string) error {
	return &Error{Pos: p.tok.Span, Expected: expected, Found: p.tok.String()}
}

func (p *parser) expectKeyword(kw string) error {
	if !p.tok.Is(kw) {
		return p.errorf(kw)
	}
	return p.advance()
}

func (p *parser) expect(kind lexer.Kind) error {
	if p.tok.Kind != kind {
		return p.errorf(kind.String())
	}
	return p.advance()
}

// parseIdent consumes an identifier (table, column or type name).
func (p *parser) parseIdent(what string) (string, lexer.Span, error) {
	if p.tok.Kind != lexer.Ident {
		return "", p.tok.Span, p.errorf(what)
	}
	name, span := p.tok.Text, p.tok.Span
	return name, span, p.advance()
}

// CREATE TABLE name ( coldef {, coldef} )
func (p *parser) parseCreateTable() (Statement, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, _, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}

	var cols []ColumnDef
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)

		if p.tok.Kind == lexer.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.Kind != lexer.RParen {
			return nil, p.errorf("',' or ')'")
		}
		break
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

// coldef := name type [ ( INT [, INT] ) ] { NOT NULL | UNIQUE | PRIMARY KEY }
func (p *parser) parseColumnDef() (ColumnDef, error) {
	name, span, err := p.parseIdent("column name")
	if err != nil {
		return ColumnDef{}, err
	}
	typ, _, err := p.parseIdent("column type")
	if err != nil {
		return ColumnDef{}, err
	}
	col := ColumnDef{Name: name, Type: strings.ToUpper(typ), Pos: span}

	if p.tok.Kind == lexer.LParen {
		args, err := p.parseTypeArgs()
		if err != nil {
			return ColumnDef{}, err
		}
		col.TypeArgs = args
	}

	for {
		switch {
		case p.tok.Is("NOT"):
			if err := p.advance(); err != nil {
				return ColumnDef{}, err
			}
			if err := p.expectKeyword("NULL"); err != nil {
				return ColumnDef{}, err
			}
			col.NotNull = true
		case p.tok.Is("UNIQUE"):
			if err := p.advance(); err != nil {
				return ColumnDef{}, err
			}
			col.Unique = true
		case p.tok.Is("PRIMARY"):
			if err := p.advance(); err != nil {
				return ColumnDef{}, err
			}
			if err := p.expectKeyword("KEY"); err != nil {
				return ColumnDef{}, err
			}
			col.PrimaryKey = true
		default:
			return col, nil
		}
	}
}

func (p *parser) parseTypeArgs() ([]int64, error) {
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	var args []int64
	for {
		if p.tok.Kind != lexer.Integer || len(args) == 2 {
			return nil, p.errorf("type size")
		}
		n, err := strconv.ParseInt(p.tok.Text, 10, 64)
		if err != nil || n < 0 {
			return nil, p.errorf("type size")
		}
		args = append(args, n)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return args, nil
	}
}

// INSERT INTO name [ ( col {, col} ) ] VALUES ( literal {, literal} )
func (p *parser) parseInsert() (Statement, error) {
	if err := p.expectKeyword("INSERT"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	name, _, err := p.parseIdent("table name")
	if err != nil {
		return nil, err
	}
	stmt := &InsertStmt{TableName: name}

	if p.tok.Kind == lexer.LParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt.Columns = []string{}
		for {
			col, _, err := p.parseIdent("column name")
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
			if p.tok.Kind == lexer.Comma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			if err := p.expect(lexer.RParen); err != nil {
				return nil, err
			}
			break
		}
	}

	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, lit)
		if p.tok.Kind == lexer.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return stmt, nil
	}
}

func (p *parser) parseLiteral() (*LiteralExpr, error) {
	tok := p.tok
	lit := &LiteralExpr{Pos: tok.Span}

	switch {
	case tok.Kind == lexer.Integer:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, &Error{Pos: tok.Span, Expected: "64-bit integer", Found: tok.String()}
		}
		lit.Value = n
	case tok.Kind == lexer.Real:
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &Error{Pos: tok.Span, Expected: "real number", Found: tok.String()}
		}
		lit.Value = f
	case tok.Kind == lexer.String:
		lit.Value = tok.Text
	case tok.Is("NULL"):
		lit.Value = nil
	case tok.Is("TRUE"):
		lit.Value = true
	case tok.Is("FALSE"):
		lit.Value = false
	default:
		return nil, p.errorf("literal value")
	}

	return lit, p.advance()
}
