package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/tuannm99/sqlrite"
)

const helpText = `meta commands:
  .help             show this help
  .exit             quit
  .tables           list tables
  .schema [table]   print CREATE TABLE for one or all tables
  .open FILE        open a database file (not implemented)

sql:
  CREATE TABLE and INSERT are supported
  a statement ends with ';' and may span several lines`

// Shell buffers input lines into statements and runs them. It is shared by
// the interactive REPL and script mode.
type Shell struct {
	db  *sqlrite.DB
	out io.Writer
	buf strings.Builder

	// OnStatement, if set, sees every complete statement before it runs.
	OnStatement func(stmt string)

	failures int
}

func NewShell(db *sqlrite.DB, out io.Writer) *Shell {
	return &Shell{db: db, out: out}
}

// Pending reports whether a statement is partially typed.
func (s *Shell) Pending() bool { return s.buf.Len() > 0 }

func (s *Shell) Reset() { s.buf.Reset() }

func (s *Shell) Failures() int { return s.failures }

// HandleLine consumes one line of input. It returns true when the user
// asked to quit.
func (s *Shell) HandleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	if !s.Pending() && strings.HasPrefix(trimmed, ".") {
		return s.meta(trimmed)
	}

	if s.Pending() {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(trimmed)

	if !statementComplete(s.buf.String()) {
		return false
	}
	s.Flush()
	return false
}

// Flush runs whatever is buffered, terminated or not.
func (s *Shell) Flush() {
	stmt := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if stmt == "" {
		return
	}
	if s.OnStatement != nil {
		s.OnStatement(stmt)
	}

	res, err := s.db.Exec(stmt)
	if err != nil {
		s.failures++
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, res)
}

func (s *Shell) meta(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ".exit", ".quit":
		return true
	case ".help":
		fmt.Fprintln(s.out, helpText)
	case ".tables":
		for _, name := range s.db.Tables() {
			fmt.Fprintln(s.out, name)
		}
	case ".schema":
		s.printSchema(args)
	case ".open":
		if len(args) != 1 {
			s.metaError("usage: .open FILE")
			break
		}
		s.metaError(fmt.Sprintf(".open %s: not implemented", args[0]))
	default:
		s.metaError(fmt.Sprintf("unknown command: %s (try .help)", cmd))
	}
	return false
}

func (s *Shell) printSchema(args []string) {
	names := args
	if len(names) == 0 {
		names = s.db.Tables()
	}
	for _, name := range names {
		schema, err := s.db.Schema(name)
		if err != nil {
			s.failures++
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "%s;\n", schema)
	}
}

func (s *Shell) metaError(msg string) {
	s.failures++
	fmt.Fprintf(s.out, "Error: %s\n", msg)
}

// statementComplete reports whether buf holds a ';' outside single quotes.
// A doubled quote inside a literal toggles twice, so it needs no special case.
func statementComplete(buf string) bool {
	inQuote := false
	for _, r := range buf {
		switch {
		case r == '\'':
			inQuote = !inQuote
		case r == ';' && !inQuote:
			return true
		}
	}
	return false
}
