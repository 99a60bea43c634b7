package heap

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/tuannm99/sqlrite/internal/index"
	"github.com/tuannm99/sqlrite/internal/record"
)

// Table owns one table's schema, its rows and the indexes that enforce
// PRIMARY KEY and UNIQUE. Rows live in an append-only arena; a row's RowID
// is its position there.
type Table struct {
	mu sync.RWMutex

	schema record.Schema
	rows   []record.Row

	// column position -> index, for the primary key and every UNIQUE column
	indexes map[int]*index.Index
	// positions of indexed columns in schema order
	indexed []int
}

func NewTable(schema record.Schema) *Table {
	t := &Table{
		schema:  schema.Clone(),
		indexes: make(map[int]*index.Index),
	}
	for _, pos := range t.schema.UniqueColumns() {
		t.indexes[pos] = index.New(t.schema.Cols[pos].Name)
		t.indexed = append(t.indexed, pos)
	}
	return t
}

func (t *Table) Name() string { return t.schema.Table }

// Schema returns a copy of the table schema.
func (t *Table) Schema() record.Schema { return t.schema.Clone() }

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Insert validates and appends one row. columns names the target columns
// for values; nil means every column in schema order.
//
// Checks run in order: column resolution and arity, NOT NULL, type, then
// uniqueness. The row arena is only touched after every index accepted its
// key, so a failed insert leaves the table unchanged.
func (t *Table) Insert(columns []string, values []record.Value) (RowID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, err := t.bind(columns, values)
	if err != nil {
		return 0, err
	}
	if err := t.checkNotNull(row); err != nil {
		return 0, err
	}
	if err := t.checkTypes(row); err != nil {
		return 0, err
	}

	id := RowID(len(t.rows))
	if err := t.indexRow(row, id); err != nil {
		return 0, err
	}
	t.rows = append(t.rows, row)

	slog.Debug("heap: row appended", "table", t.schema.Table, "rowid", id)
	return id, nil
}

// bind lays values out in schema order.
func (t *Table) bind(columns []string, values []record.Value) (record.Row, error) {
	n := len(t.schema.Cols)

	var targets []int
	if columns == nil {
		targets = make([]int, n)
		for i := range targets {
			targets[i] = i
		}
	} else {
		seen := make(map[int]struct{}, len(columns))
		targets = make([]int, 0, len(columns))
		for _, name := range columns {
			pos := t.schema.ColumnIndex(name)
			if pos < 0 {
				return nil, &InsertError{Kind: UnknownColumn, Table: t.schema.Table, Column: name}
			}
			if _, dup := seen[pos]; dup {
				return nil, &InsertError{Kind: DuplicateColumn, Table: t.schema.Table, Column: name}
			}
			seen[pos] = struct{}{}
			targets = append(targets, pos)
		}
	}

	if len(values) != len(targets) {
		return nil, &InsertError{
			Kind:     ArityMismatch,
			Table:    t.schema.Table,
			Expected: len(targets),
			Got:      len(values),
		}
	}

	row := make(record.Row, n)
	provided := make([]bool, n)
	for i, pos := range targets {
		row[pos] = values[i]
		provided[pos] = true
	}

	// An INTEGER PRIMARY KEY left out of the column list behaves as a rowid
	// alias and gets the next key.
	if pk, ok := t.schema.PrimaryKey(); ok && !provided[pk] && t.schema.Cols[pk].Type == record.ColInteger {
		next, err := t.nextIntegerKey(pk)
		if err != nil {
			return nil, err
		}
		row[pk] = record.Integer(next)
	}
	return row, nil
}

func (t *Table) nextIntegerKey(pk int) (int64, error) {
	top, ok := t.indexes[pk].MaxInteger()
	if !ok {
		return 1, nil
	}
	if top == math.MaxInt64 {
		return 0, &InsertError{Kind: KeyExhausted, Table: t.schema.Table, Column: t.schema.Cols[pk].Name}
	}
	return top + 1, nil
}

func (t *Table) checkNotNull(row record.Row) error {
	for i, c := range t.schema.Cols {
		if c.NotNull && row[i].IsNull() {
			return &InsertError{Kind: NullViolation, Table: t.schema.Table, Column: c.Name}
		}
	}
	return nil
}

// checkTypes rejects values the column cannot hold. Integers stored into a
// REAL column are widened in place.
func (t *Table) checkTypes(row record.Row) error {
	for i, c := range t.schema.Cols {
		v := row[i]
		if v.IsNull() {
			continue
		}
		ok := false
		switch c.Type {
		case record.ColInteger:
			ok = v.Kind == record.KindInteger
		case record.ColReal:
			switch v.Kind {
			case record.KindReal:
				ok = true
			case record.KindInteger:
				row[i] = record.Real(float64(v.Int))
				ok = true
			}
		case record.ColText:
			ok = v.Kind == record.KindText
		case record.ColBool:
			ok = v.Kind == record.KindBool
		}
		if !ok {
			return &InsertError{Kind: TypeMismatch, Table: t.schema.Table, Column: c.Name, Value: v}
		}
	}
	return nil
}

// indexRow adds the row's keys to every index, or to none of them.
func (t *Table) indexRow(row record.Row, id RowID) error {
	for _, pos := range t.indexed {
		key := row[pos]
		if key.IsNull() {
			continue
		}
		if t.indexes[pos].Contains(key) {
			return t.uniqueViolation(pos, key)
		}
	}

	var done []int
	for _, pos := range t.indexed {
		key := row[pos]
		if key.IsNull() {
			continue
		}
		if err := t.indexes[pos].Insert(key, id); err != nil {
			for _, p := range done {
				t.indexes[p].Delete(row[p])
			}
			return t.uniqueViolation(pos, key)
		}
		done = append(done, pos)
	}
	return nil
}

func (t *Table) uniqueViolation(pos int, key record.Value) error {
	return &InsertError{
		Kind:   UniqueViolation,
		Table:  t.schema.Table,
		Column: t.schema.Cols[pos].Name,
		Value:  key,
	}
}

// Get returns a copy of the row stored at id.
func (t *Table) Get(id RowID) (record.Row, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id >= RowID(len(t.rows)) {
		return nil, false
	}
	return t.rows[id].Clone(), true
}

// Lookup finds the row whose indexed column equals key.
func (t *Table) Lookup(column string, key record.Value) (record.Row, RowID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ix := t.indexFor(column)
	if ix == nil {
		return nil, 0, false
	}
	id, ok := ix.Lookup(key)
	if !ok {
		return nil, 0, false
	}
	return t.rows[id].Clone(), id, true
}

// Range walks rows whose indexed column lies in [lo, hi], in key order.
func (t *Table) Range(column string, lo, hi record.Value, fn func(id RowID, row record.Row) bool) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ix := t.indexFor(column)
	if ix == nil {
		return fmt.Errorf("heap: table %q has no index on %q", t.schema.Table, column)
	}
	ix.Range(lo, hi, func(e index.Entry) bool {
		return fn(e.Loc, t.rows[e.Loc].Clone())
	})
	return nil
}

// Scan iterates all rows in insertion order.
func (t *Table) Scan(fn func(id RowID, row record.Row) error) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i, row := range t.rows {
		if err := fn(RowID(i), row.Clone()); err != nil {
			return err
		}
	}
	return nil
}

// IndexedColumns lists the columns backed by an index, in schema order.
func (t *Table) IndexedColumns() []string {
	out := make([]string, 0, len(t.indexed))
	for _, pos := range t.indexed {
		out = append(out, t.schema.Cols[pos].Name)
	}
	return out
}

// IndexEntries returns a snapshot of one index in key order.
func (t *Table) IndexEntries(column string) ([]index.Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ix := t.indexFor(column)
	if ix == nil {
		return nil, false
	}
	return ix.Entries(), true
}

func (t *Table) indexFor(column string) *index.Index {
	pos := t.schema.ColumnIndex(column)
	if pos < 0 {
		return nil
	}
	return t.indexes[pos]
}

// CheckInvariants verifies that every index agrees with the row arena. A
// failure is a bug in this package, not a user error.
func (t *Table) CheckInvariants() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, pos := range t.indexed {
		ix := t.indexes[pos]
		nonNull := 0
		for _, row := range t.rows {
			if !row[pos].IsNull() {
				nonNull++
			}
		}
		if ix.Len() != nonNull {
			return fmt.Errorf("%w: index %s.%s has %d entries, column has %d values",
				ErrCorrupted, t.schema.Table, ix.Column(), ix.Len(), nonNull)
		}

		var bad error
		ix.Ascend(func(e index.Entry) bool {
			if e.Loc >= RowID(len(t.rows)) {
				bad = fmt.Errorf("%w: index %s.%s points past the last row (%d)",
					ErrCorrupted, t.schema.Table, ix.Column(), e.Loc)
				return false
			}
			if !record.Equal(t.rows[e.Loc][pos], e.Key) {
				bad = fmt.Errorf("%w: index %s.%s key %s does not match row %d",
					ErrCorrupted, t.schema.Table, ix.Column(), e.Key, e.Loc)
				return false
			}
			return true
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}
