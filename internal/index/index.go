package index

import (
	"errors"
	"fmt"

	sorted "github.com/tobshub/go-sortedmap"

	"github.com/tuannm99/sqlrite/internal/record"
)

var (
	ErrDuplicateKey = errors.New("index: duplicate key")
	ErrNullKey      = errors.New("index: NULL key cannot be indexed")
)

// Entry is one key -> row location mapping.
type Entry struct {
	Key record.Value
	Loc record.RowID
}

func entryLess(a, b Entry) bool {
	return record.Compare(a.Key, b.Key) < 0
}

// Index is an ordered, unique key -> row location map for one column.
// Keys are kept sorted by record.Compare so range walks come out in key
// order.
type Index struct {
	column string
	m      *sorted.SortedMap[record.Value, Entry]

	maxInt    int64
	hasMaxInt bool
}

func New(column string) *Index {
	return &Index{
		column: column,
		m:      sorted.New[record.Value, Entry](0, entryLess),
	}
}

func (ix *Index) Column() string { return ix.column }

func (ix *Index) Len() int { return ix.m.Len() }

// Insert adds key -> loc. It fails with ErrDuplicateKey, leaving the index
// untouched, when the key is already present.
func (ix *Index) Insert(key record.Value, loc record.RowID) error {
	if key.IsNull() {
		return ErrNullKey
	}
	key = canonical(key)
	if !ix.m.Insert(slot(key), Entry{Key: key, Loc: loc}) {
		return fmt.Errorf("%w: %s=%s", ErrDuplicateKey, ix.column, key)
	}
	if key.Kind == record.KindInteger && (!ix.hasMaxInt || key.Int > ix.maxInt) {
		ix.maxInt = key.Int
		ix.hasMaxInt = true
	}
	return nil
}

func (ix *Index) Contains(key record.Value) bool {
	_, ok := ix.Lookup(key)
	return ok
}

func (ix *Index) Lookup(key record.Value) (record.RowID, bool) {
	if key.IsNull() {
		return 0, false
	}
	e, ok := ix.m.Get(slot(key))
	if !ok {
		return 0, false
	}
	return e.Loc, true
}

// Delete removes key. Only used to undo an Insert made earlier in the same
// statement, so the cached integer maximum is recomputed.
func (ix *Index) Delete(key record.Value) bool {
	e, ok := ix.m.Get(slot(key))
	if !ok {
		return false
	}
	ix.m.Delete(slot(key))
	if e.Key.Kind == record.KindInteger && ix.hasMaxInt && e.Key.Int == ix.maxInt {
		ix.recomputeMaxInt()
	}
	return true
}

// MaxInteger returns the largest integer key stored, if any.
func (ix *Index) MaxInteger() (int64, bool) { return ix.maxInt, ix.hasMaxInt }

// Ascend walks entries in key order until fn returns false. fn runs on the
// caller's goroutine.
func (ix *Index) Ascend(fn func(Entry) bool) {
	ix.m.IterFunc(false, func(rec sorted.Record[record.Value, Entry]) bool {
		return fn(rec.Val)
	})
}

// Range walks entries with lo <= key <= hi in key order until fn returns
// false. The start is found by binary search.
func (ix *Index) Range(lo, hi record.Value, fn func(Entry) bool) {
	if hi.IsNull() || record.Compare(lo, hi) > 0 {
		return
	}

	// The bounded walk may skip a key equal to its lower bound, so an exact
	// match on lo is emitted first and not repeated.
	if !lo.IsNull() {
		if e, ok := ix.m.Get(slot(lo)); ok && !fn(e) {
			return
		}
	}
	_ = ix.m.BoundedIterFunc(false, Entry{Key: lo}, Entry{Key: hi}, func(rec sorted.Record[record.Value, Entry]) bool {
		e := rec.Val
		switch c := record.Compare(e.Key, lo); {
		case c < 0:
			return true
		case c == 0 && !lo.IsNull():
			return true
		}
		if record.Compare(e.Key, hi) > 0 {
			return false
		}
		return fn(e)
	})
}

// Entries returns a snapshot of the index in key order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, 0, ix.Len())
	ix.Ascend(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

func (ix *Index) recomputeMaxInt() {
	ix.maxInt, ix.hasMaxInt = 0, false
	ix.Ascend(func(e Entry) bool {
		if e.Key.Kind == record.KindInteger && (!ix.hasMaxInt || e.Key.Int > ix.maxInt) {
			ix.maxInt = e.Key.Int
			ix.hasMaxInt = true
		}
		return true
	})
}

// slot maps a key to its map slot. Numerically equal keys share a slot, so
// Real(2) and Integer(2) are the same key, matching record.Compare.
func slot(v record.Value) record.Value {
	v = canonical(v)
	if v.Kind == record.KindReal {
		if n, ok := record.IntegralReal(v.Real); ok {
			return record.Integer(n)
		}
	}
	return v
}

// canonical strips fields that do not belong to the key's kind so that
// equal keys map to the same map slot.
func canonical(v record.Value) record.Value {
	switch v.Kind {
	case record.KindInteger:
		return record.Integer(v.Int)
	case record.KindReal:
		return record.Real(v.Real)
	case record.KindText:
		return record.Text(v.Text)
	case record.KindBool:
		return record.Bool(v.Bool)
	default:
		return record.Null()
	}
}
