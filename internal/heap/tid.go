package heap

import "github.com/tuannm99/sqlrite/internal/record"

// RowID is a row's position in the table's append-only row arena. It stays
// valid for the lifetime of the table because rows are never moved or
// removed.
type RowID = record.RowID
