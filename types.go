// Package sqlrite is the top-level facade for the sqlrite engine.
package sqlrite

import "github.com/tuannm99/sqlrite/internal/engine"

type Database = engine.Database
