package repositories

import (
	"kill-chain-service/internal/platform/db"
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax. Queries are written with "?" and
// rebound to "$n" for Postgres.
type Dialect string

const (
	DialectSQLite   Dialect = db.DriverSQLite
	DialectPostgres Dialect = db.DriverPostgres
)

func (d Dialect) rebind(q string) string {
	if d != DialectPostgres {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
