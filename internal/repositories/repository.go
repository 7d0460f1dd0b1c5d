package repositories

import (
	intconfig "khanza/internal/config"
	intdb "khanza/internal/db"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// pick falls back to the process pool when a repository is zero-valued.
func pick(q intdb.DBTX) intdb.DBTX {
	if q != nil {
		return q
	}
	return intconfig.DB
}
