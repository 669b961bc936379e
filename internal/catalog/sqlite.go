package catalog

import (
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gramseva/census-atlas/internal/model"
)

// LoadSQLite reads areas from a gazetteer database with an
// areas(id, name) table. The database is opened read-only; rowid order
// is the registration order.
func LoadSQLite(dsn string) ([]model.Area, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrapf(ErrLoadFailure, "open %s: %v", dsn, err)
	}
	defer func() { _ = db.Close() }()

	for _, pragma := range []string{
		"PRAGMA query_only=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, eris.Wrapf(ErrLoadFailure, "exec %s: %v", pragma, err)
		}
	}

	rows, err := db.Query(`SELECT id, name FROM areas ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrapf(ErrLoadFailure, "query areas: %v", err)
	}
	defer rows.Close()

	var areas []model.Area
	for rows.Next() {
		var a model.Area
		if err := rows.Scan(&a.ID, &a.DisplayName); err != nil {
			return nil, eris.Wrapf(ErrLoadFailure, "scan area row: %v", err)
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(ErrLoadFailure, "iterate area rows: %v", err)
	}

	return areas, nil
}
