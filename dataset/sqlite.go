package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ============================================================================
// SQLITE SNAPSHOT — Alternative dataset source
// ============================================================================
// Deployments that would rather not ship the CSV can import it once into a
// SQLite file and serve from that. The snapshot is a dataset *source*, not a
// mutation store — rows are written once by ImportSnapshot and only ever
// read back by OpenSnapshot.
// ============================================================================

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS companies (
	global_rank  INTEGER,
	company      TEXT NOT NULL,
	continent    TEXT NOT NULL,
	country      TEXT NOT NULL,
	sales        REAL,
	profits      REAL,
	assets       REAL,
	market_value REAL,
	latitude     REAL,
	longitude    REAL
);
`

func openSnapshotDB(path string) (*sql.DB, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ImportSnapshot writes a Dataset into a SQLite file, replacing any previous
// snapshot content. One transaction; either all rows land or none do.
func ImportSnapshot(ctx context.Context, path string, ds *Dataset) error {
	db, err := openSnapshotDB(path)
	if err != nil {
		return &LoadError{Source: path, Err: err}
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM companies`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO companies
		(global_rank, company, continent, country, sales, profits, assets, market_value, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		_, err := stmt.ExecContext(ctx,
			r.GlobalRank, r.Company, r.Continent, r.Country,
			nullable(r.Sales), nullable(r.Profits), nullable(r.Assets),
			nullable(r.MarketValue), nullable(r.Latitude), nullable(r.Longitude),
		)
		if err != nil {
			return fmt.Errorf("insert row %d (%s): %w", i, r.Company, err)
		}
	}

	return tx.Commit()
}

// OpenSnapshot loads a Dataset from a SQLite snapshot file. Row order follows
// the original import (rowid), preserving the source export order that the
// engine's stable tie-break depends on.
func OpenSnapshot(ctx context.Context, path string) (*Dataset, error) {
	db, err := openSnapshotDB(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT global_rank, company, continent, country,
		       sales, profits, assets, market_value, latitude, longitude
		FROM companies ORDER BY rowid`)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer rows.Close()

	var records []CompanyRecord
	for rows.Next() {
		var (
			rec  CompanyRecord
			rank sql.NullInt64
			vals [6]sql.NullFloat64
		)
		err := rows.Scan(&rank, &rec.Company, &rec.Continent, &rec.Country,
			&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5])
		if err != nil {
			return nil, &LoadError{Source: path, Err: err}
		}

		rec.GlobalRank = int(rank.Int64)
		rec.Sales = fromNull(vals[0])
		rec.Profits = fromNull(vals[1])
		rec.Assets = fromNull(vals[2])
		rec.MarketValue = fromNull(vals[3])
		rec.Latitude = fromNull(vals[4])
		rec.Longitude = fromNull(vals[5])
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	if len(records) == 0 {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("snapshot has no rows")}
	}

	return FromRecords(records), nil
}

func nullable(f Float) interface{} {
	if !f.Valid {
		return nil
	}
	return f.Value
}

func fromNull(n sql.NullFloat64) Float {
	if !n.Valid {
		return Float{}
	}
	return Present(n.Float64)
}
