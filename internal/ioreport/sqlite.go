package ioreport

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

const ddl = `
CREATE TABLE complex_types (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	content_model TEXT NOT NULL,
	documents INTEGER NOT NULL,
	instances INTEGER NOT NULL
);
CREATE TABLE element_stats (
	type_id TEXT NOT NULL REFERENCES complex_types(id),
	name TEXT NOT NULL,
	documents INTEGER NOT NULL,
	total INTEGER NOT NULL,
	min INTEGER NOT NULL,
	max INTEGER NOT NULL,
	avg REAL NOT NULL
);
CREATE TABLE attribute_stats (
	type_id TEXT NOT NULL REFERENCES complex_types(id),
	name TEXT NOT NULL,
	documents INTEGER NOT NULL,
	total INTEGER NOT NULL,
	min INTEGER NOT NULL,
	max INTEGER NOT NULL,
	avg REAL NOT NULL
);
CREATE TABLE value_stats (
	type_id TEXT NOT NULL REFERENCES complex_types(id),
	node TEXT NOT NULL,
	value TEXT NOT NULL,
	count INTEGER NOT NULL,
	documents INTEGER NOT NULL
);
CREATE TABLE runs (
	id TEXT PRIMARY KEY,
	documents INTEGER NOT NULL
);
`

func writeSQLite(path string, r *Report) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ReportDBError(path, err)
	}
	if err := gnsys.MakeDir(filepath.Dir(path)); err != nil {
		return ReportDBError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return ReportDBError(path, err)
	}
	defer db.Close()

	if err = saveReport(context.Background(), db, r); err != nil {
		return ReportDBError(path, err)
	}
	return nil
}

func saveReport(ctx context.Context, db *sql.DB, r *Report) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, documents) VALUES (?, ?)",
		r.RunID, r.Documents)
	if err != nil {
		return err
	}

	for _, ts := range r.ComplexTypes {
		_, err = tx.ExecContext(ctx, `
INSERT INTO complex_types (id, name, content_model, documents, instances)
	VALUES (?, ?, ?, ?, ?)`,
			ts.ID, ts.Name, ts.ContentModel, ts.Documents, ts.Instances)
		if err != nil {
			return err
		}
		if err = saveOccurrences(ctx, tx, "element_stats", ts.ID, ts.Elements); err != nil {
			return err
		}
		if err = saveOccurrences(ctx, tx, "attribute_stats", ts.ID, ts.Attributes); err != nil {
			return err
		}
		for _, v := range ts.Values {
			_, err = tx.ExecContext(ctx, `
INSERT INTO value_stats (type_id, node, value, count, documents)
	VALUES (?, ?, ?, ?, ?)`,
				ts.ID, v.Node, v.Value, v.Count, v.Documents)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// table is one of the two fixed occurrence tables.
func saveOccurrences(
	ctx context.Context,
	tx *sql.Tx,
	table, typeID string,
	occs []OccurrenceStats,
) error {
	q := "INSERT INTO " + table +
		" (type_id, name, documents, total, min, max, avg)" +
		" VALUES (?, ?, ?, ?, ?, ?, ?)"
	for _, o := range occs {
		_, err := tx.ExecContext(ctx, q,
			typeID, o.Name, o.Documents, o.Total, o.Min, o.Max, o.Avg)
		if err != nil {
			return err
		}
	}
	return nil
}
