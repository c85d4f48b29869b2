package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/paperview/paperview/internal/paper"
	_ "modernc.org/sqlite"
)

// ErrMissingID is returned when a record without an id is written.
var ErrMissingID = errors.New("record has no id")

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `id, paper_id, title, authors_json, year,
	abstract, url, citations, references_json`

// UpsertResult counts what Upsert did.
type UpsertResult struct {
	Inserted int
	Updated  int
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Records in import order; rowid keeps the order stable across updates
		CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			paper_id TEXT NOT NULL,
			title TEXT NOT NULL,
			authors_json TEXT NOT NULL,
			year TEXT NOT NULL,
			abstract TEXT NOT NULL,
			url TEXT NOT NULL,
			citations INTEGER NOT NULL,
			references_json TEXT NOT NULL
		);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			id,
			title,
			abstract,
			authors_text
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Upsert inserts records, or updates them in place when the id exists.
// Updated records keep their original position in List.
func (d *DB) Upsert(records []paper.Record) (UpsertResult, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return UpsertResult{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := upsertTx(tx, records)
	if err != nil {
		return res, err
	}
	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("committing: %w", err)
	}
	return res, nil
}

func upsertTx(tx *sql.Tx, records []paper.Record) (UpsertResult, error) {
	var res UpsertResult
	for _, rec := range records {
		rec = normalize(rec)
		if rec.ID == "" {
			return res, fmt.Errorf("record %q: %w", rec.Title, ErrMissingID)
		}

		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM papers WHERE id = ?`, rec.ID).Scan(&exists); err != nil {
			return res, fmt.Errorf("checking %s: %w", rec.ID, err)
		}

		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return res, fmt.Errorf("marshaling authors for %s: %w", rec.ID, err)
		}
		refsJSON, err := json.Marshal(rec.References)
		if err != nil {
			return res, fmt.Errorf("marshaling references for %s: %w", rec.ID, err)
		}

		_, err = tx.Exec(`
			INSERT INTO papers (id, paper_id, title, authors_json, year, abstract, url, citations, references_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				paper_id = excluded.paper_id,
				title = excluded.title,
				authors_json = excluded.authors_json,
				year = excluded.year,
				abstract = excluded.abstract,
				url = excluded.url,
				citations = excluded.citations,
				references_json = excluded.references_json
		`, rec.ID, rec.PaperID, rec.Title, string(authorsJSON), rec.Year,
			rec.Abstract, rec.URL, rec.Citations, string(refsJSON))
		if err != nil {
			return res, fmt.Errorf("upserting %s: %w", rec.ID, err)
		}

		if _, err := tx.Exec(`DELETE FROM papers_fts WHERE id = ?`, rec.ID); err != nil {
			return res, fmt.Errorf("clearing fts for %s: %w", rec.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO papers_fts (id, title, abstract, authors_text) VALUES (?, ?, ?, ?)`,
			rec.ID, rec.Title, rec.Abstract, strings.Join(rec.Authors, ", "))
		if err != nil {
			return res, fmt.Errorf("inserting fts for %s: %w", rec.ID, err)
		}

		if exists > 0 {
			res.Updated++
		} else {
			res.Inserted++
		}
	}
	return res, nil
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
// The clear and the reload commit together; on failure the database is
// left as it was.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	records, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec("DELETE FROM papers"); err != nil {
		return 0, fmt.Errorf("clearing papers table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM papers_fts"); err != nil {
		return 0, fmt.Errorf("clearing papers_fts table: %w", err)
	}

	res, err := upsertTx(tx, records)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return res.Inserted + res.Updated, nil
}

// GetByID retrieves a record by its ID. It returns nil when none exists.
func (d *DB) GetByID(id string) (*paper.Record, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// List returns records in import order, optionally limited.
func (d *DB) List(limit int) ([]paper.Record, error) {
	query := `SELECT ` + selectPaperFields + ` FROM papers ORDER BY rowid`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// Search performs a full-text search over title, abstract and authors.
func (d *DB) Search(query string, limit int) ([]paper.Record, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return []paper.Record{}, nil
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE id IN (SELECT id FROM papers_fts WHERE papers_fts MATCH ?)
		ORDER BY rowid
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Delete removes a record. It reports whether the record existed.
func (d *DB) Delete(id string) (bool, error) {
	res, err := d.db.Exec(`DELETE FROM papers WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting %s: %w", id, err)
	}
	if _, err := d.db.Exec(`DELETE FROM papers_fts WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("deleting fts for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*paper.Record, error) {
	var rec paper.Record
	var authorsJSON, refsJSON string

	err := s.Scan(
		&rec.ID, &rec.PaperID, &rec.Title, &authorsJSON, &rec.Year,
		&rec.Abstract, &rec.URL, &rec.Citations, &refsJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(authorsJSON), &rec.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors JSON for %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(refsJSON), &rec.References); err != nil {
		return nil, fmt.Errorf("parsing references JSON for %s: %w", rec.ID, err)
	}

	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]paper.Record, error) {
	records := []paper.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// FTS5 uses double quotes for phrase matching
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,/") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
