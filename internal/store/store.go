// Package store persists the tabular projection of a tweet set into a
// SQLite database for downstream querying.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"tweetkit/internal/tweetset"
)

// DB wraps the SQLite database backing exported tweet rows.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	// id is deliberately not a primary key: a set may carry duplicates
	// and they are exported as-is.
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS tweets (
	  id INTEGER NOT NULL,
	  created_at TEXT,
	  created_at_ts TEXT,
	  full_text TEXT,
	  source TEXT,
	  lang TEXT,
	  retweet INTEGER NOT NULL,
	  retweet_count INTEGER,
	  favorite_count INTEGER,
	  user_id TEXT,
	  json_source TEXT,
	  row_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tweets_id ON tweets(id);
	CREATE INDEX IF NOT EXISTS idx_tweets_created ON tweets(created_at_ts);
	`)
	return err
}

// ExportSet appends one row per accepted tweet, in set order. The full
// projection row rides along as JSON for fields without a column.
func (d *DB) ExportSet(ctx context.Context, set *tweetset.Set) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tweets
		(id, created_at, created_at_ts, full_text, source, lang, retweet,
		 retweet_count, favorite_count, user_id, json_source, row_json)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, t := range set.Tweets {
		row, err := json.Marshal(t.Data())
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		var userID *string
		if t.Author != nil {
			userID = &t.Author.ID
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.CreatedAt, t.CreatedAtTS, t.FullText, t.Source, t.Lang,
			t.Retweet, t.RetweetCount, t.FavoriteCount, userID, t.JSONSource,
			string(row),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// CountTweets returns the number of exported rows.
func (d *DB) CountTweets(ctx context.Context) (int64, error) {
	var n int64
	err := d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM tweets`).Scan(&n)
	return n, err
}

// Languages returns exported row counts per language code, for quick
// archive summaries.
func (d *DB) Languages(ctx context.Context) (map[string]int64, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT COALESCE(lang, ''), COUNT(*) FROM tweets GROUP BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var lang string
		var n int64
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, err
		}
		out[lang] = n
	}
	return out, rows.Err()
}
