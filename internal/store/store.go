// Package store keeps extracted items in a SQLite catalog, either a local
// file or a remote libsql database.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"buildcrafter/internal/items"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (c Config) Empty() bool {
	return c.File == "" && c.Url == ""
}

// OpenDB opens the configured database, a remote url wins over a file.
func (c Config) OpenDB() (*sql.DB, error) {
	if c.Empty() {
		return nil, fmt.Errorf("neither a file nor a url was specified")
	}
	if c.Url != "" {
		dsn := c.Url
		if c.AuthToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", c.Url, c.AuthToken)
		}
		return sql.Open("libsql", dsn)
	}

	if c.File != ":memory:" {
		err := os.MkdirAll(filepath.Dir(c.File), 0755)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", c.File)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, err
	}
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type Store struct {
	db *sql.DB
}

// Open opens the database and creates the tables if they are missing.
func Open(ctx context.Context, cfg Config) (Store, error) {
	db, err := cfg.OpenDB()
	if err != nil {
		return Store{}, fmt.Errorf("open catalog: %w", err)
	}
	_, err = db.ExecContext(ctx, Schema)
	if err != nil {
		db.Close()
		return Store{}, fmt.Errorf("create schema: %w", err)
	}
	return Store{db: db}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// SaveItems replaces every item of kind in the catalog with list.
func (s Store) SaveItems(ctx context.Context, kind string, list []items.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from item_effect where kind = ?", kind)
	if err != nil {
		return fmt.Errorf("clear effects: %w", err)
	}
	_, err = tx.ExecContext(ctx, "delete from item where kind = ?", kind)
	if err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	for _, item := range list {
		// the same id can show up twice in one run, the last one wins
		_, err = tx.ExecContext(ctx, "delete from item_effect where kind = ? and item_id = ?", kind, item.Id)
		if err != nil {
			return fmt.Errorf("clear effects of %s: %w", item.Id, err)
		}

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s: %w", item.Id, err)
		}
		_, err = tx.ExecContext(
			ctx,
			`insert into item(kind, id, name, rarity, slot, min_level, max_level, data)
			values (?, ?, ?, ?, ?, ?, ?, ?)
			on conflict (kind, id) do update set
				name = excluded.name,
				rarity = excluded.rarity,
				slot = excluded.slot,
				min_level = excluded.min_level,
				max_level = excluded.max_level,
				data = excluded.data`,
			kind,
			item.Id,
			item.Name,
			nullString(item.Rarity),
			nullString(item.Slot),
			nullInt(item.MinLevel),
			nullInt(item.MaxLevel),
			string(data),
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", item.Id, err)
		}

		for _, level := range item.LevelNumbers() {
			for _, effect := range item.Levels[level].Effects {
				_, err = tx.ExecContext(
					ctx,
					"insert into item_effect(kind, item_id, level, type, text) values (?, ?, ?, ?, ?)",
					kind, item.Id, level, effect.Type, effect.Text,
				)
				if err != nil {
					return fmt.Errorf("insert effect of %s: %w", item.Id, err)
				}
			}
		}
	}

	return tx.Commit()
}

func scanItems(rows *sql.Rows) ([]items.Item, error) {
	defer rows.Close()

	out := []items.Item{}
	for rows.Next() {
		var data string
		err := rows.Scan(&data)
		if err != nil {
			return nil, err
		}
		var item items.Item
		err = json.Unmarshal([]byte(data), &item)
		if err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListItems returns the items of kind ordered by name, every kind if kind
// is empty.
func (s Store) ListItems(ctx context.Context, kind string) ([]items.Item, error) {
	query := "select data from item order by name, kind"
	args := []any{}
	if kind != "" {
		query = "select data from item where kind = ? order by name"
		args = append(args, kind)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// ItemsWithEffect returns the items that have an effect of effectType at
// any level, ordered by name. An empty kind searches every kind.
func (s Store) ItemsWithEffect(ctx context.Context, kind, effectType string) ([]items.Item, error) {
	query := `select data from item
		where exists (
			select 1 from item_effect e
			where e.kind = item.kind and e.item_id = item.id and e.type = ?
		)`
	args := []any{effectType}
	if kind != "" {
		query += " and kind = ?"
		args = append(args, kind)
	}
	query += " order by name, kind"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

var ErrNotFound = errors.New("item not found")

func (s Store) GetItem(ctx context.Context, kind, id string) (items.Item, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "select data from item where kind = ? and id = ?", kind, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return items.Item{}, ErrNotFound
	}
	if err != nil {
		return items.Item{}, err
	}
	var item items.Item
	err = json.Unmarshal([]byte(data), &item)
	if err != nil {
		return items.Item{}, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}
