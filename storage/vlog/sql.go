package vlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/indieinfra/reel/config"
)

type placeholderStyle int

const (
	placeholderQuestion placeholderStyle = iota
	placeholderDollar
)

// SQLStore persists each vlog as a JSON document row, keeping the
// embedded-comment shape of the data model while running on a relational
// backend.
type SQLStore struct {
	db          *sql.DB
	table       string
	placeholder placeholderStyle
}

func NewSQLStore(cfg *config.SQLStrategy) (*SQLStore, error) {
	store, err := newSQLStoreWithDB(cfg, nil)
	if err != nil {
		return nil, err
	}

	driverName, err := resolveSQLDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, err
	}

	store.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func newSQLStoreWithDB(cfg *config.SQLStrategy, db *sql.DB) (*SQLStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sql store config is nil")
	}

	prefix := "reel"
	if cfg.TablePrefix != nil {
		prefix = *cfg.TablePrefix
	}

	table := "vlogs"
	if prefix != "" {
		table = prefix + "_vlogs"
	}

	placeholder, err := detectPlaceholderStyle(cfg.Driver)
	if err != nil {
		return nil, err
	}

	return &SQLStore{
		db:          db,
		table:       table,
		placeholder: placeholder,
	}, nil
}

func detectPlaceholderStyle(driver string) (placeholderStyle, error) {
	driverName, err := resolveSQLDriverName(driver)
	if err != nil {
		return placeholderQuestion, err
	}

	if driverName == "pgx" {
		return placeholderDollar, nil
	}

	return placeholderQuestion, nil
}

func resolveSQLDriverName(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "postgres":
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q", driver)
	}
}

func (s *SQLStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.schemaQuery())
	return err
}

func (s *SQLStore) schemaQuery() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
id VARCHAR(64) PRIMARY KEY,
doc TEXT NOT NULL,
upload_date TIMESTAMP NOT NULL
)`, s.table)
}

func (s *SQLStore) Create(ctx context.Context, title string, mediaType MediaType, mediaPath string) (*Vlog, error) {
	v := &Vlog{
		ID:         uuid.New().String(),
		Title:      title,
		MediaType:  mediaType,
		MediaPath:  mediaPath,
		UploadDate: time.Now().UTC(),
		Comments:   []Comment{},
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, s.insertQuery(), v.ID, string(payload), v.UploadDate); err != nil {
		return nil, fmt.Errorf("failed to insert vlog: %w", err)
	}

	return v, nil
}

func (s *SQLStore) List(ctx context.Context) ([]Vlog, error) {
	rows, err := s.db.QueryContext(ctx, s.listQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query vlogs: %w", err)
	}
	defer rows.Close()

	vlogs := []Vlog{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		var v Vlog
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}

		normalize(&v)
		vlogs = append(vlogs, v)
	}

	return vlogs, rows.Err()
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Vlog, error) {
	return s.getByID(ctx, s.db.QueryRowContext, id, false)
}

type queryRowFunc func(ctx context.Context, query string, args ...any) *sql.Row

func (s *SQLStore) getByID(ctx context.Context, queryRow queryRowFunc, id string, forUpdate bool) (*Vlog, error) {
	query := s.selectQuery()
	if forUpdate {
		query = s.selectForUpdateQuery()
	}

	var raw string
	if err := queryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var v Vlog
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}

	normalize(&v)
	return &v, nil
}

// AddComment rewrites the whole document, so the read and write run in one
// transaction with the row locked to keep concurrent appends from dropping
// each other.
func (s *SQLStore) AddComment(ctx context.Context, id string, name string, text string) (*Vlog, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Rollback after Commit returns sql.ErrTxDone, which is fine.
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Printf("unexpected error during transaction rollback in AddComment: %v", rbErr)
		}
	}()

	v, err := s.getByID(ctx, tx.QueryRowContext, id, true)
	if err != nil {
		return nil, err
	}

	v.Comments = append(v.Comments, Comment{
		Name: name,
		Text: text,
		Date: time.Now().UTC(),
	})

	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, s.updateQuery(), string(payload), id); err != nil {
		return nil, fmt.Errorf("failed to update vlog %q: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *SQLStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *SQLStore) insertQuery() string {
	return fmt.Sprintf(
		"INSERT INTO %s (id, doc, upload_date) VALUES (%s, %s, %s)",
		s.table,
		s.placeholderFor(1),
		s.placeholderFor(2),
		s.placeholderFor(3),
	)
}

func (s *SQLStore) listQuery() string {
	return fmt.Sprintf("SELECT doc FROM %s ORDER BY upload_date DESC", s.table)
}

func (s *SQLStore) selectQuery() string {
	return fmt.Sprintf("SELECT doc FROM %s WHERE id = %s", s.table, s.placeholderFor(1))
}

func (s *SQLStore) selectForUpdateQuery() string {
	return s.selectQuery() + " FOR UPDATE"
}

func (s *SQLStore) updateQuery() string {
	return fmt.Sprintf(
		"UPDATE %s SET doc = %s WHERE id = %s",
		s.table,
		s.placeholderFor(1),
		s.placeholderFor(2),
	)
}

func (s *SQLStore) placeholderFor(index int) string {
	if s.placeholder == placeholderDollar {
		return fmt.Sprintf("$%d", index)
	}

	return "?"
}
