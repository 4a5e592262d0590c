package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDB struct {
	db *sqlx.DB
}

var _ DB = (*SQLiteDB)(nil)

func NewSQLiteDB(fname string) (*SQLiteDB, error) {
	db, err := sqlx.Connect("sqlite3", fname)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if fname == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions(
		"id" varchar not null primary key,
		"access_token" varchar not null,
		"refresh_token" varchar,
		"user_id" integer not null,
		"full_name" varchar,
		"email" varchar,
		"username" varchar,
		"created_at" datetime not null
	)`)
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) InsertSession(ctx context.Context, session *Session) error {
	_, err := s.db.NamedExecContext(
		ctx,
		`INSERT INTO sessions("id", "access_token", "refresh_token", "user_id", "full_name", "email", "username", "created_at") VALUES (:id, :access_token, :refresh_token, :user_id, :full_name, :email, :username, :created_at)`,
		session,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetSession(ctx context.Context, id string) (*Session, error) {
	session := new(Session)
	err := s.db.GetContext(ctx, session, `SELECT * FROM sessions WHERE "id" = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	return session, nil
}

func (s *SQLiteDB) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE "id" = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
