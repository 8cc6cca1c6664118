package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UpsertConfig stores a config snapshot once per fingerprint and returns its id and key.
func UpsertConfig(ctx context.Context, db execer, snapshot interface{}) (string, string, error) {
	if snapshot == nil {
		return "", "", errors.New("duckdb: config snapshot is nil")
	}
	canonical, err := CanonicalJSON(snapshot)
	if err != nil {
		return "", "", err
	}
	key := fingerprintBytes(canonical)
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO configs (config_id, config_key, config, created_at)
		 VALUES (?, ?, ?, now())
		 ON CONFLICT (config_key) DO NOTHING`,
		uuid.NewString(),
		key,
		string(canonical),
	); err != nil {
		return "", "", fmt.Errorf("upsert config: %w", err)
	}
	id, err := lookupID(ctx, db, "configs", "config_id", "config_key", key)
	if err != nil {
		return "", "", fmt.Errorf("lookup config id: %w", err)
	}
	return id, key, nil
}

// UpsertQuestion stores a question spec once per fingerprint and returns its id and key.
func UpsertQuestion(ctx context.Context, db execer, spec interface{}, text string) (string, string, error) {
	if spec == nil {
		return "", "", errors.New("duckdb: question spec is nil")
	}
	canonical, err := CanonicalJSON(spec)
	if err != nil {
		return "", "", err
	}
	key := fingerprintBytes(canonical)
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO questions (question_id, question_key, spec, text, created_at)
		 VALUES (?, ?, ?, ?, now())
		 ON CONFLICT (question_key) DO NOTHING`,
		uuid.NewString(),
		key,
		string(canonical),
		text,
	); err != nil {
		return "", "", fmt.Errorf("upsert question: %w", err)
	}
	id, err := lookupID(ctx, db, "questions", "question_id", "question_key", key)
	if err != nil {
		return "", "", fmt.Errorf("lookup question id: %w", err)
	}
	return id, key, nil
}

// lookupID fetches a single ID column value for a row keyed by keyColumn.
func lookupID(ctx context.Context, db execer, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := db.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
