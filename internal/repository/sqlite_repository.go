package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates an AssociationStore backed by the given database.
func NewSQLiteStore(db *sql.DB) AssociationStore {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) UpsertAssociation(ctx context.Context, fileID string, chatID *string) error {
	query := `
		INSERT INTO file_associations (file_id, chat_id, resolved_at) VALUES (?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET chat_id = excluded.chat_id, resolved_at = excluded.resolved_at
	`
	_, err := s.db.ExecContext(ctx, query, fileID, nullable(chatID), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("could not upsert association for file %s: %w", fileID, err)
	}
	return nil
}

func (s *sqliteStore) UpsertPrompt(ctx context.Context, fileID string, prompt *string) error {
	query := `
		INSERT INTO file_prompts (file_id, prompt, resolved_at) VALUES (?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET prompt = excluded.prompt, resolved_at = excluded.resolved_at
	`
	_, err := s.db.ExecContext(ctx, query, fileID, nullable(prompt), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("could not upsert prompt for file %s: %w", fileID, err)
	}
	return nil
}

func (s *sqliteStore) LoadAssociations(ctx context.Context) (map[string]*string, error) {
	return s.loadEntries(ctx, "SELECT file_id, chat_id FROM file_associations")
}

func (s *sqliteStore) LoadPrompts(ctx context.Context) (map[string]*string, error) {
	return s.loadEntries(ctx, "SELECT file_id, prompt FROM file_prompts")
}

func (s *sqliteStore) loadEntries(ctx context.Context, query string) (map[string]*string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]*string)
	for rows.Next() {
		var fileID string
		var value sql.NullString
		if err := rows.Scan(&fileID, &value); err != nil {
			return nil, err
		}
		if value.Valid {
			v := value.String
			entries[fileID] = &v
		} else {
			entries[fileID] = nil
		}
	}
	return entries, rows.Err()
}

func (s *sqliteStore) RemoveFile(ctx context.Context, fileID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM file_associations WHERE file_id = ?", fileID); err != nil {
		return fmt.Errorf("could not delete association for file %s: %w", fileID, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM file_prompts WHERE file_id = ?", fileID); err != nil {
		return fmt.Errorf("could not delete prompt for file %s: %w", fileID, err)
	}

	return tx.Commit()
}

func nullable(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
