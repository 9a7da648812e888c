package characters

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/character"
	dnderr "github.com/KirkDiggler/dungeon-saves/internal/errors"
	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

// SQLiteRepoConfig holds configuration for the SQLite repository
type SQLiteRepoConfig struct {
	Path          string         // Required
	UUIDGenerator uuid.Generator // Optional
	TimeProvider  TimeProvider   // Optional
}

// SQLiteRepository implements Repository on a single SQLite file. It can share the
// file with the save store; each keeps its own table.
type SQLiteRepository struct {
	db     *sql.DB
	config Config
}

// OpenSQLite opens (creating if needed) the database at cfg.Path and applies the schema
func OpenSQLite(cfg *SQLiteRepoConfig) (*SQLiteRepository, error) {
	if cfg == nil || strings.TrimSpace(cfg.Path) == "" {
		return nil, dnderr.InvalidArgument("sqlite path is required")
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, dnderr.Wrap(err, "failed to ping sqlite db")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, dnderr.Wrap(err, "failed to apply sqlite schema")
	}

	return &SQLiteRepository{
		db:     db,
		config: (&Config{UUIDGenerator: cfg.UUIDGenerator, TimeProvider: cfg.TimeProvider}).withDefaults(),
	}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Create implements Repository.Create
func (r *SQLiteRepository) Create(ctx context.Context, record *CharacterRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = r.config.UUIDGenerator.New()
	}
	now := r.config.TimeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	payload, err := json.Marshal(record.Character)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize character")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO characters (id, user_id, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		record.ID,
		record.UserID,
		string(payload),
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return alreadyExists(record.ID)
		}
		return dnderr.Wrap(err, "failed to create character")
	}

	return nil
}

// Get implements Repository.Get
func (r *SQLiteRepository) Get(ctx context.Context, userID, id string) (*CharacterRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, payload, created_at, updated_at FROM characters
		 WHERE id = ? AND user_id = ?`, id, userID)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	return record, err
}

// ListByUser implements Repository.ListByUser
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]*CharacterRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, payload, created_at, updated_at FROM characters
		 WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list user characters")
	}
	defer rows.Close()

	var records []*CharacterRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, dnderr.Wrap(err, "failed to list user characters")
	}

	return records, nil
}

// Update implements Repository.Update
func (r *SQLiteRepository) Update(ctx context.Context, record *CharacterRecord) error {
	if err := validateForUpdate(record); err != nil {
		return err
	}

	existing, err := r.Get(ctx, record.UserID, record.ID)
	if err != nil {
		return err
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.config.TimeProvider.Now()

	payload, err := json.Marshal(record.Character)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize character")
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE characters SET payload = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		string(payload),
		toMillis(record.UpdatedAt),
		record.ID,
		record.UserID,
	)
	if err != nil {
		return dnderr.Wrap(err, "failed to update character")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound(record.ID)
	}

	return nil
}

// Delete implements Repository.Delete
func (r *SQLiteRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return dnderr.Wrap(err, "failed to delete character")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return dnderr.Wrap(err, "failed to delete character")
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*CharacterRecord, error) {
	var (
		record    CharacterRecord
		userID    string
		payload   string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&record.ID, &userID, &payload, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, dnderr.Wrap(err, "failed to read character")
	}

	id := record.ID
	var c character.Character
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "character payload is corrupt").
			WithMeta("character_id", id)
	}
	record.Character = c
	record.ID = id
	record.UserID = userID
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)

	return &record, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ Repository = (*SQLiteRepository)(nil)
