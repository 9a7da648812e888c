package saves

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/KirkDiggler/dungeon-saves/internal/domain/save"
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

// SQLiteRepository implements Repository on a single SQLite file. The snapshot is
// stored as a JSON payload next to the columns it is looked up by.
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
func (r *SQLiteRepository) Create(ctx context.Context, record *SaveRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = r.config.UUIDGenerator.New()
	}
	now := r.config.TimeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	payload, err := json.Marshal(record.SaveState)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize save")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saves (id, user_id, character_id, payload, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.UserID,
		record.CharacterID,
		string(payload),
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return alreadyExists(record.UserID, record.CharacterID)
		}
		return dnderr.Wrap(err, "failed to create save")
	}

	return nil
}

// Get implements Repository.Get
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*SaveRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, payload, created_at, updated_at FROM saves WHERE id = ?`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	return record, err
}

// GetByCharacter implements Repository.GetByCharacter
func (r *SQLiteRepository) GetByCharacter(ctx context.Context, userID, characterID string) (*SaveRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, payload, created_at, updated_at FROM saves
		 WHERE user_id = ? AND character_id = ?`, userID, characterID)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return record, err
}

// Update implements Repository.Update
func (r *SQLiteRepository) Update(ctx context.Context, record *SaveRecord) error {
	if err := validateForWrite(record); err != nil {
		return err
	}

	existing, err := r.Get(ctx, record.ID)
	if err != nil {
		return err
	}
	if existing.UserID != record.UserID {
		return notFound(record.ID)
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.config.TimeProvider.Now()

	payload, err := json.Marshal(record.SaveState)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize save")
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE saves SET character_id = ?, payload = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		record.CharacterID,
		string(payload),
		toMillis(record.UpdatedAt),
		record.ID,
		record.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return alreadyExists(record.UserID, record.CharacterID)
		}
		return dnderr.Wrap(err, "failed to update save")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return notFound(record.ID)
	}

	return nil
}

// Delete implements Repository.Delete
func (r *SQLiteRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return dnderr.Wrap(err, "failed to delete save")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return dnderr.Wrap(err, "failed to delete save")
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

// ListByUser implements Repository.ListByUser
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]*SaveRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, payload, created_at, updated_at FROM saves
		 WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list user saves")
	}
	defer rows.Close()

	var records []*SaveRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, dnderr.Wrap(err, "failed to list user saves")
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*SaveRecord, error) {
	var (
		record    SaveRecord
		payload   string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&record.ID, &record.UserID, &payload, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, dnderr.Wrap(err, "failed to read save")
	}

	state, err := save.Decode([]byte(payload))
	if err != nil {
		return nil, dnderr.Wrapf(err, "save '%s' has a corrupt payload", record.ID)
	}
	record.SaveState = state
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
