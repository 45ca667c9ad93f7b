package consult

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/forexorbit/academy-calls/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS consultations (
	id         TEXT PRIMARY KEY,
	student_id TEXT NOT NULL,
	expert_id  TEXT NOT NULL,
	topic      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	channel    TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_consultations_status ON consultations(status);
`

type sqliteRepo struct {
	db *sqlx.DB
}

// OpenSQLite opens (and bootstraps) the consultation store at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (Repository, *sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open consultation store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("bootstrap consultation schema: %w", err)
	}
	return &sqliteRepo{db: db}, db, nil
}

func (r *sqliteRepo) Create(ctx context.Context, c *domain.Consultation) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO consultations (id, student_id, expert_id, topic, kind, channel, status, created_at, updated_at)
		VALUES (:id, :student_id, :expert_id, :topic, :kind, :channel, :status, :created_at, :updated_at)`, c)
	if err != nil {
		return fmt.Errorf("insert consultation: %w", err)
	}
	return nil
}

func (r *sqliteRepo) Get(ctx context.Context, id string) (domain.Consultation, error) {
	var c domain.Consultation
	err := r.db.GetContext(ctx, &c, `SELECT * FROM consultations WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Consultation{}, ErrNotFound
	}
	if err != nil {
		return domain.Consultation{}, fmt.Errorf("get consultation: %w", err)
	}
	return c, nil
}

func (r *sqliteRepo) Update(ctx context.Context, c *domain.Consultation) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE consultations
		SET channel = :channel, status = :status, updated_at = :updated_at
		WHERE id = :id`, c)
	if err != nil {
		return fmt.Errorf("update consultation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteRepo) List(ctx context.Context, status domain.ConsultationStatus) ([]domain.Consultation, error) {
	out := []domain.Consultation{}
	var err error
	if status == "" {
		err = r.db.SelectContext(ctx, &out, `SELECT * FROM consultations ORDER BY created_at DESC`)
	} else {
		err = r.db.SelectContext(ctx, &out, `SELECT * FROM consultations WHERE status = ? ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return out, nil
}
