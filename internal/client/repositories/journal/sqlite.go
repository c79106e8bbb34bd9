package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/packadmin/internal/dbx"
	"github.com/google/uuid"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e Entry) error {
	query := `INSERT INTO journal_entries (id, op, target, outcome, message, created_at)
			values (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID.String(), e.Op, e.Target, string(e.Outcome), e.Message, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `select id, op, target, outcome, message, created_at from journal_entries
			order by created_at desc, rowid desc limit ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select journal entries: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			e       Entry
			id      string
			outcome string
		)
		if err := rows.Scan(&id, &e.Op, &e.Target, &outcome, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("malformed journal id %q: %w", id, err)
		}
		e.Outcome = Outcome(outcome)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := dbx.Int64(ctx, r.db, `select count(*) from journal_entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteOldest(ctx context.Context, n int64) error {
	if n <= 0 {
		return nil
	}
	query := `delete from journal_entries where id in (
			select id from journal_entries order by created_at asc, rowid asc limit ?)`
	if _, err := r.db.ExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("failed to delete journal entries: %w", err)
	}
	return nil
}

// Trim keeps at most keep entries, dropping the oldest, inside one
// transaction. It returns how many entries were removed.
func Trim(ctx context.Context, db *sql.DB, keep int64) (int64, error) {
	var removed int64
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n <= keep {
			return nil
		}
		removed = n - keep
		return repo.DeleteOldest(ctx, removed)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
