package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/producthouse/producthouse/internal/db"
	"github.com/producthouse/producthouse/internal/domain"
)

// SQLiteVersionRepo implements VersionRepo. Version records are
// append-only: there is no update or delete.
type SQLiteVersionRepo struct {
	db db.DBTX
}

// NewSQLiteVersionRepo creates a new SQLiteVersionRepo.
func NewSQLiteVersionRepo(conn db.DBTX) *SQLiteVersionRepo {
	return &SQLiteVersionRepo{db: conn}
}

const versionColumns = `id, masterplan_id, version, user_id, user_name, changes, created_at`

func (r *SQLiteVersionRepo) Create(ctx context.Context, v *domain.Version) error {
	changesJSON, err := marshalJSON(v.Changes, "changes")
	if err != nil {
		return err
	}

	query := `INSERT INTO masterplan_versions (` + versionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		v.ID,
		v.MasterplanID,
		v.Version,
		v.UserID,
		v.UserName,
		changesJSON,
		formatTime(v.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting version: %w", err)
	}
	return nil
}

func (r *SQLiteVersionRepo) GetByID(ctx context.Context, id string) (*domain.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM masterplan_versions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	v, err := scanVersion(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Kind: "version", ID: id}
	}
	return v, err
}

func (r *SQLiteVersionRepo) ListByMasterplan(ctx context.Context, masterplanID string) ([]*domain.Version, error) {
	// Timestamps have second resolution, so ties within one second
	// fall back to insertion order.
	query := `SELECT ` + versionColumns + ` FROM masterplan_versions
		WHERE masterplan_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, masterplanID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer rows.Close()

	var list []*domain.Version
	for rows.Next() {
		v, err := scanVersion(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}
	return list, nil
}

func scanVersion(scan func(dest ...any) error) (*domain.Version, error) {
	var v domain.Version
	var changesJSON, createdAtStr string

	err := scan(
		&v.ID, &v.MasterplanID, &v.Version,
		&v.UserID, &v.UserName,
		&changesJSON, &createdAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning version: %w", err)
	}

	if err := unmarshalJSON(changesJSON, &v.Changes, "changes"); err != nil {
		return nil, err
	}
	if v.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return nil, err
	}

	return &v, nil
}
