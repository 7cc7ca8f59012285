package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/producthouse/producthouse/internal/db"
	"github.com/producthouse/producthouse/internal/domain"
)

// SQLiteMasterplanRepo implements MasterplanRepo using a SQLite
// database. Sections and rendered formats are stored as JSON columns:
// they are always read and written as a whole document.
type SQLiteMasterplanRepo struct {
	db db.DBTX
}

// NewSQLiteMasterplanRepo creates a new SQLiteMasterplanRepo.
func NewSQLiteMasterplanRepo(conn db.DBTX) *SQLiteMasterplanRepo {
	return &SQLiteMasterplanRepo{db: conn}
}

const masterplanColumns = `id, conversation_id, title, version, sections, formats, created_at, updated_at`

func (r *SQLiteMasterplanRepo) Create(ctx context.Context, m *domain.Masterplan) error {
	sectionsJSON, err := marshalJSON(m.Sections, "sections")
	if err != nil {
		return err
	}
	formatsJSON, err := marshalJSON(m.Formats, "formats")
	if err != nil {
		return err
	}

	query := `INSERT INTO masterplans (` + masterplanColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.ConversationID,
		m.Title,
		m.Version,
		sectionsJSON,
		formatsJSON,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting masterplan: %w", err)
	}
	return nil
}

func (r *SQLiteMasterplanRepo) GetByID(ctx context.Context, id string) (*domain.Masterplan, error) {
	query := `SELECT ` + masterplanColumns + ` FROM masterplans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	m, err := scanMasterplan(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Kind: "masterplan", ID: id}
	}
	return m, err
}

func (r *SQLiteMasterplanRepo) List(ctx context.Context) ([]*domain.Masterplan, error) {
	query := `SELECT ` + masterplanColumns + ` FROM masterplans ORDER BY created_at`
	return r.queryMasterplans(ctx, query)
}

func (r *SQLiteMasterplanRepo) ListByConversation(ctx context.Context, conversationID string) ([]*domain.Masterplan, error) {
	query := `SELECT ` + masterplanColumns + ` FROM masterplans WHERE conversation_id = ? ORDER BY created_at`
	return r.queryMasterplans(ctx, query, conversationID)
}

func (r *SQLiteMasterplanRepo) queryMasterplans(ctx context.Context, query string, args ...any) ([]*domain.Masterplan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing masterplans: %w", err)
	}
	defer rows.Close()

	var list []*domain.Masterplan
	for rows.Next() {
		m, err := scanMasterplan(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating masterplans: %w", err)
	}
	return list, nil
}

func (r *SQLiteMasterplanRepo) UpdateDocument(ctx context.Context, m *domain.Masterplan, expectedVersion string) error {
	sectionsJSON, err := marshalJSON(m.Sections, "sections")
	if err != nil {
		return err
	}
	formatsJSON, err := marshalJSON(m.Formats, "formats")
	if err != nil {
		return err
	}

	query := `UPDATE masterplans
		SET title = ?, version = ?, sections = ?, formats = ?, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Title,
		m.Version,
		sectionsJSON,
		formatsJSON,
		formatTime(m.UpdatedAt),
		m.ID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("updating masterplan: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		// Distinguish a concurrent edit from a missing row.
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM masterplans WHERE id = ?`, m.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return &domain.NotFoundError{Kind: "masterplan", ID: m.ID}
		}
		if err != nil {
			return fmt.Errorf("checking masterplan existence: %w", err)
		}
		return &domain.VersionConflictError{MasterplanID: m.ID, Expected: expectedVersion}
	}
	return nil
}

func (r *SQLiteMasterplanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM masterplans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting masterplan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "masterplan", ID: id}
	}
	return nil
}

// scanMasterplan scans one masterplan row via the given scan function,
// shared between *sql.Row and *sql.Rows.
func scanMasterplan(scan func(dest ...any) error) (*domain.Masterplan, error) {
	var m domain.Masterplan
	var sectionsJSON, formatsJSON, createdAtStr, updatedAtStr string

	err := scan(
		&m.ID, &m.ConversationID, &m.Title, &m.Version,
		&sectionsJSON, &formatsJSON,
		&createdAtStr, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning masterplan: %w", err)
	}

	if err := unmarshalJSON(sectionsJSON, &m.Sections, "sections"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(formatsJSON, &m.Formats, "formats"); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return nil, err
	}

	return &m, nil
}
