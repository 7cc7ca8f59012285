package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/producthouse/producthouse/internal/db"
	"github.com/producthouse/producthouse/internal/domain"
)

// SQLiteCommentRepo implements CommentRepo using a SQLite database.
type SQLiteCommentRepo struct {
	db db.DBTX
}

// NewSQLiteCommentRepo creates a new SQLiteCommentRepo.
func NewSQLiteCommentRepo(conn db.DBTX) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{db: conn}
}

const commentColumns = `id, masterplan_id, section_id, user_id, user_name, content, category, mentions, created_at`

func (r *SQLiteCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	mentionsJSON, err := marshalJSON(c.Mentions, "mentions")
	if err != nil {
		return err
	}

	query := `INSERT INTO masterplan_comments (` + commentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.MasterplanID,
		c.SectionID,
		c.UserID,
		c.UserName,
		c.Content,
		string(c.Category),
		mentionsJSON,
		formatTime(c.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

func (r *SQLiteCommentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM masterplan_comments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	c, err := scanComment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{Kind: "comment", ID: id}
	}
	return c, err
}

func (r *SQLiteCommentRepo) ListByMasterplan(ctx context.Context, masterplanID string) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM masterplan_comments
		WHERE masterplan_id = ? ORDER BY created_at`
	return r.queryComments(ctx, query, masterplanID)
}

func (r *SQLiteCommentRepo) ListBySection(ctx context.Context, masterplanID, sectionID string) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM masterplan_comments
		WHERE masterplan_id = ? AND section_id = ? ORDER BY created_at`
	return r.queryComments(ctx, query, masterplanID, sectionID)
}

func (r *SQLiteCommentRepo) queryComments(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var list []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return list, nil
}

func (r *SQLiteCommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	mentionsJSON, err := marshalJSON(c.Mentions, "mentions")
	if err != nil {
		return err
	}

	query := `UPDATE masterplan_comments SET content = ?, category = ?, mentions = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, c.Content, string(c.Category), mentionsJSON, c.ID)
	if err != nil {
		return fmt.Errorf("updating comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "comment", ID: c.ID}
	}
	return nil
}

func (r *SQLiteCommentRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM masterplan_comments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	return affected > 0, nil
}

func scanComment(scan func(dest ...any) error) (*domain.Comment, error) {
	var c domain.Comment
	var categoryStr, createdAtStr string
	var mentionsJSON sql.NullString

	err := scan(
		&c.ID, &c.MasterplanID, &c.SectionID,
		&c.UserID, &c.UserName, &c.Content,
		&categoryStr, &mentionsJSON, &createdAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning comment: %w", err)
	}

	c.Category = domain.CommentCategory(categoryStr)
	if mentionsJSON.Valid {
		if err := unmarshalJSON(mentionsJSON.String, &c.Mentions, "mentions"); err != nil {
			return nil, err
		}
	}
	if c.Timestamp, err = parseTime(createdAtStr, "created_at"); err != nil {
		return nil, err
	}

	return &c, nil
}
