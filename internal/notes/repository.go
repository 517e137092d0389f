package notes

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palmledger/palmledger/internal/shared"
)

// Repository defines persistence operations for notes.
type Repository interface {
	Search(ctx context.Context, filter SearchFilter) ([]Note, int, error)
	Get(ctx context.Context, id int64) (Note, error)
	Create(ctx context.Context, note Note) (Note, error)
	Update(ctx context.Context, id int64, note Note) error
	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context) ([]CategorySummary, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const noteColumns = `id, created_by, date, title, content, category, priority, created_at, updated_at`

func scanNote(row pgx.Row) (Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.CreatedBy, &n.Date.Time, &n.Title, &n.Content,
		&n.Category, &n.Priority, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, shared.ErrNotFound
	}
	return n, err
}

func buildWhere(filter SearchFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (title ILIKE $` + n + ` OR content ILIKE $` + n + `)`
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where += ` AND priority = $` + strconv.Itoa(len(args))
	}
	if filter.On != nil {
		args = append(args, filter.On.Time)
		where += ` AND date = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, filter.From.Time)
		where += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, filter.To.Time)
		where += ` AND date <= $` + strconv.Itoa(len(args))
	}
	return where, args
}

func (r *repository) Search(ctx context.Context, filter SearchFilter) ([]Note, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notes`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + noteColumns + ` FROM notes` + where + ` ORDER BY date DESC, id DESC`
	if filter.PerPage > 0 {
		args = append(args, filter.PerPage)
		query += ` LIMIT $` + strconv.Itoa(len(args))
		offset := (filter.Page - 1) * filter.PerPage
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var found []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		found = append(found, n)
	}
	return found, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Note, error) {
	row := r.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

func (r *repository) Create(ctx context.Context, note Note) (Note, error) {
	now := time.Now().UTC()
	row := r.db.QueryRow(ctx,
		`INSERT INTO notes (created_by, date, title, content, category, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 RETURNING `+noteColumns,
		note.CreatedBy, note.Date.Time, note.Title, note.Content, note.Category, note.Priority, now)
	return scanNote(row)
}

func (r *repository) Update(ctx context.Context, id int64, note Note) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notes SET date = $1, title = $2, content = $3, category = $4, priority = $5, updated_at = $6
		 WHERE id = $7`,
		note.Date.Time, note.Title, note.Content, note.Category, note.Priority, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) CountByCategory(ctx context.Context) ([]CategorySummary, error) {
	rows, err := r.db.Query(ctx, `SELECT category, COUNT(*) FROM notes GROUP BY category ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []CategorySummary
	for rows.Next() {
		var s CategorySummary
		if err := rows.Scan(&s.Category, &s.Count); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
