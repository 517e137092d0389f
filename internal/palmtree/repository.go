package palmtree

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palmledger/palmledger/internal/shared"
)

// Repository defines persistence operations for palm tree records.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Record, int, error)
	Get(ctx context.Context, id int64) (Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id int64, rec Record) error
	Delete(ctx context.Context, id int64) error
	Ranking(ctx context.Context, from, to *shared.Date, limit int) ([]TreeRank, error)
	LastHarvestByTree(ctx context.Context, treeID string) (shared.Date, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const recordColumns = `id, created_by, tree_id, harvest_date, bunch_count, notes, created_at, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.CreatedBy, &rec.TreeID, &rec.HarvestDate.Time,
		&rec.BunchCount, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, shared.ErrNotFound
	}
	return rec, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Record, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.TreeID != "" {
		args = append(args, filter.TreeID)
		where += ` AND tree_id = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, filter.From.Time)
		where += ` AND harvest_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, filter.To.Time)
		where += ` AND harvest_date <= $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM palm_tree_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + recordColumns + ` FROM palm_tree_records` + where + ` ORDER BY harvest_date DESC, id DESC`
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

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Record, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recordColumns+` FROM palm_tree_records WHERE id = $1`, id)
	return scanRecord(row)
}

func (r *repository) Create(ctx context.Context, rec Record) (Record, error) {
	now := time.Now().UTC()
	row := r.db.QueryRow(ctx,
		`INSERT INTO palm_tree_records (created_by, tree_id, harvest_date, bunch_count, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING `+recordColumns,
		rec.CreatedBy, rec.TreeID, rec.HarvestDate.Time, rec.BunchCount, rec.Notes, now)
	return scanRecord(row)
}

func (r *repository) Update(ctx context.Context, id int64, rec Record) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE palm_tree_records SET tree_id = $1, harvest_date = $2, bunch_count = $3,
			notes = $4, updated_at = $5
		 WHERE id = $6`,
		rec.TreeID, rec.HarvestDate.Time, rec.BunchCount, rec.Notes, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM palm_tree_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ranking orders trees by total bunches harvested, sum-based rather than
// record-count-based. Ties break toward the tree whose first record was
// inserted earliest.
func (r *repository) Ranking(ctx context.Context, from, to *shared.Date, limit int) ([]TreeRank, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if from != nil {
		args = append(args, from.Time)
		where += ` AND harvest_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, to.Time)
		where += ` AND harvest_date <= $` + strconv.Itoa(len(args))
	}
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit)

	rows, err := r.db.Query(ctx,
		`SELECT tree_id, SUM(bunch_count), COUNT(*), AVG(bunch_count)
		 FROM palm_tree_records`+where+`
		 GROUP BY tree_id
		 ORDER BY SUM(bunch_count) DESC, MIN(id) ASC
		 LIMIT $`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranks []TreeRank
	for rows.Next() {
		var rank TreeRank
		if err := rows.Scan(&rank.TreeID, &rank.TotalBunches, &rank.Harvests, &rank.AvgBunches); err != nil {
			return nil, err
		}
		ranks = append(ranks, rank)
	}
	return ranks, rows.Err()
}

func (r *repository) LastHarvestByTree(ctx context.Context, treeID string) (shared.Date, error) {
	var d shared.Date
	err := r.db.QueryRow(ctx,
		`SELECT harvest_date FROM palm_tree_records WHERE tree_id = $1 ORDER BY harvest_date DESC, id DESC LIMIT 1`,
		treeID).Scan(&d.Time)
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.Date{}, shared.ErrNotFound
	}
	return d, err
}
