package palmtree

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palmledger/palmledger/internal/shared"
	_ "github.com/palmledger/palmledger/testing"
)

// rankingPool connects to TEST_PG_DSN and pins the connection to a scratch
// schema so the test table never touches real data. Skips when no database
// is available.
func rankingPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	schema := fmt.Sprintf("palmtree_test_%d", time.Now().UnixNano())

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
	})

	_, err = pool.Exec(ctx, `CREATE TABLE palm_tree_records (
		id           BIGSERIAL PRIMARY KEY,
		created_by   BIGINT NOT NULL,
		tree_id      TEXT NOT NULL,
		harvest_date DATE NOT NULL,
		bunch_count  INTEGER NOT NULL DEFAULT 0,
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	require.NoError(t, err)
	return pool
}

func insertRanked(t *testing.T, pool *pgxpool.Pool, treeID string, day int, bunches int) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO palm_tree_records (created_by, tree_id, harvest_date, bunch_count)
		 VALUES (1, $1, $2, $3)`,
		treeID, time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC), bunches)
	require.NoError(t, err)
}

// Ranking must order by total bunches, not by harvest count: B3 wins with
// two harvests totalling 20 over A1 with three totalling 15.
func TestRankingOrdersBySumNotCount(t *testing.T) {
	pool := rankingPool(t)
	repo := NewRepository(pool)

	insertRanked(t, pool, "A1", 1, 5)
	insertRanked(t, pool, "A1", 5, 5)
	insertRanked(t, pool, "A1", 9, 5)
	insertRanked(t, pool, "B3", 2, 12)
	insertRanked(t, pool, "B3", 6, 8)
	insertRanked(t, pool, "C7", 3, 7)

	ranks, err := repo.Ranking(context.Background(), nil, nil, 10)
	require.NoError(t, err)
	require.Len(t, ranks, 3)

	assert.Equal(t, "B3", ranks[0].TreeID)
	assert.Equal(t, 20, ranks[0].TotalBunches)
	assert.Equal(t, 2, ranks[0].Harvests)
	assert.Equal(t, "A1", ranks[1].TreeID)
	assert.Equal(t, 15, ranks[1].TotalBunches)
	assert.Equal(t, 3, ranks[1].Harvests)
	assert.Equal(t, "C7", ranks[2].TreeID)
}

// Equal totals resolve by the earliest inserted row's id.
func TestRankingBreaksTiesByEarliestRecord(t *testing.T) {
	pool := rankingPool(t)
	repo := NewRepository(pool)

	insertRanked(t, pool, "D4", 1, 10)
	insertRanked(t, pool, "E5", 2, 10)

	ranks, err := repo.Ranking(context.Background(), nil, nil, 10)
	require.NoError(t, err)
	require.Len(t, ranks, 2)
	assert.Equal(t, "D4", ranks[0].TreeID)
	assert.Equal(t, "E5", ranks[1].TreeID)
}

func TestRankingHonorsDateRangeAndLimit(t *testing.T) {
	pool := rankingPool(t)
	repo := NewRepository(pool)

	insertRanked(t, pool, "A1", 1, 5)
	insertRanked(t, pool, "B3", 10, 20)
	insertRanked(t, pool, "C7", 20, 9)

	from := shared.NewDate(2025, time.August, 5)
	to := shared.NewDate(2025, time.August, 15)
	ranks, err := repo.Ranking(context.Background(), &from, &to, 1)
	require.NoError(t, err)
	require.Len(t, ranks, 1)
	assert.Equal(t, "B3", ranks[0].TreeID)
}
