package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditscan/internal/repository/postgres"
)

func TestStatsRepo_GetStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewStatsRepo(db)

	mock.ExpectQuery(`FROM reports`).WillReturnRows(sqlmock.NewRows([]string{
		"total_reports", "parsing_completed", "parsing_failed", "parsing_processing", "parsing_pending",
		"parsing_queued", "tier_high", "tier_medium", "tier_low", "tier_recovery", "avg_confidence",
	}).AddRow(10, 6, 2, 1, 0, 1, 3, 2, 1, 0, 55.5))
	mock.ExpectQuery(`FROM credit_accounts`).WillReturnRows(
		sqlmock.NewRows([]string{"total_accounts", "negative_items", "inquiries"}).AddRow(42, 5, 9))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalReports)
	assert.Equal(t, 6, stats.ParsingCompleted)
	assert.Equal(t, 3, stats.TierHigh)
	assert.InDelta(t, 55.5, stats.AvgConfidence, 0.001)
	assert.Equal(t, 42, stats.TotalAccounts)
	assert.Equal(t, 5, stats.NegativeItems)
	assert.Equal(t, 9, stats.Inquiries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepo_GetStats_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewStatsRepo(db)

	mock.ExpectQuery(`FROM reports`).WillReturnError(errors.New("connection reset"))

	_, err := repo.GetStats(context.Background())
	assert.ErrorContains(t, err, "statsRepo.GetStats reports")
}
