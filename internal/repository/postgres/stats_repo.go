package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"creditscan/internal/domain"
	"creditscan/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const reportStatsQuery = `SELECT
	COUNT(*) AS total_reports,
	COUNT(CASE WHEN parsing_status = 'completed' THEN 1 END) AS parsing_completed,
	COUNT(CASE WHEN parsing_status = 'failed' THEN 1 END) AS parsing_failed,
	COUNT(CASE WHEN parsing_status = 'processing' THEN 1 END) AS parsing_processing,
	COUNT(CASE WHEN parsing_status = 'pending' THEN 1 END) AS parsing_pending,
	COUNT(CASE WHEN parsing_status = 'queued' THEN 1 END) AS parsing_queued,
	COUNT(CASE WHEN quality_tier = 'high' THEN 1 END) AS tier_high,
	COUNT(CASE WHEN quality_tier = 'medium' THEN 1 END) AS tier_medium,
	COUNT(CASE WHEN quality_tier = 'low' THEN 1 END) AS tier_low,
	COUNT(CASE WHEN quality_tier = 'recovery' THEN 1 END) AS tier_recovery,
	COALESCE(AVG(CASE WHEN parsing_status = 'completed' THEN parsing_confidence END), 0) AS avg_confidence
FROM reports`

const entityStatsQuery = `SELECT
	(SELECT COUNT(*) FROM credit_accounts) AS total_accounts,
	(SELECT COUNT(*) FROM negative_items) AS negative_items,
	(SELECT COUNT(*) FROM credit_inquiries) AS inquiries`

func (r *statsRepo) GetStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, reportStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats reports: %w", err)
	}

	var entities struct {
		TotalAccounts int `db:"total_accounts"`
		NegativeItems int `db:"negative_items"`
		Inquiries     int `db:"inquiries"`
	}
	if err := r.db.GetContext(ctx, &entities, entityStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStats entities: %w", err)
	}
	stats.TotalAccounts = entities.TotalAccounts
	stats.NegativeItems = entities.NegativeItems
	stats.Inquiries = entities.Inquiries

	return &stats, nil
}
