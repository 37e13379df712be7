package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

//go:generate mockgen -source=post_metrics_history.go -destination=mocks/post_metrics_history_mock.go -package=mocks

type PostMetricsHistoryRepository interface {
	// Upsert mantém no máximo uma fotografia por (company_id, post_id, observed_date)
	Upsert(ctx context.Context, snapshot *domain.PostMetricsSnapshot) error
}

type postMetricsHistoryRepository struct {
	conn *postgres.Connection
}

func NewPostMetricsHistoryRepository(conn *postgres.Connection) PostMetricsHistoryRepository {
	return &postMetricsHistoryRepository{
		conn: conn,
	}
}

func (r *postMetricsHistoryRepository) Upsert(ctx context.Context, s *domain.PostMetricsSnapshot) error {
	query, args, err := squirrel.Insert("post_metrics_history").
		Columns(
			"company_id",
			"post_id",
			"observed_date",
			"observed_at",
			"post_date",
			"impressions",
			"clicks",
			"likes",
			"comments",
			"shares",
			"reach",
			"ctr",
			"engagement_rate",
		).
		Values(
			s.CompanyID,
			s.PostID,
			s.ObservedDate.UTC(),
			s.ObservedAt.UTC(),
			nullTime(s.PostDate),
			s.Impressions,
			s.Clicks,
			s.Likes,
			s.Comments,
			s.Shares,
			s.Reach,
			s.CTR,
			s.EngagementRate,
		).
		Suffix(`
			ON CONFLICT (company_id, post_id, observed_date) DO UPDATE SET
				observed_at = EXCLUDED.observed_at,
				post_date = EXCLUDED.post_date,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				likes = EXCLUDED.likes,
				comments = EXCLUDED.comments,
				shares = EXCLUDED.shares,
				reach = EXCLUDED.reach,
				ctr = EXCLUDED.ctr,
				engagement_rate = EXCLUDED.engagement_rate`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return storageError("upsert de post_metrics_history", err)
	}

	return nil
}
