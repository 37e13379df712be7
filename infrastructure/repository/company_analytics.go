package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

//go:generate mockgen -source=company_analytics.go -destination=mocks/company_analytics_mock.go -package=mocks

// avgEngagementPrecision casas decimais da média de engajamento por post
const avgEngagementPrecision = 4

type CompanyAnalyticsRepository interface {
	// Summarize agrega os posts armazenados da empresa
	Summarize(ctx context.Context, companyID string) (*domain.CompanyAnalytics, error)
	UpsertSummary(ctx context.Context, summary *domain.CompanyAnalytics) error
	InsertHistory(ctx context.Context, summary *domain.CompanyAnalytics) error
}

type companyAnalyticsRepository struct {
	conn *postgres.Connection
}

func NewCompanyAnalyticsRepository(conn *postgres.Connection) CompanyAnalyticsRepository {
	return &companyAnalyticsRepository{
		conn: conn,
	}
}

func (r *companyAnalyticsRepository) Summarize(ctx context.Context, companyID string) (*domain.CompanyAnalytics, error) {
	query, args, err := squirrel.Select(
		"COALESCE(SUM(impressions), 0)",
		"COALESCE(SUM(clicks), 0)",
		"COALESCE(SUM(reach), 0)",
		"COALESCE(SUM(likes), 0)",
		"COALESCE(SUM(comments), 0)",
		"COALESCE(SUM(shares), 0)",
		"COUNT(*)",
		"COALESCE(AVG(engagement_rate), 0)",
	).
		From(postAnalyticsTable).
		Where(squirrel.Eq{"company_id": companyID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		summary                 = &domain.CompanyAnalytics{CompanyID: companyID}
		likes, comments, shares int
		avgEngagement           float64
	)

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&summary.Impressions,
		&summary.Clicks,
		&summary.Reach,
		&likes,
		&comments,
		&shares,
		&summary.TotalPosts,
		&avgEngagement,
	)
	if err != nil {
		return nil, storageError("agregação de post_analytics", err)
	}

	summary.EngagementRate = domain.CalculateEngagementRate(likes, comments, shares, summary.Clicks, summary.Impressions)
	summary.AvgPostEngagement = utils.RoundWithPrecision(avgEngagement, avgEngagementPrecision)

	return summary, nil
}

func (r *companyAnalyticsRepository) UpsertSummary(ctx context.Context, s *domain.CompanyAnalytics) error {
	query, args, err := squirrel.Insert("company_analytics").
		Columns(
			"company_id",
			"company_name",
			"impressions",
			"clicks",
			"reach",
			"engagement_rate",
			"total_posts",
			"avg_post_engagement",
			"date_collected",
			"updated_at",
		).
		Values(
			s.CompanyID,
			s.CompanyName,
			s.Impressions,
			s.Clicks,
			s.Reach,
			s.EngagementRate,
			s.TotalPosts,
			s.AvgPostEngagement,
			s.DateCollected.UTC(),
			squirrel.Expr("NOW()"),
		).
		Suffix(`
			ON CONFLICT (company_id) DO UPDATE SET
				company_name = EXCLUDED.company_name,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				reach = EXCLUDED.reach,
				engagement_rate = EXCLUDED.engagement_rate,
				total_posts = EXCLUDED.total_posts,
				avg_post_engagement = EXCLUDED.avg_post_engagement,
				date_collected = EXCLUDED.date_collected,
				updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return storageError("upsert de company_analytics", err)
	}

	return nil
}

func (r *companyAnalyticsRepository) InsertHistory(ctx context.Context, s *domain.CompanyAnalytics) error {
	id := s.ID
	if id == "" {
		generated, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id do histórico: %w", err)
		}
		id = generated
	}

	query, args, err := squirrel.Insert("analytics_history").
		Columns(
			"id",
			"company_id",
			"company_name",
			"impressions",
			"clicks",
			"reach",
			"engagement_rate",
			"total_posts",
			"avg_post_engagement",
			"date_collected",
			"created_at",
		).
		Values(
			id,
			s.CompanyID,
			s.CompanyName,
			s.Impressions,
			s.Clicks,
			s.Reach,
			s.EngagementRate,
			s.TotalPosts,
			s.AvgPostEngagement,
			s.DateCollected.UTC(),
			time.Now().UTC(),
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return storageError("inserção em analytics_history", err)
	}

	s.ID = id
	return nil
}
