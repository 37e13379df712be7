package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

func TestCompanyAnalyticsRepository_Summarize(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(impressions\), 0\).* FROM post_analytics WHERE company_id = \$1`).
		WithArgs("wentors").
		WillReturnRows(sqlmock.NewRows([]string{"impressions", "clicks", "reach", "likes", "comments", "shares", "total", "avg"}).
			AddRow(200, 10, 0, 20, 4, 2, 2, 0.123456))

	summary, err := NewCompanyAnalyticsRepository(conn).Summarize(context.Background(), "wentors")

	require.NoError(t, err)
	assert.Equal(t, 200, summary.Impressions)
	assert.Equal(t, 10, summary.Clicks)
	assert.Equal(t, 2, summary.TotalPosts)
	assert.Equal(t, 0.18, summary.EngagementRate)
	assert.Equal(t, 0.1235, summary.AvgPostEngagement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyAnalyticsRepository_UpsertSummaryEHistorico(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewCompanyAnalyticsRepository(conn)
	summary := &domain.CompanyAnalytics{
		CompanyID:     "wentors",
		CompanyName:   "Wentors",
		Impressions:   200,
		DateCollected: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(`INSERT INTO company_analytics .* ON CONFLICT \(company_id\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO analytics_history`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpsertSummary(context.Background(), summary))
	require.NoError(t, repo.InsertHistory(context.Background(), summary))

	assert.Len(t, summary.ID, 12)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyAnalyticsRepository_ErroDoPostgres(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectExec(`INSERT INTO company_analytics`).
		WillReturnError(&pq.Error{Code: "42P01", Message: `relation "company_analytics" does not exist`})

	err := NewCompanyAnalyticsRepository(conn).UpsertSummary(context.Background(), &domain.CompanyAnalytics{CompanyID: "wentors"})

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "42P01")

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
}

func TestPostMetricsHistoryRepository_Upsert(t *testing.T) {
	conn, mock := newMockConn(t)
	observedAt := time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO post_metrics_history .* ON CONFLICT \(company_id, post_id, observed_date\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewPostMetricsHistoryRepository(conn).Upsert(context.Background(), &domain.PostMetricsSnapshot{
		CompanyID:    "wentors",
		PostID:       "urn:li:share:1",
		ObservedDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		ObservedAt:   observedAt,
		Impressions:  100,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
