package snapshotting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/repository/mocks"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

func TestBuildSnapshot(t *testing.T) {
	postDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	record := &domain.PostRecord{
		CompanyID:   "wentors",
		PostID:      "urn:li:share:1",
		PostDate:    &postDate,
		Impressions: 100,
		Clicks:      5,
		Likes:       10,
		Comments:    2,
		Shares:      1,
	}
	record.RecomputeRates()

	observedAt := time.Date(2024, 1, 20, 23, 59, 0, 0, time.FixedZone("BRT", -3*3600))

	snapshot := BuildSnapshot(record, observedAt)

	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), snapshot.ObservedDate)
	assert.Equal(t, observedAt.UTC(), snapshot.ObservedAt)
	assert.Equal(t, 100, snapshot.Impressions)
	assert.Equal(t, 0.05, snapshot.CTR)
	assert.Equal(t, 0.18, snapshot.EngagementRate)
	assert.NotSame(t, record.PostDate, snapshot.PostDate)
}

func TestSnapshotter_Snapshot(t *testing.T) {
	observedAt := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	record := &domain.PostRecord{CompanyID: "wentors", PostID: "urn:li:share:1", Impressions: 10}

	tests := []struct {
		name          string
		enabled       bool
		setup         func(repo *mocks.MockPostMetricsHistoryRepository)
		expectedError error
	}{
		{
			name:    "Grava a fotografia do dia",
			enabled: true,
			setup: func(repo *mocks.MockPostMetricsHistoryRepository) {
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, s *domain.PostMetricsSnapshot) error {
						assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), s.ObservedDate)
						assert.Equal(t, "urn:li:share:1", s.PostID)
						return nil
					})
			},
		},
		{
			name:    "Histórico desabilitado não grava nada",
			enabled: false,
			setup:   func(repo *mocks.MockPostMetricsHistoryRepository) {},
		},
		{
			name:    "Falha de armazenamento é propagada",
			enabled: true,
			setup: func(repo *mocks.MockPostMetricsHistoryRepository) {
				repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.Join(domain.ErrStorage, errors.New("timeout")))
			},
			expectedError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockPostMetricsHistoryRepository(ctrl)
			tt.setup(repo)

			s := NewSnapshotter(repo, tt.enabled)
			err := s.Snapshot(context.Background(), record, observedAt)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.enabled, s.Enabled())
		})
	}
}
