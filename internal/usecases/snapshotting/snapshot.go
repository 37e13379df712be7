package snapshotting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/repository"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

//go:generate mockgen -source=snapshot.go -destination=mocks/snapshot_mock.go -package=mocks

type Snapshotter interface {
	// Snapshot grava a fotografia diária dos contadores do post já conciliado
	Snapshot(ctx context.Context, record *domain.PostRecord, observedAt time.Time) error
	Enabled() bool
}

type snapshotter struct {
	historyRepo repository.PostMetricsHistoryRepository
	enabled     bool
}

func NewSnapshotter(historyRepo repository.PostMetricsHistoryRepository, enabled bool) Snapshotter {
	return &snapshotter{
		historyRepo: historyRepo,
		enabled:     enabled,
	}
}

func (s *snapshotter) Enabled() bool {
	return s.enabled
}

func (s *snapshotter) Snapshot(ctx context.Context, record *domain.PostRecord, observedAt time.Time) error {
	if !s.enabled {
		return nil
	}

	if err := s.historyRepo.Upsert(ctx, BuildSnapshot(record, observedAt)); err != nil {
		return fmt.Errorf("erro ao gravar histórico do post %s: %w", record.PostID, err)
	}

	return nil
}

// BuildSnapshot copia os contadores do registro. Observações do mesmo dia UTC colapsam
// na mesma chave e a última prevalece.
func BuildSnapshot(record *domain.PostRecord, observedAt time.Time) *domain.PostMetricsSnapshot {
	snapshot := &domain.PostMetricsSnapshot{
		CompanyID:      record.CompanyID,
		PostID:         record.PostID,
		ObservedDate:   utils.StartOfDayUTC(observedAt),
		ObservedAt:     observedAt.UTC(),
		Impressions:    record.Impressions,
		Clicks:         record.Clicks,
		Likes:          record.Likes,
		Comments:       record.Comments,
		Shares:         record.Shares,
		Reach:          record.Reach,
		CTR:            record.CTR,
		EngagementRate: record.EngagementRate,
	}

	if record.PostDate != nil {
		d := *record.PostDate
		snapshot.PostDate = &d
	}

	return snapshot
}
