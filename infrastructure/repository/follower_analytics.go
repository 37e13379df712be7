package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

//go:generate mockgen -source=follower_analytics.go -destination=mocks/follower_analytics_mock.go -package=mocks

const followerAnalyticsTable = "follower_analytics"

var followerAnalyticsColumns = []string{
	"id",
	"company_id",
	"demographic_type",
	"demographic_value",
	"count",
	"percentage",
	"date_collected",
	"created_at",
	"updated_at",
}

type FollowerAnalyticsRepository interface {
	// Upsert grava a linha na chave (company_id, demographic_type, demographic_value, date_collected)
	Upsert(ctx context.Context, incoming *domain.DemographicRecord, merge domain.DemographicMergeFunc) (*domain.DemographicRecord, bool, error)
}

type followerAnalyticsRepository struct {
	conn *postgres.Connection
}

func NewFollowerAnalyticsRepository(conn *postgres.Connection) FollowerAnalyticsRepository {
	return &followerAnalyticsRepository{
		conn: conn,
	}
}

func (r *followerAnalyticsRepository) Upsert(ctx context.Context, incoming *domain.DemographicRecord, merge domain.DemographicMergeFunc) (*domain.DemographicRecord, bool, error) {
	var (
		stored   *domain.DemographicRecord
		inserted bool
	)

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := postgres.LockKey(ctx, tx, "follower:"+incoming.CompanyID+":"+incoming.IdentityKey()); err != nil {
			return fmt.Errorf("erro ao adquirir lock da linha demográfica: %w", err)
		}

		existing, err := r.findForUpdate(ctx, tx, incoming)
		if err != nil {
			return err
		}

		merged, isInsert := merge(existing)

		id, err := r.write(ctx, tx, merged)
		if err != nil {
			return err
		}

		merged.ID = id
		stored, inserted = merged, isInsert
		return nil
	})
	if err != nil {
		return nil, false, storageError("upsert de follower_analytics", err)
	}

	return stored, inserted, nil
}

func (r *followerAnalyticsRepository) findForUpdate(ctx context.Context, q postgres.Queryer, key *domain.DemographicRecord) (*domain.DemographicRecord, error) {
	query, args, err := squirrel.Select(followerAnalyticsColumns...).
		From(followerAnalyticsTable).
		Where(squirrel.Eq{
			"company_id":        key.CompanyID,
			"demographic_type":  key.DemographicType,
			"demographic_value": key.DemographicValue,
			"date_collected":    key.DateCollected.UTC(),
		}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record := &domain.DemographicRecord{}
	err = q.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.CompanyID,
		&record.DemographicType,
		&record.DemographicValue,
		&record.Count,
		&record.Percentage,
		&record.DateCollected,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar linha demográfica: %w", err)
	}

	return record, nil
}

func (r *followerAnalyticsRepository) write(ctx context.Context, q postgres.Queryer, d *domain.DemographicRecord) (int64, error) {
	query, args, err := squirrel.Insert(followerAnalyticsTable).
		Columns(followerAnalyticsColumns[1:]...).
		Values(
			d.CompanyID,
			d.DemographicType,
			d.DemographicValue,
			d.Count,
			d.Percentage,
			d.DateCollected.UTC(),
			d.CreatedAt,
			d.UpdatedAt,
		).
		Suffix(`
			ON CONFLICT (company_id, demographic_type, demographic_value, date_collected) DO UPDATE SET
				count = EXCLUDED.count,
				percentage = EXCLUDED.percentage,
				updated_at = EXCLUDED.updated_at
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return id, nil
}
