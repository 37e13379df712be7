package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

//go:generate mockgen -source=post_analytics.go -destination=mocks/post_analytics_mock.go -package=mocks

const postAnalyticsTable = "post_analytics"

var postAnalyticsColumns = []string{
	"id",
	"company_id",
	"post_id",
	"post_date",
	"post_type",
	"post_title",
	"post_content",
	"post_url",
	"hashtags",
	"mentions",
	"impressions",
	"clicks",
	"likes",
	"comments",
	"shares",
	"reach",
	"ctr",
	"engagement_rate",
	"created_at",
	"updated_at",
}

type PostAnalyticsRepository interface {
	// Upsert grava o post na chave (company_id, post_id). merge recebe o registro armazenado
	// (nil quando não existe) e decide o que persistir; tudo acontece em uma única transação.
	Upsert(ctx context.Context, incoming *domain.PostRecord, merge domain.PostMergeFunc) (*domain.PostRecord, bool, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.PostRecord, error)
	UpdatePostType(ctx context.Context, companyID, postID string, postType domain.PostType) error
}

type postAnalyticsRepository struct {
	conn *postgres.Connection
}

func NewPostAnalyticsRepository(conn *postgres.Connection) PostAnalyticsRepository {
	return &postAnalyticsRepository{
		conn: conn,
	}
}

func (r *postAnalyticsRepository) Upsert(ctx context.Context, incoming *domain.PostRecord, merge domain.PostMergeFunc) (*domain.PostRecord, bool, error) {
	var (
		stored   *domain.PostRecord
		inserted bool
	)

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := postgres.LockKey(ctx, tx, postLockKey(incoming.CompanyID, incoming.PostID)); err != nil {
			return fmt.Errorf("erro ao adquirir lock do post: %w", err)
		}

		existing, err := r.findForUpdate(ctx, tx, incoming.CompanyID, incoming.PostID)
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
		return nil, false, storageError("upsert de post_analytics", err)
	}

	return stored, inserted, nil
}

func (r *postAnalyticsRepository) findForUpdate(ctx context.Context, q postgres.Queryer, companyID, postID string) (*domain.PostRecord, error) {
	query, args, err := squirrel.Select(postAnalyticsColumns...).
		From(postAnalyticsTable).
		Where(squirrel.Eq{"company_id": companyID, "post_id": postID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record, err := scanPostRecord(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar post: %w", err)
	}

	return record, nil
}

func (r *postAnalyticsRepository) write(ctx context.Context, q postgres.Queryer, p *domain.PostRecord) (int64, error) {
	query, args, err := squirrel.Insert(postAnalyticsTable).
		Columns(postAnalyticsColumns[1:]...).
		Values(
			p.CompanyID,
			p.PostID,
			nullTime(p.PostDate),
			string(p.PostType),
			p.Title,
			p.TextExcerpt,
			p.PostURL,
			pq.Array(nonNil(p.Hashtags)),
			pq.Array(nonNil(p.Mentions)),
			p.Impressions,
			p.Clicks,
			p.Likes,
			p.Comments,
			p.Shares,
			p.Reach,
			p.CTR,
			p.EngagementRate,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix(`
			ON CONFLICT (company_id, post_id) DO UPDATE SET
				post_date = EXCLUDED.post_date,
				post_type = EXCLUDED.post_type,
				post_title = EXCLUDED.post_title,
				post_content = EXCLUDED.post_content,
				post_url = EXCLUDED.post_url,
				hashtags = EXCLUDED.hashtags,
				mentions = EXCLUDED.mentions,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				likes = EXCLUDED.likes,
				comments = EXCLUDED.comments,
				shares = EXCLUDED.shares,
				reach = EXCLUDED.reach,
				ctr = EXCLUDED.ctr,
				engagement_rate = EXCLUDED.engagement_rate,
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

func (r *postAnalyticsRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.PostRecord, error) {
	query, args, err := squirrel.Select(postAnalyticsColumns...).
		From(postAnalyticsTable).
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("post_date DESC NULLS LAST", "id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("listagem de post_analytics", err)
	}
	defer rows.Close()

	var posts []*domain.PostRecord
	for rows.Next() {
		record, err := scanPostRecord(rows)
		if err != nil {
			return nil, storageError("leitura de post_analytics", err)
		}
		posts = append(posts, record)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("leitura de post_analytics", err)
	}

	return posts, nil
}

func (r *postAnalyticsRepository) UpdatePostType(ctx context.Context, companyID, postID string, postType domain.PostType) error {
	query, args, err := squirrel.Update(postAnalyticsTable).
		Set("post_type", string(postType)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"company_id": companyID, "post_id": postID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return storageError("atualização de post_type", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPostRecord(row rowScanner) (*domain.PostRecord, error) {
	var (
		record   domain.PostRecord
		postDate sql.NullTime
		postType string
	)

	err := row.Scan(
		&record.ID,
		&record.CompanyID,
		&record.PostID,
		&postDate,
		&postType,
		&record.Title,
		&record.TextExcerpt,
		&record.PostURL,
		pq.Array(&record.Hashtags),
		pq.Array(&record.Mentions),
		&record.Impressions,
		&record.Clicks,
		&record.Likes,
		&record.Comments,
		&record.Shares,
		&record.Reach,
		&record.CTR,
		&record.EngagementRate,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.PostType = domain.PostType(postType)
	if postDate.Valid {
		d := postDate.Time.UTC()
		record.PostDate = &d
	}

	return &record, nil
}

func postLockKey(companyID, postID string) string {
	return "post:" + companyID + ":" + postID
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
