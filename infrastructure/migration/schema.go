package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
)

// Step é um comando DDL idempotente
type Step struct {
	Name string
	SQL  string
}

// Steps cria as tabelas e as chaves únicas usadas pelos upserts. Pode ser reaplicado.
var Steps = []Step{
	{
		Name: "post_analytics",
		SQL: `CREATE TABLE IF NOT EXISTS post_analytics (
			id BIGSERIAL PRIMARY KEY,
			company_id TEXT NOT NULL,
			post_id TEXT NOT NULL,
			post_date TIMESTAMPTZ NULL,
			post_type TEXT NOT NULL DEFAULT 'text',
			post_title TEXT NOT NULL DEFAULT '',
			post_content TEXT NOT NULL DEFAULT '',
			post_url TEXT NOT NULL DEFAULT '',
			hashtags TEXT[] NOT NULL DEFAULT '{}',
			mentions TEXT[] NOT NULL DEFAULT '{}',
			impressions INTEGER NOT NULL DEFAULT 0,
			clicks INTEGER NOT NULL DEFAULT 0,
			likes INTEGER NOT NULL DEFAULT 0,
			comments INTEGER NOT NULL DEFAULT 0,
			shares INTEGER NOT NULL DEFAULT 0,
			reach INTEGER NOT NULL DEFAULT 0,
			ctr NUMERIC(12,6) NOT NULL DEFAULT 0,
			engagement_rate NUMERIC(12,6) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT post_analytics_company_post_unique UNIQUE (company_id, post_id)
		)`,
	},
	{
		Name: "follower_analytics",
		SQL: `CREATE TABLE IF NOT EXISTS follower_analytics (
			id BIGSERIAL PRIMARY KEY,
			company_id TEXT NOT NULL,
			demographic_type TEXT NOT NULL,
			demographic_value VARCHAR(255) NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			percentage NUMERIC(8,4) NOT NULL DEFAULT 0,
			date_collected TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT follower_analytics_identity_unique UNIQUE (company_id, demographic_type, demographic_value, date_collected)
		)`,
	},
	{
		Name: "post_metrics_history",
		SQL: `CREATE TABLE IF NOT EXISTS post_metrics_history (
			id BIGSERIAL PRIMARY KEY,
			company_id TEXT NOT NULL,
			post_id TEXT NOT NULL,
			observed_date DATE NOT NULL,
			observed_at TIMESTAMPTZ NOT NULL,
			post_date TIMESTAMPTZ NULL,
			impressions INTEGER NOT NULL DEFAULT 0,
			clicks INTEGER NOT NULL DEFAULT 0,
			likes INTEGER NOT NULL DEFAULT 0,
			comments INTEGER NOT NULL DEFAULT 0,
			shares INTEGER NOT NULL DEFAULT 0,
			reach INTEGER NOT NULL DEFAULT 0,
			ctr NUMERIC(12,6) NOT NULL DEFAULT 0,
			engagement_rate NUMERIC(12,6) NOT NULL DEFAULT 0,
			CONSTRAINT post_metrics_history_day_unique UNIQUE (company_id, post_id, observed_date)
		)`,
	},
	{
		Name: "company_analytics",
		SQL: `CREATE TABLE IF NOT EXISTS company_analytics (
			company_id TEXT PRIMARY KEY,
			company_name TEXT NOT NULL DEFAULT '',
			impressions BIGINT NOT NULL DEFAULT 0,
			clicks BIGINT NOT NULL DEFAULT 0,
			reach BIGINT NOT NULL DEFAULT 0,
			engagement_rate NUMERIC(12,6) NOT NULL DEFAULT 0,
			total_posts INTEGER NOT NULL DEFAULT 0,
			avg_post_engagement NUMERIC(12,6) NOT NULL DEFAULT 0,
			date_collected TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		Name: "analytics_history",
		SQL: `CREATE TABLE IF NOT EXISTS analytics_history (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			company_name TEXT NOT NULL DEFAULT '',
			impressions BIGINT NOT NULL DEFAULT 0,
			clicks BIGINT NOT NULL DEFAULT 0,
			reach BIGINT NOT NULL DEFAULT 0,
			engagement_rate NUMERIC(12,6) NOT NULL DEFAULT 0,
			total_posts INTEGER NOT NULL DEFAULT 0,
			avg_post_engagement NUMERIC(12,6) NOT NULL DEFAULT 0,
			date_collected TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		Name: "post_analytics_company_date_idx",
		SQL:  `CREATE INDEX IF NOT EXISTS post_analytics_company_date_idx ON post_analytics (company_id, post_date DESC)`,
	},
	{
		Name: "analytics_history_company_idx",
		SQL:  `CREATE INDEX IF NOT EXISTS analytics_history_company_idx ON analytics_history (company_id, date_collected DESC)`,
	},
}

// Apply executa todos os passos na mesma transação
func Apply(ctx context.Context, conn postgres.Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, step := range Steps {
			if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
				return fmt.Errorf("erro ao aplicar %s: %w", step.Name, err)
			}
			logrus.WithField("step", step.Name).Debug("Passo de schema aplicado")
		}
		return nil
	})
}
