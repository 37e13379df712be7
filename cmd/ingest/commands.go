package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vfg2006/social-analytics-ingestor/infrastructure/database/postgres"
	"github.com/vfg2006/social-analytics-ingestor/infrastructure/migration"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/ingesting"
	"github.com/vfg2006/social-analytics-ingestor/pkg/log"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

// environment é o que os comandos precisam em tempo de execução
type environment struct {
	ingester ingesting.Ingester
	conn     postgres.Conn
	close    func()
}

type opener func(ctx context.Context) (*environment, error)

var output string

func newRootCmd(open opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ingest",
		Short:         "Ingestão de exports de analytics do LinkedIn",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&output, "output", "text", "formato de saída: json|text")

	rootCmd.AddCommand(newFilesCmd(open))
	rootCmd.AddCommand(newFolderCmd(open))
	rootCmd.AddCommand(newReclassifyCmd(open))
	rootCmd.AddCommand(newMigrateCmd(open))

	return rootCmd
}

func withEnvironment(cmd *cobra.Command, open opener, fn func(ctx context.Context, env *environment) error) error {
	ctx, _ := log.EnsureCorrelationID(cmd.Context())

	env, err := open(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	return fn(ctx, env)
}

func newFilesCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "files <arquivo>...",
		Short: "Ingere os arquivos informados, na ordem",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, open, func(ctx context.Context, env *environment) error {
				var reports []*domain.IngestionReport
				failed := 0

				for _, path := range args {
					report, err := env.ingester.IngestFile(ctx, path)
					if err != nil {
						failed++
					}
					if report != nil {
						reports = append(reports, report)
					}
				}

				if err := printReports(cmd.OutOrStdout(), reports); err != nil {
					return err
				}
				if failed > 0 {
					return fmt.Errorf("%d de %d arquivo(s) com falha", failed, len(args))
				}
				return nil
			})
		},
	}
}

func newFolderCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "folder",
		Short: "Varre a pasta de dados e arquiva os exports processados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, open, func(ctx context.Context, env *environment) error {
				summary, err := env.ingester.ScanFolder(ctx)
				if err != nil {
					return err
				}

				if output == "json" {
					fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(summary))
					return nil
				}

				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "run %s: %d processado(s), %d arquivado(s), %d com falha em %s\n",
					summary.RunID, len(summary.Processed), len(summary.Archived), len(summary.Failed), summary.Duration)
				for _, f := range summary.Failed {
					fmt.Fprintf(w, "  falha %s [%s]: %s\n", f.File, f.Reason, f.Error)
				}

				if len(summary.Failed) > 0 {
					return fmt.Errorf("%d arquivo(s) com falha", len(summary.Failed))
				}
				return nil
			})
		},
	}
}

func newReclassifyCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "reclassify",
		Short: "Recalcula o tipo dos posts gravados com rótulo de distribuição",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, open, func(ctx context.Context, env *environment) error {
				updated, err := env.ingester.Reclassify(ctx)
				if err != nil {
					return err
				}

				if output == "json" {
					fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(map[string]int{"updated": updated}))
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d post(s) reclassificado(s)\n", updated)
				return nil
			})
		},
	}
}

func newMigrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria as tabelas e chaves únicas, se ainda não existirem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, open, func(ctx context.Context, env *environment) error {
				if err := migration.Apply(ctx, env.conn); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema aplicado (%d passos)\n", len(migration.Steps))
				return nil
			})
		},
	}
}

func printReports(w io.Writer, reports []*domain.IngestionReport) error {
	if output == "json" {
		fmt.Fprintln(w, utils.PrettyJson(reports))
		return nil
	}

	for _, r := range reports {
		status := "ok"
		if r.Error != "" {
			status = "falha: " + r.Error
		}

		fmt.Fprintf(w, "%s: %s\n", filepath.Base(r.File), status)
		fmt.Fprintf(w, "  posts: %d inseridos, %d atualizados\n",
			r.CountKind(domain.TableKindPosts, domain.OutcomeInserted), r.CountKind(domain.TableKindPosts, domain.OutcomeUpdated))
		fmt.Fprintf(w, "  demografia: %d inseridos, %d atualizados\n",
			r.CountKind(domain.TableKindDemographics, domain.OutcomeInserted), r.CountKind(domain.TableKindDemographics, domain.OutcomeUpdated))
		fmt.Fprintf(w, "  ignorados: %d\n", r.Count(domain.OutcomeSkipped))
		if r.ReportPath != "" {
			fmt.Fprintf(w, "  relatório: %s\n", r.ReportPath)
		}
	}

	return nil
}
