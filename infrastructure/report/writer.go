package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

//go:generate mockgen -source=writer.go -destination=mocks/writer_mock.go -package=mocks

const timestampLayout = "20060102_150405"

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	csvHeader = []string{"source", "sheet", "row", "kind", "identity", "outcome", "reason", "flags"}
)

// Writer grava o relatório de validação de uma execução e devolve o caminho do CSV
type Writer interface {
	Write(report *domain.IngestionReport) (string, error)
}

type writer struct {
	dir string
}

func NewWriter(dir string) Writer {
	return &writer{dir: dir}
}

type kindCounts struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// summary é o resumo em JSON gravado ao lado do CSV
type summary struct {
	RunID      string                          `json:"run_id"`
	File       string                          `json:"file"`
	CompanyID  string                          `json:"company_id"`
	Policy     domain.MergePolicy              `json:"policy"`
	StartedAt  string                          `json:"started_at"`
	FinishedAt string                          `json:"finished_at"`
	Error      string                          `json:"error,omitempty"`
	Counts     map[domain.TableKind]kindCounts `json:"counts"`
	Skipped    map[string]int                  `json:"skipped_by_reason"`
	CSV        string                          `json:"csv"`
}

func (w *writer) Write(report *domain.IngestionReport) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "erro ao criar pasta de relatórios")
	}

	base, err := w.baseName(report)
	if err != nil {
		return "", err
	}

	csvPath := filepath.Join(w.dir, base+".csv")
	if err := writeCSV(csvPath, report.Entries); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(buildSummary(report, csvPath), "", "  ")
	if err != nil {
		return csvPath, errors.Wrap(err, "erro ao serializar resumo")
	}

	if err := os.WriteFile(filepath.Join(w.dir, base+".json"), data, 0o644); err != nil {
		return csvPath, errors.Wrap(err, "erro ao gravar resumo")
	}

	return csvPath, nil
}

// baseName segue validation_<timestamp>_<nome>; se já existir, acrescenta um id curto
func (w *writer) baseName(report *domain.IngestionReport) (string, error) {
	base := fmt.Sprintf("validation_%s_%s", report.StartedAt.UTC().Format(timestampLayout), SafeName(filepath.Base(report.File)))

	if _, err := os.Stat(filepath.Join(w.dir, base+".csv")); os.IsNotExist(err) {
		return base, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar id do relatório")
	}

	return base + "_" + id, nil
}

func writeCSV(path string, entries []domain.ReportEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "erro ao criar relatório")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "erro ao escrever relatório")
	}

	for _, e := range entries {
		row := ""
		if e.Row > 0 {
			row = strconv.Itoa(e.Row)
		}

		record := []string{e.Source, e.Sheet, row, string(e.Kind), e.Identity, string(e.Outcome), e.Reason, strings.Join(e.Flags, "|")}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "erro ao escrever relatório")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "erro ao escrever relatório")
}

func buildSummary(report *domain.IngestionReport, csvPath string) summary {
	s := summary{
		RunID:      report.RunID,
		File:       report.File,
		CompanyID:  report.CompanyID,
		Policy:     report.Policy,
		StartedAt:  report.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
		FinishedAt: report.FinishedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Error:      report.Error,
		Counts:     map[domain.TableKind]kindCounts{},
		Skipped:    map[string]int{},
		CSV:        csvPath,
	}

	for _, kind := range []domain.TableKind{domain.TableKindPosts, domain.TableKindDemographics} {
		s.Counts[kind] = kindCounts{
			Inserted: report.CountKind(kind, domain.OutcomeInserted),
			Updated:  report.CountKind(kind, domain.OutcomeUpdated),
			Skipped:  report.CountKind(kind, domain.OutcomeSkipped),
		}
	}

	for _, e := range report.Entries {
		if e.Outcome == domain.OutcomeSkipped || e.Outcome == domain.OutcomeFailed {
			s.Skipped[e.Reason]++
		}
	}

	return s
}

// SafeName troca pontos e caracteres fora de [A-Za-z0-9_-] por "_"
func SafeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
