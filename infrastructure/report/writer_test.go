package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

func sampleReport() *domain.IngestionReport {
	r := &domain.IngestionReport{
		RunID:      "run-1",
		File:       "/data/linkedin_exports/wentors_content_2024.xlsx",
		CompanyID:  "wentors",
		Policy:     domain.MergePolicyMax,
		StartedAt:  time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 1, 20, 9, 0, 3, 0, time.UTC),
	}
	r.Add(domain.ReportEntry{Source: "wentors_content_2024.xlsx", Sheet: "All posts", Row: 3, Kind: domain.TableKindPosts, Identity: "urn:li:share:1", Outcome: domain.OutcomeInserted})
	r.Add(domain.ReportEntry{Source: "wentors_content_2024.xlsx", Sheet: "All posts", Row: 4, Kind: domain.TableKindPosts, Identity: "urn:li:share:2", Outcome: domain.OutcomeUpdated, Flags: []string{domain.ReasonAmbiguousDate, domain.ReasonSnapshotFailed}})
	r.Add(domain.ReportEntry{Source: "wentors_content_2024.xlsx", Sheet: "Metrics", Kind: domain.TableKindUnknown, Outcome: domain.OutcomeSkipped, Reason: domain.ReasonUnclassifiableTable})
	return r
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "validation_reports")
	w := NewWriter(dir)

	path, err := w.Write(sampleReport())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "validation_20240120_090000_wentors_content_2024_xlsx.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"wentors_content_2024.xlsx", "All posts", "4", "posts", "urn:li:share:2", "updated", "", "ambiguous_date|snapshot_failed"}, records[2])
	assert.Equal(t, "", records[3][2])

	data, err := os.ReadFile(filepath.Join(dir, "validation_20240120_090000_wentors_content_2024_xlsx.json"))
	require.NoError(t, err)

	var s summary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 1, s.Counts[domain.TableKindPosts].Inserted)
	assert.Equal(t, 1, s.Counts[domain.TableKindPosts].Updated)
	assert.Equal(t, 1, s.Skipped[domain.ReasonUnclassifiableTable])
}

func TestWriter_Write_NomeRepetidoRecebeSufixo(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	first, err := w.Write(sampleReport())
	require.NoError(t, err)
	second, err := w.Write(sampleReport())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, second)
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "Wentors_followers__1__xls", SafeName("Wentors followers (1).xls"))
	assert.Equal(t, "posts_csv", SafeName("posts.csv"))
}
