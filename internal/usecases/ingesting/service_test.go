package ingesting

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	extractorMocks "github.com/vfg2006/social-analytics-ingestor/infrastructure/extractor/mocks"
	filesystemMocks "github.com/vfg2006/social-analytics-ingestor/infrastructure/filesystem/mocks"
	reportMocks "github.com/vfg2006/social-analytics-ingestor/infrastructure/report/mocks"
	repositoryMocks "github.com/vfg2006/social-analytics-ingestor/infrastructure/repository/mocks"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	snapshotMocks "github.com/vfg2006/social-analytics-ingestor/internal/usecases/snapshotting/mocks"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

const dataDir = "/data/linkedin"

type fixture struct {
	service     *Service
	extractor   *extractorMocks.MockExtractor
	postRepo    *repositoryMocks.MockPostAnalyticsRepository
	followers   *repositoryMocks.MockFollowerAnalyticsRepository
	companyRepo *repositoryMocks.MockCompanyAnalyticsRepository
	snapshotter *snapshotMocks.MockSnapshotter
	writer      *reportMocks.MockWriter
	archiver    *filesystemMocks.MockArchiver
	fs          afero.Fs

	posts        map[string]*domain.PostRecord
	demographics map[string]*domain.DemographicRecord
	written      []*domain.IngestionReport
}

func newFixture(t *testing.T, now time.Time) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		extractor:    extractorMocks.NewMockExtractor(ctrl),
		postRepo:     repositoryMocks.NewMockPostAnalyticsRepository(ctrl),
		followers:    repositoryMocks.NewMockFollowerAnalyticsRepository(ctrl),
		companyRepo:  repositoryMocks.NewMockCompanyAnalyticsRepository(ctrl),
		snapshotter:  snapshotMocks.NewMockSnapshotter(ctrl),
		writer:       reportMocks.NewMockWriter(ctrl),
		archiver:     filesystemMocks.NewMockArchiver(ctrl),
		fs:           afero.NewMemMapFs(),
		posts:        map[string]*domain.PostRecord{},
		demographics: map[string]*domain.DemographicRecord{},
	}

	opts := Options{
		CompanyID:   "wentors",
		CompanyName: "Wentors",
		DataDir:     dataDir,
		Policy:      domain.MergePolicyMax,
		Dates:       utils.DateParser{},
	}

	f.service = NewService(opts, f.extractor, f.postRepo, f.followers, f.companyRepo, f.snapshotter, f.writer, f.archiver, f.fs).
		WithClock(func() time.Time { return now })

	f.writer.EXPECT().Write(gomock.Any()).DoAndReturn(func(r *domain.IngestionReport) (string, error) {
		f.written = append(f.written, r)
		return fmt.Sprintf("/reports/validation_%d.csv", len(f.written)), nil
	}).AnyTimes()

	return f
}

// withStore simula o banco: cada upsert aplica a função de merge sobre o registro guardado
func (f *fixture) withStore() {
	var nextID int64
	f.postRepo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, incoming *domain.PostRecord, merge domain.PostMergeFunc) (*domain.PostRecord, bool, error) {
			merged, inserted := merge(f.posts[incoming.PostID])
			if inserted {
				nextID++
				merged.ID = nextID
			}
			f.posts[incoming.PostID] = merged
			return merged, inserted, nil
		}).AnyTimes()

	f.followers.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, incoming *domain.DemographicRecord, merge domain.DemographicMergeFunc) (*domain.DemographicRecord, bool, error) {
			merged, inserted := merge(f.demographics[incoming.IdentityKey()])
			f.demographics[incoming.IdentityKey()] = merged
			return merged, inserted, nil
		}).AnyTimes()

	f.snapshotter.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.companyRepo.EXPECT().Summarize(gomock.Any(), "wentors").Return(&domain.CompanyAnalytics{CompanyID: "wentors"}, nil).AnyTimes()
	f.companyRepo.EXPECT().UpsertSummary(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.companyRepo.EXPECT().InsertHistory(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func postsTable(rows ...domain.RawRow) domain.Table {
	return domain.Table{
		Source:  "posts.csv",
		Columns: []string{"urn", "impressions", "clicks", "likes", "comments", "shares", "text"},
		Rows:    rows,
	}
}

func postRow(urn, impressions string) domain.RawRow {
	return domain.RawRow{
		"urn":         urn,
		"impressions": impressions,
		"clicks":      "5",
		"likes":       "10",
		"comments":    "2",
		"shares":      "1",
		"text":        "Check #launch out",
	}
}

func seniorityTable() domain.Table {
	return domain.Table{
		Source:  "followers.xlsx",
		Sheet:   "Seniority",
		Columns: []string{"Seniority", "Total followers"},
		Rows: []domain.RawRow{
			{"Seniority": "Senior", "Total followers": "120"},
			{"Seniority": "Entry", "Total followers": "30"},
		},
	}
}

func TestService_IngestFile_CenarioPrincipal(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.withStore()

	f.extractor.EXPECT().Extract("/data/export.zip").Return(&domain.ExportFile{
		Path:   "/data/export.zip",
		Kind:   domain.ContainerArchive,
		Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "100")), seniorityTable()},
	}, nil)

	report, err := f.service.IngestFile(context.Background(), "/data/export.zip")

	require.NoError(t, err)
	assert.Equal(t, 1, report.CountKind(domain.TableKindPosts, domain.OutcomeInserted))
	assert.Equal(t, 2, report.CountKind(domain.TableKindDemographics, domain.OutcomeInserted))
	assert.Equal(t, "/reports/validation_1.csv", report.ReportPath)
	assert.NotEmpty(t, report.RunID)
	assert.Empty(t, report.Error)

	stored := f.posts["urn:li:share:1"]
	require.NotNil(t, stored)
	assert.Equal(t, 0.05, stored.CTR)
	assert.Equal(t, 0.18, stored.EngagementRate)
	assert.Equal(t, []string{"launch"}, stored.Hashtags)
	assert.Equal(t, now, stored.CreatedAt)

	senior := f.demographics["seniority/Senior@2024-01-20"]
	require.NotNil(t, senior)
	assert.Equal(t, 120, senior.Count)
}

func TestService_IngestFile_Reingestao(t *testing.T) {
	first := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, first)
	f.withStore()

	f.extractor.EXPECT().Extract("/data/posts.csv").Return(&domain.ExportFile{
		Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "100"))},
	}, nil)
	_, err := f.service.IngestFile(context.Background(), "/data/posts.csv")
	require.NoError(t, err)
	before := f.posts["urn:li:share:1"].Clone()

	t.Run("Mesmo arquivo não altera os valores", func(t *testing.T) {
		f.extractor.EXPECT().Extract("/data/posts.csv").Return(&domain.ExportFile{
			Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "100"))},
		}, nil)

		report, err := f.service.IngestFile(context.Background(), "/data/posts.csv")

		require.NoError(t, err)
		assert.Equal(t, 1, report.CountKind(domain.TableKindPosts, domain.OutcomeUpdated))
		assert.Len(t, f.posts, 1)
		after := f.posts["urn:li:share:1"]
		assert.Equal(t, before.Impressions, after.Impressions)
		assert.Equal(t, before.EngagementRate, after.EngagementRate)
		assert.Equal(t, before.CreatedAt, after.CreatedAt)
	})

	t.Run("Impressões menores mantêm o máximo", func(t *testing.T) {
		f.extractor.EXPECT().Extract("/data/posts_old.csv").Return(&domain.ExportFile{
			Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "90"))},
		}, nil)

		_, err := f.service.IngestFile(context.Background(), "/data/posts_old.csv")

		require.NoError(t, err)
		assert.Equal(t, 100, f.posts["urn:li:share:1"].Impressions)
		assert.Equal(t, 0.18, f.posts["urn:li:share:1"].EngagementRate)
	})
}

func TestService_IngestFile_LinhasETabelasIgnoradas(t *testing.T) {
	f := newFixture(t, time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC))
	f.withStore()

	f.extractor.EXPECT().Extract("/data/export.zip").Return(&domain.ExportFile{
		Tables: []domain.Table{
			{Source: "export.zip/notes.csv", Columns: []string{"Foo", "Bar"}, Rows: []domain.RawRow{{"Foo": "1"}}},
			postsTable(postRow("urn:li:share:1", "100"), domain.RawRow{"impressions": "10"}),
		},
		Skipped: []domain.SkippedSource{{Source: "export.zip/readme.pdf", Reason: domain.ReasonUnsupportedFormat}},
	}, nil)

	report, err := f.service.IngestFile(context.Background(), "/data/export.zip")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(domain.OutcomeInserted))
	assert.Equal(t, 3, report.Count(domain.OutcomeSkipped))

	reasons := map[string]string{}
	for _, e := range report.Entries {
		if e.Outcome == domain.OutcomeSkipped {
			reasons[e.Source] = e.Reason
		}
	}
	assert.Equal(t, domain.ReasonUnsupportedFormat, reasons["export.zip/readme.pdf"])
	assert.Equal(t, domain.ReasonUnclassifiableTable, reasons["export.zip/notes.csv"])
	assert.Equal(t, domain.ReasonUnparseableRow, reasons["posts.csv"])
}

func TestService_IngestFile_Falhas(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	storageErr := fmt.Errorf("%w: upsert post_analytics: connection reset", domain.ErrStorage)

	tests := []struct {
		name           string
		setup          func(f *fixture)
		expectedError  error
		expectedReason string
		validate       func(t *testing.T, f *fixture, report *domain.IngestionReport)
	}{
		{
			name: "Arquivo corrompido ainda gera relatório",
			setup: func(f *fixture) {
				f.extractor.EXPECT().Extract("/data/file.csv").Return(nil, fmt.Errorf("%w: zip inválido", domain.ErrCorruptFile))
			},
			expectedError:  domain.ErrCorruptFile,
			expectedReason: domain.ReasonCorruptFile,
			validate: func(t *testing.T, f *fixture, report *domain.IngestionReport) {
				require.Len(t, f.written, 1)
				assert.Equal(t, 1, report.Count(domain.OutcomeFailed))
			},
		},
		{
			name: "Falha de armazenamento interrompe o arquivo sem rollup",
			setup: func(f *fixture) {
				f.extractor.EXPECT().Extract("/data/file.csv").Return(&domain.ExportFile{
					Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "100"), postRow("urn:li:share:2", "50"))},
				}, nil)
				f.postRepo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false, storageErr)
				f.companyRepo.EXPECT().Summarize(gomock.Any(), gomock.Any()).Times(0)
			},
			expectedError:  domain.ErrStorage,
			expectedReason: domain.ReasonStorage,
			validate: func(t *testing.T, f *fixture, report *domain.IngestionReport) {
				require.Len(t, f.written, 1)
				assert.Zero(t, report.Count(domain.OutcomeInserted))
				assert.Equal(t, 2, report.Count(domain.OutcomeFailed))
			},
		},
		{
			name: "Falha no rollup é fatal para o arquivo",
			setup: func(f *fixture) {
				f.extractor.EXPECT().Extract("/data/file.csv").Return(&domain.ExportFile{
					Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "100"))},
				}, nil)
				f.postRepo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, incoming *domain.PostRecord, merge domain.PostMergeFunc) (*domain.PostRecord, bool, error) {
						merged, inserted := merge(nil)
						return merged, inserted, nil
					})
				f.snapshotter.EXPECT().Snapshot(gomock.Any(), gomock.Any(), now).Return(nil)
				f.companyRepo.EXPECT().Summarize(gomock.Any(), "wentors").Return(nil, storageErr)
			},
			expectedError:  domain.ErrStorage,
			expectedReason: domain.ReasonStorage,
			validate: func(t *testing.T, f *fixture, report *domain.IngestionReport) {
				assert.Equal(t, 1, report.Count(domain.OutcomeInserted))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, now)
			tt.setup(f)

			report, err := f.service.IngestFile(context.Background(), "/data/file.csv")

			assert.ErrorIs(t, err, tt.expectedError)
			assert.True(t, domain.IsFileLevel(err))
			assert.Equal(t, tt.expectedReason, domain.ReasonFor(err))
			require.NotNil(t, report)
			assert.NotEmpty(t, report.Error)
			assert.Equal(t, "/reports/validation_1.csv", report.ReportPath)
			tt.validate(t, f, report)
		})
	}
}

func TestService_IngestFile_FalhaNoHistoricoNaoInterrompe(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)

	f.extractor.EXPECT().Extract("/data/posts.csv").Return(&domain.ExportFile{
		Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "100"))},
	}, nil)
	f.postRepo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, incoming *domain.PostRecord, merge domain.PostMergeFunc) (*domain.PostRecord, bool, error) {
			merged, inserted := merge(nil)
			return merged, inserted, nil
		})
	f.snapshotter.EXPECT().Snapshot(gomock.Any(), gomock.Any(), now).Return(errors.New("timeout"))
	f.companyRepo.EXPECT().Summarize(gomock.Any(), "wentors").Return(&domain.CompanyAnalytics{CompanyID: "wentors"}, nil)
	f.companyRepo.EXPECT().UpsertSummary(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *domain.CompanyAnalytics) error {
			assert.Equal(t, "Wentors", s.CompanyName)
			assert.Equal(t, now, s.DateCollected)
			return nil
		})
	f.companyRepo.EXPECT().InsertHistory(gomock.Any(), gomock.Any()).Return(errors.New("history indisponível"))

	report, err := f.service.IngestFile(context.Background(), "/data/posts.csv")

	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, domain.OutcomeInserted, report.Entries[0].Outcome)
	assert.Contains(t, report.Entries[0].Flags, domain.ReasonSnapshotFailed)
}

func TestService_IngestFile_RelatorioComFalhaNaoAfetaResultado(t *testing.T) {
	ctrl := gomock.NewController(t)
	ext := extractorMocks.NewMockExtractor(ctrl)
	writer := reportMocks.NewMockWriter(ctrl)

	service := NewService(Options{CompanyID: "wentors"}, ext, nil, nil, nil, nil, writer, nil, afero.NewMemMapFs())

	ext.EXPECT().Extract("/data/empty.csv").Return(&domain.ExportFile{}, nil)
	writer.EXPECT().Write(gomock.Any()).Return("", errors.New("disco cheio"))

	report, err := service.IngestFile(context.Background(), "/data/empty.csv")

	require.NoError(t, err)
	assert.Empty(t, report.ReportPath)
}

func TestService_ScanFolder(t *testing.T) {
	f := newFixture(t, time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC))
	f.withStore()

	for _, name := range []string{"b_posts.csv", "a_export.zip", "c_broken.xlsx", "notes.txt"} {
		require.NoError(t, afero.WriteFile(f.fs, dataDir+"/"+name, []byte("x"), 0o644))
	}
	require.NoError(t, f.fs.MkdirAll(dataDir+"/processed", 0o755))

	gomock.InOrder(
		f.extractor.EXPECT().Extract(dataDir+"/a_export.zip").Return(&domain.ExportFile{
			Tables: []domain.Table{postsTable(postRow("urn:li:share:1", "100"))},
		}, nil),
		f.extractor.EXPECT().Extract(dataDir+"/b_posts.csv").Return(&domain.ExportFile{
			Tables: []domain.Table{postsTable(postRow("urn:li:share:2", "50"))},
		}, nil),
		f.extractor.EXPECT().Extract(dataDir+"/c_broken.xlsx").Return(nil, fmt.Errorf("%w: planilha ilegível", domain.ErrCorruptFile)),
	)
	f.archiver.EXPECT().Archive(dataDir+"/a_export.zip").Return(dataDir+"/processed/20240120_090000_a_export.zip", nil)
	f.archiver.EXPECT().Archive(dataDir+"/b_posts.csv").Return(dataDir+"/processed/20240120_090000_b_posts.csv", nil)

	summary, err := f.service.ScanFolder(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a_export.zip", "b_posts.csv", "c_broken.xlsx"}, summary.Processed)
	assert.Len(t, summary.Archived, 2)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "c_broken.xlsx", summary.Failed[0].File)
	assert.Equal(t, domain.ReasonCorruptFile, summary.Failed[0].Reason)
	assert.Len(t, f.posts, 2)

	runIDs := map[string]bool{}
	for _, r := range f.written {
		runIDs[r.RunID] = true
	}
	assert.Len(t, runIDs, 1, "todos os arquivos da varredura compartilham o run id")
	assert.True(t, runIDs[summary.RunID])
}

func TestService_ScanFolder_PastaInexistente(t *testing.T) {
	f := newFixture(t, time.Now())

	summary, err := f.service.ScanFolder(context.Background())

	assert.Error(t, err)
	assert.Nil(t, summary)
}

func TestService_Reclassify(t *testing.T) {
	f := newFixture(t, time.Now())

	f.postRepo.EXPECT().ListByCompany(gomock.Any(), "wentors").Return([]*domain.PostRecord{
		{CompanyID: "wentors", PostID: "urn:li:share:1", PostType: "organic", TextExcerpt: "Watch our new video"},
		{CompanyID: "wentors", PostID: "urn:li:share:2", PostType: domain.PostTypeImage, TextExcerpt: "video"},
	}, nil)
	f.postRepo.EXPECT().UpdatePostType(gomock.Any(), "wentors", "urn:li:share:1", domain.PostTypeVideo).Return(nil)

	updated, err := f.service.Reclassify(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}
