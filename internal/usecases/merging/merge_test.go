package merging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

var (
	createdAt = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	now       = time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
)

func post(impressions, clicks, likes, comments, shares, reach int) *domain.PostRecord {
	p := &domain.PostRecord{
		CompanyID:   "wentors",
		PostID:      "urn:li:share:1",
		PostType:    domain.PostTypeText,
		Impressions: impressions,
		Clicks:      clicks,
		Likes:       likes,
		Comments:    comments,
		Shares:      shares,
		Reach:       reach,
	}
	p.RecomputeRates()
	return p
}

func TestMergePost_Insercao(t *testing.T) {
	incoming := post(100, 5, 10, 2, 1, 0)

	merged, inserted := MergePost(nil, incoming, domain.MergePolicyMax, now)

	assert.True(t, inserted)
	assert.Equal(t, now, merged.CreatedAt)
	assert.Equal(t, now, merged.UpdatedAt)
	assert.Equal(t, 0.05, merged.CTR)
	assert.Equal(t, 0.18, merged.EngagementRate)
	assert.NotSame(t, incoming, merged)
}

func TestMergePost_PoliticaMax(t *testing.T) {
	tests := []struct {
		name     string
		existing *domain.PostRecord
		incoming *domain.PostRecord
		validate func(t *testing.T, merged *domain.PostRecord)
	}{
		{
			name:     "Reingestão com impressões menores mantém o máximo",
			existing: post(100, 5, 10, 2, 1, 0),
			incoming: post(90, 5, 10, 2, 1, 0),
			validate: func(t *testing.T, merged *domain.PostRecord) {
				assert.Equal(t, 100, merged.Impressions)
				assert.Equal(t, 0.05, merged.CTR)
				assert.Equal(t, 0.18, merged.EngagementRate)
			},
		},
		{
			name:     "Máximo avaliado campo a campo com taxas recalculadas",
			existing: post(100, 2, 10, 0, 3, 50),
			incoming: post(80, 8, 4, 6, 1, 70),
			validate: func(t *testing.T, merged *domain.PostRecord) {
				assert.Equal(t, 100, merged.Impressions)
				assert.Equal(t, 8, merged.Clicks)
				assert.Equal(t, 10, merged.Likes)
				assert.Equal(t, 6, merged.Comments)
				assert.Equal(t, 3, merged.Shares)
				assert.Equal(t, 70, merged.Reach)
				assert.Equal(t, 0.08, merged.CTR)
				assert.Equal(t, 0.27, merged.EngagementRate)
			},
		},
		{
			name: "Campos não numéricos mais completos prevalecem",
			existing: func() *domain.PostRecord {
				p := post(10, 0, 0, 0, 0, 0)
				p.TextExcerpt = "Short"
				p.Hashtags = []string{"launch"}
				return p
			}(),
			incoming: func() *domain.PostRecord {
				p := post(10, 0, 0, 0, 0, 0)
				p.TextExcerpt = "Short text, now longer"
				p.Hashtags = []string{"launch", "ai"}
				p.PostType = domain.PostTypeVideo
				d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
				p.PostDate = &d
				p.PostURL = "https://www.linkedin.com/feed/update/urn:li:share:1"
				return p
			}(),
			validate: func(t *testing.T, merged *domain.PostRecord) {
				assert.Equal(t, "Short text, now longer", merged.TextExcerpt)
				assert.Equal(t, []string{"launch", "ai"}, merged.Hashtags)
				assert.Equal(t, domain.PostTypeVideo, merged.PostType)
				require.NotNil(t, merged.PostDate)
				assert.Equal(t, "https://www.linkedin.com/feed/update/urn:li:share:1", merged.PostURL)
			},
		},
		{
			name: "Valores existentes são mantidos quando o recebido não é mais completo",
			existing: func() *domain.PostRecord {
				p := post(10, 0, 0, 0, 0, 0)
				p.TextExcerpt = "A long existing text"
				p.Hashtags = []string{"launch", "ai"}
				p.PostType = domain.PostTypeImage
				d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
				p.PostDate = &d
				return p
			}(),
			incoming: func() *domain.PostRecord {
				p := post(10, 0, 0, 0, 0, 0)
				p.TextExcerpt = "Short"
				p.Hashtags = []string{"other"}
				p.PostType = domain.PostTypeVideo
				d := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
				p.PostDate = &d
				return p
			}(),
			validate: func(t *testing.T, merged *domain.PostRecord) {
				assert.Equal(t, "A long existing text", merged.TextExcerpt)
				assert.Equal(t, []string{"launch", "ai"}, merged.Hashtags)
				assert.Equal(t, domain.PostTypeImage, merged.PostType)
				assert.Equal(t, time.January, merged.PostDate.Month())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.existing.ID = 42
			tt.existing.CreatedAt = createdAt
			existingCopy := tt.existing.Clone()
			incomingCopy := tt.incoming.Clone()

			merged, inserted := MergePost(tt.existing, tt.incoming, domain.MergePolicyMax, now)

			assert.False(t, inserted)
			assert.Equal(t, int64(42), merged.ID)
			assert.Equal(t, createdAt, merged.CreatedAt)
			assert.Equal(t, now, merged.UpdatedAt)
			assert.Equal(t, existingCopy, tt.existing, "registro existente não pode ser alterado")
			assert.Equal(t, incomingCopy, tt.incoming, "registro recebido não pode ser alterado")
			tt.validate(t, merged)
		})
	}
}

func TestMergePost_PoliticaReplace(t *testing.T) {
	existing := post(100, 5, 10, 2, 1, 0)
	existing.ID = 7
	existing.CreatedAt = createdAt
	existing.TextExcerpt = "old"
	incoming := post(90, 1, 1, 0, 0, 0)
	incoming.TextExcerpt = "new"

	merged, inserted := MergePost(existing, incoming, domain.MergePolicyReplace, now)

	assert.False(t, inserted)
	assert.Equal(t, int64(7), merged.ID)
	assert.Equal(t, 90, merged.Impressions)
	assert.Equal(t, "new", merged.TextExcerpt)
	assert.Equal(t, createdAt, merged.CreatedAt)
	assert.Equal(t, now, merged.UpdatedAt)
	assert.Equal(t, domain.CalculateCTR(1, 90), merged.CTR)
}

func TestMergePost_MonotonicidadeEmSequencia(t *testing.T) {
	observations := [][6]int{
		{100, 5, 10, 2, 1, 0},
		{90, 7, 3, 2, 4, 10},
		{120, 1, 12, 0, 0, 5},
	}

	var stored *domain.PostRecord
	expected := [6]int{}
	for _, o := range observations {
		incoming := post(o[0], o[1], o[2], o[3], o[4], o[5])
		stored, _ = MergePost(stored, incoming, domain.MergePolicyMax, now)
		for i := range expected {
			expected[i] = max(expected[i], o[i])
		}
	}

	assert.Equal(t, expected, [6]int{stored.Impressions, stored.Clicks, stored.Likes, stored.Comments, stored.Shares, stored.Reach})
	assert.Equal(t, domain.CalculateCTR(expected[1], expected[0]), stored.CTR)
	assert.Equal(t, domain.CalculateEngagementRate(expected[2], expected[3], expected[4], expected[1], expected[0]), stored.EngagementRate)
}

func TestMergePost_ImpressoesZero(t *testing.T) {
	merged, _ := MergePost(nil, post(0, 50, 10, 3, 1, 0), domain.MergePolicyMax, now)

	assert.Equal(t, 0.0, merged.CTR)
	assert.Equal(t, 0.0, merged.EngagementRate)
}

func TestMergeDemographic(t *testing.T) {
	day := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	existing := &domain.DemographicRecord{
		ID: 3, CompanyID: "wentors", DemographicType: "seniority", DemographicValue: "Senior",
		Count: 100, Percentage: 10, DateCollected: day, CreatedAt: createdAt,
	}
	incoming := &domain.DemographicRecord{
		CompanyID: "wentors", DemographicType: "seniority", DemographicValue: "Senior",
		Count: 80, Percentage: 8, DateCollected: day,
	}

	merged, inserted := MergeDemographic(existing, incoming, now)
	assert.False(t, inserted)
	assert.Equal(t, int64(3), merged.ID)
	assert.Equal(t, 80, merged.Count)
	assert.Equal(t, 8.0, merged.Percentage)
	assert.Equal(t, createdAt, merged.CreatedAt)
	assert.Equal(t, now, merged.UpdatedAt)

	merged, inserted = MergeDemographic(nil, incoming, now)
	assert.True(t, inserted)
	assert.Equal(t, now, merged.CreatedAt)
	assert.Zero(t, incoming.UpdatedAt)
}
