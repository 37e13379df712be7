package classifying

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		table         domain.Table
		expectedKind  domain.TableKind
		expectedError error
		validate      func(t *testing.T, r Resolution)
	}{
		{
			name: "Export de conteúdo do LinkedIn",
			table: domain.Table{
				Source:  "wentors_content_2024.xls",
				Sheet:   "All posts",
				Columns: []string{"Post title", "Post link", "Post type", "Content Type", "Created date", "Impressions", "Views", "Clicks", "Click through rate (CTR)", "Likes", "Comments", "Reposts", "Engagement rate"},
			},
			expectedKind: domain.TableKindPosts,
			validate: func(t *testing.T, r Resolution) {
				assert.Equal(t, "Post title", r[FieldText])
				assert.Equal(t, "Post link", r[FieldPermalink])
				assert.Equal(t, "Post type", r[FieldDistribution])
				assert.Equal(t, "Content Type", r[FieldContentType])
				assert.Equal(t, "Created date", r[FieldPostDate])
				assert.Equal(t, "Reposts", r[FieldShares])
				assert.Equal(t, "Clicks", r[FieldClicks])
			},
		},
		{
			name: "Posts sem dica no nome do arquivo",
			table: domain.Table{
				Source:  "export.csv",
				Columns: []string{"urn", "impressions", "clicks", "likes", "comments", "shares", "text"},
			},
			expectedKind: domain.TableKindPosts,
			validate: func(t *testing.T, r Resolution) {
				assert.Equal(t, "urn", r[FieldURN])
				assert.Equal(t, "text", r[FieldText])
				assert.False(t, r.Has(FieldReach))
			},
		},
		{
			name: "Planilha demográfica de seguidores",
			table: domain.Table{
				Source:  "wentors_followers.xlsx",
				Sheet:   "Seniority",
				Columns: []string{"Seniority", "Total followers"},
			},
			expectedKind: domain.TableKindDemographics,
			validate: func(t *testing.T, r Resolution) {
				assert.Equal(t, "Seniority", r[FieldDemographicValue])
				assert.Equal(t, "Total followers", r[FieldCount])
				assert.False(t, r.Has(FieldDemographicType))
			},
		},
		{
			name: "Demográfico com coluna explícita de tipo",
			table: domain.Table{
				Source:  "audience.csv",
				Columns: []string{"Type", "Value", "Count", "Percentage"},
			},
			expectedKind: domain.TableKindDemographics,
			validate: func(t *testing.T, r Resolution) {
				assert.Equal(t, "Type", r[FieldDemographicType])
				assert.Equal(t, "Value", r[FieldDemographicValue])
				assert.Equal(t, "Percentage", r[FieldPercentage])
			},
		},
		{
			name: "Métricas diárias sem identidade de post não são posts",
			table: domain.Table{
				Source:  "content.xlsx",
				Sheet:   "Metrics",
				Columns: []string{"Date", "Impressions (organic)", "Clicks (organic)"},
			},
			expectedError: domain.ErrUnclassifiableTable,
		},
		{
			name: "Colunas desconhecidas",
			table: domain.Table{
				Source:  "posts.csv",
				Columns: []string{"Foo", "Bar"},
			},
			expectedError: domain.ErrUnclassifiableTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Classify(tt.table)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				require.NotNil(t, result)
				assert.Equal(t, domain.TableKindUnknown, result.Kind)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedKind, result.Kind)
			if tt.validate != nil {
				tt.validate(t, result.Resolution)
			}
		})
	}
}

func TestResolve_ColunaAtribuidaUmaVez(t *testing.T) {
	r := Resolve([]string{"Clicks", "Link clicks", "Post link"}, postAliases)

	assert.Equal(t, "Clicks", r[FieldClicks])
	assert.Equal(t, "Post link", r[FieldPermalink])

	seen := map[string]string{}
	for field, column := range r {
		if other, ok := seen[column]; ok {
			t.Fatalf("coluna %s atribuída a %s e %s", column, other, field)
		}
		seen[column] = field
	}
}

func TestResolution_Value(t *testing.T) {
	r := Resolution{FieldText: "Post title"}
	row := domain.RawRow{"Post title": "  Hello  "}

	assert.Equal(t, "Hello", r.Value(row, FieldText))
	assert.Equal(t, "", r.Value(row, FieldURN))
}
