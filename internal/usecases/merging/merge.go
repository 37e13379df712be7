package merging

import (
	"time"
	"unicode/utf8"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

// MergePost concilia o post recebido com o registro armazenado (nil quando não existe) e
// devolve o registro a persistir e se é uma inserção. As entradas nunca são alteradas.
//
// Com MergePolicyMax cada contador é o maior valor entre os dois registros, campo a campo,
// e CTR/engagement rate são recalculados a partir dos contadores resultantes. Com
// MergePolicyReplace o registro recebido substitui o armazenado. Em ambos os casos
// created_at é preservado e updated_at recebe now.
func MergePost(existing, incoming *domain.PostRecord, policy domain.MergePolicy, now time.Time) (*domain.PostRecord, bool) {
	if existing == nil {
		merged := incoming.Clone()
		merged.ID = 0
		merged.CreatedAt = now
		merged.UpdatedAt = now
		merged.RecomputeRates()
		return merged, true
	}

	var merged *domain.PostRecord
	if policy == domain.MergePolicyReplace {
		merged = incoming.Clone()
	} else {
		merged = mergeMax(existing, incoming)
	}

	merged.ID = existing.ID
	merged.CompanyID = existing.CompanyID
	merged.PostID = existing.PostID
	merged.CreatedAt = existing.CreatedAt
	merged.UpdatedAt = now
	merged.RecomputeRates()

	return merged, false
}

func mergeMax(existing, incoming *domain.PostRecord) *domain.PostRecord {
	merged := existing.Clone()

	merged.Impressions = max(existing.Impressions, incoming.Impressions)
	merged.Clicks = max(existing.Clicks, incoming.Clicks)
	merged.Likes = max(existing.Likes, incoming.Likes)
	merged.Comments = max(existing.Comments, incoming.Comments)
	merged.Shares = max(existing.Shares, incoming.Shares)
	merged.Reach = max(existing.Reach, incoming.Reach)

	merged.TextExcerpt = longerText(existing.TextExcerpt, incoming.TextExcerpt)
	merged.Title = longerText(existing.Title, incoming.Title)
	merged.Hashtags = moreCompleteSet(existing.Hashtags, incoming.Hashtags)
	merged.Mentions = moreCompleteSet(existing.Mentions, incoming.Mentions)

	if (existing.PostType == "" || existing.PostType == domain.PostTypeText) && incoming.PostType != "" {
		merged.PostType = incoming.PostType
	}

	if existing.PostDate == nil && incoming.PostDate != nil {
		d := *incoming.PostDate
		merged.PostDate = &d
	}

	if existing.PostURL == "" {
		merged.PostURL = incoming.PostURL
	}

	return merged
}

// MergeDemographic sempre substitui: demografia é uma fotografia do dia, não um acumulado
func MergeDemographic(existing, incoming *domain.DemographicRecord, now time.Time) (*domain.DemographicRecord, bool) {
	merged := *incoming
	merged.UpdatedAt = now

	if existing == nil {
		merged.ID = 0
		merged.CreatedAt = now
		return &merged, true
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	return &merged, false
}

// longerText mantém o texto existente, a não ser que o recebido seja mais longo
func longerText(existing, incoming string) string {
	if utf8.RuneCountInString(incoming) > utf8.RuneCountInString(existing) {
		return incoming
	}
	return existing
}

// moreCompleteSet troca o conjunto existente apenas por um superconjunto estrito
func moreCompleteSet(existing, incoming []string) []string {
	if len(existing) == 0 {
		return append([]string(nil), incoming...)
	}
	if len(incoming) <= len(existing) {
		return append([]string(nil), existing...)
	}

	in := make(map[string]bool, len(incoming))
	for _, v := range incoming {
		in[v] = true
	}
	for _, v := range existing {
		if !in[v] {
			return append([]string(nil), existing...)
		}
	}

	return append([]string(nil), incoming...)
}
