package normalizing

import (
	"strings"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

// distributionLabels descrevem o canal de distribuição, nunca o formato do conteúdo
var distributionLabels = map[string]bool{
	"organic":   true,
	"sponsored": true,
	"paid":      true,
	"boosted":   true,
	"promoted":  true,
}

type typeKeywords struct {
	postType domain.PostType
	keywords []string
}

// labelKeywords é avaliada em ordem: video > document > image > article > text
var labelKeywords = []typeKeywords{
	{postType: domain.PostTypeVideo, keywords: []string{"video"}},
	{postType: domain.PostTypeDocument, keywords: []string{"document", "pdf", "doc", "carousel", "slide"}},
	{postType: domain.PostTypeImage, keywords: []string{"image", "photo", "picture"}},
	{postType: domain.PostTypeArticle, keywords: []string{"article", "link", "newsletter"}},
	{postType: domain.PostTypeText, keywords: []string{"text", "status"}},
}

// shapeKeywords inferem o formato a partir do texto e da URL quando o rótulo não ajuda
var shapeKeywords = []typeKeywords{
	{postType: domain.PostTypeVideo, keywords: []string{"video", "youtu.be", "youtube.com", ".mp4", "vimeo.com"}},
	{postType: domain.PostTypeDocument, keywords: []string{"document", ".pdf", ".ppt", ".pptx", ".doc", ".docx", "slideshare"}},
	{postType: domain.PostTypeImage, keywords: []string{"image", "photo", "picture", ".jpg", ".jpeg", ".png", ".gif"}},
	{postType: domain.PostTypeArticle, keywords: []string{"/pulse/"}},
}

// ClassifyPostType escolhe um dos cinco tipos canônicos. Os rótulos são consultados primeiro,
// ignorando rótulos de distribuição; depois vem a inferência pelo formato do conteúdo.
func ClassifyPostType(labels []string, text, url string) domain.PostType {
	for _, label := range labels {
		raw := strings.ToLower(strings.TrimSpace(label))
		if raw == "" || distributionLabels[raw] {
			continue
		}
		if t, ok := matchKeywords(raw, labelKeywords); ok {
			return t
		}
	}

	lowerText := strings.ToLower(text)
	shape := lowerText + " " + strings.ToLower(url)
	if t, ok := matchKeywords(shape, shapeKeywords); ok {
		return t
	}

	if strings.Contains(lowerText, "http") {
		return domain.PostTypeArticle
	}

	return domain.PostTypeText
}

// NeedsReclassification indica registros com tipo vazio, rótulo de distribuição ou fora do enum
func NeedsReclassification(postType domain.PostType) bool {
	raw := strings.ToLower(strings.TrimSpace(string(postType)))
	if raw == "" || distributionLabels[raw] {
		return true
	}

	switch domain.PostType(raw) {
	case domain.PostTypeText, domain.PostTypeArticle, domain.PostTypeImage, domain.PostTypeDocument, domain.PostTypeVideo:
		return false
	}
	return true
}

// Reclassify recalcula o tipo de um post já armazenado, retornando false quando nada muda
func Reclassify(record *domain.PostRecord) (domain.PostType, bool) {
	if !NeedsReclassification(record.PostType) {
		return record.PostType, false
	}

	text := record.TextExcerpt
	if text == "" {
		text = record.Title
	}

	newType := ClassifyPostType([]string{string(record.PostType)}, text, record.PostURL)
	return newType, newType != record.PostType
}

func matchKeywords(value string, table []typeKeywords) (domain.PostType, bool) {
	for _, entry := range table {
		for _, kw := range entry.keywords {
			if strings.Contains(value, kw) {
				return entry.postType, true
			}
		}
	}
	return "", false
}
