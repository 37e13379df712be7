package domain

import (
	"slices"
	"time"

	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

// PostType representa o formato canônico do conteúdo de um post
type PostType string

const (
	PostTypeText     PostType = "text"
	PostTypeArticle  PostType = "article"
	PostTypeImage    PostType = "image"
	PostTypeDocument PostType = "document"
	PostTypeVideo    PostType = "video"
)

// ratePrecision casas decimais usadas para CTR e engagement rate (NUMERIC(12,6))
const ratePrecision = 6

// PostRecord representa um post de uma empresa com suas métricas consolidadas
type PostRecord struct {
	ID             int64      `json:"id"`
	CompanyID      string     `json:"company_id"`
	PostID         string     `json:"post_id"`
	PostDate       *time.Time `json:"post_date"`
	PostType       PostType   `json:"post_type"`
	Title          string     `json:"post_title"`
	TextExcerpt    string     `json:"post_content"`
	PostURL        string     `json:"post_url"`
	Hashtags       []string   `json:"hashtags"`
	Mentions       []string   `json:"mentions"`
	Impressions    int        `json:"impressions"`
	Clicks         int        `json:"clicks"`
	Likes          int        `json:"likes"`
	Comments       int        `json:"comments"`
	Shares         int        `json:"shares"`
	Reach          int        `json:"reach"`
	CTR            float64    `json:"ctr"`
	EngagementRate float64    `json:"engagement_rate"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PostMergeFunc recebe o registro armazenado (nil quando não existe) e devolve
// o registro a persistir e se a operação é uma inserção
type PostMergeFunc func(existing *PostRecord) (*PostRecord, bool)

// RecomputeRates recalcula CTR e engagement rate a partir dos contadores do próprio registro
func (p *PostRecord) RecomputeRates() {
	p.CTR = CalculateCTR(p.Clicks, p.Impressions)
	p.EngagementRate = CalculateEngagementRate(p.Likes, p.Comments, p.Shares, p.Clicks, p.Impressions)
}

// Clone devolve uma cópia profunda do registro
func (p *PostRecord) Clone() *PostRecord {
	if p == nil {
		return nil
	}

	c := *p
	c.Hashtags = slices.Clone(p.Hashtags)
	c.Mentions = slices.Clone(p.Mentions)
	if p.PostDate != nil {
		d := *p.PostDate
		c.PostDate = &d
	}

	return &c
}

// CalculateCTR calcula clicks / impressions, 0 quando não há impressões
func CalculateCTR(clicks, impressions int) float64 {
	if impressions <= 0 {
		return 0
	}

	return utils.RoundWithPrecision(float64(clicks)/float64(impressions), ratePrecision)
}

// CalculateEngagementRate calcula (likes + comments + shares + clicks) / impressions
func CalculateEngagementRate(likes, comments, shares, clicks, impressions int) float64 {
	if impressions <= 0 {
		return 0
	}

	interactions := likes + comments + shares + clicks
	return utils.RoundWithPrecision(float64(interactions)/float64(impressions), ratePrecision)
}
