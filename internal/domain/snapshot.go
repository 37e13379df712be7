package domain

import "time"

// PostMetricsSnapshot registra os contadores de um post em uma data de observação
type PostMetricsSnapshot struct {
	ID             int64      `json:"id"`
	CompanyID      string     `json:"company_id"`
	PostID         string     `json:"post_id"`
	ObservedDate   time.Time  `json:"observed_date"`
	ObservedAt     time.Time  `json:"observed_at"`
	PostDate       *time.Time `json:"post_date"`
	Impressions    int        `json:"impressions"`
	Clicks         int        `json:"clicks"`
	Likes          int        `json:"likes"`
	Comments       int        `json:"comments"`
	Shares         int        `json:"shares"`
	Reach          int        `json:"reach"`
	CTR            float64    `json:"ctr"`
	EngagementRate float64    `json:"engagement_rate"`
}

// CompanyAnalytics consolida as métricas de posts de uma empresa
type CompanyAnalytics struct {
	ID                string    `json:"id,omitempty"`
	CompanyID         string    `json:"company_id"`
	CompanyName       string    `json:"company_name"`
	Impressions       int       `json:"impressions"`
	Clicks            int       `json:"clicks"`
	Reach             int       `json:"reach"`
	EngagementRate    float64   `json:"engagement_rate"`
	TotalPosts        int       `json:"total_posts"`
	AvgPostEngagement float64   `json:"avg_post_engagement"`
	DateCollected     time.Time `json:"date_collected"`
}
