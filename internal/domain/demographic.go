package domain

import "time"

// Facetas demográficas conhecidas dos exports de seguidores
const (
	DemographicTypeSeniority   = "seniority"
	DemographicTypeIndustry    = "industry"
	DemographicTypeLocation    = "location"
	DemographicTypeCompanySize = "company_size"
	DemographicTypeFunction    = "function"
	DemographicTypeJobTitle    = "job_title"
	DemographicTypeGeneral     = "general"
)

// DemographicRecord representa a contagem de seguidores de uma faceta em um dia
type DemographicRecord struct {
	ID               int64     `json:"id"`
	CompanyID        string    `json:"company_id"`
	DemographicType  string    `json:"demographic_type"`
	DemographicValue string    `json:"demographic_value"`
	Count            int       `json:"count"`
	Percentage       float64   `json:"percentage"`
	DateCollected    time.Time `json:"date_collected"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DemographicMergeFunc tem a mesma semântica de PostMergeFunc para dados demográficos
type DemographicMergeFunc func(existing *DemographicRecord) (*DemographicRecord, bool)

// IdentityKey devolve a chave de identidade do registro no formato type/value@dia
func (d *DemographicRecord) IdentityKey() string {
	return d.DemographicType + "/" + d.DemographicValue + "@" + d.DateCollected.UTC().Format(time.DateOnly)
}
