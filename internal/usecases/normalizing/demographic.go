package normalizing

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/classifying"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

const (
	demographicValueMaxRunes = 255
	maxPercentage            = 100.0
	percentagePrecision      = 4
)

type facetKeywords struct {
	demographicType string
	keywords        []string
}

// facetTable é avaliada em ordem; "job title" precisa vir antes de "function"
var facetTable = []facetKeywords{
	{demographicType: domain.DemographicTypeJobTitle, keywords: []string{"title"}},
	{demographicType: domain.DemographicTypeFunction, keywords: []string{"function", "occupation", "role"}},
	{demographicType: domain.DemographicTypeSeniority, keywords: []string{"seniority", "level", "experience"}},
	{demographicType: domain.DemographicTypeIndustry, keywords: []string{"industry", "industries", "sector"}},
	{demographicType: domain.DemographicTypeCompanySize, keywords: []string{"size", "company", "organization", "employer"}},
	{demographicType: domain.DemographicTypeLocation, keywords: []string{"location", "country", "city", "region", "geography"}},
}

type DemographicNormalizer struct {
	companyID string
	now       func() time.Time
}

func NewDemographicNormalizer(companyID string, now func() time.Time) *DemographicNormalizer {
	if now == nil {
		now = time.Now
	}

	return &DemographicNormalizer{
		companyID: companyID,
		now:       now,
	}
}

// TableType infere a faceta da tabela pelo título da planilha, pelo rótulo da coluna de
// valores e pelo nome do arquivo, nessa ordem
func (n *DemographicNormalizer) TableType(table domain.Table, res classifying.Resolution) string {
	sources := []string{table.Sheet, res[classifying.FieldDemographicValue], path.Base(table.Source)}
	for _, source := range sources {
		if t, ok := matchFacet(source); ok {
			return t
		}
	}

	if snake := snakeCase(table.Sheet); snake != "" {
		return snake
	}

	return domain.DemographicTypeGeneral
}

// Normalize converte uma linha demográfica. fallbackType é usado quando a linha não traz o tipo.
// A data de coleta é sempre a meia-noite UTC do dia atual.
func (n *DemographicNormalizer) Normalize(row domain.RawRow, res classifying.Resolution, fallbackType string) (*domain.DemographicRecord, error) {
	value := res.Value(row, classifying.FieldDemographicValue)
	countRaw := res.Value(row, classifying.FieldCount)
	percentageRaw := res.Value(row, classifying.FieldPercentage)

	if value == "" {
		return nil, fmt.Errorf("%w: sem valor demográfico", domain.ErrUnparseableRow)
	}
	if countRaw == "" && percentageRaw == "" {
		return nil, fmt.Errorf("%w: sem contagem para %q", domain.ErrUnparseableRow, value)
	}

	demographicType := fallbackType
	if explicit := res.Value(row, classifying.FieldDemographicType); explicit != "" {
		if t, ok := matchFacet(explicit); ok {
			demographicType = t
		} else {
			demographicType = snakeCase(explicit)
		}
	}

	return &domain.DemographicRecord{
		CompanyID:        n.companyID,
		DemographicType:  demographicType,
		DemographicValue: truncateRunes(value, demographicValueMaxRunes),
		Count:            utils.ParseCount(countRaw),
		Percentage:       ParsePercentage(percentageRaw),
		DateCollected:    utils.StartOfDayUTC(n.now()),
	}, nil
}

// ParsePercentage aceita "12.5%" (valor já em pontos percentuais) ou frações entre 0 e 1,
// que são multiplicadas por 100. O resultado fica entre 0 e 100.
func ParsePercentage(raw string) float64 {
	v, ok := utils.ParseNumber(raw)
	if !ok || v <= 0 {
		return 0
	}

	if !strings.Contains(raw, "%") && v < 1 {
		v *= 100
	}

	if v > maxPercentage {
		v = maxPercentage
	}

	return utils.RoundWithPrecision(v, percentagePrecision)
}

func matchFacet(value string) (string, bool) {
	v := strings.ToLower(value)
	for _, facet := range facetTable {
		for _, kw := range facet.keywords {
			if strings.Contains(v, kw) {
				return facet.demographicType, true
			}
		}
	}
	return "", false
}

func snakeCase(value string) string {
	fields := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "_")
}
