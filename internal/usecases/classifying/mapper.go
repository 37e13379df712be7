package classifying

import (
	"fmt"
	"path"
	"strings"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

const (
	// hintWeight pontos somados quando o nome do arquivo ou da planilha sugere o tipo
	hintWeight = 2
	// minFingerprintColumns colunas reconhecidas exigidas para aceitar um tipo
	minFingerprintColumns = 2
)

// Resolution mapeia o campo canônico para o rótulo da coluna presente na tabela
type Resolution map[string]string

// Value retorna o valor do campo canônico na linha, vazio quando o campo não foi resolvido
func (r Resolution) Value(row domain.RawRow, field string) string {
	column, ok := r[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[column])
}

// Has indica se o campo foi resolvido para alguma coluna
func (r Resolution) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Classification é o resultado do mapeamento de uma tabela
type Classification struct {
	Kind             domain.TableKind
	Resolution       Resolution
	PostScore        int
	DemographicScore int
}

// Classify decide se a tabela é de posts ou demográfica e resolve as colunas.
// Retorna ErrUnclassifiableTable quando nenhuma das assinaturas é forte o bastante.
func Classify(table domain.Table) (*Classification, error) {
	postResolution := Resolve(table.Columns, postAliases)
	demographicResolution := Resolve(table.Columns, demographicAliases)

	hintSource := strings.ToLower(path.Base(table.Source) + " " + table.Sheet)

	postColumns := countResolved(postResolution, postFingerprint)
	if countResolved(postResolution, postIdentityFields) == 0 {
		postColumns = 0
	}
	demographicColumns := countResolved(demographicResolution, demographicFingerprint)

	result := &Classification{
		Kind:             domain.TableKindUnknown,
		PostScore:        score(postColumns, hintSource, postHints),
		DemographicScore: score(demographicColumns, hintSource, demographicHints),
	}

	switch {
	case postColumns >= minFingerprintColumns && result.PostScore > result.DemographicScore:
		result.Kind = domain.TableKindPosts
		result.Resolution = postResolution
	case demographicColumns >= minFingerprintColumns && result.DemographicScore > result.PostScore:
		result.Kind = domain.TableKindDemographics
		result.Resolution = demographicResolution
	default:
		return result, fmt.Errorf("%w: posts=%d demographics=%d", domain.ErrUnclassifiableTable, result.PostScore, result.DemographicScore)
	}

	return result, nil
}

// Resolve aplica as tabelas de aliases sobre os rótulos: primeiro por igualdade em todos os
// campos, depois por substring. Cada coluna é atribuída a no máximo um campo.
func Resolve(columns []string, table []fieldAliases) Resolution {
	resolution := Resolution{}
	taken := map[string]bool{}

	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = normalizeLabel(c)
	}

	match := func(substring bool) {
		for _, entry := range table {
			if _, done := resolution[entry.field]; done {
				continue
			}
			if substring && entry.exact {
				continue
			}

		aliases:
			for _, alias := range entry.aliases {
				for i, label := range normalized {
					if taken[columns[i]] {
						continue
					}
					if label == alias || (substring && strings.Contains(label, alias)) {
						resolution[entry.field] = columns[i]
						taken[columns[i]] = true
						break aliases
					}
				}
			}
		}
	}

	match(false)
	match(true)

	return resolution
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

func countResolved(resolution Resolution, fields []string) int {
	total := 0
	for _, f := range fields {
		if resolution.Has(f) {
			total++
		}
	}
	return total
}

func score(columns int, hintSource string, hints []string) int {
	total := columns
	for _, hint := range hints {
		if strings.Contains(hintSource, hint) {
			total += hintWeight
			break
		}
	}
	return total
}
