package extractor

import (
	"fmt"
	"strings"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

// headerScanRows quantidade de linhas inspecionadas ao procurar o cabeçalho
const headerScanRows = 10

// headerHints são termos que aparecem nos cabeçalhos dos exports de conteúdo e de seguidores
var headerHints = []string{
	"date", "data", "post", "url", "link", "urn", "title", "text", "content",
	"type", "impressions", "views", "clicks", "likes", "reactions", "comments",
	"shares", "reposts", "reach", "engagement", "ctr", "followers", "count",
	"percentage", "seniority", "industry", "location", "company size",
	"function", "job", "value", "total",
}

// detectHeader retorna o índice da linha de cabeçalho ou -1 quando não há linhas preenchidas
func detectHeader(rows [][]string) int {
	best, bestScore, bestFilled := -1, -1, 0

	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		filled, hits := 0, 0
		for _, cell := range rows[i] {
			value := strings.ToLower(strings.TrimSpace(cell))
			if value == "" {
				continue
			}
			filled++
			if matchesHint(value) {
				hits++
			}
		}

		if filled >= 2 && hits >= 2 {
			return i
		}

		if filled > 0 && (hits > bestScore || (hits == bestScore && filled > bestFilled)) {
			best, bestScore, bestFilled = i, hits, filled
		}
	}

	return best
}

func matchesHint(value string) bool {
	for _, hint := range headerHints {
		if strings.Contains(value, hint) {
			return true
		}
	}
	return false
}

// buildTable converte a grade em Table. Retorna false quando não sobra linha de dados.
func buildTable(source string, sheet rawSheet) (domain.Table, bool) {
	rows := sheet.rows
	header := detectHeader(rows)
	if header < 0 {
		return domain.Table{}, false
	}

	columns := headerColumns(rows[header])
	table := domain.Table{
		Source:    source,
		Sheet:     sheet.name,
		Columns:   columns,
		HeaderRow: header,
	}

	for i := header + 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}

		row := make(domain.RawRow, len(columns))
		for c, column := range columns {
			value := ""
			if c < len(rows[i]) {
				value = strings.TrimSpace(rows[i][c])
			}
			row[column] = value
		}

		table.Rows = append(table.Rows, row)
		line := i + 1
		if i < len(sheet.lines) {
			line = sheet.lines[i]
		}
		table.Lines = append(table.Lines, line)
	}

	return table, len(table.Rows) > 0
}

// headerColumns normaliza os rótulos: vazios viram Column_<n> e repetidos recebem sufixo
func headerColumns(cells []string) []string {
	last := len(cells)
	for last > 0 && strings.TrimSpace(cells[last-1]) == "" {
		last--
	}

	seen := map[string]int{}
	columns := make([]string, 0, last)

	for i := 0; i < last; i++ {
		label := strings.Join(strings.Fields(cells[i]), " ")
		if label == "" {
			label = fmt.Sprintf("Column_%d", i+1)
		}

		seen[label]++
		if n := seen[label]; n > 1 {
			label = fmt.Sprintf("%s_%d", label, n)
		}

		columns = append(columns, label)
	}

	return columns
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
