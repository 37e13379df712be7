package domain

import "time"

// Outcome é o resultado do processamento de uma unidade do arquivo
type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// ReportEntry é uma linha do relatório de validação
type ReportEntry struct {
	Source   string    `json:"source"`
	Sheet    string    `json:"sheet"`
	Row      int       `json:"row"`
	Kind     TableKind `json:"kind"`
	Identity string    `json:"identity"`
	Outcome  Outcome   `json:"outcome"`
	Reason   string    `json:"reason,omitempty"`
	Flags    []string  `json:"flags,omitempty"`
}

// IngestionReport consolida tudo o que aconteceu com um arquivo em uma execução
type IngestionReport struct {
	RunID      string        `json:"run_id"`
	File       string        `json:"file"`
	CompanyID  string        `json:"company_id"`
	Policy     MergePolicy   `json:"policy"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Error      string        `json:"error,omitempty"`
	Entries    []ReportEntry `json:"entries"`
	ReportPath string        `json:"report_path,omitempty"`
}

// Add acrescenta uma entrada ao relatório
func (r *IngestionReport) Add(entry ReportEntry) {
	r.Entries = append(r.Entries, entry)
}

// Count retorna a quantidade de entradas com o resultado informado
func (r *IngestionReport) Count(outcome Outcome) int {
	total := 0
	for _, e := range r.Entries {
		if e.Outcome == outcome {
			total++
		}
	}
	return total
}

// CountKind retorna a quantidade de entradas de um tipo de tabela com o resultado informado
func (r *IngestionReport) CountKind(kind TableKind, outcome Outcome) int {
	total := 0
	for _, e := range r.Entries {
		if e.Kind == kind && e.Outcome == outcome {
			total++
		}
	}
	return total
}

// Identities retorna as identidades persistidas (inseridas ou atualizadas) de um tipo
func (r *IngestionReport) Identities(kind TableKind) []string {
	var ids []string
	for _, e := range r.Entries {
		if e.Kind != kind {
			continue
		}
		if e.Outcome == OutcomeInserted || e.Outcome == OutcomeUpdated {
			ids = append(ids, e.Identity)
		}
	}
	return ids
}

// ScanSummary resume uma varredura de pasta
type ScanSummary struct {
	RunID     string     `json:"run_id"`
	StartedAt time.Time  `json:"started_at"`
	Duration  string     `json:"duration"`
	Processed []string   `json:"processed"`
	Archived  []string   `json:"archived"`
	Failed    []FileFail `json:"failed"`
}

// FileFail descreve um arquivo que falhou e permanece na pasta de entrada
type FileFail struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}
