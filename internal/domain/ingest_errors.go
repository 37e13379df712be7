package domain

import (
	"errors"
	"fmt"
)

// Erros do pipeline de ingestão
var (
	// Erros de arquivo: abortam o arquivo atual
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrCorruptFile       = errors.New("corrupt file")
	ErrEmptyExport       = errors.New("empty export")

	// Erros de tabela/linha: a unidade é ignorada e o processamento continua
	ErrUnclassifiableTable = errors.New("unclassifiable table")
	ErrUnparseableRow      = errors.New("unparseable row")
	ErrUnparseableDate     = errors.New("unparseable date")

	// Erros de armazenamento
	ErrStorage = errors.New("storage error")

	// Erros de configuração
	ErrInvalidMergePolicy = errors.New("invalid merge policy")
)

// Motivos gravados no relatório de validação
const (
	ReasonUnsupportedFormat   = "unsupported_format"
	ReasonCorruptFile         = "corrupt_file"
	ReasonEmptyExport         = "empty_export"
	ReasonUnclassifiableTable = "unclassifiable_table"
	ReasonUnparseableRow      = "unparseable_row"
	ReasonUnparseableDate     = "unparseable_date"
	ReasonAmbiguousDate       = "ambiguous_date"
	ReasonSnapshotFailed      = "snapshot_failed"
	ReasonStorage             = "storage_error"
	ReasonUnknown             = "unknown_error"
)

// IngestError é um erro com contexto adicional sobre o arquivo e a origem
type IngestError struct {
	Err     error  // Erro base
	File    string // Arquivo em processamento
	Source  string // Planilha, membro do zip ou linha (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *IngestError) Error() string {
	msg := e.Err.Error()
	if e.File != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.File)
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Source)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap retorna o erro subjacente
func (e *IngestError) Unwrap() error {
	return e.Err
}

// NewIngestError cria um novo IngestError
func NewIngestError(err error, file, source, details string) *IngestError {
	return &IngestError{
		Err:     err,
		File:    file,
		Source:  source,
		Details: details,
	}
}

// ReasonFor converte um erro do pipeline no código de motivo do relatório
func ReasonFor(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ReasonUnsupportedFormat
	case errors.Is(err, ErrCorruptFile):
		return ReasonCorruptFile
	case errors.Is(err, ErrEmptyExport):
		return ReasonEmptyExport
	case errors.Is(err, ErrUnclassifiableTable):
		return ReasonUnclassifiableTable
	case errors.Is(err, ErrUnparseableRow):
		return ReasonUnparseableRow
	case errors.Is(err, ErrUnparseableDate):
		return ReasonUnparseableDate
	case errors.Is(err, ErrStorage):
		return ReasonStorage
	default:
		return ReasonUnknown
	}
}

// IsFileLevel indica se o erro aborta o processamento do arquivo inteiro
func IsFileLevel(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrCorruptFile) ||
		errors.Is(err, ErrEmptyExport) ||
		errors.Is(err, ErrStorage)
}
