package domain

// ContainerKind identifica o formato físico de um arquivo de export
type ContainerKind string

const (
	ContainerXLS     ContainerKind = "xls"
	ContainerXLSX    ContainerKind = "xlsx"
	ContainerCSV     ContainerKind = "csv"
	ContainerArchive ContainerKind = "zip"
)

// TableKind é a forma canônica atribuída a uma tabela extraída
type TableKind string

const (
	TableKindPosts        TableKind = "posts"
	TableKindDemographics TableKind = "demographics"
	TableKindUnknown      TableKind = "unknown"
)

// RawRow mapeia o rótulo da coluna de origem para o valor textual da célula
type RawRow map[string]string

// Table é uma planilha ou tabela lógica extraída de um arquivo
type Table struct {
	// Source é o nome do arquivo de origem (ou do membro dentro do zip)
	Source  string
	Sheet   string
	Columns []string
	Rows    []RawRow
	// Lines guarda a linha original (base 1) de cada item de Rows
	Lines []int
	// HeaderRow é o índice (base 0) da linha de cabeçalho detectada
	HeaderRow int
}

// Line retorna a linha original da i-ésima linha de dados
func (t Table) Line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return t.HeaderRow + i + 2
}

// SkippedSource registra um membro de arquivo compactado que não pôde ser extraído
type SkippedSource struct {
	Source string
	Reason string
}

// ExportFile é o resultado efêmero da extração de um arquivo
type ExportFile struct {
	Path    string
	Kind    ContainerKind
	Tables  []Table
	Skipped []SkippedSource
}
