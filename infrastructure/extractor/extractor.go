package extractor

//go:generate mockgen -source=extractor.go -destination=mocks/extractor_mock.go -package=mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

// maxArchiveDepth limita zips dentro de zips
const maxArchiveDepth = 3

const (
	mimeZip  = "application/zip"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"
	mimeOLE  = "application/x-ole-storage"
	// cobre também text/csv e UTF-16, já que Is ignora os parâmetros
	mimeText = "text/plain"
)

// SupportedExtensions são as extensões aceitas na pasta de entrada
var SupportedExtensions = []string{".csv", ".xls", ".xlsx", ".zip"}

var textExtensions = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".txt":  true,
	".xls":  true,
	".xlsx": true,
}

type Extractor interface {
	Extract(path string) (*domain.ExportFile, error)
}

type extractor struct {
	maxDepth int
}

func NewExtractor() Extractor {
	return &extractor{maxDepth: maxArchiveDepth}
}

// Extract lê o arquivo, detecta o formato e devolve as tabelas com dados
func (e *extractor) Extract(path string) (*domain.ExportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler arquivo %s", path)
	}

	name := filepath.Base(path)

	kind, err := DetectKind(name, data)
	if err != nil {
		return nil, domain.NewIngestError(err, path, "", "")
	}

	export := &domain.ExportFile{Path: path, Kind: kind}

	if err := e.extractInto(export, name, data, kind, 0); err != nil {
		return nil, domain.NewIngestError(err, path, "", "")
	}

	if len(export.Tables) == 0 {
		return nil, domain.NewIngestError(domain.ErrEmptyExport, path, "", "nenhuma linha de dados após o cabeçalho")
	}

	return export, nil
}

func (e *extractor) extractInto(export *domain.ExportFile, name string, data []byte, kind domain.ContainerKind, depth int) error {
	var (
		sheets []rawSheet
		err    error
	)

	switch kind {
	case domain.ContainerArchive:
		return e.extractArchive(export, name, data, depth)
	case domain.ContainerCSV:
		sheets, err = readDelimited(data)
	case domain.ContainerXLSX:
		sheets, err = readXLSX(data)
	case domain.ContainerXLS:
		sheets, err = readXLS(data)
	default:
		return errors.Wrapf(domain.ErrUnsupportedFormat, "tipo %q", kind)
	}

	if err != nil {
		return err
	}

	found := 0
	for _, sheet := range sheets {
		table, ok := buildTable(name, sheet)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"file":  name,
				"sheet": sheet.name,
			}).Debug("Planilha sem linhas de dados ignorada")
			continue
		}
		export.Tables = append(export.Tables, table)
		found++
	}

	if found == 0 {
		return errors.Wrapf(domain.ErrEmptyExport, "%s sem linhas de dados", name)
	}

	return nil
}

// DetectKind determina o formato combinando extensão e assinatura do conteúdo
func DetectKind(name string, data []byte) (domain.ContainerKind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	detected := mimetype.Detect(data)

	switch {
	case isMime(detected, mimeXLSX):
		return domain.ContainerXLSX, nil
	case isMime(detected, mimeXLS), isMime(detected, mimeOLE):
		return domain.ContainerXLS, nil
	case isMime(detected, mimeZip):
		if ext == ".xlsx" {
			return domain.ContainerXLSX, nil
		}
		return domain.ContainerArchive, nil
	case isMime(detected, mimeText):
		if textExtensions[ext] {
			return domain.ContainerCSV, nil
		}
	}

	return "", fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedFormat, name, detected.String())
}

func isMime(detected *mimetype.MIME, expected string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(expected) {
			return true
		}
	}
	return false
}

// recoverCorrupt converte panics de parsers de terceiros em ErrCorruptFile
func recoverCorrupt(err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(domain.ErrCorruptFile, "panic ao interpretar arquivo: %v", r)
	}
}
