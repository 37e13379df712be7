package extractor

import (
	"bytes"
	"encoding/csv"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

// rawSheet é uma grade de células ainda sem cabeçalho identificado
type rawSheet struct {
	name string
	rows [][]string
	// lines é a linha física (base 1) de cada item de rows, quando o leitor a conhece
	lines []int
}

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffLines quantidade de linhas usadas para adivinhar o delimitador
const sniffLines = 20

func readDelimited(data []byte) ([]rawSheet, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrCorruptFile, "erro ao decodificar texto: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var (
		rows  [][]string
		lines []int
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(domain.ErrCorruptFile, "erro ao ler CSV: %v", err)
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}

	return []rawSheet{{rows: rows, lines: lines}}, nil
}

// minCharsetConfidence confiança mínima do detector para aceitar uma codificação não latina
const minCharsetConfidence = 50

// decodeText remove BOM, converte UTF-16 e, quando o conteúdo não é UTF-8, detecta a codificação
func decodeText(data []byte) ([]byte, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, err
	}

	if utf8.Valid(decoded) {
		return decoded, nil
	}

	decoded, _, err = transform.Bytes(detectDecoder(data), data)
	if err != nil {
		return nil, err
	}

	return decoded, nil
}

// detectDecoder trata toda a família latina como Windows-1252, que é o que o Excel grava
// nos exports; outras codificações só são aceitas com confiança suficiente
func detectDecoder(data []byte) *encoding.Decoder {
	fallback := charmap.Windows1252.NewDecoder()

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result.Confidence < minCharsetConfidence || isLatinCharset(result.Charset) {
		return fallback
	}

	enc, err := htmlindex.Get(result.Charset)
	if err != nil {
		return fallback
	}

	return enc.NewDecoder()
}

func isLatinCharset(name string) bool {
	n := strings.ToLower(name)
	if n == "windows-1251" {
		return false
	}
	return strings.HasPrefix(n, "iso-8859-1") || strings.HasPrefix(n, "iso-8859-2") ||
		strings.HasPrefix(n, "iso-8859-9") || strings.HasPrefix(n, "windows-125")
}

// sniffDelimiter escolhe o delimitador com contagem mais consistente entre as primeiras linhas
func sniffDelimiter(text []byte) rune {
	lines := bytes.Split(text, []byte("\n"))
	if len(lines) > sniffLines {
		lines = lines[:sniffLines]
	}

	best := ','
	bestFreq, bestMode := 0, 0

	for _, candidate := range delimiterCandidates {
		counts := map[int]int{}
		for _, line := range lines {
			if n := countOutsideQuotes(line, candidate); n > 0 {
				counts[n]++
			}
		}

		mode, freq := 0, 0
		keys := make([]int, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			if counts[k] >= freq {
				mode, freq = k, counts[k]
			}
		}

		if freq > bestFreq || (freq == bestFreq && mode > bestMode) {
			best, bestFreq, bestMode = candidate, freq, mode
		}
	}

	return best
}

func countOutsideQuotes(line []byte, delimiter rune) int {
	inQuotes := false
	total := 0
	for _, r := range string(line) {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delimiter && !inQuotes:
			total++
		}
	}
	return total
}
