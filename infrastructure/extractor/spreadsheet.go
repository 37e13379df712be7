package extractor

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

// xlsCharset usado pelo leitor de xls para strings não unicode
const xlsCharset = "utf-8"

// builtinDateFormats são os numFmtId internos do Excel que representam datas
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func readXLSX(data []byte) (sheets []rawSheet, err error) {
	defer recoverCorrupt(&err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(domain.ErrCorruptFile, "erro ao abrir xlsx: %v", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(domain.ErrCorruptFile, "erro ao ler planilha %s: %v", name, err)
		}
		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.Wrapf(domain.ErrCorruptFile, "erro ao ler planilha %s: %v", name, err)
		}
		useSerialDates(f, name, rows, raw)
		if len(rows) == 0 {
			continue
		}
		sheets = append(sheets, rawSheet{name: name, rows: rows})
	}

	return sheets, nil
}

// useSerialDates troca o texto exibido das células com formato de data pelo número serial.
// O texto exibido segue o formato m/d/yy do excelize, independente da localidade do arquivo.
func useSerialDates(f *excelize.File, sheet string, rows, raw [][]string) {
	for r := range rows {
		if r >= len(raw) {
			return
		}
		for c := range rows[r] {
			if c >= len(raw[r]) || raw[r][c] == "" || raw[r][c] == rows[r][c] {
				continue
			}

			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			if isDateCell(f, sheet, axis) {
				rows[r][c] = raw[r][c]
			}
		}
	}
}

func isDateCell(f *excelize.File, sheet, axis string) bool {
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}

	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}

	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}

	return builtinDateFormats[style.NumFmt]
}

// isDateFormat reconhece formatos personalizados com dia ou ano, ignorando literais e cores
func isDateFormat(format string) bool {
	var b strings.Builder
	skip := byte(0)
	for i := 0; i < len(format); i++ {
		ch := format[i]
		switch {
		case skip != 0:
			if ch == skip {
				skip = 0
			}
		case ch == '"':
			skip = '"'
		case ch == '[':
			skip = ']'
		case ch == '\\':
			i++
		default:
			b.WriteByte(ch)
		}
	}

	cleaned := strings.ToLower(b.String())
	return strings.ContainsAny(cleaned, "yd")
}

// xlsMonthOnly é o texto que o leitor de xls produz para datas com formato interno: só ano e mês
var xlsMonthOnly = regexp.MustCompile(`^\d{4}\.\d{2}$`)

// xlsCell descarta datas sem dia; lidas como número elas virariam uma data serial errada.
// Datas com formato personalizado chegam em RFC 3339 e são mantidas.
func xlsCell(value string) (string, bool) {
	if xlsMonthOnly.MatchString(value) {
		return "", false
	}
	return value, true
}

func readXLS(data []byte) (sheets []rawSheet, err error) {
	defer recoverCorrupt(&err)

	wb, err := xls.OpenReader(bytes.NewReader(data), xlsCharset)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrCorruptFile, "erro ao abrir xls: %v", err)
	}

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		var rows [][]string
		dropped := 0
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}

			cells := make([]string, 0, row.LastCol()+1)
			for c := 0; c <= row.LastCol(); c++ {
				value, ok := xlsCell(row.Col(c))
				if !ok {
					dropped++
				}
				cells = append(cells, value)
			}
			rows = append(rows, cells)
		}

		if dropped > 0 {
			logrus.WithFields(logrus.Fields{
				"sheet": ws.Name,
				"cells": dropped,
			}).Warn("Datas do xls sem o dia foram descartadas")
		}

		if len(rows) == 0 {
			continue
		}
		sheets = append(sheets, rawSheet{name: ws.Name, rows: rows})
	}

	return sheets, nil
}
