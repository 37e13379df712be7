package utils

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var ErrInvalidDate = errors.New("invalid date")

// StartOfDayUTC retorna a meia-noite UTC do dia de t
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

var (
	dayFirstLayouts   = []string{"2/1/2006", "2/1/06", "2-1-2006", "2-1-06", "2.1.2006"}
	monthFirstLayouts = []string{"1/2/2006", "1/2/06", "1-2-2006", "1-2-06"}

	isoLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		time.DateOnly,
		"2006/01/02",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"2 Jan 2006",
		"Mon, 02 Jan 2006",
	}

	timeSuffixes       = []string{"", " 15:04:05", " 15:04", " 3:04 PM", " 3:04:05 PM"}
	numericDatePattern = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2}|\d{4})\b`)
)

// excelEpoch é o dia zero das datas seriais do Excel (com o bug de 1900)
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// DateParser interpreta datas de exports com ordem dia/mês configurável
// e deslocamento de horas fixo em relação a UTC
type DateParser struct {
	DayFirst    bool
	OffsetHours int
}

// Location retorna o fuso fixo usado para interpretar o horário local do export
func (p DateParser) Location() *time.Location {
	if p.OffsetHours == 0 {
		return time.UTC
	}
	return time.FixedZone("export", p.OffsetHours*3600)
}

func (p DateParser) layouts() []string {
	first, second := monthFirstLayouts, dayFirstLayouts
	if p.DayFirst {
		first, second = dayFirstLayouts, monthFirstLayouts
	}

	var out []string
	for _, group := range [][]string{first, second} {
		for _, layout := range group {
			for _, suffix := range timeSuffixes {
				out = append(out, layout+suffix)
			}
		}
	}

	return append(out, isoLayouts...)
}

// Parse converte o valor em instante UTC. O retorno ambiguous indica datas
// numéricas em que dia e mês são ambos <= 12 e diferentes.
func (p DateParser) Parse(value string) (t time.Time, ambiguous bool, err error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false, ErrInvalidDate
	}

	loc := p.Location()

	if serial, convErr := strconv.ParseFloat(s, 64); convErr == nil {
		if serial < 1 || serial > 2958465 {
			return time.Time{}, false, ErrInvalidDate
		}
		days := math.Floor(serial)
		seconds := math.Round((serial - days) * 86400)
		wall := excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)
		local := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, loc)
		return local.UTC(), false, nil
	}

	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		ambiguous = a <= 12 && b <= 12 && a != b
	}

	for _, layout := range p.layouts() {
		parsed, parseErr := time.ParseInLocation(layout, s, loc)
		if parseErr == nil {
			return parsed.UTC(), ambiguous, nil
		}
	}

	// formatos menos comuns; os numéricos já foram resolvidos acima com a ordem configurada
	if parsed, parseErr := dateparse.ParseIn(s, loc); parseErr == nil {
		return parsed.UTC(), ambiguous, nil
	}

	return time.Time{}, false, ErrInvalidDate
}
