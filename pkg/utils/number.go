package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundWithPrecision arredonda f para a quantidade de casas decimais informada
func RoundWithPrecision(f float64, places int) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	pow := math.Pow(10, float64(places))
	return math.Round(f*pow) / pow
}

// ParseNumber interpreta números vindos de planilhas: separador de milhar,
// espaços, sinal de porcentagem e notação científica. O bool indica se havia um número.
func ParseNumber(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}

	s = strings.TrimSuffix(s, "%")
	s = strings.NewReplacer(",", "", " ", "", " ", "", "'", "").Replace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "n/a") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// ParseCount converte o valor em inteiro não negativo; valores ausentes ou inválidos viram 0
func ParseCount(value string) int {
	f, ok := ParseNumber(value)
	if !ok || f <= 0 {
		return 0
	}

	if f > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(f)
}
