package normalizing

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	urlIDPrefix         = "url:"
	fingerprintIDPrefix = "fp:"
	// hashLength caracteres hexadecimais mantidos do md5
	hashLength = 16
	// fingerprintTextRunes quantidade de caracteres do texto usada no fingerprint
	fingerprintTextRunes = 100
)

var (
	urnPattern        = regexp.MustCompile(`urn:li:[A-Za-z]+:[0-9]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FindURN procura um URN estável do LinkedIn nos valores informados, na ordem
func FindURN(values ...string) string {
	for _, v := range values {
		if urn := urnPattern.FindString(v); urn != "" {
			return urn
		}
	}
	return ""
}

// DerivePostID calcula a identidade estável do post:
//
//  1. URN encontrado em coluna de identidade: usado como está
//  2. permalink: "url:" + md5(url normalizada)[:16]
//  3. fingerprint: "fp:" + md5(texto normalizado[:100] + "|" + AAAA-MM-DD)[:16]
//
// A data do fingerprint é a data local do post no fuso do export, vazia quando desconhecida.
// Retorna vazio quando não há texto nem identificador.
func DerivePostID(urn, permalink, text string, postDate *time.Time, loc *time.Location) string {
	if urn != "" {
		return urn
	}

	if permalink != "" {
		return urlIDPrefix + shortHash(NormalizeURL(permalink))
	}

	normalized := NormalizeText(text)
	if normalized == "" {
		return ""
	}

	day := ""
	if postDate != nil {
		day = postDate.In(loc).Format(time.DateOnly)
	}

	return fingerprintIDPrefix + shortHash(truncateRunes(normalized, fingerprintTextRunes)+"|"+day)
}

// NormalizeURL remove query string, fragmento e barra final e converte para minúsculas
func NormalizeURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.TrimRight(u, "/")
}

// NormalizeText converte para minúsculas e colapsa espaços
func NormalizeText(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(strings.ToLower(text), " "))
}

// LooksLikeURL aceita apenas valores que parecem links, evitando que números de colunas
// como "Link clicks" virem identidade
func LooksLikeURL(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "www.") ||
		strings.Contains(v, "linkedin.com/")
}

func shortHash(value string) string {
	sum := md5.Sum([]byte(value))
	return hex.EncodeToString(sum[:])[:hashLength]
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}
