package normalizing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
	"github.com/vfg2006/social-analytics-ingestor/internal/usecases/classifying"
	"github.com/vfg2006/social-analytics-ingestor/pkg/utils"
)

const (
	titleMaxRunes   = 500
	excerptMaxRunes = 2000
	// maxTags limita hashtags e menções por post
	maxTags = 50
)

var (
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_.\-]+)`)
)

// NormalizedPost é o registro normalizado com as marcações para o relatório
type NormalizedPost struct {
	Record *domain.PostRecord
	Flags  []string
}

type PostNormalizer struct {
	companyID string
	dates     utils.DateParser
}

func NewPostNormalizer(companyID string, dates utils.DateParser) *PostNormalizer {
	return &PostNormalizer{
		companyID: companyID,
		dates:     dates,
	}
}

// Normalize converte uma linha de posts em PostRecord. Retorna ErrUnparseableRow quando
// a linha não tem URN, permalink nem texto para derivar a identidade.
func (n *PostNormalizer) Normalize(row domain.RawRow, res classifying.Resolution) (*NormalizedPost, error) {
	text := res.Value(row, classifying.FieldText)
	urnValue := res.Value(row, classifying.FieldURN)

	permalink := res.Value(row, classifying.FieldPermalink)
	if !LooksLikeURL(permalink) {
		permalink = ""
	}

	var (
		postDate *time.Time
		flags    []string
	)

	if raw := res.Value(row, classifying.FieldPostDate); raw != "" {
		parsed, ambiguous, err := n.dates.Parse(raw)
		if err != nil {
			flags = append(flags, domain.ReasonUnparseableDate)
		} else {
			postDate = &parsed
			if ambiguous {
				flags = append(flags, domain.ReasonAmbiguousDate)
			}
		}
	}

	postID := DerivePostID(FindURN(urnValue, permalink), permalink, text, postDate, n.dates.Location())
	if postID == "" {
		return nil, fmt.Errorf("%w: sem URN, permalink ou texto", domain.ErrUnparseableRow)
	}

	impressions := utils.ParseCount(res.Value(row, classifying.FieldImpressions))
	if impressions == 0 {
		impressions = utils.ParseCount(res.Value(row, classifying.FieldViews))
	}

	labels := []string{
		res.Value(row, classifying.FieldContentType),
		res.Value(row, classifying.FieldDistribution),
	}

	record := &domain.PostRecord{
		CompanyID:   n.companyID,
		PostID:      postID,
		PostDate:    postDate,
		PostType:    ClassifyPostType(labels, text, permalink),
		Title:       truncateRunes(text, titleMaxRunes),
		TextExcerpt: truncateRunes(text, excerptMaxRunes),
		PostURL:     permalink,
		Hashtags:    ExtractHashtags(text),
		Mentions:    ExtractMentions(text),
		Impressions: impressions,
		Clicks:      utils.ParseCount(res.Value(row, classifying.FieldClicks)),
		Likes:       utils.ParseCount(res.Value(row, classifying.FieldLikes)),
		Comments:    utils.ParseCount(res.Value(row, classifying.FieldComments)),
		Shares:      utils.ParseCount(res.Value(row, classifying.FieldShares)),
		Reach:       utils.ParseCount(res.Value(row, classifying.FieldReach)),
	}
	record.RecomputeRates()

	return &NormalizedPost{Record: record, Flags: flags}, nil
}

// ExtractHashtags retorna as hashtags do texto em minúsculas, sem "#" e sem repetição.
// Entidades HTML como "&#39;" não contam.
func ExtractHashtags(text string) []string {
	var tokens []string
	for _, loc := range hashtagPattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > 0 && text[loc[0]-1] == '&' {
			continue
		}
		tokens = append(tokens, text[loc[2]:loc[3]])
	}
	return uniqueLower(tokens)
}

// ExtractMentions retorna as menções do texto em minúsculas, sem "@" e sem repetição
func ExtractMentions(text string) []string {
	var tokens []string
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		tokens = append(tokens, strings.TrimRight(m[1], ".-"))
	}
	return uniqueLower(tokens)
}

func uniqueLower(tokens []string) []string {
	seen := map[string]bool{}
	out := []string{}

	for _, token := range tokens {
		t := strings.ToLower(strings.TrimSpace(token))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}

	return out
}
