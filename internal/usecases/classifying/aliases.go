package classifying

// Campos canônicos das tabelas de posts
const (
	FieldURN          = "urn"
	FieldPermalink    = "permalink"
	FieldText         = "text"
	FieldDistribution = "distribution"
	FieldContentType  = "content_type"
	FieldPostDate     = "post_date"
	FieldImpressions  = "impressions"
	FieldViews        = "views"
	FieldClicks       = "clicks"
	FieldLikes        = "likes"
	FieldComments     = "comments"
	FieldShares       = "shares"
	FieldReach        = "reach"
)

// Campos canônicos das tabelas demográficas
const (
	FieldDemographicType  = "demographic_type"
	FieldDemographicValue = "demographic_value"
	FieldCount            = "count"
	FieldPercentage       = "percentage"
)

// fieldAliases lista, em ordem de preferência, os rótulos aceitos para um campo.
// exact restringe a busca à igualdade, sem casamento por substring.
type fieldAliases struct {
	field   string
	aliases []string
	exact   bool
}

// postAliases segue a ordem de resolução: campos mais específicos antes dos genéricos
var postAliases = []fieldAliases{
	{field: FieldURN, aliases: []string{"urn", "post urn", "activity urn", "share urn", "update urn", "ugc post urn"}},
	{field: FieldPermalink, aliases: []string{"post link", "post url", "permalink", "update link", "url", "link"}},
	{field: FieldDistribution, aliases: []string{"post type", "distribution", "campaign type", "sponsored"}},
	{field: FieldContentType, aliases: []string{"content type", "content format", "media type", "format", "media", "type"}},
	{field: FieldText, aliases: []string{"post title", "update title", "post text", "post content", "commentary", "share commentary", "title", "text", "content", "message"}},
	{field: FieldPostDate, aliases: []string{"created date", "post date", "date created", "published date", "created", "published", "date"}},
	{field: FieldImpressions, aliases: []string{"impressions", "total impressions", "impressions (total)"}},
	{field: FieldViews, aliases: []string{"views", "video views", "offsite views"}},
	{field: FieldClicks, aliases: []string{"clicks", "link clicks", "unique clicks"}},
	{field: FieldLikes, aliases: []string{"likes", "reactions"}},
	{field: FieldComments, aliases: []string{"comments"}},
	{field: FieldShares, aliases: []string{"reposts", "shares", "share", "repost"}},
	{field: FieldReach, aliases: []string{"reach", "unique impressions", "members reached"}},
}

var demographicAliases = []fieldAliases{
	{field: FieldDemographicType, aliases: []string{"demographic type", "demographic", "facet", "type"}, exact: true},
	{field: FieldCount, aliases: []string{"total followers", "follower count", "followers", "count", "members", "audience", "number", "total"}},
	{field: FieldPercentage, aliases: []string{"percentage", "percent", "% of followers", "%", "pct"}},
	{field: FieldDemographicValue, aliases: []string{
		"demographic value", "job function", "job title", "company size", "seniority", "industry",
		"location", "country", "region", "city", "function", "category", "name", "value", "title",
	}},
}

// postFingerprint são os campos que evidenciam uma tabela de posts
var postFingerprint = []string{
	FieldURN, FieldPermalink, FieldText, FieldContentType, FieldPostDate,
	FieldImpressions, FieldViews, FieldClicks, FieldLikes, FieldComments, FieldShares, FieldReach,
}

// postIdentityFields precisam ter ao menos um representante para a tabela ser de posts
var postIdentityFields = []string{FieldURN, FieldPermalink, FieldText}

var demographicFingerprint = []string{FieldDemographicType, FieldDemographicValue, FieldCount, FieldPercentage}

// Palavras no nome do arquivo ou da planilha que sugerem o tipo da tabela
var (
	postHints        = []string{"content", "post", "update", "share"}
	demographicHints = []string{
		"follower", "demographic", "audience", "visitor",
		"seniority", "industry", "location", "company size", "job function", "function", "job title",
	}
)
