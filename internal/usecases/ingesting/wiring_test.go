package ingesting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/social-analytics-ingestor/internal/config"
	"github.com/vfg2006/social-analytics-ingestor/internal/domain"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Company: config.Company{ID: "wentors", Name: "Wentors"},
		Paths:   config.Paths{DataDir: "./linkedin_exports/"},
		Ingestion: config.Ingestion{
			DayFirst:    true,
			OffsetHours: -3,
			Policy:      domain.MergePolicyReplace,
		},
	}

	opts := OptionsFromConfig(cfg)

	assert.Equal(t, "wentors", opts.CompanyID)
	assert.Equal(t, "Wentors", opts.CompanyName)
	assert.Equal(t, "./linkedin_exports/", opts.DataDir)
	assert.Equal(t, domain.MergePolicyReplace, opts.Policy)
	assert.True(t, opts.Dates.DayFirst)
	assert.Equal(t, -3, opts.Dates.OffsetHours)
}
