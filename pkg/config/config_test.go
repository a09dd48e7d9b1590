package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.Planner.TopicCacheEnabled)
	assert.Equal(t, 10*time.Minute, cfg.Planner.TopicCacheTTL)
	assert.Equal(t, 4, cfg.Planner.WeeksPerMonth)
	assert.Equal(t, 4, cfg.Planner.BlockingOverlapDays)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("TOPIC_CACHE_TTL", "not-a-duration")
	v.Set("BLOCKING_OVERLAP_DAYS", 9)
	v.Set("DEFAULT_WEEKS_PER_MONTH", 5)
	v.Set("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := fromViper(v)

	assert.Equal(t, 10*time.Minute, cfg.Planner.TopicCacheTTL)
	assert.Equal(t, 4, cfg.Planner.BlockingOverlapDays)
	assert.Equal(t, 5, cfg.Planner.WeeksPerMonth)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
