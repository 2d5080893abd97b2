package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "./data/updates.json", c.DataFile)
	assert.Equal(t, "Ad Platform Updates", c.SiteTitle)
	assert.Equal(t, 48*time.Hour, c.CollectWindow)
	assert.Equal(t, 4, c.CollectConcurrency)
	assert.Empty(t, c.OpenAIKey)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	content := `
data_file = "/srv/updates.json"
site_title = "Updates"
collect_window = "24h"
filter_keywords = ["webinar", "event"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("APD_SITE_TITLE", "From env")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/updates.json", c.DataFile)
	assert.Equal(t, "From env", c.SiteTitle)
	assert.Equal(t, 24*time.Hour, c.CollectWindow)
	assert.Equal(t, []string{"webinar", "event"}, c.FilterKeywords)
}

func TestLoad_ExampleFile(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config.example.hcl"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, "Daily updates from major advertising platforms.", c.SiteDescription)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
	assert.Equal(t, []string{"webinar", "event"}, c.FilterKeywords)
}
