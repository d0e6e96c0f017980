package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(" https://a.example, ,https://b.example "))
	assert.Nil(t, splitList(""))
}

func TestInitReadsEnvironment(t *testing.T) {
	t.Setenv("REPO_PATH", "/srv/site")
	t.Setenv("SECTION_FORMAT", "toml")
	t.Setenv("MAX_MEDIA_BYTES", "1024")
	t.Setenv("CORS_ORIGINS", "https://admin.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PUBLIC_PATH", "")

	Init()

	assert.Equal(t, "/srv/site", RepoPath)
	assert.Equal(t, "/srv/site/public", PublicPath)
	assert.Equal(t, "toml", SectionFormat)
	assert.Equal(t, int64(1024), MaxMediaBytes)
	assert.Equal(t, []string{"https://admin.example"}, CORSOrigins)
	assert.Equal(t, slog.LevelDebug, LogLevel)
	assert.Equal(t, "http://localhost:8080/auth/callback", OauthConf.RedirectURL)
}
