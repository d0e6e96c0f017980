package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	Port       = "8080"
	RepoPath   = "./repo"
	PublicPath = "./repo/public"
	PreviewURL = "/preview/"

	// Landing section storage
	SectionsDir   = "content/landing-sections"
	SectionFormat = "yaml"
	PostsDir      = "content/posts"
	LandingData   = "data/landing_sections.yaml"

	// Media settings
	MediaFolder     = "static/media"
	MediaPublicPath = "/media"
	MaxMediaBytes   = int64(10 << 20)

	// Access settings
	AdminAPIToken = ""
	SessionSecret = "change-me"
	CORSOrigins   []string

	// Git settings
	GitUserEmail = "bot@landing-cms.local"
	GitUserName  = "Landing CMS Bot"
	GitBranch    = "main"
	GitRemote    = "origin"

	LogLevel = slog.LevelInfo
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "err", err)
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	Port = getEnv("PORT", "8080")
	RepoPath = getEnv("REPO_PATH", "./repo")
	PublicPath = getEnv("PUBLIC_PATH", RepoPath+"/public")

	SectionsDir = getEnv("SECTIONS_DIR", "content/landing-sections")
	SectionFormat = getEnv("SECTION_FORMAT", "yaml")
	PostsDir = getEnv("POSTS_DIR", "content/posts")
	LandingData = getEnv("LANDING_DATA_FILE", "data/landing_sections.yaml")

	MediaFolder = getEnv("MEDIA_FOLDER", "static/media")
	MediaPublicPath = getEnv("MEDIA_PUBLIC_PATH", "/media")
	if mb := os.Getenv("MAX_MEDIA_BYTES"); mb != "" {
		if val, err := strconv.ParseInt(mb, 10, 64); err == nil && val > 0 {
			MaxMediaBytes = val
		}
	}

	AdminAPIToken = os.Getenv("ADMIN_API_TOKEN")
	SessionSecret = getEnv("SESSION_SECRET", "change-me")
	CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))

	GitUserEmail = getEnv("GIT_USER_EMAIL", "bot@landing-cms.local")
	GitUserName = getEnv("GIT_USER_NAME", "Landing CMS Bot")
	GitBranch = getEnv("GIT_BRANCH", "main")
	GitRemote = getEnv("GIT_REMOTE", "origin")

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			slog.Warn("invalid LOG_LEVEL, keeping default", "value", lvl)
		}
	}

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return appURL
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
