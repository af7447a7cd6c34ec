package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	RepoPath   = "./repo"
	ContentDir = "content"
	ListenAddr = ":8080"

	LogMode       = "development"
	SessionSecret = ""
	CorsOrigins   = []string{"http://localhost:3000"}

	// Editor settings
	DefaultFormat = "yaml"
	HistoryLimit  = 100

	// Git settings
	GitUserEmail = "bot@reko.local"
	GitUserName  = "Reko Bot"
	GitBranch    = "main"
	GitRemote    = "origin"
)

var OauthConf *oauth2.Config

// Helper to get env with default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	appURL := GetAppURL()
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	RepoPath = getEnv("REPO_PATH", "./repo")
	ContentDir = getEnv("CONTENT_DIR", "content")
	ListenAddr = getEnv("LISTEN_ADDR", ":8080")

	LogMode = getEnv("LOG_MODE", "development")
	SessionSecret = getEnv("SESSION_SECRET", "")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		CorsOrigins = strings.Split(origins, ",")
	}

	DefaultFormat = getEnv("DEFAULT_FORMAT", "yaml")
	HistoryLimit = getEnvInt("HISTORY_LIMIT", 100)

	GitUserEmail = getEnv("GIT_USER_EMAIL", "bot@reko.local")
	GitUserName = getEnv("GIT_USER_NAME", "Reko Bot")
	GitBranch = getEnv("GIT_BRANCH", "main")
	GitRemote = getEnv("GIT_REMOTE", "origin")

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	return getEnv("APP_URL", "http://localhost:8080")
}
