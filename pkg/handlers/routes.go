package handlers

import (
	"net/http"
	"time"

	"reko-cms/pkg/config"
	"reko-cms/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Session Setup
	store := cookie.NewStore([]byte(config.SessionSecret))
	r.Use(sessions.Sessions("reko_session", store))

	r.GET("/healthcheck", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// --- Auth Routes ---
	r.GET("/login/github", GithubLogin)
	r.GET("/auth/callback", AuthCallback)
	r.POST("/logout", Logout)

	// --- API (Authorized) ---
	api := r.Group("/api")
	api.Use(AuthRequired)
	RegisterAPI(api)

	return r
}

func RegisterAPI(api *gin.RouterGroup) {
	api.GET("/styles", GetStyles)
	api.POST("/import", ImportMarkdown)
	api.POST("/sync", HandleSync)

	articles := api.Group("/articles")
	{
		articles.GET("", ListArticles)
		articles.POST("", CreateArticle)
		articles.GET("/:slug", GetArticle)
		articles.PUT("/:slug", UpdateArticle)
		articles.DELETE("/:slug", DeleteArticle)
		articles.GET("/:slug/markdown", GetArticleMarkdown)
	}

	editor := api.Group("/editor")
	{
		editor.POST("", OpenEditor)
		editor.GET("/:id", GetEditor)
		editor.DELETE("/:id", CloseEditor)
		editor.POST("/:id/ops", ApplyEditorOp)
		editor.POST("/:id/save", SaveEditor)
		editor.POST("/:id/publish", PublishEditor)
		editor.GET("/:id/diff", EditorDiff)
	}
}

// RequestLogger logs one line per request, with any errors handlers attached.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		switch {
		case len(c.Errors) > 0:
			log.Error("Request failed", append(kv, "errors", c.Errors.String())...)
		case c.Writer.Status() >= 500:
			log.Warn("Request", kv...)
		default:
			log.Debug("Request", kv...)
		}
	}
}
