package handlers

import (
	"net/http"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"
	"landing-cms/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(config.CORSOrigins) > 0 {
		cfg.AllowOrigins = config.CORSOrigins
		cfg.AllowCredentials = true
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}

// SetupRouter wires every route of the service.
func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Session Setup
	store := cookie.NewStore([]byte(config.SessionSecret))
	r.Use(sessions.Sessions("landingsession", store))
	r.Use(cors.New(corsConfig()))

	// Static Files
	r.Static(config.PreviewURL, config.PublicPath)
	r.Static(config.MediaPublicPath, services.MediaRoot())

	// --- Auth Routes ---
	r.GET("/login", GithubLogin)
	r.GET("/auth/callback", AuthCallback)
	r.GET("/logout", Logout)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")

	col := services.LandingSections()
	sections := api.Group("/" + col.Slug)
	{
		sections.GET("", RequireAccess(col, models.OpRead), ListSections)
		sections.GET("/schema", GetSchema)
		sections.POST("/form-state", GetFormState)
		sections.GET("/:id", RequireAccess(col, models.OpRead), GetSection)
		sections.POST("", RequireAccess(col, models.OpCreate), CreateSection)
		sections.PUT("/:id", RequireAccess(col, models.OpUpdate), UpdateSection)
		sections.PATCH("/:id", RequireAccess(col, models.OpUpdate), PatchSection)
		sections.DELETE("/:id", RequireAccess(col, models.OpDelete), DeleteSection)
		sections.POST("/:id/diff", RequireAccess(col, models.OpUpdate), DiffSection)
	}

	api.GET("/posts", ListPosts)
	api.GET("/media", ListMedia)

	authorized := api.Group("")
	authorized.Use(AuthRequired)
	{
		authorized.POST("/media", UploadMedia)
		authorized.DELETE("/media/:name", DeleteMedia)
		authorized.POST("/export", HandleExport)
		authorized.POST("/build", HandleBuild)
		authorized.POST("/sync", HandleSync)
		authorized.POST("/publish", HandlePublish)
	}

	return r
}
