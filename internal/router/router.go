package router

import (
	"github.com/fundops/backoffice/config"
	"github.com/fundops/backoffice/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func Setup(
	cfg *config.Config,
	fundHandler *handler.FundHandler,
	templateHandler *handler.TemplateHandler,
	docHandler *handler.DocumentHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))
	// PDF 다운로드가 커질 수 있어 응답 압축을 켠다
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		funds := api.Group("/funds")
		{
			funds.POST("", fundHandler.Create)
			funds.GET("", fundHandler.List)
			funds.GET("/:id", fundHandler.Get)
			funds.DELETE("/:id", fundHandler.Delete)
			funds.POST("/:id/members", fundHandler.AddMember)
			funds.GET("/:id/members", fundHandler.ListMembers)
			funds.DELETE("/:id/members/:memberId", fundHandler.RemoveMember)

			funds.POST("/:id/documents", docHandler.Generate)
			funds.POST("/:id/documents/preview", docHandler.Preview)
			funds.GET("/:id/documents", docHandler.ListByFund)
		}

		templates := api.Group("/templates")
		{
			templates.POST("", templateHandler.Create)
			templates.GET("/active", templateHandler.ResolveActive)
			templates.GET("/versions", templateHandler.ListVersions)
			templates.GET("/diff", templateHandler.Diff)
			templates.POST("/reconcile", templateHandler.Reconcile)
			templates.GET("/:id", templateHandler.Get)
			templates.POST("/:id/activate", templateHandler.Activate)
		}

		docs := api.Group("/documents")
		{
			docs.GET("/:id", docHandler.Get)
			docs.GET("/:id/children", docHandler.Children)
			docs.GET("/:id/download", docHandler.Download)
			docs.GET("/:id/members/:memberId/download", docHandler.DownloadMember)
			docs.DELETE("/:id", docHandler.Delete)
		}
	}

	return r
}
