package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/fieldtrace-io/fieldtrace/docs"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/handler"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/middleware"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// NewRouter assembles the gin engine from the injector.
func NewRouter(injector *do.Injector) *gin.Engine {
	log := do.MustInvoke[*zap.Logger](injector)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	auth := do.MustInvoke[*handler.AuthHandler](injector)
	sites := do.MustInvoke[*handler.SiteHandler](injector)
	assets := do.MustInvoke[*handler.AssetHandler](injector)
	lookups := do.MustInvoke[*handler.LookupHandler](injector)
	photos := do.MustInvoke[*handler.PhotoHandler](injector)
	stream := do.MustInvoke[*handler.StreamHandler](injector)
	sessions := do.MustInvoke[service.SessionService](injector)

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", auth.Login)

	authed := v1.Group("", middleware.RequireSession(sessions))
	{
		authed.GET("/sites", sites.SearchSites)
		authed.GET("/sites/:site_id", sites.GetSite)

		authed.GET("/sites/:site_id/assets", assets.SiteAssets)
		authed.GET("/sites/:site_id/assets/:category", assets.ListAssets)
		authed.POST("/sites/:site_id/assets/:category", assets.CreateAsset)
		authed.PATCH("/sites/:site_id/assets/:category/:asset_id", assets.SaveAsset)

		authed.GET("/lookups/equipment-types", lookups.EquipmentTypes)
		authed.GET("/lookups/product-names", lookups.ProductNames)
		authed.GET("/lookups/tag-statuses", lookups.TagStatuses)
		authed.POST("/lookups/cascade", lookups.Cascade)
		authed.GET("/catalog/product-number", lookups.ProductNumber)

		authed.POST("/sites/:site_id/assets/:category/:asset_id/photos", photos.AttachPhoto)
		authed.GET("/sites/:site_id/assets/:category/:asset_id/photos", photos.AssetPhotos)
		authed.GET("/sites/:site_id/photos", photos.SitePhotoMap)

		authed.GET("/stream", stream.Stream)
	}

	return r
}
