package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-admin/cmd/api/auth"
	"blog-admin/cmd/api/handlers"
	"blog-admin/cmd/api/middleware"
	"blog-admin/cmd/api/services"
	"blog-admin/db"
	_ "blog-admin/docs"
)

func New(svc *services.BlogService, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 admin routes, all behind the admin JWT
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AdminAuth(jwtManager))
	{
		admin.POST("/blogs", handlers.CreateBlogHandler(svc))
		admin.POST("/blogs/list", handlers.ListBlogsHandler(svc))
		admin.POST("/blogs/count", handlers.GetBlogCountHandler(svc))
		admin.POST("/blogs/bulk", handlers.BulkInsertBlogsHandler(svc))
		admin.PUT("/blogs/bulk", handlers.BulkUpdateBlogsHandler(svc))
		admin.PUT("/blogs/soft-delete-many", handlers.SoftDeleteManyBlogsHandler(svc))
		admin.POST("/blogs/delete-many", handlers.DeleteManyBlogsHandler(svc))
		admin.GET("/blogs/:id", handlers.GetBlogHandler(svc))
		admin.PUT("/blogs/:id", handlers.UpdateBlogHandler(svc))
		admin.PATCH("/blogs/:id", handlers.PartialUpdateBlogHandler(svc))
		admin.PUT("/blogs/:id/soft-delete", handlers.SoftDeleteBlogHandler(svc))
		admin.DELETE("/blogs/:id", handlers.DeleteBlogHandler(svc))
	}

	return r
}
