package router

import (
	"github.com/labstack/echo/v4"

	"alumnihub/internal/adapter/api/handler"
	"alumnihub/internal/adapter/api/middleware"
	"alumnihub/internal/domain/entity"
)

func SetupPostingRouter(e *echo.Echo, postingHandler *handler.PostingHandler, authMiddleware *middleware.AuthMiddleware) {
	jobGroup := e.Group("/v1/jobs")
	jobGroup.Use(authMiddleware.Authenticate)

	jobGroup.POST("", postingHandler.CreateJob,
		middleware.RequireRoles(entity.RoleAlumni, entity.RoleStaff, entity.RoleAdmin))
	jobGroup.GET("", postingHandler.ListJobs)
	jobGroup.PUT("/:id/review", postingHandler.ReviewJob,
		middleware.RequireRoles(entity.RoleAdmin))

	eventGroup := e.Group("/v1/events")
	eventGroup.Use(authMiddleware.Authenticate)

	eventGroup.POST("", postingHandler.CreateEvent,
		middleware.RequireRoles(entity.RoleAlumni, entity.RoleStaff, entity.RoleAdmin))
	eventGroup.GET("", postingHandler.ListEvents)
	eventGroup.PUT("/:id/review", postingHandler.ReviewEvent,
		middleware.RequireRoles(entity.RoleAdmin))
}
