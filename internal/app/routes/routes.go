package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kzhao/applytrack/internal/app/controllers"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/middleware"
	"github.com/kzhao/applytrack/internal/pkg/auth"
)

// Controllers bundles every controller for route registration.
type Controllers struct {
	Auth        *controllers.AuthController
	Student     *controllers.StudentController
	Application *controllers.ApplicationController
	Document    *controllers.DocumentController
	Parent      *controllers.ParentController
	University  *controllers.UniversityController
}

// RegisterRoutes wires all HTTP routes onto the engine.
func RegisterRoutes(
	engine *gin.Engine,
	ctrl *Controllers,
	jwtService *auth.JWTService,
	resolver middleware.IPrincipalResolver,
) {
	authenticated := middleware.AuthMiddleware(jwtService, resolver)

	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Auth.Register)
		authGroup.POST("/login", ctrl.Auth.Login)
		authGroup.POST("/logout", ctrl.Auth.Logout)
		authGroup.GET("/me", authenticated, ctrl.Auth.Me)
	}

	universities := api.Group("/universities", authenticated)
	{
		universities.GET("", ctrl.University.ListUniversities)
		universities.GET("/:id", ctrl.University.GetUniversity)
	}

	student := api.Group("/student", authenticated, middleware.RequireRole(models.RoleStudent))
	{
		student.GET("/profile", ctrl.Student.GetProfile)
		student.PUT("/profile", ctrl.Student.UpdateProfile)

		student.GET("/applications", ctrl.Application.ListApplications)
		student.POST("/applications", ctrl.Application.CreateApplication)
		student.GET("/applications/:id", ctrl.Application.GetApplication)
		student.PUT("/applications/:id", ctrl.Application.UpdateApplication)
		student.DELETE("/applications/:id", ctrl.Application.DeleteApplication)
		student.POST("/applications/:id/requirements", ctrl.Application.CreateRequirement)
		student.PUT("/requirements/:id", ctrl.Application.UpdateRequirement)
		student.DELETE("/requirements/:id", ctrl.Application.DeleteRequirement)

		student.GET("/documents", ctrl.Document.ListDocuments)
		student.POST("/documents", ctrl.Document.UploadDocument)
		student.GET("/documents/:id", ctrl.Document.GetDocument)
		student.GET("/documents/:id/download", ctrl.Document.DownloadDocument)
		student.PUT("/documents/:id", ctrl.Document.UpdateDocument)
		student.DELETE("/documents/:id", ctrl.Document.DeleteDocument)
	}

	parent := api.Group("/parent", authenticated, middleware.RequireRole(models.RoleParent))
	{
		parent.POST("/link-student", ctrl.Parent.LinkStudent)
		parent.GET("/students", ctrl.Parent.ListStudents)
		parent.GET("/applications", ctrl.Parent.ListApplications)
		parent.POST("/applications/:id/notes", ctrl.Parent.AddNote)
	}
}
