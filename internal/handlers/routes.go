package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ujjwal0011/job-portal/internal/config"
	"github.com/ujjwal0011/job-portal/internal/middleware"
	"github.com/ujjwal0011/job-portal/internal/models"
)

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes wires every endpoint onto the router. The authorization
// gate is the Authenticate/RequireRoles pair; ownership checks live in the
// services behind the routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, users *UserHandler, jobs *JobHandler, applications *ApplicationHandler) {
	authenticated := middleware.Authenticate(db, cfg.JWTSecret)
	employerOnly := middleware.RequireRoles(models.RoleEmployer)
	seekerOnly := middleware.RequireRoles(models.RoleJobSeeker)

	api := r.Group("/api/v1")
	api.GET("/health", HealthCheck)

	user := api.Group("/user")
	{
		user.POST("/register", users.Register)
		user.POST("/login", users.Login)
		user.GET("/logout", authenticated, users.Logout)
		user.GET("/me", authenticated, users.Me)
		user.PUT("/update/profile", authenticated, users.UpdateProfile)
		user.PUT("/update/password", authenticated, users.UpdatePassword)
	}

	job := api.Group("/job")
	{
		job.POST("/post", authenticated, employerOnly, jobs.PostJob)
		job.GET("/all", jobs.ListJobs)
		job.GET("/myjobs", authenticated, employerOnly, jobs.MyJobs)
		job.DELETE("/delete/:id", authenticated, employerOnly, jobs.DeleteJob)
		job.POST("/extract", authenticated, employerOnly, jobs.Extract)
		job.GET("/:id", jobs.GetJob)
	}

	application := api.Group("/application")
	{
		application.POST("/post/:id", authenticated, seekerOnly, applications.Apply)
		application.GET("/employer/getall", authenticated, employerOnly, applications.EmployerGetAll)
		application.GET("/jobseeker/getall", authenticated, seekerOnly, applications.SeekerGetAll)
		application.DELETE("/delete/:id", authenticated, applications.Delete)
	}

	// Resume files saved by the disk store.
	r.Static("/uploads", cfg.UploadDir)
}
