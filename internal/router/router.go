package router

import (
	"time"

	"schoolhub/internal/db"
	"schoolhub/internal/handlers"
	"schoolhub/internal/middleware"
	"schoolhub/internal/models"
	"schoolhub/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	tokens := services.NewTokenService()

	// Handlers
	authHandler := handlers.NewAuthHandler(tokens)
	userHandler := handlers.NewUserHandler(tokens)
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	likeHandler := handlers.NewLikeHandler()
	boardHandler := handlers.NewBoardHandler()
	categoryHandler := handlers.NewCategoryHandler()
	competitionHandler := handlers.NewCompetitionHandler()
	pointHandler := handlers.NewPointHandler()
	carouselHandler := handlers.NewCarouselHandler()
	fileHandler := handlers.NewFileHandler()

	staff := middleware.RequireRole(models.RoleTeacher, models.RoleAdmin)

	// Account lifecycle; rate limited because these endpoints send mail
	// and take credentials.
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(db.RDB, 10, time.Minute))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify", authHandler.VerifyEmail)
		auth.POST("/login", authHandler.Login)
		auth.POST("/find-password", authHandler.FindPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// The refresh token is the bearer credential here, so the access
	// token middleware stays off this route.
	r.POST("/users/refresh", middleware.RateLimit(db.RDB, 30, time.Minute), userHandler.Refresh)

	users := r.Group("/users")
	users.Use(middleware.AuthRequired(tokens))
	{
		users.POST("/update-role", userHandler.UpdateRole)
		users.POST("/logout", userHandler.Logout)
		users.GET("/my-posts", userHandler.MyPosts)
		users.GET("/my-comments", userHandler.MyComments)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateProfile)
		users.DELETE("/:id", userHandler.DeleteAccount)
	}

	posts := r.Group("/posts")
	posts.Use(middleware.AuthRequired(tokens))
	{
		posts.POST("", postHandler.Create)
		posts.GET("", postHandler.List)
		posts.GET("/sports", postHandler.ListSports)
		posts.GET("/:id", postHandler.Detail)
		posts.PUT("/:id", postHandler.Update)
		posts.DELETE("/:id", postHandler.Delete)

		posts.POST("/:id/comments", commentHandler.Create)
		posts.GET("/:id/comments", commentHandler.ListByPost)
		posts.GET("/:id/comments/best", commentHandler.BestComment)
	}

	comments := r.Group("/comments")
	comments.Use(middleware.AuthRequired(tokens))
	{
		comments.PUT("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	likes := r.Group("/likes")
	likes.Use(middleware.AuthRequired(tokens))
	{
		likes.POST("", likeHandler.Create)
		likes.DELETE("/:id", likeHandler.Delete)
	}

	boards := r.Group("/")
	boards.Use(middleware.AuthRequired(tokens))
	{
		boards.GET("/boards/:id", boardHandler.GetBoard)
		boards.GET("/categories/:id", categoryHandler.GetCategory)
	}

	competitions := r.Group("/competitions")
	competitions.Use(middleware.AuthRequired(tokens))
	{
		competitions.GET("", competitionHandler.List)
		competitions.GET("/:categoryId", competitionHandler.ListByCategory)
		competitions.POST("", staff, competitionHandler.Create)
		competitions.PUT("/:id", staff, competitionHandler.Update)
		competitions.DELETE("/:id", staff, competitionHandler.Delete)
	}

	points := r.Group("/points")
	points.Use(middleware.AuthRequired(tokens))
	{
		points.GET("", pointHandler.Scoreboard)
		points.POST("", staff, pointHandler.Create)
		points.PUT("", staff, pointHandler.Update)
		points.DELETE("", staff, pointHandler.Delete)
	}

	carousels := r.Group("/carousels")
	carousels.Use(middleware.AuthRequired(tokens))
	{
		carousels.GET("/featured", carouselHandler.Featured)
		carousels.POST("/feature", staff, carouselHandler.Feature)
		carousels.POST("/unfeature", staff, carouselHandler.Unfeature)
	}

	files := r.Group("/files")
	files.Use(middleware.AuthRequired(tokens))
	{
		files.POST("", fileHandler.Upload)
	}
}
