package router

import (
	"eventhub/internal/handler"
	"eventhub/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Deps collects everything the route table binds together.
type Deps struct {
	User      *handler.UserHandler
	Profile   *handler.ProfileHandler
	Event     *handler.EventHandler
	Signup    *handler.SignupHandler
	Community *handler.CommunityHandler
	Sessions  middleware.TokenStore
}

// New builds the static route table. Paths and methods are fixed at startup;
// nothing is registered dynamically.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLog(), gin.Recovery())

	auth := middleware.Auth(d.Sessions)

	api := r.Group("/api")

	// account + session
	api.POST("/signup", d.User.Signup)
	api.POST("/login", d.User.Login)
	api.POST("/logout", auth, d.User.Logout)
	api.POST("/token/refresh", d.User.TokenRefresh)
	api.POST("/change-password", auth, d.User.ChangePassword)
	api.POST("/password/reset-code", d.User.SendResetCode)
	api.POST("/password/reset", d.User.ResetPassword)

	// profile
	profileGroup := api.Group("/profile", auth)
	{
		profileGroup.POST("", d.Profile.Create)
		profileGroup.GET("", d.Profile.Get)
		profileGroup.PATCH("", d.Profile.Update)
		profileGroup.DELETE("", d.Profile.Delete)
	}

	// events + signups
	eventGroup := api.Group("/events", auth)
	{
		eventGroup.POST("", d.Event.Create)
		eventGroup.GET("", d.Event.List)
		eventGroup.GET("/:event_id", d.Event.Get)
		eventGroup.PATCH("/:event_id", d.Event.Update)
		eventGroup.DELETE("/:event_id", d.Event.Delete)
		eventGroup.POST("/:event_id/add-user", d.Event.AddUser)
		eventGroup.POST("/:event_id/signups", d.Signup.Create)
		eventGroup.GET("/:event_id/signups", d.Signup.Stats)
		eventGroup.PATCH("/:event_id/signups", d.Signup.Update)
		eventGroup.DELETE("/:event_id/signups", d.Signup.Delete)
	}
	api.GET("/signups", auth, d.Signup.ListMine)

	// communities + members
	communityGroup := api.Group("/communities")
	{
		communityGroup.POST("", auth, d.Community.Create)
		communityGroup.GET("", d.Community.List)
		communityGroup.GET("/:id", d.Community.Get)
		communityGroup.PATCH("/:id", auth, d.Community.Update)
		communityGroup.DELETE("/:id", auth, d.Community.Delete)
		communityGroup.POST("/:id/members", auth, d.Community.Join)
		communityGroup.DELETE("/:id/members", auth, d.Community.Leave)
		communityGroup.GET("/:id/members", auth, d.Community.Members)
	}

	return r
}
