package be

import (
	"context"

	"pwh_admin/be/biz/handler"
	"pwh_admin/be/biz/middleware/gate"
	_ "pwh_admin/be/docs"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/swagger"
	swaggerFiles "github.com/swaggo/files"
)

func register(r *server.Hertz) {
	r.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.String(consts.StatusOK, "pong")
	})
	r.GET("/swagger/*any", swagger.WrapHandler(swaggerFiles.Handler))

	admin := r.Group("/api/v1/admin")
	{
		_gate := admin.Group("/gate")
		_gate.GET("", handler.GetGateState)
		_gate.POST("/verify", handler.VerifyMasterKey)
		_gate.POST("/enter", handler.EnterAdmin)
	}
	{
		_branches := admin.Group("/branches", gate.RequireActive())
		_branches.GET("", handler.ListBranches)
	}
	{
		_users := admin.Group("/users", gate.RequireActive())
		_users.GET("", handler.ListUsers)
		_users.POST("", handler.CreateUser)
		_users.POST("/:username/password", handler.UpdatePassword)
		_users.POST("/:username/verify", handler.VerifyPassword)
		_users.POST("/:username/delete", handler.DeleteUser)
		_users.POST("/:username/delete/cancel", handler.CancelDelete)
	}
}
