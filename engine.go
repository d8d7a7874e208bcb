package be

import (
	"time"

	"pwh_admin/be/biz/config"
	"pwh_admin/be/biz/middleware"

	"github.com/cloudwego/hertz/pkg/app/server"
)

const defaultAddr = ":8888"

// NewEngine builds the server with the middleware suite and every route registered.
// Config, database and redis must be initialized first.
func NewEngine() *server.Hertz {
	addr := config.GetServerConf().Addr
	if addr == "" {
		addr = defaultAddr
	}

	h := server.New(
		server.WithHostPorts(addr),
		server.WithExitWaitTime(3*time.Second),
	)
	h.Use(middleware.Suite()...)
	register(h)
	return h
}
