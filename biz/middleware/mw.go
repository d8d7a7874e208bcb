package middleware

import (
	"pwh_admin/be/biz/middleware/accesslog"
	"pwh_admin/be/biz/middleware/cors"
	"pwh_admin/be/biz/middleware/ratelimit"
	"pwh_admin/be/biz/middleware/recovery"
	"pwh_admin/be/biz/middleware/session"
	"pwh_admin/be/biz/middleware/trace"

	"github.com/cloudwego/hertz/pkg/app"
)

func Suite() []app.HandlerFunc {
	return []app.HandlerFunc{
		recovery.New(),  // panic handler
		trace.New(),     // log id
		accesslog.New(), // access log
		cors.New(),
		session.New(),   // gate state
		ratelimit.New(), // flood control
	}
}
