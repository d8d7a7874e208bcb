package gate

import (
	"context"
	"net/http"

	"pwh_admin/be/biz/model/errs"
	gatesvc "pwh_admin/be/biz/service/gate"
	"pwh_admin/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/sessions"
)

// RequireActive rejects the request unless the session has passed the master key gate.
func RequireActive() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		g, bizErr := gatesvc.NewDefault()
		if bizErr != nil {
			hlog.CtxErrorf(ctx, "gate not configured: %v", bizErr)
			resp.AbortWithErr(c, bizErr, http.StatusInternalServerError)
			return
		}

		if !g.IsActive(sessions.Default(c)) {
			hlog.CtxNoticef(ctx, "gate is not active, path=%s", c.Request.URI().Path())
			resp.AbortWithErr(c, errs.GateLocked, http.StatusUnauthorized)
			return
		}

		c.Next(ctx)
	}
}
