package ratelimit

import (
	"context"
	"net/http"

	"pwh_admin/be/biz/config"
	"pwh_admin/be/biz/model/errs"
	"pwh_admin/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/sessions"
)

// defaultPath names the rule applied to every path without its own entry.
const defaultPath = "*"

type rule struct {
	interceptor *Interceptor
	hasSession  bool
}

// New throttles request floods per client ip, or per session for rules with has_session.
// Redis failures let the request through.
func New() app.HandlerFunc {
	rules := make(map[string]*rule)
	defaultRule := &rule{interceptor: NewInterceptor(1, 20)}

	for _, conf := range config.GetRateLimitConf() {
		if conf.Path == "" || conf.WindowSeconds <= 0 || conf.Limit <= 0 {
			continue
		}
		r := &rule{
			interceptor: NewInterceptor(conf.WindowSeconds, conf.Limit),
			hasSession:  conf.HasSession,
		}
		if conf.Path == defaultPath {
			defaultRule = r
			continue
		}
		rules[conf.Path] = r
	}

	return func(ctx context.Context, c *app.RequestContext) {
		path := string(c.Request.URI().Path())

		r, ok := rules[path]
		if !ok {
			r = defaultRule
			path = defaultPath
		}

		var key string
		if r.hasSession {
			key = path + ":" + sessions.Default(c).ID()
		} else {
			key = path + ":" + c.ClientIP()
		}

		allowed, err := r.interceptor.Allow(ctx, key)
		if err != nil {
			hlog.CtxErrorf(ctx, "rate limit err, key=%s: %v", key, err)
			c.Next(ctx)
			return
		}
		if !allowed {
			hlog.CtxNoticef(ctx, "rate limited, key=%s", key)
			resp.AbortWithErr(c, errs.TooManyRequest, http.StatusTooManyRequests)
			return
		}

		c.Next(ctx)
	}
}
