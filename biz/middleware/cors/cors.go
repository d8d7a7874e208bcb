package cors

import (
	"slices"
	"time"

	"pwh_admin/be/biz/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/cors"
)

// New allows the listed admin front ends to call the api with their session cookie.
func New() app.HandlerFunc {
	corsConf := config.GetCORSConf()

	cfg := cors.Config{
		AllowMethods:     defaultIfEmpty(corsConf.AllowMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowHeaders:     defaultIfEmpty(corsConf.AllowHeaders, []string{"Origin", "Content-Length", "Content-Type", "X-Requested-With", "X-Log-ID"}),
		ExposeHeaders:    []string{"X-Log-ID"},
		AllowCredentials: corsConf.AllowCredentials,
		MaxAge:           time.Duration(corsConf.MaxAge) * time.Second,
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 12 * time.Hour
	}

	switch {
	case len(corsConf.AllowOrigins) == 0:
		// no list: only same-origin requests get through
		cfg.AllowOriginFunc = func(string) bool { return false }
	case slices.Contains(corsConf.AllowOrigins, "*"):
		if corsConf.AllowCredentials {
			// "*" cannot be sent together with credentials
			cfg.AllowOriginFunc = func(string) bool { return true }
		} else {
			cfg.AllowAllOrigins = true
		}
	default:
		cfg.AllowOrigins = corsConf.AllowOrigins
	}

	return cors.New(cfg)
}

func defaultIfEmpty(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
