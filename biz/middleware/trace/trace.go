package trace

import (
	"context"

	"pwh_admin/be/biz/util/id_gen"
	"pwh_admin/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/app"
)

const (
	headerKeyLogID = "X-Log-ID"
	maxLogIDLen    = 64
)

// New stamps every request with a log id, reusing the caller's X-Log-ID when it looks sane.
func New() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		logID := string(c.Request.Header.Peek(headerKeyLogID))
		if logID == "" || len(logID) > maxLogIDLen {
			logID = id_gen.NewID()
		}
		c.Header(headerKeyLogID, logID)
		c.Next(trace_info.WithLogID(ctx, logID))
	}
}
