package recovery

import (
	"context"
	"net/http"

	"pwh_admin/be/biz/model/errs"
	"pwh_admin/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	hzrecovery "github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func New() app.HandlerFunc {
	return hzrecovery.Recovery(hzrecovery.WithRecoveryHandler(handle))
}

func handle(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
	hlog.CtxErrorf(ctx, "[Recovery] panic recovered: %v\n%s", err, stack)
	resp.AbortWithErr(c, errs.ServerError, http.StatusInternalServerError)
}
