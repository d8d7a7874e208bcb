package handler

import (
	"context"
	"net/http"

	"pwh_admin/be/biz/model/dto"
	"pwh_admin/be/biz/model/errs"
	"pwh_admin/be/biz/service/branch"
	"pwh_admin/be/biz/util/resp"
	"pwh_admin/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ListBranches 分行列表接口
//
//	@Tags			branch
//	@Summary		分行列表接口
//	@Description	select options for the branch field: "", "ALL", then the directory names. An unreachable directory returns the two fixed options with a warning.
//	@Produce		json
//	@Param			refresh	query		bool	false	"skip the cached list"
//	@Success		200		{object}	dto.CommonResp{data=dto.ListBranchesResp}
//	@Failure		401		{object}	dto.CommonResp
//	@Router			/api/v1/admin/branches [GET]
func ListBranches(ctx context.Context, c *app.RequestContext) {
	var req dto.ListBranchesReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	svc := branch.NewDefault()
	var (
		options []string
		warning string
	)
	if req.Refresh {
		options, warning = svc.Refresh(ctx)
	} else {
		options, warning = svc.FetchBranches(ctx)
	}

	resp.SuccessResp(c, dto.ListBranchesResp{Branches: options, Warning: warning})
}
