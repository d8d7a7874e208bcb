package handler

import (
	"context"
	"net/http"

	"pwh_admin/be/biz/model/dto"
	"pwh_admin/be/biz/model/errs"
	"pwh_admin/be/biz/service/gate"
	"pwh_admin/be/biz/util/resp"
	"pwh_admin/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/sessions"
)

func defaultGate(ctx context.Context, c *app.RequestContext) (*gate.Gate, bool) {
	g, bizErr := gate.NewDefault()
	if bizErr != nil {
		hlog.CtxErrorf(ctx, "gate.NewDefault err: %v", bizErr)
		resp.AbortWithErr(c, bizErr, http.StatusInternalServerError)
		return nil, false
	}
	return g, true
}

// GetGateState 查询管理入口状态
//
//	@Tags			gate
//	@Summary		查询管理入口状态
//	@Description	locked, verified or active
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.GateStateResp}
//	@Router			/api/v1/admin/gate [GET]
func GetGateState(ctx context.Context, c *app.RequestContext) {
	g, ok := defaultGate(ctx, c)
	if !ok {
		return
	}

	resp.SuccessResp(c, dto.GateStateResp{State: string(g.State(sessions.Default(c)))})
}

// VerifyMasterKey 校验主密钥
//
//	@Tags			gate
//	@Summary		校验主密钥
//	@Description	exact match moves the session from locked to verified; retries are unlimited
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.VerifyMasterKeyReq	true	"master key"
//	@Success		200	{object}	dto.CommonResp{data=dto.GateStateResp}
//	@Header			200	{string}	set-cookie	"cookie"
//	@Router			/api/v1/admin/gate/verify [POST]
func VerifyMasterKey(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyMasterKeyReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	g, ok := defaultGate(ctx, c)
	if !ok {
		return
	}

	state, bizErr := g.Verify(sessions.Default(c), req.MasterKey)
	if bizErr != nil {
		hlog.CtxNoticef(ctx, "verify master key failed: %v", bizErr)
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.GateStateResp{State: string(state)})
}

// EnterAdmin 进入管理页面
//
//	@Tags			gate
//	@Summary		进入管理页面
//	@Description	moves a verified session to active
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.GateStateResp}
//	@Router			/api/v1/admin/gate/enter [POST]
func EnterAdmin(ctx context.Context, c *app.RequestContext) {
	var req dto.EnterAdminReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	g, ok := defaultGate(ctx, c)
	if !ok {
		return
	}

	state, bizErr := g.Enter(sessions.Default(c))
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.GateStateResp{State: string(state)})
}
