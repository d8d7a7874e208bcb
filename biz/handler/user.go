package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"pwh_admin/be/biz/model/convert"
	"pwh_admin/be/biz/model/dto"
	"pwh_admin/be/biz/model/errs"
	"pwh_admin/be/biz/service/user"
	"pwh_admin/be/biz/util/resp"
	"pwh_admin/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/sessions"
)

// ListUsers 用户列表接口
//
//	@Tags			user
//	@Summary		用户列表接口
//	@Description	accounts ordered by username, password hashes are never returned
//	@Produce		json
//	@Success		200	{object}	dto.CommonResp{data=dto.ListUsersResp}
//	@Failure		401	{object}	dto.CommonResp
//	@Router			/api/v1/admin/users [GET]
func ListUsers(ctx context.Context, c *app.RequestContext) {
	var req dto.ListUsersReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	list, bizErr := user.NewDefault().List(ctx)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.ListUsersResp{
		Users: convert.UserDomainsToDTO(list),
		Total: len(list),
	})
}

// CreateUser 创建用户接口
//
//	@Tags			user
//	@Summary		创建用户接口
//	@Description	validates required fields, confirmation, password length, username length and branch in that order
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.CreateUserReq	true	"create user request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.CreateUserResp}
//	@Failure		401	{object}	dto.CommonResp
//	@Router			/api/v1/admin/users [POST]
func CreateUser(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateUserReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}

	u, bizErr := user.NewDefault().Create(ctx, req.Username, req.Password, req.PasswordConfirm, req.Branch)
	if bizErr != nil {
		if errs.IsValidation(bizErr) {
			hlog.CtxNoticef(ctx, "create user rejected: %v", bizErr)
		}
		resp.FailResp(c, bizErr)
		return
	}

	hlog.CtxInfof(ctx, "user created: %s branch=%s", u.Username, u.Branch)
	resp.SuccessResp(c, dto.CreateUserResp{
		Username: u.Username,
		Branch:   u.Branch,
		Message:  fmt.Sprintf("user '%s' has been added", u.Username),
	})
}

// UpdatePassword 重置密码接口
//
//	@Tags			user
//	@Summary		重置密码接口
//	@Description	overwrites the stored hash, unknown usernames are reported
//	@Accept			json
//	@Produce		json
//	@Param			username	path		string					true	"username"
//	@Param			req			body		dto.UpdatePasswordReq	true	"update password request body"
//	@Success		200			{object}	dto.CommonResp{data=dto.UpdatePasswordResp}
//	@Failure		401			{object}	dto.CommonResp
//	@Router			/api/v1/admin/users/{username}/password [POST]
func UpdatePassword(ctx context.Context, c *app.RequestContext) {
	var req dto.UpdatePasswordReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if bizErr := user.NewDefault().UpdatePassword(ctx, req.Username, req.NewPassword); bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	hlog.CtxInfof(ctx, "password updated: %s", req.Username)
	resp.SuccessResp(c, dto.UpdatePasswordResp{Username: req.Username})
}

// DeleteUser 删除用户接口
//
//	@Tags			user
//	@Summary		删除用户接口
//	@Description	first call arms the row, a second call within the confirm window deletes it
//	@Produce		json
//	@Param			username	path		string	true	"username"
//	@Success		200			{object}	dto.CommonResp{data=dto.DeleteUserResp}
//	@Failure		401			{object}	dto.CommonResp
//	@Router			/api/v1/admin/users/{username}/delete [POST]
func DeleteUser(ctx context.Context, c *app.RequestContext) {
	var req dto.DeleteUserReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	g, ok := defaultGate(ctx, c)
	if !ok {
		return
	}

	outcome, bizErr := user.NewDefault().Delete(ctx, g.RowConfirm(sessions.Default(c)), req.Username)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	out := dto.DeleteUserResp{
		Username: req.Username,
		Armed:    outcome.Armed,
		Deleted:  outcome.Deleted,
	}
	if outcome.Armed {
		out.Warning = fmt.Sprintf("delete user '%s' again to confirm, this cannot be undone", req.Username)
	} else {
		hlog.CtxInfof(ctx, "user deleted: %s", req.Username)
	}
	resp.SuccessResp(c, out)
}

// CancelDelete 取消删除接口
//
//	@Tags			user
//	@Summary		取消删除接口
//	@Description	disarms a pending delete
//	@Produce		json
//	@Param			username	path		string	true	"username"
//	@Success		200			{object}	dto.CommonResp{data=dto.CancelDeleteResp}
//	@Failure		401			{object}	dto.CommonResp
//	@Router			/api/v1/admin/users/{username}/delete/cancel [POST]
func CancelDelete(ctx context.Context, c *app.RequestContext) {
	var req dto.CancelDeleteReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	g, ok := defaultGate(ctx, c)
	if !ok {
		return
	}

	if bizErr := user.NewDefault().CancelDelete(ctx, g.RowConfirm(sessions.Default(c)), req.Username); bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.CancelDeleteResp{Username: req.Username})
}

// VerifyPassword 校验用户密码接口
//
//	@Tags			user
//	@Summary		校验用户密码接口
//	@Description	checks a plaintext password against the stored hash
//	@Accept			json
//	@Produce		json
//	@Param			username	path		string					true	"username"
//	@Param			req			body		dto.VerifyPasswordReq	true	"verify password request body"
//	@Success		200			{object}	dto.CommonResp{data=dto.VerifyPasswordResp}
//	@Failure		401			{object}	dto.CommonResp
//	@Router			/api/v1/admin/users/{username}/verify [POST]
func VerifyPassword(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyPasswordReq
	if err := validate.BindAndValidate(c, &req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	match, bizErr := user.NewDefault().Verify(ctx, req.Username, req.Password)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.VerifyPasswordResp{Username: req.Username, Match: match})
}
