package resp

import (
	"errors"
	"net/http"

	"pwh_admin/be/biz/model/dto"
	"pwh_admin/be/biz/model/errs"

	"github.com/cloudwego/hertz/pkg/app"
)

// SuccessResp writes data in the common envelope.
func SuccessResp(c *app.RequestContext, data any) {
	c.JSON(http.StatusOK, &dto.CommonResp{
		Success: true,
		Code:    int(errs.Success.Code()),
		Message: errs.Success.Msg(),
		Data:    data,
	})
}

// FailResp reports a business failure with http 200. Errors outside the errs taxonomy are
// reported as ServerError without their text.
func FailResp(c *app.RequestContext, err error) {
	c.JSON(http.StatusOK, failBody(err))
}

// AbortWithErr stops the handler chain with the given http status.
func AbortWithErr(c *app.RequestContext, err error, httpCode int) {
	c.AbortWithStatusJSON(httpCode, failBody(err))
}

func failBody(err error) *dto.CommonResp {
	var bizErr errs.Error
	if !errors.As(err, &bizErr) {
		bizErr = errs.ServerError
	}
	return &dto.CommonResp{
		Success: false,
		Code:    int(bizErr.Code()),
		Message: bizErr.Msg(),
	}
}
