package validate

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate binds path, query, form and json into req and checks its `validate` tags.
func BindAndValidate(c *app.RequestContext, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return validate.Struct(req)
}
