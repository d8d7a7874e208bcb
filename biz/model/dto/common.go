package dto

// CommonResp wraps every api response. Code 0 means success; any other code is an errs code.
type CommonResp struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
