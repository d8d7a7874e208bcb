package dto

type UserItem struct {
	Username  string `json:"username"`
	Branch    string `json:"branch"`
	CreatedAt string `json:"created_at"`
}

type ListUsersReq struct{}

type ListUsersResp struct {
	Users []UserItem `json:"users"`
	Total int        `json:"total"`
}

// CreateUserReq carries no validate tags: the service checks the form in a fixed order.
type CreateUserReq struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm"`
	Branch          string `json:"branch" form:"branch"`
}

type CreateUserResp struct {
	Username string `json:"username"`
	Branch   string `json:"branch"`
	Message  string `json:"message"`
}

type UpdatePasswordReq struct {
	Username    string `path:"username" validate:"required,max=128"`
	NewPassword string `json:"new_password" form:"new_password" validate:"max=1024"`
}

type UpdatePasswordResp struct {
	Username string `json:"username"`
}

type DeleteUserReq struct {
	Username string `path:"username" validate:"required,max=128"`
}

type DeleteUserResp struct {
	Username string `json:"username"`
	Armed    bool   `json:"armed"`
	Deleted  bool   `json:"deleted"`
	Warning  string `json:"warning,omitempty"`
}

type CancelDeleteReq struct {
	Username string `path:"username" validate:"required,max=128"`
}

type CancelDeleteResp struct {
	Username string `json:"username"`
	Armed    bool   `json:"armed"`
}

type VerifyPasswordReq struct {
	Username string `path:"username" validate:"required,max=128"`
	Password string `json:"password" form:"password" validate:"required,max=1024"`
}

type VerifyPasswordResp struct {
	Username string `json:"username"`
	Match    bool   `json:"match"`
}

type ListBranchesReq struct {
	Refresh bool `query:"refresh"`
}

type ListBranchesResp struct {
	Branches []string `json:"branches"`
	Warning  string   `json:"warning,omitempty"`
}
