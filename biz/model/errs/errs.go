package errs

import "fmt"

type Error interface {
	Error() string
	Code() int32
	Msg() string
	SetErr(err error) Error
	SetMsg(msg string) Error
}

type bizError struct {
	code int32
	msg  string
}

func (bizErr *bizError) Error() string {
	return fmt.Sprintf("%d:%s", bizErr.code, bizErr.msg)
}

func (bizErr *bizError) Code() int32 {
	return bizErr.code
}

func (bizErr *bizError) Msg() string {
	return bizErr.msg
}

func (bizErr *bizError) SetErr(err error) Error {
	return New(bizErr.Code(), err.Error())
}

func (bizErr *bizError) SetMsg(msg string) Error {
	return New(bizErr.Code(), msg)
}

func New(code int32, msg string) Error {
	return &bizError{
		code: code,
		msg:  msg,
	}
}

func ErrorEqual(err1, err2 Error) bool {
	// 都为空
	if err1 == nil && err2 == nil {
		return true
	}

	// 只有一个不为空
	if err1 == nil || err2 == nil {
		return false
	}

	// 都不为空
	return err1.Code() == err2.Code()
}

var (
	Success        = New(0, "success")
	ServerError    = New(1_0001, "internal server error")
	ParamError     = New(1_0002, "param error")
	TooManyRequest = New(1_0004, "too many request")

	// session gate
	GateLocked         = New(2_0001, "admin gate is locked, verify the master key first")
	MasterKeyIncorrect = New(2_0002, "master key incorrect")
	GateNotConfigured  = New(2_0003, "master key is not configured")

	// user administration
	FieldsRequired        = New(3_0001, "all fields are required")
	PasswordMismatch      = New(3_0002, "passwords do not match")
	PasswordTooShort      = New(3_0003, "password must be at least 8 characters")
	BranchInvalid         = New(3_0004, "branch is not in the branch directory")
	UsernameTooLong       = New(3_0005, "username is too long")
	UserNameDuplicatedErr = New(3_0006, "username already exists")
	UserNotExist          = New(3_0007, "user not exist")
)

// IsValidation reports whether err is one of the recoverable input errors of the user form.
func IsValidation(err Error) bool {
	if err == nil {
		return false
	}
	switch err.Code() {
	case ParamError.Code(), FieldsRequired.Code(), PasswordMismatch.Code(),
		PasswordTooShort.Code(), BranchInvalid.Code(), UsernameTooLong.Code():
		return true
	}
	return false
}
