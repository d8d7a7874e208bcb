package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"pwh_admin/be/biz/dal/cache"
	"pwh_admin/be/biz/dal/repo"
	"pwh_admin/be/biz/db/database"
	"pwh_admin/be/biz/model/domain"
	"pwh_admin/be/biz/model/errs"
	"pwh_admin/be/biz/service/branch"
	"pwh_admin/be/biz/util/encode"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	minPasswordLen = 8
	maxUsernameLen = 64
)

type UserStore interface {
	Create(ctx context.Context, u *domain.UserAccount) error
	List(ctx context.Context) ([]*domain.UserAccount, error)
	FindByUsername(ctx context.Context, username string) (*domain.UserAccount, error)
	UpdatePassword(ctx context.Context, username, hashedPassword string) (int64, error)
	Delete(ctx context.Context, username string) (int64, error)
}

type ListCache interface {
	GetUsers(ctx context.Context) ([]*domain.UserAccount, bool, error)
	SetUsers(ctx context.Context, list []*domain.UserAccount) error
	InvalidateUsers(ctx context.Context) error
}

type BranchChecker interface {
	Allowed(ctx context.Context, branch string) bool
}

// DeleteConfirmer holds the armed flags of the operator's session.
type DeleteConfirmer interface {
	Armed(rowID string) bool
	Arm(rowID string) error
	Disarm(rowID string) error
}

type DeleteOutcome struct {
	Armed   bool
	Deleted bool
}

type Service struct {
	users    UserStore
	cache    ListCache
	branches BranchChecker
}

func New(users UserStore, c ListCache, branches BranchChecker) *Service {
	return &Service{users: users, cache: c, branches: branches}
}

func NewDefault() *Service {
	return New(repo.NewUserRepository(database.GetDbConn()), cache.NewDefault(), branch.NewDefault())
}

// List returns the accounts ordered by username, read through the listing cache.
// Cached entries carry no password hash.
func (s *Service) List(ctx context.Context) ([]*domain.UserAccount, errs.Error) {
	if s.cache != nil {
		list, ok, err := s.cache.GetUsers(ctx)
		if err != nil {
			hlog.CtxWarnf(ctx, "user cache get err: %v", err)
		} else if ok {
			return list, nil
		}
	}

	list, err := s.users.List(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "list users err: %v", err)
		return nil, errs.ServerError.SetErr(err)
	}

	if s.cache != nil {
		if err := s.cache.SetUsers(ctx, list); err != nil {
			hlog.CtxWarnf(ctx, "user cache set err: %v", err)
		}
	}
	return list, nil
}

// Create validates the form in order (required fields, confirmation, length, branch) and
// stores the account with a bcrypt hash.
func (s *Service) Create(ctx context.Context, username, password, passwordConfirm, branchName string) (*domain.UserAccount, errs.Error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || passwordConfirm == "" || branchName == "" {
		return nil, errs.FieldsRequired
	}
	if password != passwordConfirm {
		return nil, errs.PasswordMismatch
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, errs.PasswordTooShort
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, errs.UsernameTooLong
	}
	if s.branches != nil && !s.branches.Allowed(ctx, branchName) {
		return nil, errs.BranchInvalid.SetMsg(fmt.Sprintf("branch '%s' is not in the branch directory", branchName))
	}

	hash, err := encode.EncodePassword(password)
	if err != nil {
		return nil, errs.ServerError.SetErr(err)
	}

	u := &domain.UserAccount{
		Username:       username,
		HashedPassword: hash,
		Branch:         branchName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errs.IsDuplicatedErr(err) {
			return nil, errs.UserNameDuplicatedErr.SetMsg(fmt.Sprintf("username '%s' already exists", username))
		}
		hlog.CtxErrorf(ctx, "create user err: %v", err)
		return nil, errs.ServerError.SetErr(err)
	}

	s.invalidate(ctx)
	return u, nil
}

// UpdatePassword overwrites the stored hash. An unknown username is reported, not ignored.
func (s *Service) UpdatePassword(ctx context.Context, username, newPassword string) errs.Error {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(newPassword) < minPasswordLen {
		return errs.PasswordTooShort
	}

	hash, err := encode.EncodePassword(newPassword)
	if err != nil {
		return errs.ServerError.SetErr(err)
	}

	rows, err := s.users.UpdatePassword(ctx, username, hash)
	if err != nil {
		hlog.CtxErrorf(ctx, "update password err: %v", err)
		return errs.ServerError.SetErr(err)
	}
	if rows == 0 {
		return errs.UserNotExist.SetMsg(fmt.Sprintf("user '%s' not exist", username))
	}

	s.invalidate(ctx)
	return nil
}

// Delete is a two-click action: the first call arms the row, the second removes it.
func (s *Service) Delete(ctx context.Context, confirm DeleteConfirmer, username string) (DeleteOutcome, errs.Error) {
	username = strings.TrimSpace(username)

	if !confirm.Armed(username) {
		u, err := s.users.FindByUsername(ctx, username)
		if err != nil {
			hlog.CtxErrorf(ctx, "find user err: %v", err)
			return DeleteOutcome{}, errs.ServerError.SetErr(err)
		}
		if u == nil {
			return DeleteOutcome{}, errs.UserNotExist.SetMsg(fmt.Sprintf("user '%s' not exist", username))
		}
		if err := confirm.Arm(username); err != nil {
			return DeleteOutcome{}, errs.ServerError.SetErr(err)
		}
		return DeleteOutcome{Armed: true}, nil
	}

	rows, err := s.users.Delete(ctx, username)
	if err != nil {
		hlog.CtxErrorf(ctx, "delete user err: %v", err)
		return DeleteOutcome{Armed: true}, errs.ServerError.SetErr(err)
	}
	if err := confirm.Disarm(username); err != nil {
		hlog.CtxWarnf(ctx, "disarm %s err: %v", username, err)
	}
	if rows == 0 {
		return DeleteOutcome{}, errs.UserNotExist.SetMsg(fmt.Sprintf("user '%s' not exist", username))
	}

	s.invalidate(ctx)
	return DeleteOutcome{Deleted: true}, nil
}

// CancelDelete disarms a row without touching the store.
func (s *Service) CancelDelete(_ context.Context, confirm DeleteConfirmer, username string) errs.Error {
	if err := confirm.Disarm(strings.TrimSpace(username)); err != nil {
		return errs.ServerError.SetErr(err)
	}
	return nil
}

// Verify checks a plaintext password against the stored hash.
func (s *Service) Verify(ctx context.Context, username, password string) (bool, errs.Error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, errs.ServerError.SetErr(err)
	}
	if u == nil {
		return false, errs.UserNotExist
	}
	return encode.VerifyPassword(password, u.HashedPassword), nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUsers(ctx); err != nil {
		hlog.CtxErrorf(ctx, "user cache invalidate err: %v", err)
	}
}
