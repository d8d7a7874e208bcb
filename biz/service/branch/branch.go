package branch

import (
	"context"
	"fmt"

	"pwh_admin/be/biz/dal/cache"
	"pwh_admin/be/biz/dal/repo"
	"pwh_admin/be/biz/db/database"
	"pwh_admin/be/biz/model/domain"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const placeholder = ""

type Directory interface {
	ListDistinct(ctx context.Context) ([]string, error)
}

type Cache interface {
	GetBranches(ctx context.Context) ([]string, bool, error)
	SetBranches(ctx context.Context, names []string) error
	InvalidateBranches(ctx context.Context) error
}

type Service struct {
	dir   Directory
	cache Cache
}

func New(dir Directory, c Cache) *Service {
	return &Service{dir: dir, cache: c}
}

func NewDefault() *Service {
	return New(repo.NewBranchRepository(database.GetDbConn()), cache.NewDefault())
}

// FetchBranches returns the select options: an empty placeholder, "ALL", then the directory
// names. A directory failure is not fatal: the two fixed options come back with a warning.
func (s *Service) FetchBranches(ctx context.Context) ([]string, string) {
	if s.cache != nil {
		names, ok, err := s.cache.GetBranches(ctx)
		if err != nil {
			hlog.CtxWarnf(ctx, "branch cache get err: %v", err)
		} else if ok {
			return names, ""
		}
	}

	names, err := s.dir.ListDistinct(ctx)
	if err != nil {
		hlog.CtxWarnf(ctx, "branch directory err: %v", err)
		return fixedOptions(), fmt.Sprintf("failed to load the branch list: %v. Make sure table hmhi_cabang exists and has column cabang", err)
	}

	options := buildOptions(names)
	if s.cache != nil {
		if err := s.cache.SetBranches(ctx, options); err != nil {
			hlog.CtxWarnf(ctx, "branch cache set err: %v", err)
		}
	}
	return options, ""
}

// Refresh drops the cached options and reads the directory again.
func (s *Service) Refresh(ctx context.Context) ([]string, string) {
	if s.cache != nil {
		if err := s.cache.InvalidateBranches(ctx); err != nil {
			hlog.CtxWarnf(ctx, "branch cache invalidate err: %v", err)
		}
	}
	return s.FetchBranches(ctx)
}

// Allowed reports whether branch may be assigned to a new account.
func (s *Service) Allowed(ctx context.Context, branch string) bool {
	if branch == domain.BranchAll {
		return true
	}
	if branch == placeholder {
		return false
	}
	options, _ := s.FetchBranches(ctx)
	for _, b := range options {
		if b == branch {
			return true
		}
	}
	return false
}

func fixedOptions() []string {
	return []string{placeholder, domain.BranchAll}
}

func buildOptions(names []string) []string {
	options := fixedOptions()
	seen := map[string]struct{}{placeholder: {}, domain.BranchAll: {}}
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		options = append(options, n)
	}
	return options
}
