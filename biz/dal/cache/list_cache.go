package cache

import (
	"context"
	"errors"
	"time"

	"pwh_admin/be/biz/config"
	redisdb "pwh_admin/be/biz/db/redis"
	"pwh_admin/be/biz/model/domain"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const (
	keyUserList   = "user_list"
	keyBranchList = "branch_list"

	defaultUserListTTL   = time.Minute
	defaultBranchListTTL = 5 * time.Minute
)

// cachedUser leaves the password hash out of Redis.
type cachedUser struct {
	Username  string     `json:"username"`
	Branch    string     `json:"branch"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ListCache is a read-through store for the user and branch listings.
// A miss is reported as (nil, false, nil).
type ListCache struct {
	rdb       redis.UniversalClient
	prefix    string
	userTTL   time.Duration
	branchTTL time.Duration
}

func NewListCache(rdb redis.UniversalClient, prefix string, userTTL, branchTTL time.Duration) *ListCache {
	if prefix == "" {
		prefix = "pwh_admin:"
	}
	if userTTL <= 0 {
		userTTL = defaultUserListTTL
	}
	if branchTTL <= 0 {
		branchTTL = defaultBranchListTTL
	}
	return &ListCache{
		rdb:       rdb,
		prefix:    prefix,
		userTTL:   userTTL,
		branchTTL: branchTTL,
	}
}

func (c *ListCache) GetUsers(ctx context.Context) ([]*domain.UserAccount, bool, error) {
	var items []cachedUser
	ok, err := c.get(ctx, keyUserList, &items)
	if err != nil || !ok {
		return nil, false, err
	}

	list := make([]*domain.UserAccount, 0, len(items))
	for _, it := range items {
		list = append(list, &domain.UserAccount{
			Username:  it.Username,
			Branch:    it.Branch,
			CreatedAt: it.CreatedAt,
		})
	}
	return list, true, nil
}

func (c *ListCache) SetUsers(ctx context.Context, list []*domain.UserAccount) error {
	items := make([]cachedUser, 0, len(list))
	for _, u := range list {
		items = append(items, cachedUser{
			Username:  u.Username,
			Branch:    u.Branch,
			CreatedAt: u.CreatedAt,
		})
	}
	return c.set(ctx, keyUserList, items, c.userTTL)
}

func (c *ListCache) InvalidateUsers(ctx context.Context) error {
	return c.rdb.Del(ctx, c.prefix+keyUserList).Err()
}

func (c *ListCache) GetBranches(ctx context.Context) ([]string, bool, error) {
	var names []string
	ok, err := c.get(ctx, keyBranchList, &names)
	if err != nil || !ok {
		return nil, false, err
	}
	return names, true, nil
}

func (c *ListCache) SetBranches(ctx context.Context, names []string) error {
	return c.set(ctx, keyBranchList, names, c.branchTTL)
}

func (c *ListCache) InvalidateBranches(ctx context.Context) error {
	return c.rdb.Del(ctx, c.prefix+keyBranchList).Err()
}

func (c *ListCache) get(ctx context.Context, key string, out any) (bool, error) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ListCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, data, ttl).Err()
}

func NewDefault() *ListCache {
	conf := config.GetCacheConf()
	return NewListCache(
		redisdb.GetRedisClient(),
		conf.KeyPrefix,
		time.Duration(conf.UserListTTLSeconds)*time.Second,
		time.Duration(conf.BranchListTTLSeconds)*time.Second,
	)
}
