package session

import (
	"context"
	"net/http"

	"pwh_admin/be/biz/config"
	"pwh_admin/be/biz/db/redis"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"github.com/rbcervilla/redisstore/v9"
	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultName        = "admin_session_id"
	defaultStorePrefix = "admin_session:"
	defaultMaxAge      = 8 * 3600
)

// New keeps the gate state and the armed-delete flags of each operator in Redis, keyed by the session cookie.
func New() app.HandlerFunc {
	conf := config.GetSessionConf()

	store := NewRedisStore(redis.GetRedisClient(), defaultString(conf.StorePrefix, defaultStorePrefix))
	store.Options(sessions.Options{
		Path:     defaultString(conf.Path, "/"),
		Domain:   conf.Domain,
		MaxAge:   defaultInt(conf.MaxAge, defaultMaxAge),
		Secure:   conf.Secure,
		HttpOnly: conf.HTTPOnly,
		SameSite: parseSameSite(conf.SameSite),
	})

	return sessions.New(defaultString(conf.Name, defaultName), store)
}

type RedisStore struct {
	*redisstore.RedisStore
}

func (r *RedisStore) Options(opts sessions.Options) {
	r.RedisStore.Options(*opts.ToGorillaOptions())
}

func NewRedisStore(client goredis.UniversalClient, prefix string) *RedisStore {
	redisStore, err := redisstore.NewRedisStore(context.Background(), client)
	if err != nil {
		panic(err)
	}
	redisStore.KeyPrefix(prefix)
	return &RedisStore{
		RedisStore: redisStore,
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func parseSameSite(v string) http.SameSite {
	switch v {
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
