package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/yaml.v3"
)

var (
	ErrDatabaseURLMissing = errors.New("DATABASE_URL is not configured")
	ErrMasterKeyMissing   = errors.New("MASTER_KEY is not configured")
)

// Init loads the yaml file and then applies environment overrides on top of it.
func Init(filepath string) {
	globalConfig = ServiceConf{}

	if filepath != "" {
		content, err := os.ReadFile(filepath)
		if err != nil {
			panic(err)
		}

		if err := yaml.Unmarshal(content, &globalConfig); err != nil {
			panic(err)
		}
	}

	if err := env.Parse(&globalConfig); err != nil {
		panic(err)
	}

	hlog.Debugf("config debug: server=%s redis=%s:%d", globalConfig.Server.Addr, globalConfig.Redis.IP, globalConfig.Redis.Port)
}

// Validate reports the configuration errors that must stop the process before it serves anything.
func Validate() error {
	var errList []error
	if globalConfig.Database.URL == "" {
		errList = append(errList, ErrDatabaseURLMissing)
	}
	if globalConfig.Gate.MasterKey == "" {
		errList = append(errList, ErrMasterKeyMissing)
	}
	return errors.Join(errList...)
}

func GetServerConf() ServerConf {
	return globalConfig.Server
}

func GetDatabaseConf() DatabaseConf {
	return globalConfig.Database
}

func GetRedisConf() RedisConf {
	return globalConfig.Redis
}

func GetGateConf() GateConf {
	return globalConfig.Gate
}

func GetCacheConf() CacheConf {
	return globalConfig.Cache
}

func GetCORSConf() CORSConf {
	return globalConfig.CORS
}

func GetSessionConf() SessionConf {
	return globalConfig.Session
}

func GetRateLimitConf() []RateLimitConf {
	return globalConfig.RateLimit
}

func GetLoggerConf() LoggerConf {
	return globalConfig.Logger
}

var globalConfig ServiceConf

type ServiceConf struct {
	Server    ServerConf      `yaml:"server"`
	Database  DatabaseConf    `yaml:"database"`
	Redis     RedisConf       `yaml:"redis"`
	Gate      GateConf        `yaml:"gate"`
	Cache     CacheConf       `yaml:"cache"`
	CORS      CORSConf        `yaml:"cors"`
	Session   SessionConf     `yaml:"session"`
	RateLimit []RateLimitConf `yaml:"rate_limit"`
	Logger    LoggerConf      `yaml:"logger"`
}

type ServerConf struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR"`
}

type DatabaseConf struct {
	URL             string `yaml:"url" env:"DATABASE_URL"`
	TablePrefix     string `yaml:"table_prefix" env:"DATABASE_TABLE_PREFIX"`
	AutoMigrate     bool   `yaml:"auto_migrate"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

type RedisConf struct {
	IP       string `yaml:"ip"`
	Port     int    `yaml:"port"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR"` // takes precedence over ip/port
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

type GateConf struct {
	MasterKey            string `yaml:"master_key" env:"MASTER_KEY"`
	DeleteConfirmSeconds int    `yaml:"delete_confirm_seconds"`
}

type CacheConf struct {
	KeyPrefix            string `yaml:"key_prefix"`
	UserListTTLSeconds   int    `yaml:"user_list_ttl_seconds"`
	BranchListTTLSeconds int    `yaml:"branch_list_ttl_seconds"`
}

type CORSConf struct {
	AllowOrigins     []string `yaml:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

type SessionConf struct {
	StorePrefix string `yaml:"store_prefix"`
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Domain      string `yaml:"domain"`
	MaxAge      int    `yaml:"max_age"`
	Secure      bool   `yaml:"secure"`
	HTTPOnly    bool   `yaml:"http_only"`
	SameSite    string `yaml:"same_site"`
}

type RateLimitConf struct {
	Path          string `yaml:"path"`
	WindowSeconds int    `yaml:"window_seconds"`
	Limit         int64  `yaml:"limit"`
	HasSession    bool   `yaml:"has_session"`
}

type LoggerConf struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Dir        string `yaml:"dir"`
	FileName   string `yaml:"file_name"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Stdout     bool   `yaml:"stdout"`
}
