package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pwh_admin/be/biz/config"
	"pwh_admin/be/biz/model/storage"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var db *gorm.DB

// Init opens the credential store and probes it once. Any failure is fatal for the process.
func Init() {
	conn, err := Open(config.GetDatabaseConf())
	if err != nil {
		panic(fmt.Errorf("database connect failed: %w", err))
	}
	db = conn
}

func GetDbConn() *gorm.DB {
	return db
}

func Open(conf config.DatabaseConf) (*gorm.DB, error) {
	dialector, err := NewDialector(conf.URL)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   conf.TablePrefix,
			SingularTable: true,
		},
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(conf.URL, "sqlite:") {
		// single writer; a shared in-memory database lives as long as its connection
		sqlDB.SetMaxOpenConns(1)
	} else if conf.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	}
	if conf.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	}
	if conf.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(conf.ConnMaxLifetime) * time.Second)
	}

	if err := Ping(context.Background(), conn); err != nil {
		return nil, err
	}

	if conf.AutoMigrate {
		if err := conn.AutoMigrate(&storage.UserRecord{}, &storage.BranchRecord{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		hlog.Infof("database schema migrated")
	}
	return conn, nil
}

// Ping runs SELECT 1 with a short deadline.
func Ping(ctx context.Context, conn *gorm.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var one int
	return conn.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

// NewDialector picks the gorm driver from the DATABASE_URL scheme.
func NewDialector(url string) (gorm.Dialector, error) {
	switch {
	case url == "":
		return nil, config.ErrDatabaseURLMissing
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite:")), nil
	case strings.HasPrefix(url, "mysql://"):
		return mysql.Open(strings.TrimPrefix(url, "mysql://")), nil
	default:
		return mysql.Open(url), nil
	}
}
