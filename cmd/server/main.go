package main

import (
	"os"

	be "pwh_admin/be"
	"pwh_admin/be/biz/config"
	"pwh_admin/be/biz/db"
	"pwh_admin/be/biz/util/logger"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const defaultConfPath = "conf/deploy.yml"

func main() {
	confPath := os.Getenv("CONF_PATH")
	if confPath == "" {
		if _, err := os.Stat(defaultConfPath); err == nil {
			confPath = defaultConfPath
		}
	}

	config.Init(confPath)
	logger.Init()

	if err := config.Validate(); err != nil {
		hlog.Fatalf("configuration error: %v", err)
	}

	db.Init()

	h := be.NewEngine()
	h.Spin()
}
