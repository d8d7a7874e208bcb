package db

import (
	"pwh_admin/be/biz/db/database"
	"pwh_admin/be/biz/db/redis"
)

func Init() {
	database.Init()
	redis.Init()
}
