package storage

import (
	"time"

	"gorm.io/gorm/schema"
)

type UserRecord struct {
	Username       string     `gorm:"size:64;not null;uniqueIndex"` // 唯一登录账号
	HashedPassword string     `gorm:"size:255;not null"`
	Cabang         string     `gorm:"size:128;not null"`
	CreatedAt      *time.Time `gorm:"<-:false"` // filled by the column default on insert
}

// TableName goes through the namer so a configured schema prefix (e.g. "pwh.") applies.
func (UserRecord) TableName(namer schema.Namer) string {
	return namer.TableName("users")
}

type BranchRecord struct {
	Cabang *string `gorm:"size:128"`
}

func (BranchRecord) TableName(namer schema.Namer) string {
	return namer.TableName("hmhi_cabang")
}
