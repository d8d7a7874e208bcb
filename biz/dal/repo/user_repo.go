package repo

import (
	"context"
	"errors"

	"pwh_admin/be/biz/model/convert"
	"pwh_admin/be/biz/model/domain"
	"pwh_admin/be/biz/model/storage"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.UserAccount) error {
	return r.db.WithContext(ctx).Create(convert.UserDomainToRecord(u)).Error
}

// List returns every account ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]*domain.UserAccount, error) {
	var records []*storage.UserRecord
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	list := make([]*domain.UserAccount, 0, len(records))
	for _, m := range records {
		list = append(list, convert.UserRecordToDomain(m))
	}
	return list, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.UserAccount, error) {
	var m storage.UserRecord
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.UserRecordToDomain(&m), nil
}

// UpdatePassword overwrites the hash and returns the number of rows touched.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, hashedPassword string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&storage.UserRecord{}).
		Where("username = ?", username).
		Update("hashed_password", hashedPassword)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) Delete(ctx context.Context, username string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("username = ?", username).
		Delete(&storage.UserRecord{})
	return res.RowsAffected, res.Error
}
