package repo

import (
	"context"

	"pwh_admin/be/biz/model/storage"

	"gorm.io/gorm"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// ListDistinct returns the distinct non-null branch names in ascending order.
func (r *BranchRepository) ListDistinct(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&storage.BranchRecord{}).
		Distinct("cabang").
		Where("cabang IS NOT NULL").
		Order("cabang ASC").
		Pluck("cabang", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
