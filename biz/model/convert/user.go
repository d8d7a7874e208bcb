package convert

import (
	"pwh_admin/be/biz/model/domain"
	"pwh_admin/be/biz/model/dto"
	"pwh_admin/be/biz/model/storage"
)

const createdAtUnavailable = "(not available)"

func UserDomainToRecord(u *domain.UserAccount) *storage.UserRecord {
	if u == nil {
		return nil
	}
	return &storage.UserRecord{
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		Cabang:         u.Branch,
		CreatedAt:      u.CreatedAt,
	}
}

func UserRecordToDomain(m *storage.UserRecord) *domain.UserAccount {
	if m == nil {
		return nil
	}
	return &domain.UserAccount{
		Username:       m.Username,
		HashedPassword: m.HashedPassword,
		Branch:         m.Cabang,
		CreatedAt:      m.CreatedAt,
	}
}

// UserDomainToDTO never carries the password hash.
func UserDomainToDTO(u *domain.UserAccount) dto.UserItem {
	item := dto.UserItem{
		Username:  u.Username,
		Branch:    u.Branch,
		CreatedAt: createdAtUnavailable,
	}
	if u.CreatedAt != nil {
		item.CreatedAt = u.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return item
}

func UserDomainsToDTO(list []*domain.UserAccount) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(list))
	for _, u := range list {
		if u == nil {
			continue
		}
		items = append(items, UserDomainToDTO(u))
	}
	return items
}
