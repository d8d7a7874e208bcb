package domain

import "time"

const BranchAll = "ALL"

type UserAccount struct {
	Username       string
	HashedPassword string
	Branch         string
	CreatedAt      *time.Time
}
