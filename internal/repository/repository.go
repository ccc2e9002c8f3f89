package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Team       TeamRepository
	TeamMember TeamMemberRepository
	Checkin    CheckinRepository
	ShareLink  ShareLinkRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Team:       NewTeamRepo(db),
		TeamMember: NewTeamMemberRepo(db),
		Checkin:    NewCheckinRepo(db),
		ShareLink:  NewShareLinkRepo(db),
	}
}
