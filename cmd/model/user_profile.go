package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"cliphive.com/pkg/constants"
	"cliphive.com/pkg/errno"
)

// UserProfile is keyed by the owning account id; one row per account,
// created lazily on first update.
type UserProfile struct {
	UserId      int64 `gorm:"primaryKey;autoIncrement:false"`
	DisplayName string
	Bio         string
	AvatarUrl   string
	SteamUrl    string
	FaceitUrl   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewUserProfile(userId int64) *UserProfile {
	now := time.Now()
	return &UserProfile{UserId: userId, CreatedAt: now, UpdatedAt: now}
}

// ProfileUpdate carries the fields of an update; nil means "leave as is",
// a pointer to "" clears the field.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarUrl   *string
	SteamUrl    *string
	FaceitUrl   *string
}

// Apply validates and applies an update. Oversize fields are rejected,
// not truncated; URLs are trimmed only.
func (p *UserProfile) Apply(upd ProfileUpdate) error {
	if upd.DisplayName != nil {
		name := strings.TrimSpace(*upd.DisplayName)
		if utf8.RuneCountInString(name) > constants.MaxDisplayNameLength {
			return errno.ParamErr.WithMessage("display name too long")
		}
		p.DisplayName = name
	}
	if upd.Bio != nil {
		bio := strings.TrimSpace(*upd.Bio)
		if utf8.RuneCountInString(bio) > constants.MaxBioLength {
			return errno.ParamErr.WithMessage("bio too long")
		}
		p.Bio = bio
	}
	if upd.AvatarUrl != nil {
		p.AvatarUrl = strings.TrimSpace(*upd.AvatarUrl)
	}
	if upd.SteamUrl != nil {
		p.SteamUrl = strings.TrimSpace(*upd.SteamUrl)
	}
	if upd.FaceitUrl != nil {
		p.FaceitUrl = strings.TrimSpace(*upd.FaceitUrl)
	}
	p.UpdatedAt = time.Now()
	return nil
}
