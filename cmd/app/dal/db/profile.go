package db

import (
	"context"

	"cliphive.com/cmd/model"
	"github.com/pkg/errors"
)

func CreateUserProfile(ctx context.Context, profile *model.UserProfile) error {
	if err := Exec(ctx).Create(profile).Error; err != nil {
		return errors.Wrapf(err, "CreateUserProfile failed, user_id=%d", profile.UserId)
	}
	return nil
}

// GetUserProfile surfaces absence as gorm.ErrRecordNotFound; the update
// handler uses that to create the profile lazily.
func GetUserProfile(ctx context.Context, userId int64) (*model.UserProfile, error) {
	profile := &model.UserProfile{}
	if err := Exec(ctx).Where("user_id = ?", userId).First(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func SaveUserProfile(ctx context.Context, profile *model.UserProfile) error {
	err := Exec(ctx).Model(&model.UserProfile{}).Where("user_id = ?", profile.UserId).
		Updates(map[string]interface{}{
			"display_name": profile.DisplayName,
			"bio":          profile.Bio,
			"avatar_url":   profile.AvatarUrl,
			"steam_url":    profile.SteamUrl,
			"faceit_url":   profile.FaceitUrl,
			"updated_at":   profile.UpdatedAt,
		}).Error
	if err != nil {
		return errors.Wrapf(err, "SaveUserProfile failed, user_id=%d", profile.UserId)
	}
	return nil
}
