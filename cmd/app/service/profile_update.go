package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/cmd/model"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProfileService struct {
	bus *bus.Bus
}

func NewProfileService(b *bus.Bus) *ProfileService {
	return &ProfileService{bus: b}
}

// UpdateUserProfile applies a partial update; when no profile row exists
// yet it dispatches CreateUserProfile nested, which joins this command's
// transaction, so the create and the update commit or roll back together.
func (s *ProfileService) UpdateUserProfile(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*UpdateUserProfileCommand)
	if !ok {
		return nil, errno.ParamErr
	}

	profile, err := db.GetUserProfile(ctx, req.UserId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		res, derr := s.bus.Dispatch(ctx, &CreateUserProfileCommand{UserId: req.UserId})
		if derr != nil {
			return nil, derr
		}
		profile = res.(*model.UserProfile)
	} else if err != nil {
		return nil, err
	}

	if err := profile.Apply(req.Update); err != nil {
		return nil, err
	}
	if err := db.SaveUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) CreateUserProfile(ctx context.Context, cmd bus.Command) (interface{}, error) {
	req, ok := cmd.(*CreateUserProfileCommand)
	if !ok {
		return nil, errno.ParamErr
	}

	profile := model.NewUserProfile(req.UserId)
	if err := db.CreateUserProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
