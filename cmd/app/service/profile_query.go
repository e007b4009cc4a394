package service

import (
	"context"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/pkg/bus"
	"cliphive.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func (s *ProfileService) GetUserProfile(ctx context.Context, q bus.Query) (interface{}, error) {
	req, ok := q.(*GetUserProfileQuery)
	if !ok {
		return nil, errno.ParamErr
	}

	profile, err := db.GetUserProfile(ctx, req.UserId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("profile does not exist")
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
