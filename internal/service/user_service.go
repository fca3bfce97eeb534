package service

import (
	"context"
	"schoolscan_backend/internal/model"
	"schoolscan_backend/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo  *repository.UserRepository
	GroupRepo *repository.GroupRepository
}

func NewUserService(userRepo *repository.UserRepository, groupRepo *repository.GroupRepository) *UserService {
	return &UserService{
		UserRepo:  userRepo,
		GroupRepo: groupRepo,
	}
}

type Profile struct {
	User      *model.User `json:"user"`
	GroupName string      `json:"groupName,omitempty"`
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}
	if user.ClassGroupID != nil {
		group, err := s.GroupRepo.FindByID(ctx, *user.ClassGroupID)
		if err == nil {
			profile.GroupName = group.Name
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	return profile, nil
}

type ProfileUpdate struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Avatar   string `json:"avatar"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Language != "" {
		user.Language = update.Language
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
