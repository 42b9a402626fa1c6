package service

import (
	"bytes"
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdateProfile 只允许更新展示类字段
func (s *UserService) UpdateProfile(id uint, name, avatar, birthdate, location string) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	if birthdate != "" {
		user.Birthdate = birthdate
	}
	if location != "" {
		user.Location = location
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 头像走对象存储，返回更新后的用户
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename, contentType string, data []byte) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	stored := fmt.Sprintf("avatars/%d/%d_%s", userID, time.Now().UnixNano(), filename)
	fileURL, err := s.Storage.Provider.Upload(ctx, stored, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, fmt.Errorf("store avatar file: %w", err)
	}

	user.Avatar = fileURL
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
