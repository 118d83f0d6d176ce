package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weekly-review/internal/logger"
	"weekly-review/internal/model"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrValidation)
	}

	var existing model.User
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("query user", err)
	}

	u := &model.User{Name: name}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, storageErr("insert user", err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// Delete removes a user and all their reports, then restores the
// counters of every week that held one of those reports.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, id)
			}
			return storageErr("query user", err)
		}

		var weekIDs []int
		err := tx.Model(&model.ReviewReport{}).
			Where("user_id = ?", id).
			Distinct("week_id").
			Pluck("week_id", &weekIDs).Error
		if err != nil {
			return storageErr("list affected weeks", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.ReviewReport{}).Error; err != nil {
			return storageErr("delete user reports", err)
		}
		if err := tx.Delete(&u).Error; err != nil {
			return storageErr("delete user", err)
		}

		for _, weekID := range weekIDs {
			if err := recomputeWeekStatistics(tx, weekID); err != nil {
				return err
			}
		}
		logger.Info("user deleted", "id", id, "name", u.Name, "weeks_touched", len(weekIDs))
		return nil
	})
}
