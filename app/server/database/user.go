package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/models"
	"news-backend/app/server/utils"

	"gorm.io/gorm"
)

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *Store) UserByName(ctx context.Context, name string) (*models.User, error) {
	return s.findUser(ctx, "name = ?", name)
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *Store) findUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

// Register 原子地创建用户、授予默认角色、签发 register-confirm token
// 返回生成的原始 token 值（只在这里返回一次，库中只存摘要）
// 任一步失败则全部回滚，不会出现没有角色或没有 token 的半成品账号
func (s *Store) Register(ctx context.Context, name, email, passwordHash string, tokenExpire time.Time) (*models.User, string, error) {
	raw := utils.RandomToken()

	user := models.User{
		Email:            email,
		Name:             name,
		Password:         passwordHash,
		RegistrationDate: time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var defaultRole models.Role
		if err := tx.First(&defaultRole, "label = ?", constants.RoleRegular).Error; err != nil {
			return fmt.Errorf("find default role: %w", err)
		}

		user.Roles = []models.Role{defaultRole}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		if err := tx.Create(&models.Token{
			Token:  utils.DigestHash(raw),
			Expire: tokenExpire,
			Type:   models.TokenTypeRegisterConfirm,
			UserID: user.ID,
		}).Error; err != nil {
			return fmt.Errorf("create token: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return &user, raw, nil
}

func (s *Store) SetPassword(ctx context.Context, userID uint, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("set password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID uint, name, image, biography string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Select("name", "image", "biography").
		Updates(models.User{Name: name, Image: image, Biography: biography})
	if res.Error != nil {
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteUser 删除账号：作者内容让渡给哨兵账号，绝不连带删除内容
func (s *Store) DeleteUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var anonymous models.User
		if err := tx.First(&anonymous, "name = ?", constants.AnonymousUserName).Error; err != nil {
			return fmt.Errorf("find anonymous user: %w", err)
		}

		// 哨兵账号本身不可删除
		if anonymous.ID == userID {
			return ErrNotFound
		}

		// 让渡署名内容
		for _, model := range []interface{}{
			&models.Article{},
			&models.Discussion{},
			&models.Message{},
		} {
			if err := tx.Model(model).Where("user_id = ?", userID).
				Update("user_id", anonymous.ID).Error; err != nil {
				return fmt.Errorf("reassign content: %w", err)
			}
		}

		// 投票是个人行为，直接删除
		if err := tx.Where("user_id = ?", userID).Delete(&models.MessageLike{}).Error; err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}

		// 清理角色关联与在途 token ，避免悬挂引用
		if err := tx.Exec("DELETE FROM users_roles WHERE user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("delete role assignments: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Token{}).Error; err != nil {
			return fmt.Errorf("delete tokens: %w", err)
		}

		res := tx.Where("id = ?", userID).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}
