package inits

import (
	"fmt"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/models"
	"news-backend/app/server/utils"

	"github.com/alexedwards/argon2id"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Token{},
		&models.Category{},
		&models.Article{},
		&models.FrontPage{},
		&models.Forum{},
		&models.Discussion{},
		&models.Message{},
		&models.MessageLike{},
	)
}

func initData(db *gorm.DB) (err error) {
	// 查询现有记录数量
	var counter int64

	// 初始化角色
	if err = db.Model(&models.Role{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get role count: %w", err)
	} else if counter == 0 { // 没有任何角色，添加可用角色
		if err = db.Create([]*models.Role{
			{Label: constants.RoleAdmin, Name: "Administrator"},
			{Label: constants.RoleRegular, Name: "Regular"},
			{Label: constants.RoleModerator, Name: "Moderator"},
			{Label: constants.RoleEditor, Name: "Editor"},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial roles: %w", err)
		}
	}

	// 初始化哨兵账号：被删除用户的内容会让渡给它
	if err = db.Model(&models.User{}).Where("name = ?", constants.AnonymousUserName).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get anonymous user count: %w", err)
	} else if counter == 0 {
		// 哨兵账号不可登录，密码直接用随机值的摘要占位
		var password string
		if password, err = argon2id.CreateHash(utils.RandomToken(), argon2id.DefaultParams); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}

		if err = db.Create(&models.User{
			Email:            "anonymous@localhost",
			Name:             constants.AnonymousUserName,
			Password:         password,
			RegistrationDate: time.Now(),
		}).Error; err != nil {
			return fmt.Errorf("failed to create anonymous user: %w", err)
		}
	}

	// 初始化管理员
	if err = db.Model(&models.User{}).
		Joins("JOIN users_roles ON users_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = users_roles.role_id").
		Where("roles.label = ?", constants.RoleAdmin).
		Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get admin count: %w", err)
	} else if counter == 0 { // 没有任何管理员，添加初始管理员
		var password string
		if password, err = argon2id.CreateHash("password", argon2id.DefaultParams); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}

		var adminRole models.Role
		if err = db.First(&adminRole, "label = ?", constants.RoleAdmin).Error; err != nil {
			return fmt.Errorf("failed to find admin role: %w", err)
		}

		if err = db.Create(&models.User{
			Email:            "admin@localhost",
			Name:             "Admin",
			Password:         password,
			RegistrationDate: time.Now(),
			Roles:            []models.Role{adminRole},
		}).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
