package models

import "gorm.io/gorm"

type Admin struct {
	gorm.Model

	Username string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一
	Password string `gorm:"column:password"`             // 密码，使用 argon2id 储存
}
