package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model

	Name string `gorm:"column:name"` // 分类名称，允许重名
}
