package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model

	// 商品基础信息
	Name   string  `gorm:"column:name"`             // 商品名称
	Price  float64 `gorm:"column:price"`            // 价格
	Image  string  `gorm:"column:image"`            // 图片，可以是托管图片的路径，也可以是外链
	Rating int     `gorm:"column:rating;default:5"` // 评分
	URL    string  `gorm:"column:url"`              // 外部购买（推广）链接

	// 商品归属的分类
	CategoryID *uint `gorm:"column:category_id;index"` // 分类 ID ， NULL 表示未分类

	// 连接模型时使用
	Category *Category `gorm:"foreignKey:CategoryID"` // 分类
}
