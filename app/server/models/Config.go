package models

type Config struct {
	Key   string `gorm:"column:key;primaryKey"` // 配置项键名
	Value string `gorm:"column:value"`          // 配置项内容
}
