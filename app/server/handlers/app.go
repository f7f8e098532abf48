package handlers

import (
	"affiliate-shop/app/server/jwt"
	"affiliate-shop/app/server/media"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l     *zap.Logger   // 日志
	db    *gorm.DB      // 数据库
	rdb   *redis.Client // Redis ，可以为 nil （停用缓存）
	jwt   *jwt.JWT      // JWT ，用于无状态验证
	media *media.Store  // 托管图片
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, m *media.Store) *App {
	return &App{
		l:     l,
		db:    db,
		rdb:   rdb,
		jwt:   j,
		media: m,
	}
}
