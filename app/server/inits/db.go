package inits

import (
	"fmt"
	"strings"

	"affiliate-shop/app/server/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func DB(conn string) (db *gorm.DB, err error) {
	// 打开连接（ postgres DSN 或本地 sqlite 文件）
	if db, err = gorm.Open(dialector(conn), &gorm.Config{TranslateError: true}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	// 管理员账号不在这里初始化：由首次使用时的 register 接口创建，之后该接口自动失效
	return db, nil
}

func dialector(conn string) gorm.Dialector {
	if strings.HasPrefix(conn, "postgres://") ||
		strings.HasPrefix(conn, "postgresql://") ||
		strings.Contains(conn, "host=") {
		return postgres.Open(conn)
	}
	return sqlite.Open(conn)
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Config{},
	)
}
