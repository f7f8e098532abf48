package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"affiliate-shop/app/server/constants"

	"go.uber.org/zap"
)

// Store 管理托管图片文件：写入带时间戳的唯一文件名，只删除托管前缀下的文件
type Store struct {
	l   *zap.Logger
	dir string // 实际存放目录
}

func New(l *zap.Logger, dir string) (*Store, error) {
	// 确保目录存在
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	return &Store{
		l:   l,
		dir: dir,
	}, nil
}

// sanitizeName 清理原始文件名，只保留字母和数字
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Save 把上传的文件写入托管目录，返回带托管前缀的公开路径
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	// 计算落盘文件名
	ext := path.Ext(fh.Filename)
	if ext == "" {
		ext = constants.UploadDefaultExt
	}
	base := sanitizeName(strings.TrimSuffix(fh.Filename, ext))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), base, ext)

	// 打开来源
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// 写入目标
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return constants.UploadPathPrefix + name, nil
}

// IsManaged 判断是否为托管图片（外链不归这里管）
func (s *Store) IsManaged(imagePath string) bool {
	return strings.HasPrefix(imagePath, constants.UploadPathPrefix)
}

// Delete 删除托管图片，失败只记录日志不向外传递，避免阻塞数据库行的删除
func (s *Store) Delete(imagePath string) {
	if !s.IsManaged(imagePath) {
		return
	}

	filePath := filepath.Join(s.dir, strings.TrimPrefix(imagePath, constants.UploadPathPrefix))
	if err := os.Remove(filePath); err != nil {
		if !os.IsNotExist(err) {
			s.l.Warn("failed to delete image file", zap.String("path", imagePath), zap.Error(err))
		}
	}
}
