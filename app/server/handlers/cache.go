package handlers

import (
	"context"
	"errors"
	"time"

	"affiliate-shop/app/server/constants"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 缓存只是加速前台读取的旁路：任何缓存错误都记录日志后忽略，不影响请求本身

func (a *App) cacheGet(ctx context.Context, key string) []byte {
	if a.rdb == nil {
		return nil
	}

	cacheBytes, err := a.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	return cacheBytes
}

func (a *App) cacheSet(ctx context.Context, key string, value []byte, expire time.Duration) {
	if a.rdb == nil {
		return
	}

	if err := a.rdb.Set(ctx, key, value, expire).Err(); err != nil {
		a.l.Error("failed to set cache", zap.String("key", key), zap.Error(err))
	}
}

func (a *App) cacheDel(ctx context.Context, keys ...string) {
	if a.rdb == nil {
		return
	}

	if err := a.rdb.Del(ctx, keys...).Err(); err != nil {
		a.l.Error("failed to delete cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

// cacheInvalidateProducts 商品或分类发生变更后调用
func (a *App) cacheInvalidateProducts(ctx context.Context) {
	a.cacheDel(ctx, constants.CacheKeyProductList)
}

// cacheInvalidateCatalog 分类或配置发生变更后调用
func (a *App) cacheInvalidateCatalog(ctx context.Context) {
	a.cacheDel(ctx, constants.CacheKeyCatalogSetup)
}
