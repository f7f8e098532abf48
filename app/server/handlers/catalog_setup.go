package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"affiliate-shop/app/server/constants"
	"affiliate-shop/app/server/models"
	"affiliate-shop/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogSetupGet 前台与后台共用：全部分类加上推广链接配置
func (a *App) CatalogSetupGet(c echo.Context) error {
	rctx := c.Request().Context()

	// 查询缓存
	if cacheBytes := a.cacheGet(rctx, constants.CacheKeyCatalogSetup); cacheBytes != nil {
		return c.JSONBlob(http.StatusOK, cacheBytes)
	}

	var categories []models.Category
	if err := a.db.WithContext(rctx).Order("id ASC").Find(&categories).Error; err != nil {
		a.l.Error("failed to get category list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := types.CatalogSetupResponse{
		Categories: []types.CategoryInfo{},
	}
	for _, category := range categories {
		res.Categories = append(res.Categories, types.CategoryInfo{
			ID:   category.ID,
			Name: category.Name,
		})
	}

	// 没有配置过推广链接时返回空串
	var cfg models.Config
	if err := a.db.WithContext(rctx).First(&cfg, "key = ?", constants.ConfigKeyAffiliateIntro).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			a.l.Error("failed to get config", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	} else {
		res.AffiliateLink.Value = cfg.Value
	}

	// 格式化并加入缓存，方便下一次查询
	resBytes, err := json.Marshal(&res)
	if err != nil {
		a.l.Error("failed to marshal catalog setup", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.cacheSet(rctx, constants.CacheKeyCatalogSetup, resBytes, constants.CacheExpireCatalogSetup)

	return c.JSONBlob(http.StatusOK, resBytes)
}

func (a *App) CatalogSetupPost(c echo.Context) error {
	// 抓取 admin 信息（认证）
	if _, err, statusCode := a.authAdmin(c); err != nil {
		a.l.Error("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	// 绑定请求体
	var req types.CatalogSetupRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	switch req.Type {
	case types.CatalogTypeCreateCategory:
		return a.categoryCreate(c, &req)
	case types.CatalogTypeDeleteCategory:
		return a.categoryDelete(c, &req)
	case types.CatalogTypeUpdateConfig:
		return a.configUpdate(c, &req)
	default:
		return a.erm(c, http.StatusBadRequest, "invalid type")
	}
}

func (a *App) categoryCreate(c echo.Context, req *types.CatalogSetupRequest) error {
	rctx := c.Request().Context()

	if req.Name == "" {
		return a.erm(c, http.StatusBadRequest, "missing name")
	}

	// 分类允许重名，这里没有唯一性检查
	category := models.Category{
		Name: req.Name,
	}
	if err := a.db.WithContext(rctx).Create(&category).Error; err != nil {
		a.l.Error("failed to create category", zap.String("name", category.Name), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheInvalidateCatalog(rctx)

	return c.JSON(http.StatusCreated, &types.CategoryInfo{
		ID:   category.ID,
		Name: category.Name,
	})
}

// categoryCheckAbleToDelete 分类还有商品引用时不能删除，返回引用数量
func (a *App) categoryCheckAbleToDelete(c echo.Context, id uint) (int64, error) {
	rctx := c.Request().Context()

	var productCount int64
	if err := a.db.WithContext(rctx).
		Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&productCount).Error; err != nil {
		a.l.Error("failed to count products of category", zap.Uint("id", id), zap.Error(err))
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return productCount, nil
}

func (a *App) categoryDelete(c echo.Context, req *types.CatalogSetupRequest) error {
	rctx := c.Request().Context()

	// 检查是否可以被删除
	productCount, err := a.categoryCheckAbleToDelete(c, req.ID)
	if err != nil {
		return a.er(c, http.StatusInternalServerError)
	}
	if productCount > 0 {
		return a.erm(c, http.StatusBadRequest,
			fmt.Sprintf("cannot delete: %d products still belong to this category", productCount))
	}

	// 删除
	if err := a.db.WithContext(rctx).Delete(&models.Category{}, req.ID).Error; err != nil {
		a.l.Error("failed to delete category", zap.Uint("id", req.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheInvalidateCatalog(rctx)
	a.cacheInvalidateProducts(rctx)

	return c.JSON(http.StatusOK, &types.SuccessResponse{
		Success: true,
	})
}

func (a *App) configUpdate(c echo.Context, req *types.CatalogSetupRequest) error {
	rctx := c.Request().Context()

	// upsert ：键不存在则插入，存在则覆盖
	cfg := models.Config{
		Key:   constants.ConfigKeyAffiliateIntro,
		Value: req.Value,
	}
	if err := a.db.WithContext(rctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&cfg).Error; err != nil {
		a.l.Error("failed to upsert config", zap.String("key", cfg.Key), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheInvalidateCatalog(rctx)

	return c.JSON(http.StatusOK, &types.SuccessResponse{
		Success: true,
	})
}
