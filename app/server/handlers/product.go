package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"affiliate-shop/app/server/constants"
	"affiliate-shop/app/server/models"
	"affiliate-shop/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// productResolveImage 决定商品图片的最终来源：新上传的文件 > 粘贴的外链 > 兜底值
// 创建时的兜底值是占位图，更新时的兜底值是原有图片
func (a *App) productResolveImage(c echo.Context, fallback string) (string, error) {
	if fh, err := c.FormFile("imageFile"); err == nil && fh != nil && fh.Size > 0 {
		return a.media.Save(fh)
	}

	if urlInput := c.FormValue("imageUrlInput"); urlInput != "" {
		return urlInput, nil
	}

	return fallback, nil
}

// productParseFields 解析 multipart 表单里的公共字段
func (a *App) productParseFields(c echo.Context, product *models.Product) (error, int) {
	product.Name = c.FormValue("name")
	product.URL = c.FormValue("url")

	// 价格必须是数字
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return errors.New("invalid price"), http.StatusBadRequest
	}
	product.Price = price

	// 分类是可选的，这里不检查分类是否真实存在
	if categoryIDStr := c.FormValue("categoryId"); categoryIDStr == "" {
		product.CategoryID = nil
	} else if categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64); err != nil {
		return errors.New("invalid categoryId"), http.StatusBadRequest
	} else {
		id := uint(categoryID)
		product.CategoryID = &id
	}

	return nil, http.StatusOK
}

// ProductList 前台商品列表，新商品在前，附带分类名称
func (a *App) ProductList(c echo.Context) error {
	rctx := c.Request().Context()

	// 查询缓存
	if cacheBytes := a.cacheGet(rctx, constants.CacheKeyProductList); cacheBytes != nil {
		return c.JSONBlob(http.StatusOK, cacheBytes)
	}

	var products []models.Product
	if err := a.db.WithContext(rctx).
		Preload("Category").
		Order("id DESC").
		Find(&products).Error; err != nil {
		a.l.Error("failed to get product list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resProducts := []types.ProductInfo{}
	for _, product := range products {
		info := types.ProductInfo{
			ID:         product.ID,
			Name:       product.Name,
			Price:      product.Price,
			Image:      product.Image,
			Rating:     product.Rating,
			URL:        product.URL,
			CategoryID: product.CategoryID,
		}
		// 悬空或为空的分类引用一律渲染为 null
		if product.Category != nil {
			info.Category = &types.ProductCategory{Name: product.Category.Name}
		}
		resProducts = append(resProducts, info)
	}

	// 格式化并加入缓存，方便下一次查询
	resBytes, err := json.Marshal(resProducts)
	if err != nil {
		a.l.Error("failed to marshal product list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	a.cacheSet(rctx, constants.CacheKeyProductList, resBytes, constants.CacheExpireProductList)

	return c.JSONBlob(http.StatusOK, resBytes)
}

func (a *App) ProductCreate(c echo.Context) error {
	// 抓取 admin 信息（认证）
	if _, err, statusCode := a.authAdmin(c); err != nil {
		a.l.Error("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var product models.Product
	if err, statusCode := a.productParseFields(c, &product); err != nil {
		return a.erm(c, statusCode, err.Error())
	}

	// 解析图片来源，没有任何输入时使用占位图
	image, err := a.productResolveImage(c, constants.PlaceholderImageURL)
	if err != nil {
		a.l.Error("failed to save uploaded image", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	product.Image = image

	if err := a.db.WithContext(rctx).Create(&product).Error; err != nil {
		a.l.Error("failed to create product", zap.Any("product", product), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheInvalidateProducts(rctx)

	return c.JSON(http.StatusCreated, &types.ProductCreateResponse{
		Success: true,
		ID:      product.ID,
	})
}

func (a *App) ProductUpdate(c echo.Context) error {
	// 抓取 admin 信息（认证）
	if _, err, statusCode := a.authAdmin(c); err != nil {
		a.l.Error("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	id, err := strconv.ParseUint(c.FormValue("id"), 10, 64)
	if err != nil {
		return a.erm(c, http.StatusBadRequest, "invalid id")
	}

	// 从数据库中获得指定的商品
	var product models.Product
	if err := a.db.WithContext(rctx).First(&product, "id = ?", uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get product", zap.Uint64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err, statusCode := a.productParseFields(c, &product); err != nil {
		return a.erm(c, statusCode, err.Error())
	}

	// 解析图片来源，没有任何输入时保留原有图片
	// 被替换下来的旧托管图片不会在这里删除
	image, err := a.productResolveImage(c, c.FormValue("existingImage"))
	if err != nil {
		a.l.Error("failed to save uploaded image", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	product.Image = image

	// 更新商品信息（ CategoryID 可能被清空，所以用 Save 写入全部字段）
	if err := a.db.WithContext(rctx).Save(&product).Error; err != nil {
		a.l.Error("failed to update product", zap.Any("product", product), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheInvalidateProducts(rctx)

	return c.JSON(http.StatusOK, &types.SuccessResponse{
		Success: true,
	})
}

func (a *App) ProductDelete(c echo.Context) error {
	// 抓取 admin 信息（认证）
	if _, err, statusCode := a.authAdmin(c); err != nil {
		a.l.Error("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	idStr := c.QueryParam("id")
	if idStr == "" {
		return a.erm(c, http.StatusBadRequest, "missing id")
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return a.erm(c, http.StatusBadRequest, "invalid id")
	}

	// 先取出图片：托管图片需要连同文件一起清理，外链不动
	// 删除不存在的商品是无副作用的空操作
	var product models.Product
	if err := a.db.WithContext(rctx).First(&product, "id = ?", uint(id)).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			a.l.Error("failed to get product", zap.Uint64("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	} else if product.Image != "" {
		// 文件删除失败只记录，不阻塞数据库行的删除
		a.media.Delete(product.Image)
	}

	if err := a.db.WithContext(rctx).Delete(&models.Product{}, uint(id)).Error; err != nil {
		a.l.Error("failed to delete product", zap.Uint64("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheInvalidateProducts(rctx)

	return c.JSON(http.StatusOK, &types.ProductDeleteResponse{
		Message: "Deleted product and image",
	})
}
