package handlers

import "github.com/labstack/echo/v4"

// RegisterRoutes 绑定全部接口
func RegisterRoutes(e *echo.Echo, a *App) {
	e.GET("/healthz", a.HealthCheck)

	// 认证
	e.GET("/auth-status", a.AuthStatus)
	e.POST("/auth", a.Auth)

	// 商品
	e.GET("/products", a.ProductList)
	e.POST("/products", a.ProductCreate)
	e.PUT("/products", a.ProductUpdate)
	e.DELETE("/products", a.ProductDelete)

	// 分类与配置
	e.GET("/catalog-setup", a.CatalogSetupGet)
	e.POST("/catalog-setup", a.CatalogSetupPost)
}
