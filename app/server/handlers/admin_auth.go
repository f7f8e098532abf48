package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"affiliate-shop/app/server/jwt"

	"github.com/labstack/echo/v4"
)

func (a *App) authAdmin(c echo.Context) (*jwt.Admin, error, int) {
	// 提取 token
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing auth token"), http.StatusUnauthorized
	}

	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 {
		return nil, fmt.Errorf("invalid auth header: %s", authHeader), http.StatusUnauthorized
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return nil, fmt.Errorf("unknown auth method: %s", splits[0]), http.StatusUnauthorized
	}

	// 验证 token
	jwtAdmin, err := a.jwt.ParseAdmin(splits[1])
	if err != nil {
		// 无效的 token
		return nil, fmt.Errorf("failed to parse token: %w", err), http.StatusUnauthorized
	}

	return jwtAdmin, nil, http.StatusOK
}
