package handlers

import (
	"errors"
	"net/http"
	"time"

	"affiliate-shop/app/server/constants"
	"affiliate-shop/app/server/jwt"
	"affiliate-shop/app/server/models"
	"affiliate-shop/app/server/types"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthStatus 前台用来判断是否需要引导初始化管理员
func (a *App) AuthStatus(c echo.Context) error {
	rctx := c.Request().Context()

	var count int64
	if err := a.db.WithContext(rctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		a.l.Error("failed to count admin", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.AuthStatusResponse{
		HasAdmin: count > 0,
	})
}

func (a *App) Auth(c echo.Context) error {
	// 绑定请求体
	var req types.AuthRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	switch req.Action {
	case types.AuthActionRegister:
		return a.authRegister(c, &req)
	case types.AuthActionLogin:
		return a.authLogin(c, &req)
	case types.AuthActionChangePassword:
		return a.authChangePassword(c, &req)
	default:
		return a.erm(c, http.StatusBadRequest, "invalid action")
	}
}

// authRegister 一次性的管理员初始化：已经存在管理员之后永久失效
func (a *App) authRegister(c echo.Context, req *types.AuthRequest) error {
	rctx := c.Request().Context()

	// 没有写用户名或密码
	if req.Username == "" || req.Password == "" {
		return a.erm(c, http.StatusBadRequest, "missing username or password")
	}

	// 已经有管理员了，拒绝再次注册
	var count int64
	if err := a.db.WithContext(rctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		a.l.Error("failed to count admin", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if count > 0 {
		return a.erm(c, http.StatusForbidden, "admin already exists")
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 创建管理员
	admin := models.Admin{
		Username: req.Username,
		Password: passwordHash,
	}
	if err := a.db.WithContext(rctx).Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 用户名唯一索引兜底（正常情况下走不到这里）
			return a.erm(c, http.StatusConflict, "username already exists")
		}
		a.l.Error("failed to create admin", zap.String("username", admin.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.RegisterResponse{
		Message: "Created admin success",
	})
}

func (a *App) authLogin(c echo.Context, req *types.AuthRequest) error {
	rctx := c.Request().Context()

	var admin models.Admin
	if err := a.db.WithContext(rctx).First(&admin, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erm(c, http.StatusNotFound, "user not found")
		}
		a.l.Error("failed to find admin", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(req.Password, admin.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if !match {
		// 密码不一致
		return a.erm(c, http.StatusUnauthorized, "wrong password")
	}

	// 签出 JWT
	expires := time.Now().Add(constants.AuthTokenDuration)
	token, err := a.jwt.SignToken(&jwt.Admin{
		ID:       admin.ID,
		Username: admin.Username,
		Expires:  expires.Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginResponse{
		Success:  true,
		Username: admin.Username,
		Token:    token,
	})
}

func (a *App) authChangePassword(c echo.Context, req *types.AuthRequest) error {
	// 抓取 admin 信息（认证）：改密码属于变更操作，需要有效会话
	if _, err, statusCode := a.authAdmin(c); err != nil {
		a.l.Error("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var admin models.Admin
	if err := a.db.WithContext(rctx).First(&admin, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erm(c, http.StatusNotFound, "user not found")
		}
		a.l.Error("failed to find admin", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 检查旧密码
	if match, _, err := argon2id.CheckHash(req.OldPassword, admin.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if !match {
		return a.erm(c, http.StatusBadRequest, "wrong old password")
	}

	// 替换为新密码的 hash
	newPasswordHash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := a.db.WithContext(rctx).Model(&admin).Update("password", newPasswordHash).Error; err != nil {
		a.l.Error("failed to update password", zap.Uint("id", admin.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.SuccessResponse{
		Success: true,
	})
}
