package handlers

import (
	"net/http"
	"testing"

	"affiliate-shop/app/server/models"
	"affiliate-shop/app/server/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthStatusBeforeAndAfterBootstrap(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.doJSON(t, http.MethodGet, "/auth-status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeJSON[types.AuthStatusResponse](t, rec).HasAdmin)

	ta.registerAndLogin(t)

	rec = ta.doJSON(t, http.MethodGet, "/auth-status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeJSON[types.AuthStatusResponse](t, rec).HasAdmin)
}

// 管理员账号最多只有一个：第一次注册之后注册接口永久失效
func TestRegisterIsOneShot(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionRegister,
		Username: "admin",
		Password: "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// 反复注册（包括不同用户名）都会被拒绝，行数始终为 1
	for _, username := range []string{"admin", "admin2", "other"} {
		rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
			Action:   types.AuthActionRegister,
			Username: username,
			Password: "secret",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		var count int64
		require.NoError(t, ta.app.db.Model(&models.Admin{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	}
}

func TestRegisterRequiresUsernameAndPassword(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionRegister,
		Username: "admin",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionRegister,
		Password: "secret",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	ta := newTestApp(t)
	ta.registerAndLogin(t)

	// 正确的凭据
	rec := ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionLogin,
		Username: "admin",
		Password: "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeJSON[types.LoginResponse](t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, "admin", res.Username)
	assert.NotEmpty(t, res.Token)

	// 密码错误
	rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionLogin,
		Username: "admin",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 用户不存在
	rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionLogin,
		Username: "nobody",
		Password: "secret",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangePassword(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerAndLogin(t)

	// 旧密码错误：凭据保持不变，原密码仍然可以登录
	rec := ta.doJSON(t, http.MethodPost, "/auth", token, &types.AuthRequest{
		Action:      types.AuthActionChangePassword,
		Username:    "admin",
		OldPassword: "wrong",
		NewPassword: "next",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionLogin,
		Username: "admin",
		Password: "secret",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// 用户不存在
	rec = ta.doJSON(t, http.MethodPost, "/auth", token, &types.AuthRequest{
		Action:      types.AuthActionChangePassword,
		Username:    "nobody",
		OldPassword: "secret",
		NewPassword: "next",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 正常更换
	rec = ta.doJSON(t, http.MethodPost, "/auth", token, &types.AuthRequest{
		Action:      types.AuthActionChangePassword,
		Username:    "admin",
		OldPassword: "secret",
		NewPassword: "next",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeJSON[types.SuccessResponse](t, rec).Success)

	// 旧密码失效，新密码生效
	rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionLogin,
		Username: "admin",
		Password: "secret",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionLogin,
		Username: "admin",
		Password: "next",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChangePasswordRequiresToken(t *testing.T) {
	ta := newTestApp(t)
	ta.registerAndLogin(t)

	rec := ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:      types.AuthActionChangePassword,
		Username:    "admin",
		OldPassword: "secret",
		NewPassword: "next",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInvalidAction(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action: "logout",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
