package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"affiliate-shop/app/server/inits"
	"affiliate-shop/app/server/jwt"
	"affiliate-shop/app/server/media"
	"affiliate-shop/app/server/types"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	app       *App
	e         *echo.Echo
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	l := zap.NewNop()

	// 每个测试一个独立的内存数据库
	dbName := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := inits.DB(fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName))
	require.NoError(t, err)

	uploadDir := t.TempDir()
	m, err := media.New(l, uploadDir)
	require.NoError(t, err)

	j, err := jwt.New("test-signature-key")
	require.NoError(t, err)

	app := NewApp(l, db, nil, j, m)
	e := echo.New()
	RegisterRoutes(e, app)

	return &testApp{
		app:       app,
		e:         e,
		uploadDir: uploadDir,
	}
}

func (ta *testApp) doJSON(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ta.e.ServeHTTP(rec, req)
	return rec
}

type testFile struct {
	field   string
	name    string
	content []byte
}

func (ta *testApp) doMultipart(t *testing.T, method, target, token string, fields map[string]string, file *testFile) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(file.field, file.name)
		require.NoError(t, err)
		_, err = fw.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ta.e.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin 初始化管理员并返回会话 token
func (ta *testApp) registerAndLogin(t *testing.T) string {
	t.Helper()

	rec := ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionRegister,
		Username: "admin",
		Password: "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ta.doJSON(t, http.MethodPost, "/auth", "", &types.AuthRequest{
		Action:   types.AuthActionLogin,
		Username: "admin",
		Password: "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)

	return res.Token
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
