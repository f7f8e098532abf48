package types

// 认证动作，对应 AuthRequest.Action
const (
	AuthActionRegister       = "register"
	AuthActionLogin          = "login"
	AuthActionChangePassword = "change_password"
)

type AuthRequest struct {
	Action      string `json:"action"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type AuthStatusResponse struct {
	HasAdmin bool `json:"hasAdmin"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
