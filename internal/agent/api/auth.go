// Методы клиента для эндпоинтов аутентификации: регистрация, вход,
// обновление токенов и профиль текущего пользователя.
package api

// RegisterRequest — тело запроса регистрации (/api/auth/register).
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse — ответ при успешной регистрации.
//
// ConfirmToken в dev-окружении приходит прямо в ответе, чтобы
// подтвердить email без почты.
type RegisterResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ConfirmToken string `json:"confirm_token"`
}

// LoginRequest — тело запроса входа (/api/auth/login).
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair — пара токенов, возвращаемая login и refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest — тело запроса обновления токенов (/api/auth/refresh).
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// MeResponse — профиль текущего пользователя (/api/users/me/).
type MeResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar,omitempty"`
	Confirmed bool    `json:"confirmed"`
}

// Register регистрирует нового пользователя.
func (c *Client) Register(username, email, password string) (RegisterResponse, error) {
	var resp RegisterResponse
	err := c.PostJSON("/api/auth/register",
		RegisterRequest{Username: username, Email: email, Password: password}, &resp, "")
	return resp, err
}

// Login выполняет вход и возвращает пару токенов.
func (c *Client) Login(email, password string) (TokenPair, error) {
	var resp TokenPair
	err := c.PostJSON("/api/auth/login", LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Refresh обновляет пару токенов по refresh-токену.
func (c *Client) Refresh(refreshToken string) (TokenPair, error) {
	var resp TokenPair
	err := c.PostJSON("/api/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &resp, "")
	return resp, err
}

// ConfirmEmail подтверждает email по токену из письма.
func (c *Client) ConfirmEmail(token string) error {
	return c.GetJSON("/api/auth/confirm/"+token, nil, "")
}

// Me возвращает профиль текущего пользователя.
func (c *Client) Me(accessToken string) (MeResponse, error) {
	var resp MeResponse
	err := c.GetJSON("/api/users/me/", &resp, accessToken)
	return resp, err
}
