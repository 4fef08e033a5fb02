package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aurorastore/shop-backend/internal/api/middleware"
	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// loginScript hands the verified user back to the opener window of the
// login popup and closes it, as the widget flow expects.
const loginScript = `<script>window.opener.handleTelegramLogin(%s); window.close();</script>`

type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Callback completes a Telegram widget login.
//
// @Summary      Telegram login widget callback
// @Tags         auth
// @Produce      html
// @Param        id          query  string  true   "Telegram user id"
// @Param        first_name  query  string  true   "Display name"
// @Param        username    query  string  false  "Telegram handle"
// @Param        auth_date   query  string  true   "Widget auth timestamp"
// @Param        hash        query  string  true   "Widget HMAC signature"
// @Success      200  {string}  string  "script handing the user to the opener window"
// @Failure      400  {string}  string  "signature did not verify"
// @Failure      500  {string}  string
// @Router       /auth/telegram/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	params := c.QueryParams()
	fields := make(map[string]string, len(params))
	for k, vs := range params {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}

	token, user, err := h.auth.Login(c.Request().Context(), fields)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			return c.HTML(http.StatusBadRequest, "<h1>Error: Invalid Data</h1>")
		}
		return c.HTML(http.StatusInternalServerError, "<h1>Internal Server Error</h1>")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := json.Marshal(user)
	if err != nil {
		return c.HTML(http.StatusInternalServerError, "<h1>Internal Server Error</h1>")
	}
	return c.HTML(http.StatusOK, fmt.Sprintf(loginScript, payload))
}
