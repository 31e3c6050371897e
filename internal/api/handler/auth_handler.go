package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/api/metrics"
	"github.com/ifds/dashboard/internal/api/middleware"
	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

// AuthHandler serves the login and registration screens and the logout
// action. Credentials are forwarded to the upstream API verbatim; nothing is
// hashed or stored locally.
type AuthHandler struct {
	auth     ports.AuthAPI
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthAPI, sessions ports.SessionStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, log: log}
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username        string `form:"username" validate:"required,min=3"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
	Role            string `form:"role" validate:"required,oneof=admin manager staff"`
}

// LoginForm renders the login screen; an already-authenticated session goes
// straight to the dashboard.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if middleware.CurrentSession(c).Valid() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return renderPage(c, h.sessions, http.StatusOK, "login.html", "Login", loginForm{}, "")
}

// Login exchanges the submitted credentials upstream and establishes the
// session. On failure the form re-renders populated, with the server's error
// message when one was provided.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return renderPage(c, h.sessions, http.StatusBadRequest, "login.html", "Login", form, "invalid form submission")
	}
	if err := c.Validate(form); err != nil {
		return renderPage(c, h.sessions, http.StatusBadRequest, "login.html", "Login", form, err.Error())
	}

	token, user, err := h.auth.Login(reqCtx(c), form.Username, form.Password)
	if err != nil || token == "" || user == nil {
		h.log.Warn().Err(err).Str("username", form.Username).Msg("login failed")
		msg := upstreamMessage(err, "Login failed. Please try again.")
		return renderPage(c, h.sessions, http.StatusUnauthorized, "login.html", "Login", form, msg)
	}

	if err := h.sessions.Set(c.Response(), c.Request(), token, *user); err != nil {
		h.log.Error().Err(err).Msg("failed to persist session")
		return renderPage(c, h.sessions, http.StatusInternalServerError, "login.html", "Login", form, "Login failed. Please try again.")
	}

	metrics.SessionsEstablishedTotal.Inc()
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// RegisterForm renders the registration screen.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if middleware.CurrentSession(c).Valid() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return renderPage(c, h.sessions, http.StatusOK, "register.html", "Register", registerForm{Role: domain.RoleStaff}, "")
}

// Register validates the form locally first — a mismatch or short password
// never reaches the network — then creates the account upstream.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return renderPage(c, h.sessions, http.StatusBadRequest, "register.html", "Register", form, "invalid form submission")
	}
	if err := c.Validate(form); err != nil {
		return renderPage(c, h.sessions, http.StatusBadRequest, "register.html", "Register", form, err.Error())
	}
	if form.Password != form.ConfirmPassword {
		return renderPage(c, h.sessions, http.StatusBadRequest, "register.html", "Register", form, "Passwords do not match!")
	}
	if len(form.Password) < 8 {
		return renderPage(c, h.sessions, http.StatusBadRequest, "register.html", "Register", form, "Password must be at least 8 characters long!")
	}

	input := ports.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	}
	if err := h.auth.Register(reqCtx(c), input); err != nil {
		h.log.Warn().Err(err).Str("username", form.Username).Msg("registration failed")
		msg := upstreamMessage(err, "Registration failed. Please try again.")
		return renderPage(c, h.sessions, http.StatusBadRequest, "register.html", "Register", form, msg)
	}

	_ = h.sessions.AddFlash(c.Response(), c.Request(), domain.FlashSuccess, "Registration successful! Please login.")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Logout destroys the session — token and user removed together — and
// returns to the login screen.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c.Response(), c.Request()); err != nil {
		h.log.Error().Err(err).Msg("failed to clear session")
	}
	metrics.SessionsClearedTotal.Inc()
	return c.Redirect(http.StatusSeeOther, "/login")
}
