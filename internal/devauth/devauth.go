// Package devauth mounts the development mock of /api/auth/login and
// /api/auth/me. Login takes {email,password}, checks them against the
// configured dev credentials and answers {id,email,name} with an HttpOnly
// JWT cookie; me verifies that cookie. Its contract differs from the
// backend's username/token login, so the auth gateway cannot be pointed at it.
package devauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"docportal/internal/config"
)

const (
	cookieName = "token"
	tokenTTL   = 24 * time.Hour
)

// Claims is the payload of a dev token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Credentials is the login body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is returned by both endpoints.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

var errInvalidToken = errors.New("invalid token")

// Handler issues and verifies HS256 tokens for a single configured account.
type Handler struct {
	cfg    config.DevAuthConfig
	secure bool
	log    *zap.Logger
	now    func() time.Time
}

// NewHandler builds the handler. secure marks the cookie Secure (production).
func NewHandler(cfg config.DevAuthConfig, secure bool, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, secure: secure, log: log, now: time.Now}
}

// Register mounts POST /api/auth/login and GET /api/auth/me.
func (h *Handler) Register(r fiber.Router) {
	g := r.Group("/api/auth")
	g.Post("/login", h.Login)
	g.Get("/me", h.Me)
}

// Login checks the dev credentials and sets an HttpOnly token cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var in Credentials
	if err := c.BodyParser(&in); err != nil {
		h.log.Error("devauth_login_parse_failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	if in.Email != h.cfg.Email || in.Password != h.cfg.Password {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := h.Sign(in.Email)
	if err != nil {
		h.log.Error("devauth_sign_failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(profile(in.Email))
}

// Me verifies the token cookie and returns the profile it names.
func (h *Handler) Me(c *fiber.Ctx) error {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	claims, err := h.Verify(raw)
	if err != nil {
		h.log.Debug("devauth_token_rejected", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	return c.JSON(profile(claims.Email))
}

// Sign issues a token for email that expires in one day.
func (h *Handler) Sign(email string) (string, error) {
	now := h.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
}

// Verify parses a token signed with the configured secret.
func (h *Handler) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(h.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(h.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

func profile(email string) Profile {
	return Profile{ID: "1", Email: email, Name: "Test User"}
}
