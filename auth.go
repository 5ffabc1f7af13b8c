package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	uuid "github.com/satori/go.uuid"
)

const tokenTTL = 60 * time.Minute

type demoUser struct {
	Password string
	Role     string
}

// Demo-only user table, same accounts the frontend knows about.
var users = map[string]demoUser{
	"admin":   {Password: "password123", Role: "admin"},
	"officer": {Password: "beatpass", Role: "viewer"},
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the credentials against the demo user table and hands out a
// short-lived HS256 bearer token.
func (a *API) Login(c echo.Context) error {
	req := loginRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and password required"})
	}

	user, ok := users[req.Username]
	if !ok || user.Password != req.Password {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
	}

	token, err := a.createAccessToken(req.Username, user.Role)
	if err != nil {
		a.log.Error().Err(err).Msg("signing access token")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not issue token"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (a *API) createAccessToken(username, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"jti":  uuid.NewV4().String(),
		"exp":  jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.JwtSecret))
}

// requireAuth guards a route behind a bearer token issued by Login. The
// subject must still be a known user.
func (a *API) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(a.cfg.JwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}
		sub, _ := claims["sub"].(string)
		if _, known := users[sub]; sub == "" || !known {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}

		c.Set("username", sub)
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		return next(c)
	}
}
