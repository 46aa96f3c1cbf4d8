package http

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

var errMissingToken = errors.New("missing bearer token")

// Claims is the payload of the bearer tokens issued by the auth provider.
type Claims struct {
	UserID string   `json:"id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Identity is the verified caller.
type Identity struct {
	UserID kernel.UUID
	Roles  []user.Role
}

func (i Identity) HasRole(role user.Role) bool {
	return slices.Contains(i.Roles, role)
}

func (i Identity) IsSelf(id kernel.UUID) bool {
	return i.UserID.IsEqual(id)
}

// NewToken signs an HS256 token. The service only verifies tokens; this is
// used by tooling and tests.
func NewToken(secret string, userID kernel.UUID, roles []user.Role, ttl time.Duration) (string, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}

	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Roles:  names,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(secret, raw string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}

	userID, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return Identity{}, fmt.Errorf("token subject: %w", err)
	}

	roles := make([]user.Role, 0, len(claims.Roles))
	for _, name := range claims.Roles {
		role, roleErr := user.ParseRole(name)
		if roleErr != nil {
			continue
		}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		roles = append(roles, user.RoleUser)
	}

	return Identity{UserID: userID, Roles: roles}, nil
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}

// Authenticate verifies the bearer token and stores the caller's Identity.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return fail(c, http.StatusUnauthorized, "Not authorized, login again")
			}

			identity, err := parseToken(secret, raw)
			if err != nil {
				return fail(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// RequireRoles lets the request through when the caller holds any of roles.
func RequireRoles(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := identityFrom(c)
			if !ok {
				return fail(c, http.StatusUnauthorized, "Not authorized, login again")
			}
			for _, role := range roles {
				if identity.HasRole(role) {
					return next(c)
				}
			}
			return fail(c, http.StatusForbidden, "Access denied")
		}
	}
}

func identityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}
