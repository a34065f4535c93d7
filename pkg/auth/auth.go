package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/play2earn/backend/pkg/permission"
)

const (
	CookieName = "token"

	RoleUser  = 1
	RoleAdmin = 2

	localsClaims = "auth.claims"
)

// RoleLookup returns the roles a user currently holds.
type RoleLookup func(ctx context.Context, userID string) ([]int, error)

type Config struct {
	JwtSecretKey        string
	TokenTTL            time.Duration
	Sessions            SessionStore
	EndpointPermissions permission.Table
	CookieSecure        bool
	// Roles, when set, overrides the roles carried by the token in Authorize.
	Roles RoleLookup
}

type Auth struct {
	JwtSecretKey        []byte
	TokenTTL            time.Duration
	Sessions            SessionStore
	EndpointPermissions permission.Table
	CookieSecure        bool
	Roles               RoleLookup

	now func() time.Time
}

func New(config *Config) *Auth {
	sessions := config.Sessions
	if sessions == nil {
		sessions = NewMemorySessions()
	}
	return &Auth{
		JwtSecretKey:        []byte(config.JwtSecretKey),
		TokenTTL:            config.TokenTTL,
		Sessions:            sessions,
		EndpointPermissions: config.EndpointPermissions,
		CookieSecure:        config.CookieSecure,
		Roles:               config.Roles,
		now:                 time.Now,
	}
}

// CreateAccessToken signs a token for id and records its session.
func (a *Auth) CreateAccessToken(ctx context.Context, id Identity, userAgent string) (string, error) {
	now := a.now()
	token, err := CreateJWT(a.JwtSecretKey, newClaims(id, now, a.TokenTTL))
	if err != nil {
		return "", err
	}

	signature, err := Signature(token)
	if err != nil {
		return "", err
	}
	session := SessionData{
		UserID:    id.UserID,
		UserAgent: userAgent,
		CreatedAt: now.Unix(),
	}
	if err := a.Sessions.Save(ctx, sessionKey(id.UserID, signature), session, a.TokenTTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// TokenVerify validates token statelessly and returns its typed claims.
func (a *Auth) TokenVerify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	claims := &Claims{}
	if err := VerifyJWT(a.JwtSecretKey, token, claims, a.now); err != nil {
		return nil, err
	}
	return claims, nil
}

// DecodeClaims validates token statelessly and returns every claim it carries.
func (a *Auth) DecodeClaims(token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	claims := jwt.MapClaims{}
	if err := VerifyJWT(a.JwtSecretKey, token, claims, a.now); err != nil {
		return nil, err
	}
	return claims, nil
}

// RevokeAccessToken deletes the session behind token. The token itself stays
// cryptographically valid until it expires but no longer passes Middleware.
func (a *Auth) RevokeAccessToken(ctx context.Context, token string) error {
	claims, err := a.TokenVerify(token)
	if err != nil {
		return err
	}
	signature, err := Signature(token)
	if err != nil {
		return err
	}
	err = a.Sessions.Delete(ctx, sessionKey(claims.UserID, signature))
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

// SetTokenCookie attaches token to the response as the session cookie.
func (a *Auth) SetTokenCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  a.now().Add(a.TokenTTL),
		HTTPOnly: true,
		Secure:   a.CookieSecure,
		SameSite: a.sameSite(),
	})
}

// ClearTokenCookie expires the session cookie.
func (a *Auth) ClearTokenCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   a.CookieSecure,
		SameSite: a.sameSite(),
	})
}

// cross-site frontends only receive the cookie with SameSite=None, which
// browsers reject unless it is also Secure.
func (a *Auth) sameSite() string {
	if a.CookieSecure {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteLaxMode
}

// Check reports whether the request's token cookie is valid. It does not
// consult the session store.
func (a *Auth) Check(ctx *fiber.Ctx) error {
	var response Response

	token := ctx.Cookies(CookieName)
	if token == "" {
		response.Message = "No token, authentication failed"
		return response.HttpResponse(ctx, fiber.StatusUnauthorized)
	}

	claims, err := a.DecodeClaims(token)
	if err != nil {
		response.Message = "Invalid or expired token"
		return response.HttpResponse(ctx, fiber.StatusUnauthorized)
	}

	response.Message = "Authenticated"
	response.User = claims
	return response.HttpResponse(ctx, fiber.StatusOK)
}

// Middleware authenticates the request and requires a live session.
func (a *Auth) Middleware(ctx *fiber.Ctx) error {
	var response Response

	// 1. Token from cookie, falling back to the Authorization header
	token := RequestToken(ctx)
	if token == "" {
		response.Message = "No token, authentication failed"
		return response.HttpResponse(ctx, fiber.StatusUnauthorized)
	}

	// 2. Signature and expiry
	claims, err := a.TokenVerify(token)
	if err != nil {
		response.Message = "Invalid or expired token"
		return response.HttpResponse(ctx, fiber.StatusUnauthorized)
	}

	// 3. Session
	signature, _ := Signature(token)
	if _, err := a.Sessions.Get(ctx.UserContext(), sessionKey(claims.UserID, signature)); err != nil {
		response.Message = "session not found or invalid"
		return response.HttpResponse(ctx, fiber.StatusUnauthorized)
	}

	ctx.Locals(localsClaims, claims)
	return ctx.Next()
}

// Authorize checks the authenticated user's roles against the endpoint
// permission table. It must run after Middleware. Roles come from the
// RoleLookup when one is configured, so a role change applies to live tokens.
func (a *Auth) Authorize(ctx *fiber.Ctx) error {
	var response Response

	claims, ok := ClaimsFrom(ctx)
	if !ok {
		response.Message = "No token, authentication failed"
		return response.HttpResponse(ctx, fiber.StatusUnauthorized)
	}

	if _, matched := a.EndpointPermissions.Match(ctx.Path()); !matched {
		response.Message = "access denied: endpoint not recognized"
		return response.HttpResponse(ctx, fiber.StatusForbidden)
	}

	roles := claims.Roles
	if a.Roles != nil {
		current, err := a.Roles(ctx.UserContext(), claims.UserID)
		if err != nil {
			response.Message = "access denied"
			return response.HttpResponse(ctx, fiber.StatusForbidden)
		}
		roles = current
	}
	if !a.EndpointPermissions.Allows(ctx.Path(), roles) {
		response.Message = "access denied"
		return response.HttpResponse(ctx, fiber.StatusForbidden)
	}

	return ctx.Next()
}

// RequestToken returns the session token carried by the request.
func RequestToken(ctx *fiber.Ctx) string {
	if token := ctx.Cookies(CookieName); token != "" {
		return token
	}
	header := ctx.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(ctx *fiber.Ctx) (*Claims, bool) {
	claims, ok := ctx.Locals(localsClaims).(*Claims)
	return claims, ok
}
