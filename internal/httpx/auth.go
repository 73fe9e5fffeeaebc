package httpx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleKitchen    Role = "kitchen"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleKitchen, RoleSuperAdmin:
		return true
	}
	return false
}

// Identity is who is calling and which restaurant they act for.
type Identity struct {
	UserID       int64
	Role         Role
	RestaurantID int64
}

const (
	identityKey   = "identity"
	SessionCookie = "session"
)

type claims struct {
	Role         Role  `json:"role"`
	RestaurantID int64 `json:"rid"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies the HS256 session tokens.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (a *Authenticator) Issue(id Identity) (string, error) {
	if !id.Role.Valid() {
		return "", fmt.Errorf("unknown role %q", id.Role)
	}
	if id.RestaurantID <= 0 && id.Role != RoleSuperAdmin {
		return "", errors.New("restaurant id is required")
	}
	now := a.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:         id.Role,
		RestaurantID: id.RestaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})
	return tok.SignedString(a.secret)
}

func (a *Authenticator) Parse(raw string) (Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	uid, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || !c.Role.Valid() {
		return Identity{}, fmt.Errorf("%w: malformed claims", ErrUnauthenticated)
	}
	return Identity{UserID: uid, Role: c.Role, RestaurantID: c.RestaurantID}, nil
}

// Authenticate reads the token from the Authorization header or, for
// EventSource clients that cannot set headers, the session cookie.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c.GetHeader("Authorization"))
		if raw == "" {
			raw, _ = c.Cookie(SessionCookie)
		}
		if raw == "" {
			Fail(c, ErrUnauthenticated)
			return
		}
		id, err := a.Parse(raw)
		if err != nil {
			Fail(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after Authenticate.
func RequireRole(roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			Fail(c, ErrUnauthenticated)
			return
		}
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		Fail(c, ErrForbidden)
	}
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func bearer(h string) string {
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
