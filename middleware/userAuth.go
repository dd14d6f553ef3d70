package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"apnakam/models"
	"apnakam/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "auth:idtoken:"
	maxAuthCacheTTL = time.Hour

	ctxUserID   = "userID"
	ctxIdentity = "identity"
)

// TokenVerifier checks identity-provider ID tokens.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserEnsurer creates the local account for a first-time identity.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, identity models.Identity) (*models.User, error)
}

// FirebaseAuth verifies ID tokens and stores the caller on the gin context.
// Verified identities are cached in Redis keyed by the token hash until the
// token expires (capped at an hour), so a user record is only ensured on a
// cache miss.
type FirebaseAuth struct {
	Verifier TokenVerifier
	Users    UserEnsurer
	Cache    *redis.Client
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewFirebaseAuth(verifier TokenVerifier, users UserEnsurer, cache *redis.Client, logger *zap.Logger) *FirebaseAuth {
	return &FirebaseAuth{Verifier: verifier, Users: users, Cache: cache, Logger: logger, Now: time.Now}
}

var errNoBearer = errors.New("missing bearer token")

func bearerToken(c *gin.Context) (string, error) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errNoBearer
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tok == "" {
		return "", errNoBearer
	}
	return tok, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// identityFromToken maps verified claims to an Identity.
func identityFromToken(t *auth.Token) models.Identity {
	claim := func(k string) string {
		v, _ := t.Claims[k].(string)
		return v
	}
	return models.Identity{
		UID:   t.UID,
		Name:  claim("name"),
		Email: claim("email"),
		Phone: claim("phone_number"),
		Photo: claim("picture"),
	}
}

func (a *FirebaseAuth) cachedIdentity(ctx context.Context, key string) (*models.Identity, bool) {
	if a.Cache == nil {
		return nil, false
	}
	raw, err := a.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.Logger.Warn("Auth cache read failed, falling back to verification", zap.Error(err))
		}
		return nil, false
	}
	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.UID == "" {
		return nil, false
	}
	return &id, true
}

// authenticate resolves the bearer token to an identity, verifying and
// ensuring the user on a cache miss.
func (a *FirebaseAuth) authenticate(c *gin.Context, token string) (*models.Identity, error) {
	ctx := c.Request.Context()
	key := authCachePrefix + hashToken(token)
	if id, ok := a.cachedIdentity(ctx, key); ok {
		return id, nil
	}

	verified, err := a.Verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}
	identity := identityFromToken(verified)
	if _, err := a.Users.EnsureUser(ctx, identity); err != nil {
		return nil, err
	}

	if a.Cache != nil {
		ttl := time.Unix(verified.Expires, 0).Sub(a.Now())
		if ttl > maxAuthCacheTTL {
			ttl = maxAuthCacheTTL
		}
		if ttl > 0 {
			if b, err := json.Marshal(identity); err == nil {
				if err := a.Cache.Set(ctx, key, b, ttl).Err(); err != nil {
					a.Logger.Warn("Auth cache write failed", zap.Error(err))
				}
			}
		}
	}
	return &identity, nil
}

// Required rejects requests without a valid ID token.
func (a *FirebaseAuth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
			c.Abort()
			return
		}
		identity, err := a.authenticate(c, token)
		if err != nil {
			a.Logger.Info("ID token rejected", zap.String("ip", c.ClientIP()), zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Authentication error", "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ctxUserID, identity.UID)
		c.Set(ctxIdentity, *identity)
		c.Next()
	}
}

// Optional authenticates when a token is present and lets anonymous
// requests through. A token that is present but invalid is still rejected.
func (a *FirebaseAuth) Optional() gin.HandlerFunc {
	required := a.Required()
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// UserID returns the authenticated caller, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
