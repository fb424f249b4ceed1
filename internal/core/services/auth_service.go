package services

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

const denylistKeyPrefix = "denylist:"

// IdentityTokenService exchanges identity-provider ID tokens (verified
// against the provider's JWKS endpoint) for system JWTs carrying the
// user's role. The provider owns sign-in; this service only trusts its
// tokens and gates on registered users.
type IdentityTokenService struct {
	jwksURL    string
	userRepo   ports.UserRepository
	privateKey *rsa.PrivateKey
	cache      ports.TokenCache
}

type providerClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

type providerJWKS struct {
	Keys []struct {
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func NewIdentityTokenService(
	jwksURL string,
	userRepo ports.UserRepository,
	privateKey *rsa.PrivateKey,
	cache ports.TokenCache,
) *IdentityTokenService {
	return &IdentityTokenService{
		jwksURL:    jwksURL,
		userRepo:   userRepo,
		privateKey: privateKey,
		cache:      cache,
	}
}

var _ ports.AuthService = (*IdentityTokenService)(nil)

// Login verifies the provider ID token, looks the user up by email, and
// mints a system JWT with the user's role.
func (s *IdentityTokenService) Login(ctx context.Context, idToken string) (string, error) {
	email, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", errors.New("user not registered")
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

// Logout denylists the presented token in Redis until its expiry, so the
// auth middleware rejects it even though the signature stays valid.
func (s *IdentityTokenService) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return errors.New("token has no expiry")
	}

	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, denylistKeyPrefix+tokenString, "1", ttl).Err()
}

func (s *IdentityTokenService) verifyIDToken(ctx context.Context, idToken string) (string, error) {
	keys, err := s.fetchProviderKeys(ctx)
	if err != nil {
		return "", err
	}

	token, err := jwt.ParseWithClaims(idToken, &providerClaims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := keys[kid]
		if !ok {
			return nil, errors.New("key not found")
		}
		return key, nil
	})
	if err != nil {
		return "", err
	}

	claims := token.Claims.(*providerClaims)
	if claims.Email == "" || !claims.EmailVerified {
		return "", errors.New("email not verified")
	}

	return claims.Email, nil
}

func (s *IdentityTokenService) fetchProviderKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", s.jwksURL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var jwks providerJWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range jwks.Keys {
		nBytes, _ := base64.RawURLEncoding.DecodeString(k.N)
		eBytes, _ := base64.RawURLEncoding.DecodeString(k.E)

		var e int
		for _, b := range eBytes {
			e = e<<8 + int(b)
		}

		keys[k.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: e,
		}
	}

	return keys, nil
}
