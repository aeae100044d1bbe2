package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// signingMethods is the single algorithm this service ever issues. Parsing
// is pinned to it so a token declaring any other method (including "none")
// fails before claims are looked at.
var signingMethods = []string{jwtlib.SigningMethodHS256.Alg()}

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID int64    `json:"Id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateToken mints a signed access token for the user and returns it
// together with its jti, which the caller binds to a refresh-token row.
func (s *Service) GenerateToken(userID int64, email string, roles []string) (token string, jti string, err error) {
	now := time.Now()
	jti = uuid.NewString()

	claims := Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   email,
			ID:        jti,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token, err = jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// ValidateToken fully validates a token, expiry included. Used by the
// request middleware.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, false)
}

// ParseForRefresh validates signature and algorithm but not expiry: the
// refresh flow accepts an access token past its exp claim. Everything else
// about the token must still be intact.
func (s *Service) ParseForRefresh(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, true)
}

func (s *Service) parse(tokenStr string, skipExpiry bool) (*Claims, error) {
	opts := []jwtlib.ParserOption{jwtlib.WithValidMethods(signingMethods)}
	if skipExpiry {
		opts = append(opts, jwtlib.WithoutClaimsValidation())
	}

	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
