package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todoapp/internal/domain"
	jwtsvc "todoapp/internal/pkg/jwt"
	"todoapp/internal/repository"
)

// refreshTokenRandomLen is the number of random characters prepended to the
// uuid suffix of every refresh token. 35 alphanumerics plus a uuid is far
// beyond enumeration range.
const refreshTokenRandomLen = 35

const alphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

type tokenService interface {
	GenerateToken(userID int64, email string, roles []string) (token string, jti string, err error)
	ParseForRefresh(tokenStr string) (*jwtsvc.Claims, error)
}

// Service owns the token lifecycle: minting access/refresh pairs and the
// verification pipeline that rotates them.
type Service struct {
	users         UserRepositoryInterface
	refreshTokens RefreshTokenRepositoryInterface
	tokens        tokenService
	refreshTTL    time.Duration
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepositoryInterface,
	refreshTokens RefreshTokenRepositoryInterface,
	tokens tokenService,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		tokens:        tokens,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Races with a concurrent registration land on the unique index.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, ErrEmailAlreadyExists
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, pair, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, pair, nil
}

// Refresh exchanges a presented access+refresh pair for a brand-new one.
//
// The gates run in order and short-circuit; nothing is written until every
// read-only gate has passed. The access token may be live or expired, since
// clients are allowed to rotate before expiry, but its signature and
// algorithm must check out, and its jti must match the ledger row the
// refresh token maps to.
func (s *Service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseForRefresh(accessToken)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	stored, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("refresh token lookup: %w", err)
	}

	if stored.IsExpired(time.Now()) {
		return nil, ErrTokenExpired
	}
	if stored.IsUsed {
		return nil, ErrTokenUsed
	}
	if stored.IsRevoked {
		return nil, ErrTokenRevoked
	}
	if stored.JwtID != claims.ID {
		return nil, ErrTokenMismatch
	}

	// Conditional write: of two concurrent redemptions only one can flip
	// is_used, the loser sees the same rejection as a replay.
	ok, err := s.refreshTokens.MarkUsed(ctx, stored.ID)
	if err != nil {
		return nil, fmt.Errorf("mark refresh token used: %w", err)
	}
	if !ok {
		return nil, ErrTokenUsed
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("load token owner: %w", err)
	}

	return s.issueTokenPair(ctx, user)
}

// Revoke is the administrative path: it kills a single refresh token.
// Already-revoked tokens revoke idempotently.
func (s *Service) Revoke(ctx context.Context, refreshToken string) error {
	ok, err := s.refreshTokens.RevokeByToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	if ok {
		return nil
	}

	if _, err := s.refreshTokens.GetByToken(ctx, refreshToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("refresh token lookup: %w", err)
	}
	return nil
}

// issueTokenPair mints an access token and the refresh-token ledger row
// bound to it via the jti claim. One insert per call; insert failure
// propagates and no pair is returned.
func (s *Service) issueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, jti, err := s.tokens.GenerateToken(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return nil, err
	}

	random, err := randomAlphanumeric(refreshTokenRandomLen)
	if err != nil {
		return nil, err
	}
	refreshToken := random + uuid.NewString()

	now := time.Now()
	record := &domain.RefreshToken{
		JwtID:     jti,
		Token:     refreshToken,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.refreshTokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func randomAlphanumeric(n int) (string, error) {
	max := big.NewInt(int64(len(alphanumerics)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphanumerics[idx.Int64()]
	}
	return string(b), nil
}
