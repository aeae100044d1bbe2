package rbac

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todoapp/internal/database"
	"todoapp/internal/domain"
	"todoapp/internal/repository"
)

type stubRevoker struct {
	revoked []string
}

func (s *stubRevoker) Revoke(ctx context.Context, refreshToken string) error {
	s.revoked = append(s.revoked, refreshToken)
	return nil
}

func setupService(t *testing.T) (*Service, *gorm.DB, *stubRevoker) {
	t.Helper()

	db, err := database.Connect(fmt.Sprintf("file:rbac_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	revoker := &stubRevoker{}
	svc := NewService(repository.NewUserRepository(db), repository.NewRoleRepository(db), revoker)
	return svc, db, revoker
}

func seedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()

	user := &domain.User{Email: email, Username: "u", PasswordHash: "x"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestService_CreateRole_Conflict(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, "editor")
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)

	_, err = svc.CreateRole(ctx, "editor")
	assert.ErrorIs(t, err, ErrRoleExists)
}

func TestService_AssignAndRemoveRole(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	seedUser(t, db, "member@example.com")
	_, err := svc.CreateRole(ctx, "editor")
	require.NoError(t, err)

	require.NoError(t, svc.AssignRole(ctx, "member@example.com", "editor"))

	roles, err := svc.UserRoles(ctx, "member@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"editor"}, roles)

	require.NoError(t, svc.RemoveRole(ctx, "member@example.com", "editor"))

	roles, err = svc.UserRoles(ctx, "member@example.com")
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestService_AssignRole_UnknownUserOrRole(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AssignRole(ctx, "nobody@example.com", "editor"), ErrUserNotFound)

	seedUser(t, db, "member@example.com")
	assert.ErrorIs(t, svc.AssignRole(ctx, "member@example.com", "ghost"), ErrRoleNotFound)
}

func TestService_Claims(t *testing.T) {
	svc, db, _ := setupService(t)
	ctx := context.Background()

	seedUser(t, db, "member@example.com")

	claim, err := svc.AddClaim(ctx, AddClaimRequest{
		Email: "member@example.com",
		Name:  "department",
		Value: "billing",
	})
	require.NoError(t, err)
	assert.Equal(t, "department", claim.Name)

	claims, err := svc.UserClaims(ctx, "member@example.com")
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "billing", claims[0].Value)
}

func TestService_RevokeToken_Delegates(t *testing.T) {
	svc, _, revoker := setupService(t)

	require.NoError(t, svc.RevokeToken(context.Background(), "some-refresh-token"))
	assert.Equal(t, []string{"some-refresh-token"}, revoker.revoked)
}
