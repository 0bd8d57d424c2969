package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/mocks"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{
		ID:     uuid.New(),
		Email:  "user@example.com",
		Status: models.StatusActive,
		Roles:  []models.Role{{ID: uuid.New(), Name: "admin"}},
	}

	at, err := svc.generateAccessToken(ctx, user, time.Now().UTC())
	require.NoError(t, err)

	uid, roles, err := svc.validateAccessToken(ctx, at)
	require.NoError(t, err)
	require.Equal(t, user.ID, uid)
	require.Equal(t, []string{"admin"}, roles)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	rt, err := svc.generateRefreshToken(ctx, userID, time.Now().UTC())
	require.NoError(t, err)

	uid, err := svc.validateRefreshToken(ctx, rt)
	require.NoError(t, err)
	require.Equal(t, userID, uid)
}

func TestRecoveryToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	rt, err := svc.generateRecoveryToken(ctx, userID, time.Now().UTC())
	require.NoError(t, err)

	uid, err := svc.validateRecoveryToken(ctx, rt)
	require.NoError(t, err)
	require.Equal(t, userID, uid)
}

// Токены каждого типа принимаются только своим валидатором.
func TestTokens_PurposeAndSecretIsolation(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "user@example.com", Status: models.StatusActive}
	now := time.Now().UTC()

	at, err := svc.generateAccessToken(ctx, user, now)
	require.NoError(t, err)
	rt, err := svc.generateRefreshToken(ctx, user.ID, now)
	require.NoError(t, err)
	rec, err := svc.generateRecoveryToken(ctx, user.ID, now)
	require.NoError(t, err)

	// Access не проходит как refresh (другой секрет) и как recovery (другой purpose).
	_, err = svc.validateRefreshToken(ctx, at)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.validateRecoveryToken(ctx, at)
	require.ErrorIs(t, err, ErrInvalidToken)

	// Refresh не проходит как access и как recovery.
	_, _, err = svc.validateAccessToken(ctx, rt)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.validateRecoveryToken(ctx, rt)
	require.ErrorIs(t, err, ErrInvalidToken)

	// Recovery подписан тем же секретом, что и access, но несёт другой
	// purpose-клейм и access-валидатором отвергается.
	_, _, err = svc.validateAccessToken(ctx, rec)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.validateRefreshToken(ctx, rec)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Токен, подписанный другим экземпляром с другими секретами, не принимается.
func TestTokens_ForeignSecretRejected(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	otherCfg := testCfg()
	otherCfg.AccessSecret = "other-access-secret"
	otherCfg.RefreshSecret = "other-refresh-secret"
	other := New(mocks.NewMockStorage(gomock.NewController(t)), otherCfg)

	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "user@example.com", Status: models.StatusActive}
	now := time.Now().UTC()

	at, err := other.generateAccessToken(ctx, user, now)
	require.NoError(t, err)
	rt, err := other.generateRefreshToken(ctx, user.ID, now)
	require.NoError(t, err)

	_, _, err = svc.validateAccessToken(ctx, at)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.validateRefreshToken(ctx, rt)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_GarbageRejected(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, _, err := svc.validateAccessToken(ctx, tok)
		require.ErrorIs(t, err, ErrInvalidToken)

		_, err = svc.validateRefreshToken(ctx, tok)
		require.ErrorIs(t, err, ErrInvalidToken)

		_, err = svc.validateRecoveryToken(ctx, tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
