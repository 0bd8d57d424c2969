package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/account-service/internal/models"
	"github.com/pribylovaa/account-service/internal/storage"
)

func TestIntegration_SaveRole_And_RoleByID_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	r := seedRole(t, st, "admin")

	got, err := st.RoleByID(context.Background(), r.ID)
	require.NoError(t, err)
	require.Equal(t, r.ID, got.ID)
	require.Equal(t, "admin", got.Name)
}

func TestIntegration_SaveRole_UniqueName_Violation(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	seedRole(t, st, "admin")

	err := st.SaveRole(context.Background(), &models.Role{ID: uuid.New(), Name: "admin"})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_Roles_OrderedByName(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	seedRole(t, st, "editor")
	seedRole(t, st, "admin")
	seedRole(t, st, "viewer")

	roles, err := st.Roles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)
	require.Equal(t, "admin", roles[0].Name)
	require.Equal(t, "editor", roles[1].Name)
	require.Equal(t, "viewer", roles[2].Name)
}

func TestIntegration_UpdateRole_OKAndErrors(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	r := seedRole(t, st, "admin")
	seedRole(t, st, "editor")

	require.NoError(t, st.UpdateRole(context.Background(), &models.Role{ID: r.ID, Name: "superadmin"}))

	got, err := st.RoleByID(context.Background(), r.ID)
	require.NoError(t, err)
	require.Equal(t, "superadmin", got.Name)

	// Имя занято другой ролью.
	err = st.UpdateRole(context.Background(), &models.Role{ID: r.ID, Name: "editor"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	// Роль не существует.
	err = st.UpdateRole(context.Background(), &models.Role{ID: uuid.New(), Name: "ghost"})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_DeleteRole_CascadesAssignments(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := seedUser(t, st, "user@example.com")
	r := seedRole(t, st, "admin")

	require.NoError(t, st.AssignRole(context.Background(), r.ID, []uuid.UUID{u.ID}))

	got, err := st.UserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)

	require.NoError(t, st.DeleteRole(context.Background(), r.ID))

	// Связь снята каскадом, пользователь остался.
	got, err = st.UserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Empty(t, got.Roles)

	require.ErrorIs(t, st.DeleteRole(context.Background(), r.ID), storage.ErrNotFound)
}

func TestIntegration_AssignRole_IdempotentAndValidated(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	a := seedUser(t, st, "a@example.com")
	b := seedUser(t, st, "b@example.com")
	r := seedRole(t, st, "admin")

	require.NoError(t, st.AssignRole(context.Background(), r.ID, []uuid.UUID{a.ID, b.ID}))
	// Повторное назначение не дублирует связи.
	require.NoError(t, st.AssignRole(context.Background(), r.ID, []uuid.UUID{a.ID, b.ID}))

	got, err := st.UserByID(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)

	// Роль не существует.
	err = st.AssignRole(context.Background(), uuid.New(), []uuid.UUID{a.ID})
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Один из пользователей не существует — назначение целиком отклоняется.
	err = st.AssignRole(context.Background(), r.ID, []uuid.UUID{a.ID, uuid.New()})
	require.ErrorIs(t, err, storage.ErrNotFound)
}
