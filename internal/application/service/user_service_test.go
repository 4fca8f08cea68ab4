package service

import (
	"context"
	"testing"

	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPasswordAndActivates(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username:    "jane",
		Password:    "secret123",
		FullName:    "Jane Doe",
		Email:       "jane@pos.local",
		Role:        "attendant",
		Permissions: []string{entity.PermissionEditPrices},
	})
	require.NoError(t, err)

	assert.True(t, user.Active)
	assert.Equal(t, enum.UserRoleAttendant, user.Role)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, utils.CheckPasswordHash("secret123", user.Password))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(&entity.User{
		ID:       uuid.New(),
		Username: "jane",
		Role:     enum.UserRoleAttendant,
	}))

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username: "jane",
		Password: "secret123",
		FullName: "Another Jane",
		Role:     "attendant",
	})
	assert.Error(t, err)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		Username: "jane",
		Password: "secret123",
		FullName: "Jane Doe",
		Role:     "manager",
	})
	assert.Error(t, err)
}

func TestUpdateUserChangesRoleAndPermissions(t *testing.T) {
	existing := &entity.User{
		ID:       uuid.New(),
		Username: "jane",
		FullName: "Jane Doe",
		Role:     enum.UserRoleAttendant,
		Active:   true,
	}
	svc := NewUserService(newFakeUserRepo(existing))

	role := "admin"
	perms := []string{entity.PermissionVoidSales}
	user, err := svc.UpdateUser(context.Background(), existing.ID, &UpdateUserInput{
		Role:        &role,
		Permissions: &perms,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.UserRoleAdmin, user.Role)
	assert.Equal(t, perms, user.Permissions)
}

func TestDeleteUserRefusesOwnAccount(t *testing.T) {
	admin := &entity.User{
		ID:       uuid.New(),
		Username: "admin",
		Role:     enum.UserRoleAdmin,
		Active:   true,
	}
	svc := NewUserService(newFakeUserRepo(admin))

	err := svc.DeleteUser(context.Background(), admin.ID, admin.ID)
	assert.Error(t, err)
}

func TestDeleteUserRemovesOtherAccount(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Username: "admin", Role: enum.UserRoleAdmin}
	other := &entity.User{ID: uuid.New(), Username: "jane", Role: enum.UserRoleAttendant}
	repo := newFakeUserRepo(admin, other)
	svc := NewUserService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), other.ID, admin.ID))

	deleted, err := repo.GetByID(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}
