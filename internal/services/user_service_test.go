package services

import (
	"context"
	"errors"
	"testing"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	service := NewUserService(setupTestDB(t))
	ctx := context.Background()

	user := &models.User{Email: "chef@contoso.com", Name: "Chef", Password: "margherita"}
	require.NoError(t, service.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "margherita", user.Password)

	stored, err := service.GetUserByEmail(ctx, "chef@contoso.com")
	require.NoError(t, err)
	assert.Equal(t, "user", stored.Role)
	assert.True(t, stored.CheckPassword("margherita"))

	byID, err := service.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chef", byID.Name)

	err = service.CreateUser(ctx, &models.User{Email: "chef@contoso.com", Password: "other"})
	assert.True(t, errors.Is(err, ErrUserExists), "got %v", err)

	_, err = service.GetUserByEmail(ctx, "nobody@contoso.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClientService(t *testing.T) {
	service := NewClientService(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, service.CreateClient(ctx, &models.OAuthClient{ID: "kitchen-display", Secret: "hash", Name: "Kitchen", UserID: 1}))
	require.NoError(t, service.CreateClient(ctx, &models.OAuthClient{ID: "menu-board", Secret: "hash", Name: "Menu", UserID: 2}))

	clients, err := service.GetClientsByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "kitchen-display", clients[0].ID)

	client, err := service.GetClientByID(ctx, "menu-board")
	require.NoError(t, err)
	assert.Equal(t, uint(2), client.UserID)

	err = service.DeleteClient(ctx, "menu-board", 1)
	assert.True(t, errors.Is(err, ErrNotFound), "other users cannot delete the client")

	require.NoError(t, service.DeleteClient(ctx, "menu-board", 2))
	_, err = service.GetClientByID(ctx, "menu-board")
	assert.True(t, errors.Is(err, ErrNotFound))
}
