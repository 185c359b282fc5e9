package service

import (
	"context"
	"testing"

	"flowershop-api/internal/apperror"
	"flowershop-api/internal/dto"
	"flowershop-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(newTestDB(t)), testAuthCfg)
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Daisy Bloom",
		Email:    "daisy@example.com",
		Password: "s3cret!",
		Address:  "1 Flower St",
		Gender:   "female",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.IsAdmin)

	login, err := svc.Login(ctx, "daisy@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, login.ID)
	assert.NotEmpty(t, login.Token)

	_, err = svc.Login(ctx, "daisy@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret!")
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.c"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "password")

	_, err = svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	// same email twice
	_, err = svc.Register(ctx, registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	name := "Daisy B."
	image := "data:image/png;base64,xyz"
	user, err := svc.UpdateProfile(ctx, resp.ID, &dto.UpdateProfileRequest{
		Name:         &name,
		ProfileImage: &image,
	})
	require.NoError(t, err)
	assert.Equal(t, "Daisy B.", user.Name)
	assert.Equal(t, image, user.ProfileImage)

	bad := "http://example.com/pic.png"
	_, err = svc.UpdateProfile(ctx, resp.ID, &dto.UpdateProfileRequest{ProfileImage: &bad})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.UpdateProfile(ctx, "no-such-user", &dto.UpdateProfileRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSetRoleAndList(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	user, err := svc.SetRole(ctx, resp.ID, true)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	users, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = svc.SetRole(ctx, "no-such-user", true)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, resp.ID))

	_, err = svc.GetProfile(ctx, resp.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = svc.Delete(ctx, resp.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
