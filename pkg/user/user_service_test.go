package user

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	users     map[string]*entities.User
	recipes   map[string]int64
	bookmarks map[string]int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:     map[string]*entities.User{},
		recipes:   map[string]int64{},
		bookmarks: map[string]int64{},
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	cp := *user
	f.users[user.ID.String()] = &cp
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepository) GetOrCreateByUsername(_ context.Context, user *entities.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			*user = *u
			return nil
		}
	}
	cp := *user
	f.users[user.ID.String()] = &cp
	return nil
}

func (f *fakeUserRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepository) IsUsernameTaken(_ context.Context, username string, excludeID string) (bool, error) {
	for id, u := range f.users {
		if u.Username == username && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) IsEmailTaken(_ context.Context, email string, excludeID string) (bool, error) {
	for id, u := range f.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	cp := *user
	f.users[user.ID.String()] = &cp
	return nil
}

func (f *fakeUserRepository) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) CountRecipes(_ context.Context, userID string) (int64, error) {
	return f.recipes[userID], nil
}

func (f *fakeUserRepository) CountBookmarks(_ context.Context, userID string) (int64, error) {
	return f.bookmarks[userID], nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) UploadFile(_ context.Context, fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName + ".png"
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeStorage) UpdateFile(_ context.Context, objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	f.uploaded = append(f.uploaded, objectKey)
	return objectKey, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	const prefix = "https://cdn.test/"
	if len(link) > len(prefix) && link[:len(prefix)] == prefix {
		return link[len(prefix):]
	}
	return ""
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) SendMail(toEmail string, _ string, _ string) error {
	f.sent = append(f.sent, toEmail)
	return nil
}

type fixture struct {
	repo    *fakeUserRepository
	s3      *fakeStorage
	mailer  *fakeMailer
	jwt     jwt.JWTService
	service *userService
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newFakeUserRepository(),
		s3:     &fakeStorage{},
		mailer: &fakeMailer{},
		jwt:    jwt.NewJWTService("secret", time.Hour, 24*time.Hour),
	}
	f.service = NewUserService(f.repo, f.jwt, f.s3, f.mailer, "", time.UTC).(*userService)
	f.service.now = func() time.Time { return time.Date(2024, 3, 9, 22, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) register(t *testing.T, username, email, password string) domain.RegisterResponse {
	t.Helper()
	res, err := f.service.Register(context.Background(), domain.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return res
}

func TestRegister(t *testing.T) {
	f := newFixture()

	res := f.register(t, "chef", "Chef@Example.COM", "s3cret")

	assert.Equal(t, "chef", res.Username)
	assert.Equal(t, "chef@example.com", res.Email)
	stored := f.repo.users[res.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.Equal(t, "2024-03-09", stored.RegDate.Format(domain.DateFormat))
	assert.Equal(t, []string{"chef@example.com"}, f.mailer.sent)
}

func TestRegister_Duplicates(t *testing.T) {
	f := newFixture()
	f.register(t, "chef", "chef@example.com", "s3cret")

	_, err := f.service.Register(context.Background(), domain.RegisterRequest{Username: "chef", Email: "other@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.service.Register(context.Background(), domain.RegisterRequest{Username: "other", Email: "CHEF@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegister_UsesConfiguredTimezone(t *testing.T) {
	f := newFixture()
	tokyo := time.FixedZone("JST", 9*60*60)
	f.service.location = tokyo

	res := f.register(t, "chef", "chef@example.com", "s3cret")

	assert.Equal(t, "2024-03-10", f.repo.users[res.ID].RegDate.Format(domain.DateFormat))
}

func TestLogin(t *testing.T) {
	f := newFixture()
	reg := f.register(t, "chef", "chef@example.com", "s3cret")
	f.repo.recipes[reg.ID] = 2
	f.repo.bookmarks[reg.ID] = 5

	res, err := f.service.Login(context.Background(), domain.LoginRequest{Email: "CHEF@example.com", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "chef", res.Username)
	assert.Equal(t, "2024-03-09", res.RegDate)
	assert.Equal(t, int64(2), res.RecipeCount)
	assert.Equal(t, int64(5), res.BookmarkCount)

	id, _, err := f.jwt.GetUserIDByToken(res.Access, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, id)
	_, _, err = f.jwt.GetUserIDByToken(res.Refresh, domain.TokenTypeRefresh)
	assert.NoError(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture()
	f.register(t, "chef", "chef@example.com", "s3cret")

	_, err := f.service.Login(context.Background(), domain.LoginRequest{Email: "chef@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.service.Login(context.Background(), domain.LoginRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture()
	reg := f.register(t, "chef", "chef@example.com", "s3cret")
	login, err := f.service.Login(context.Background(), domain.LoginRequest{Email: "chef@example.com", Password: "s3cret"})
	require.NoError(t, err)

	res, err := f.service.RefreshToken(context.Background(), domain.RefreshTokenRequest{Refresh: login.Refresh})
	require.NoError(t, err)
	id, _, err := f.jwt.GetUserIDByToken(res.Access, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, id)

	_, err = f.service.RefreshToken(context.Background(), domain.RefreshTokenRequest{Refresh: login.Access})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	delete(f.repo.users, reg.ID)
	_, err = f.service.RefreshToken(context.Background(), domain.RefreshTokenRequest{Refresh: login.Refresh})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	reg := f.register(t, "chef", "chef@example.com", "s3cret")
	f.register(t, "baker", "baker@example.com", "s3cret")

	t.Run("wrong old password", func(t *testing.T) {
		name := "cook"
		_, err := f.service.UpdateUser(context.Background(), domain.UpdateUserRequest{OldPassword: "nope", Username: &name}, reg.ID)
		assert.ErrorIs(t, err, domain.ErrIncorrectOldPassword)
	})

	t.Run("username taken by someone else", func(t *testing.T) {
		name := "baker"
		_, err := f.service.UpdateUser(context.Background(), domain.UpdateUserRequest{OldPassword: "s3cret", Username: &name}, reg.ID)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		email := "chef@example.com"
		res, err := f.service.UpdateUser(context.Background(), domain.UpdateUserRequest{OldPassword: "s3cret", Email: &email}, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, "chef", res.Username)
	})

	t.Run("patch username and password", func(t *testing.T) {
		name, password := "cook", "n3w"
		res, err := f.service.UpdateUser(context.Background(), domain.UpdateUserRequest{
			OldPassword: "s3cret",
			Username:    &name,
			NewPassword: &password,
		}, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, "cook", res.Username)
		assert.Equal(t, "chef@example.com", res.Email)

		_, err = f.service.Login(context.Background(), domain.LoginRequest{Email: "chef@example.com", Password: "n3w"})
		assert.NoError(t, err)
	})
}

func TestDeleteUser(t *testing.T) {
	f := newFixture()
	reg := f.register(t, "chef", "chef@example.com", "s3cret")
	link := "https://cdn.test/avatars/chef.png"
	f.repo.users[reg.ID].ImageLink = &link

	err := f.service.DeleteUser(context.Background(), domain.DeleteUserRequest{Password: "wrong"}, reg.ID)
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)

	require.NoError(t, f.service.DeleteUser(context.Background(), domain.DeleteUserRequest{Password: "s3cret"}, reg.ID))
	assert.NotContains(t, f.repo.users, reg.ID)
	assert.Equal(t, []string{"avatars/chef.png"}, f.s3.deleted)
}

func TestUploadAvatar(t *testing.T) {
	f := newFixture()
	reg := f.register(t, "chef", "chef@example.com", "s3cret")

	res, err := f.service.UploadAvatar(context.Background(), domain.UploadAvatarRequest{Image: &multipart.FileHeader{Filename: "me.png"}}, reg.ID)
	require.NoError(t, err)
	require.Len(t, f.s3.uploaded, 1)
	assert.Equal(t, "https://cdn.test/"+f.s3.uploaded[0], res.ImageLink)

	again, err := f.service.UploadAvatar(context.Background(), domain.UploadAvatarRequest{Image: &multipart.FileHeader{Filename: "me.png"}}, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ImageLink, again.ImageLink)
}
