package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dan9191/kitten-service/internal/auth"
	"github.com/Dan9191/kitten-service/internal/models"
	"github.com/Dan9191/kitten-service/internal/repository"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStore is an in-memory Store
type memStore struct {
	users      map[string]*models.User
	kittens    map[int64]*models.Kitten
	nextUser   int64
	nextKitten int64
	failWith   error
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, kittens: map[int64]*models.Kitten{}}
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[user.Username]; ok {
		return errors.New("duplicate username")
	}
	m.nextUser++
	user.ID = m.nextUser
	copied := *user
	m.users[user.Username] = &copied
	return nil
}

func (m *memStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memStore) CreateKitten(_ context.Context, kitten *models.Kitten) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextKitten++
	kitten.ID = m.nextKitten
	copied := *kitten
	m.kittens[kitten.ID] = &copied
	return nil
}

func (m *memStore) FindKittenByID(_ context.Context, id int64) (*models.Kitten, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	kitten, ok := m.kittens[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *kitten
	return &copied, nil
}

func (m *memStore) ListKittensByOwner(_ context.Context, ownerID int64) ([]models.Kitten, error) {
	kittens := []models.Kitten{}
	for id := int64(1); id <= m.nextKitten; id++ {
		if k, ok := m.kittens[id]; ok && k.OwnerID == ownerID {
			kittens = append(kittens, *k)
		}
	}
	return kittens, nil
}

func (m *memStore) DeleteKitten(_ context.Context, id int64) error {
	if _, ok := m.kittens[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.kittens, id)
	return nil
}

func (m *memStore) Ping(context.Context) error {
	return m.failWith
}

func newTestService(t *testing.T) (*Service, *memStore, *auth.TokenService, *logtest.Hook) {
	t.Helper()
	store := newMemStore()
	tokens := auth.NewTokenService("test-secret-key-at-least-32-bytes-long", "kitten-service", time.Hour)
	logger, hook := logtest.NewNullLogger()
	return NewService(store, auth.NewHasher(bcrypt.MinCost), tokens, logger), store, tokens, hook
}

func intPtr(v int) *int { return &v }

func TestRegisterThenLogin(t *testing.T) {
	svc, store, tokens, _ := newTestService(t)
	ctx := context.Background()

	regToken, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	loginToken, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	regClaims, err := tokens.Verify(regToken)
	require.NoError(t, err)
	loginClaims, err := tokens.Verify(loginToken)
	require.NoError(t, err)

	assert.Equal(t, regClaims.ID, loginClaims.ID)
	assert.Equal(t, "alice", loginClaims.Username)
	assert.Equal(t, store.users["alice"].ID, loginClaims.ID)
	assert.NotEqual(t, "password123", store.users["alice"].PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	tests := []struct {
		name     string
		username string
		password string
		field    string
	}{
		{"empty username", "", "password", "username"},
		{"blank username", "   ", "password", "username"},
		{"empty password", "alice", "", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRegister_StoreFailure(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	store.failWith = errors.New("connection refused")

	_, err := svc.Register(context.Background(), "alice", "password")
	assert.EqualError(t, err, "connection refused")
}

func TestLogin_Failures(t *testing.T) {
	svc, _, _, hook := newTestService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong"},
		{"unknown user", "bob", "password123"},
		{"missing password", "alice", ""},
		{"missing username", "", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "Login with wrong password" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestLogin_MalformedStoredHash(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	store.users["alice"] = &models.User{ID: 1, Username: "alice", PasswordHash: "garbage"}

	_, err := svc.Login(context.Background(), "alice", "password")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAndGetKitten(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()
	alice := models.Identity{ID: 1, Username: "alice"}

	created, err := svc.CreateKitten(ctx, alice, models.KittenRequest{Name: "Tom", Age: intPtr(3), Color: "grey"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.OwnerID)
	assert.Len(t, store.kittens, 1)

	found, err := svc.GetKitten(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tom", found.Name)
	assert.Equal(t, 3, found.Age)
	assert.Equal(t, "grey", found.Color)
}

func TestCreateKitten_Validation(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	alice := models.Identity{ID: 1}

	tests := []struct {
		name  string
		req   models.KittenRequest
		field string
	}{
		{"missing name", models.KittenRequest{Age: intPtr(1), Color: "black"}, "name"},
		{"missing age", models.KittenRequest{Name: "Tom", Color: "black"}, "age"},
		{"negative age", models.KittenRequest{Name: "Tom", Age: intPtr(-1), Color: "black"}, "age"},
		{"missing color", models.KittenRequest{Name: "Tom", Age: intPtr(1)}, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateKitten(context.Background(), alice, tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Empty(t, store.kittens)
}

func TestGetKitten_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetKitten(context.Background(), models.Identity{ID: 1}, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKitten_OtherOwner(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()
	alice := models.Identity{ID: 1, Username: "alice"}
	bob := models.Identity{ID: 2, Username: "bob"}

	kitten, err := svc.CreateKitten(ctx, alice, models.KittenRequest{Name: "Tom", Age: intPtr(3), Color: "grey"})
	require.NoError(t, err)

	_, err = svc.GetKitten(ctx, bob, kitten.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.DeleteKitten(ctx, bob, kitten.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Contains(t, store.kittens, kitten.ID)
}

func TestDeleteKitten(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()
	alice := models.Identity{ID: 1, Username: "alice"}

	kitten, err := svc.CreateKitten(ctx, alice, models.KittenRequest{Name: "Tom", Age: intPtr(3), Color: "grey"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteKitten(ctx, alice, kitten.ID))
	assert.NotContains(t, store.kittens, kitten.ID)

	_, err = svc.GetKitten(ctx, alice, kitten.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteKitten(ctx, alice, kitten.ID), ErrNotFound)
}

func TestListKittens(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	alice := models.Identity{ID: 1}
	bob := models.Identity{ID: 2}

	for _, name := range []string{"Tom", "Felix"} {
		_, err := svc.CreateKitten(ctx, alice, models.KittenRequest{Name: name, Age: intPtr(1), Color: "black"})
		require.NoError(t, err)
	}
	_, err := svc.CreateKitten(ctx, bob, models.KittenRequest{Name: "Garfield", Age: intPtr(5), Color: "orange"})
	require.NoError(t, err)

	kittens, err := svc.ListKittens(ctx, alice)
	require.NoError(t, err)
	require.Len(t, kittens, 2)
	assert.Equal(t, "Tom", kittens[0].Name)
	assert.Equal(t, "Felix", kittens[1].Name)
}

func TestHealthy(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	assert.NoError(t, svc.Healthy(context.Background()))

	store.failWith = errors.New("down")
	assert.Error(t, svc.Healthy(context.Background()))
}
