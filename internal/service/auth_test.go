package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/hms-console/internal/mocks"
	"github.com/dtroode/hms-console/internal/model"
	"github.com/dtroode/hms-console/internal/testutil"
	"github.com/dtroode/hms-console/internal/token"
)

func newTestAuth(t *testing.T) (*Auth, *testutil.MemStorage) {
	t.Helper()
	storage := testutil.NewMemStorage()
	return NewAuth(storage, token.NewJWT("test-secret"), testutil.MakeNoopLogger(), bcrypt.MinCost), storage
}

func storedUsers(t *testing.T, storage *testutil.MemStorage) []model.User {
	t.Helper()
	raw, ok := storage.Raw(UsersKey)
	require.True(t, ok)
	var users []model.User
	require.NoError(t, json.Unmarshal(raw, &users))
	return users
}

func TestAuth_Signup(t *testing.T) {
	ctx := context.Background()
	a, storage := newTestAuth(t)

	session, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Dr. A", session.Name)
	assert.Equal(t, "a@x.com", session.Email)
	assert.Equal(t, model.RoleAdmin, session.Role)
	assert.Equal(t, uuid.Version(7), session.ID.Version())
	assert.NotEmpty(t, session.Token)

	users := storedUsers(t, storage)
	require.Len(t, users, 1)
	assert.Equal(t, session.ID, users[0].ID)
	assert.NotEqual(t, "secret1", users[0].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), passwordKey("secret1")))

	current, ok := a.CurrentSession(ctx)
	require.True(t, ok)
	assert.Equal(t, session, current)
}

func TestAuth_Signup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	a, storage := newTestAuth(t)

	_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.NoError(t, err)
	before, _ := storage.Raw(UsersKey)

	_, err = a.Signup(ctx, "Dr. B", "a@x.com", "other")
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	after, _ := storage.Raw(UsersKey)
	assert.Equal(t, before, after)

	// the first password still works
	_, err = a.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
}

func TestAuth_Signup_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	a, storage := newTestAuth(t)

	_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = a.Signup(ctx, "Dr. A", "A@x.com", "secret1")
	require.NoError(t, err)

	assert.Len(t, storedUsers(t, storage), 2)
}

func TestAuth_Signup_MalformedUsers(t *testing.T) {
	ctx := context.Background()
	a, storage := newTestAuth(t)
	require.NoError(t, storage.Put(ctx, UsersKey, []byte("{not json")))

	_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.ErrorContains(t, err, "failed to decode users")

	raw, _ := storage.Raw(UsersKey)
	assert.Equal(t, "{not json", string(raw))
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuth(t)
	_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, a.Logout(ctx))

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "a@x.com", password: "secret1"},
		{name: "wrong password", email: "a@x.com", password: "wrong", wantErr: model.ErrInvalidCredentials},
		{name: "unknown email", email: "b@x.com", password: "secret1", wantErr: model.ErrInvalidCredentials},
		{name: "email case differs", email: "A@x.com", password: "secret1", wantErr: model.ErrInvalidCredentials},
		{name: "empty password", email: "a@x.com", password: "", wantErr: model.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := a.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, session.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, session.Email)
		})
	}
}

func TestAuth_Signup_LongPassword(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuth(t)
	password := strings.Repeat("p", 100)

	_, err := a.Signup(ctx, "Dr. A", "a@x.com", password)
	require.NoError(t, err)
	require.NoError(t, a.Logout(ctx))

	session, err := a.Login(ctx, "a@x.com", password)
	require.NoError(t, err)
	assert.Equal(t, "Dr. A", session.Name)

	// differs only past byte 72
	_, err = a.Login(ctx, "a@x.com", strings.Repeat("p", 99)+"q")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_SessionNeverCarriesPassword(t *testing.T) {
	ctx := context.Background()
	a, storage := newTestAuth(t)

	_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.NoError(t, err)

	raw, ok := storage.Raw(SessionKey)
	require.True(t, ok)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, string(raw), "secret1")
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()
	a, storage := newTestAuth(t)

	_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))
	_, ok := a.CurrentSession(ctx)
	assert.False(t, ok)
	assert.Len(t, storedUsers(t, storage), 1)

	require.NoError(t, a.Logout(ctx))
}

func TestAuth_CurrentSession_Rejected(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		tamper func(t *testing.T, a *Auth, storage *testutil.MemStorage)
	}{
		{
			name: "absent",
			tamper: func(t *testing.T, a *Auth, _ *testutil.MemStorage) {
				require.NoError(t, a.Logout(ctx))
			},
		},
		{
			name: "malformed json",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				require.NoError(t, storage.Put(ctx, SessionKey, []byte("garbage")))
			},
		},
		{
			name: "empty object",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				require.NoError(t, storage.Put(ctx, SessionKey, []byte("{}")))
			},
		},
		{
			name: "missing token",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				raw, _ := json.Marshal(model.Session{ID: uuid.New(), Email: "a@x.com"})
				require.NoError(t, storage.Put(ctx, SessionKey, raw))
			},
		},
		{
			name: "token of another user",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				raw, _ := storage.Raw(SessionKey)
				var s model.Session
				require.NoError(t, json.Unmarshal(raw, &s))
				s.ID = uuid.New()
				raw, _ = json.Marshal(s)
				require.NoError(t, storage.Put(ctx, SessionKey, raw))
			},
		},
		{
			name: "role edited",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				raw, _ := storage.Raw(SessionKey)
				var s model.Session
				require.NoError(t, json.Unmarshal(raw, &s))
				s.Role = "superuser"
				raw, _ = json.Marshal(s)
				require.NoError(t, storage.Put(ctx, SessionKey, raw))
			},
		},
		{
			name: "email edited",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				raw, _ := storage.Raw(SessionKey)
				var s model.Session
				require.NoError(t, json.Unmarshal(raw, &s))
				s.Email = "b@x.com"
				raw, _ = json.Marshal(s)
				require.NoError(t, storage.Put(ctx, SessionKey, raw))
			},
		},
		{
			name: "name edited",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				raw, _ := storage.Raw(SessionKey)
				var s model.Session
				require.NoError(t, json.Unmarshal(raw, &s))
				s.Name = "Dr. B"
				raw, _ = json.Marshal(s)
				require.NoError(t, storage.Put(ctx, SessionKey, raw))
			},
		},
		{
			name: "token signed with another secret",
			tamper: func(t *testing.T, _ *Auth, storage *testutil.MemStorage) {
				raw, _ := storage.Raw(SessionKey)
				var s model.Session
				require.NoError(t, json.Unmarshal(raw, &s))
				s.Token, _ = token.NewJWT("other-secret").SignSession(s)
				raw, _ = json.Marshal(s)
				require.NoError(t, storage.Put(ctx, SessionKey, raw))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, storage := newTestAuth(t)
			_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
			require.NoError(t, err)

			tt.tamper(t, a, storage)

			session, ok := a.CurrentSession(ctx)
			assert.False(t, ok)
			assert.True(t, session.IsZero())
		})
	}
}

func TestAuth_StorageFailures(t *testing.T) {
	ctx := context.Background()
	ioErr := errors.New("disk gone")

	t.Run("current session read error is absent", func(t *testing.T) {
		storage := &mocks.Storage{}
		storage.On("Get", mock.Anything, SessionKey).Return(nil, ioErr)

		a := NewAuth(storage, &mocks.SessionSigner{}, testutil.MakeNoopLogger(), bcrypt.MinCost)
		_, ok := a.CurrentSession(ctx)
		assert.False(t, ok)
		storage.AssertExpectations(t)
	})

	t.Run("signup read error", func(t *testing.T) {
		storage := &mocks.Storage{}
		storage.On("Get", mock.Anything, UsersKey).Return(nil, ioErr)

		a := NewAuth(storage, &mocks.SessionSigner{}, testutil.MakeNoopLogger(), bcrypt.MinCost)
		_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
		require.ErrorIs(t, err, ioErr)
		storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("signup signing error keeps user", func(t *testing.T) {
		storage := &mocks.Storage{}
		storage.On("Get", mock.Anything, UsersKey).Return(nil, model.ErrNotFound)
		storage.On("Put", mock.Anything, UsersKey, mock.Anything).Return(nil)
		signer := &mocks.SessionSigner{}
		signer.On("SignSession", mock.Anything).Return("", errors.New("no key"))

		a := NewAuth(storage, signer, testutil.MakeNoopLogger(), bcrypt.MinCost)
		_, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
		require.ErrorContains(t, err, "failed to sign session")
		storage.AssertNotCalled(t, "Put", mock.Anything, SessionKey, mock.Anything)
	})

	t.Run("logout delete error", func(t *testing.T) {
		storage := &mocks.Storage{}
		storage.On("Delete", mock.Anything, SessionKey).Return(ioErr)

		a := NewAuth(storage, &mocks.SessionSigner{}, testutil.MakeNoopLogger(), bcrypt.MinCost)
		require.ErrorIs(t, a.Logout(ctx), ioErr)
	})
}

func TestAuth_EndToEnd(t *testing.T) {
	ctx := context.Background()
	a, storage := newTestAuth(t)

	session, err := a.Signup(ctx, "Dr. A", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. A", session.Name)
	assert.Equal(t, "admin", session.Role)

	require.NoError(t, a.Logout(ctx))
	_, ok := a.CurrentSession(ctx)
	require.False(t, ok)

	_, err = a.Login(ctx, "a@x.com", "wrong")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, ok = a.CurrentSession(ctx)
	require.False(t, ok)

	session, err = a.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. A", session.Name)

	current, ok := a.CurrentSession(ctx)
	require.True(t, ok)
	assert.Equal(t, session.ID, current.ID)
	assert.Len(t, storedUsers(t, storage), 1)
}
