package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/hms-console/internal/logger"
	"github.com/dtroode/hms-console/internal/model"
)

// Storage keys of the credential documents.
const (
	UsersKey   = "hms_users"
	SessionKey = "hms_user"
)

type Auth struct {
	storage model.Storage
	signer  model.SessionSigner
	logger  *logger.Logger
	cost    int
	newID   func() (uuid.UUID, error)

	mu sync.Mutex
}

func NewAuth(
	storage model.Storage,
	signer model.SessionSigner,
	logger *logger.Logger,
	bcryptCost int,
) *Auth {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Auth{
		storage: storage,
		signer:  signer,
		logger:  logger,
		cost:    bcryptCost,
		newID:   uuid.NewV7,
	}
}

func (a *Auth) Signup(ctx context.Context, name, email, password string) (model.Session, error) {
	a.logger.Debug("Auth service: starting signup",
		"email", email)

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadUsers(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to load users",
			"email", email,
			"error", err.Error())
		return model.Session{}, err
	}

	for _, u := range users {
		if u.Email == email {
			a.logger.Info("Auth service: email already registered",
				"email", email)
			return model.Session{}, model.ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), a.cost)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := a.newID()
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	user := model.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleAdmin,
	}

	if err := a.saveUsers(ctx, append(users, user)); err != nil {
		a.logger.Error("Auth service: failed to save users",
			"email", email,
			"error", err.Error())
		return model.Session{}, err
	}

	session, err := a.startSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: signup completed successfully",
		"email", email,
		"user_id", user.ID)

	return session, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	a.logger.Debug("Auth service: starting login",
		"email", email)

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadUsers(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to load users",
			"email", email,
			"error", err.Error())
		return model.Session{}, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), passwordKey(password)); err != nil {
			break
		}

		session, err := a.startSession(ctx, u)
		if err != nil {
			return model.Session{}, err
		}

		a.logger.Info("Auth service: login completed successfully",
			"email", email,
			"user_id", u.ID)
		return session, nil
	}

	a.logger.Info("Auth service: invalid credentials",
		"email", email)
	return model.Session{}, model.ErrInvalidCredentials
}

func (a *Auth) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.storage.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	a.logger.Info("Auth service: logged out")
	return nil
}

// CurrentSession returns the persisted session. A missing, unreadable or
// forged session reports false.
func (a *Auth) CurrentSession(ctx context.Context) (model.Session, bool) {
	raw, err := a.storage.Get(ctx, SessionKey)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, false
	}
	if err != nil {
		a.logger.Warn("Auth service: failed to read session",
			"error", err.Error())
		return model.Session{}, false
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		a.logger.Debug("Auth service: malformed session ignored",
			"error", err.Error())
		return model.Session{}, false
	}
	if session.IsZero() {
		return model.Session{}, false
	}

	signed, err := a.signer.VerifySession(session.Token)
	if err != nil {
		a.logger.Debug("Auth service: session token rejected",
			"user_id", session.ID,
			"error", err.Error())
		return model.Session{}, false
	}
	signed.Token = session.Token
	if signed != session {
		a.logger.Debug("Auth service: session does not match its token",
			"user_id", session.ID,
			"subject", signed.ID)
		return model.Session{}, false
	}

	return session, true
}

// passwordKey condenses a password of any length into the 44 bytes bcrypt
// hashes; bcrypt itself refuses input over 72 bytes.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	key := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(key, sum[:])
	return key
}

func (a *Auth) startSession(ctx context.Context, user model.User) (model.Session, error) {
	session := user.Session()

	token, err := a.signer.SignSession(session)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to sign session: %w", err)
	}
	session.Token = token

	raw, err := json.Marshal(session)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := a.storage.Put(ctx, SessionKey, raw); err != nil {
		return model.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

func (a *Auth) loadUsers(ctx context.Context) ([]model.User, error) {
	raw, err := a.storage.Get(ctx, UsersKey)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (a *Auth) saveUsers(ctx context.Context, users []model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	if err := a.storage.Put(ctx, UsersKey, raw); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}
