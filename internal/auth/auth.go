// Package auth handles password hashing, credential verification and session
// lifecycle for registered users.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kabutey/campuscent/internal/common"
	"github.com/kabutey/campuscent/internal/model"
	"github.com/kabutey/campuscent/internal/service"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SessionManager issues and validates session identifiers. Sessions live in
// memory only and die with the process.
type SessionManager struct {
	sessions map[string]string
	mu       sync.Mutex
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]string)}
}

// Create issues a new session id for the username.
func (m *SessionManager) Create(username string) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.sessions[id] = username
	m.mu.Unlock()
	return id
}

// Username resolves a session id to its username.
func (m *SessionManager) Username(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	username, ok := m.sessions[id]
	return username, ok
}

// Invalidate ends a session. Unknown ids are ignored.
func (m *SessionManager) Invalidate(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Register validates the credentials, hashes the password and stores the new
// user. A taken username surfaces as common.ErrDuplicateUser.
func Register(ctx context.Context, store service.Storage, username, password string) (*model.User, error) {
	if err := model.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := model.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials against the store and opens a session.
// A missing user and a wrong password are indistinguishable to the caller.
func Login(ctx context.Context, store service.Storage, sessions *SessionManager, username, password string) (string, error) {
	user, err := store.GetUser(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	return sessions.Create(username), nil
}
