package service

import (
	"fmt"
	"strings"
	"time"

	"chessroom/internal/storage"

	"github.com/google/uuid"
	"github.com/lixenwraith/auth"
)

// User represents a registered user account
type User struct {
	UserID    string
	Username  string
	Email     string
	CreatedAt time.Time
}

// CreateUser creates a new user with transactional consistency. Accounts are
// permanent while permanent slots remain, temporary with a TTL afterwards;
// once the user cap is hit the oldest temp account is evicted.
func (s *Service) CreateUser(username, email, password string) (*User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage disabled")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.generateUniqueUserID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate unique ID: %w", err)
	}

	limits := storage.DefaultUserLimits()
	total, permanent, _, err := s.store.GetUserCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to check user counts: %w", err)
	}

	accountType := "temp"
	var expiresAt *time.Time
	if permanent < limits.PermanentSlots {
		accountType = "permanent"
	} else {
		expiry := time.Now().UTC().Add(limits.TempTTL)
		expiresAt = &expiry
	}

	if total >= limits.MaxUsers {
		oldest, err := s.store.GetOldestTempUser()
		if err != nil {
			return nil, fmt.Errorf("user limit reached")
		}
		if err := s.store.DeleteUserByID(oldest.UserID); err != nil {
			return nil, fmt.Errorf("user limit reached")
		}
	}

	now := time.Now().UTC()
	record := storage.UserRecord{
		UserID:       userID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		AccountType:  accountType,
		CreatedAt:    now,
		ExpiresAt:    expiresAt,
	}

	if err = s.store.CreateUser(record); err != nil {
		return nil, err
	}

	return &User{
		UserID:    userID,
		Username:  username,
		Email:     email,
		CreatedAt: now,
	}, nil
}

// AuthenticateUser verifies user credentials and returns user information
func (s *Service) AuthenticateUser(identifier, password string) (*User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage disabled")
	}

	var userRecord *storage.UserRecord
	var err error

	if strings.Contains(identifier, "@") {
		userRecord, err = s.store.GetUserByEmail(identifier)
	} else {
		userRecord, err = s.store.GetUserByUsername(identifier)
	}

	if err != nil {
		// Always hash to prevent timing attacks
		auth.HashPassword(password)
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := auth.VerifyPassword(password, userRecord.PasswordHash); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	return &User{
		UserID:    userRecord.UserID,
		Username:  userRecord.Username,
		Email:     userRecord.Email,
		CreatedAt: userRecord.CreatedAt,
	}, nil
}

// UpdateLastLogin updates the last login timestamp for a user
func (s *Service) UpdateLastLogin(userID string) error {
	if s.store == nil {
		return fmt.Errorf("storage disabled")
	}
	return s.store.UpdateUserLastLogin(userID, time.Now().UTC())
}

// GetUserByID retrieves user information by user ID
func (s *Service) GetUserByID(userID string) (*User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage disabled")
	}

	userRecord, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	return &User{
		UserID:    userRecord.UserID,
		Username:  userRecord.Username,
		Email:     userRecord.Email,
		CreatedAt: userRecord.CreatedAt,
	}, nil
}

// GenerateUserToken creates a JWT for a user and records the session behind
// it, so logout can revoke the token before it expires.
func (s *Service) GenerateUserToken(userID string) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	session := storage.SessionRecord{
		SessionID: uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.store.CreateSession(session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	claims := map[string]any{
		"username": user.Username,
		"email":    user.Email,
		"session":  session.SessionID,
	}

	return auth.GenerateHS256Token(s.jwtSecret, userID, claims, SessionTTL)
}

// ValidateToken verifies a JWT and checks its session is still live
func (s *Service) ValidateToken(token string) (string, map[string]any, error) {
	if s.store == nil {
		return "", nil, fmt.Errorf("storage disabled")
	}

	userID, claims, err := auth.ValidateHS256Token(s.jwtSecret, token)
	if err != nil {
		return "", nil, err
	}

	sessionID, _ := claims["session"].(string)
	if sessionID == "" {
		return "", nil, fmt.Errorf("token carries no session")
	}
	valid, err := s.store.IsSessionValid(sessionID)
	if err != nil || !valid {
		return "", nil, fmt.Errorf("session expired or revoked")
	}

	return userID, claims, nil
}

// RevokeUserSessions deletes a user's sessions, invalidating issued tokens
func (s *Service) RevokeUserSessions(userID string) error {
	if s.store == nil {
		return fmt.Errorf("storage disabled")
	}
	return s.store.DeleteSessionByUserID(userID)
}

// generateUniqueUserID creates a unique user ID with collision detection
func (s *Service) generateUniqueUserID() (string, error) {
	const maxAttempts = 10

	for i := 0; i < maxAttempts; i++ {
		id := uuid.New().String()

		// Error means not found, ID is unique
		if _, err := s.store.GetUserByID(id); err != nil {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique user ID after %d attempts", maxAttempts)
}
