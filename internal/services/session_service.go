package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"stash/internal/config"
	apperrors "stash/internal/errors"
	"stash/internal/models"
	"stash/internal/uuid"
)

// SessionClaims are the claims embedded in the session cookie token.
// SessionID references the server-side sessions row; the row is the
// source of truth, so destroying it invalidates the token even before
// the embedded expiry.
type SessionClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// sessionService issues, resolves, and destroys login sessions.
type sessionService struct {
	db *gorm.DB
}

// NewSessionService creates a new SessionServicer.
func NewSessionService(db *gorm.DB) SessionServicer {
	return &sessionService{db: db}
}

func sessionKey() []byte {
	return []byte(config.Get().SessionSecret)
}

// Create opens a session for the user and returns the signed cookie
// token. The configured SessionTTL drives both the token expiry and the
// row expiry.
func (s *sessionService) Create(user *models.User) (string, error) {
	ttl := config.Get().SessionTTL
	now := time.Now()

	session := &models.Session{
		UserID:    user.ID,
		TokenID:   uuid.New(),
		ExpiresAt: now.Add(ttl),
	}
	if err := s.db.Create(session).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	claims := &SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		SessionID: session.TokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "stash-api",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(sessionKey())
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return signed, nil
}

// Resolve maps a cookie token back to its user. It verifies the token
// signature, then requires a live sessions row and an active user.
func (s *sessionService) Resolve(token string) (*models.User, error) {
	claims, err := parseSessionToken(token)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	var session models.Session
	if err := s.db.Where("token_id = ?", claims.SessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if time.Now().After(session.ExpiresAt) {
		// Expired rows are reaped lazily on resolution.
		s.db.Unscoped().Delete(&session)
		return nil, apperrors.ErrSessionExpired
	}

	var user models.User
	if err := s.db.Where("id = ? AND is_active = ?", session.UserID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &user, nil
}

// Destroy deletes the server-side session row for a token. Destroying
// an already-dead session is not an error.
func (s *sessionService) Destroy(token string) error {
	claims, err := parseSessionToken(token)
	if err != nil {
		return nil
	}

	if err := s.db.Unscoped().Where("token_id = ?", claims.SessionID).Delete(&models.Session{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// parseSessionToken parses and validates a session cookie token.
func parseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return sessionKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("session token missing session ID")
	}
	return claims, nil
}
