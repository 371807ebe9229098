package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the browser cookie carrying the signed session token.
const CookieName = "booknook_session"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrNoSession    = errors.New("session not found")
)

// Identity is the authenticated principal bound to a request.
type Identity struct {
	Username  string
	SessionID string
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

// Store is what handlers and middleware need from the session layer.
type Store interface {
	Create(ctx context.Context, username string) (token string, identity *Identity, err error)
	Resolve(ctx context.Context, token string) (*Identity, error)
	Destroy(ctx context.Context, sessionID string) error
	Flash(ctx context.Context, sessionID, level, message string)
	PopFlashes(ctx context.Context, sessionID string) []Flash
}

// Manager issues HS256-signed session tokens and keeps the authoritative
// session record in Redis. The cookie alone is not enough to stay logged in:
// logout deletes the Redis entry and the token dies with it.
type Manager struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

func NewManager(rdb *redis.Client, secret string, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Create starts a session for username and returns the signed token to be
// set as a cookie.
func (m *Manager) Create(ctx context.Context, username string) (string, *Identity, error) {
	sessionID := uuid.New().String()

	if err := m.rdb.Set(ctx, sessionKey(sessionID), username, m.ttl).Err(); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token, err := m.signToken(sessionID, username)
	if err != nil {
		m.rdb.Del(ctx, sessionKey(sessionID))
		return "", nil, err
	}

	return token, &Identity{Username: username, SessionID: sessionID}, nil
}

// Resolve turns a cookie token back into an identity. The token must carry a
// valid signature and the session must still exist server-side.
func (m *Manager) Resolve(ctx context.Context, token string) (*Identity, error) {
	sessionID, username, err := m.parseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := m.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil || stored != username {
		return nil, ErrNoSession
	}

	return &Identity{Username: username, SessionID: sessionID}, nil
}

// Destroy removes the session and any pending flashes.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	return m.rdb.Del(ctx, sessionKey(sessionID), flashKey(sessionID)).Err()
}

// Flash queues a one-shot message for the session. Best effort: a Redis
// failure loses the message, never the request.
func (m *Manager) Flash(ctx context.Context, sessionID, level, message string) {
	key := flashKey(sessionID)
	if err := m.rdb.RPush(ctx, key, level+"|"+message).Err(); err != nil {
		m.logger.Warn("failed to queue flash message", "error", err)
		return
	}
	m.rdb.Expire(ctx, key, m.ttl)
}

// PopFlashes drains the queued messages for the session.
func (m *Manager) PopFlashes(ctx context.Context, sessionID string) []Flash {
	key := flashKey(sessionID)
	entries, err := m.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return nil
	}
	m.rdb.Del(ctx, key)

	flashes := make([]Flash, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, "|", 2)
		if len(parts) != 2 {
			continue
		}
		flashes = append(flashes, Flash{Level: parts[0], Message: parts[1]})
	}
	return flashes
}

func (m *Manager) signToken(sessionID, username string) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sessionID,
		"username": username,
		"exp":      time.Now().Add(m.ttl).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (m *Manager) parseToken(tokenString string) (sessionID, username string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	sessionID, _ = claims["sid"].(string)
	username, _ = claims["username"].(string)
	if sessionID == "" || username == "" {
		return "", "", ErrInvalidToken
	}
	return sessionID, username, nil
}

func sessionKey(sessionID string) string { return "session:" + sessionID }
func flashKey(sessionID string) string   { return "flash:" + sessionID }
