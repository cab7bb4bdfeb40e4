package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace-storefront/internal/domain"
	"marketplace-storefront/internal/logging"
	tokenrepo "marketplace-storefront/internal/repository/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the session a bearer token resolves to. UserID is empty for
// anonymous shoppers.
type Identity struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

type Service struct {
	tokens tokenrepo.Repository
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// New issues tokens into repo; nil keeps them in memory.
func New(repo tokenrepo.Repository, logger *zap.Logger) *Service {
	if repo == nil {
		repo = tokenrepo.NewMemory()
	}
	return &Service{
		tokens: repo,
		ttl:    3 * time.Hour,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// Issue starts a session for userID (empty for anonymous) and returns its token.
func (s *Service) Issue(ctx context.Context, userID string) (token, sessionID string, err error) {
	sessionID = uuid.NewString()
	expiresAt := s.now().Add(s.ttl)
	var uid *string
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		uid = &trimmed
	}
	for i := 0; i < 5; i++ {
		token, err = randomToken()
		if err != nil {
			return "", "", err
		}
		err = s.tokens.Create(ctx, tokenrepo.Token{
			Token:     token,
			SessionID: sessionID,
			UserID:    uid,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			s.logger.Info("session issued", zap.String("session_id", sessionID), zap.Bool("anonymous", uid == nil))
			return token, sessionID, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return "", "", fmt.Errorf("store session token: %w", err)
		}
	}
	return "", "", errors.New("could not allocate unique session token")
}

// Lookup resolves token. Unknown and expired tokens give ErrInvalidToken.
func (s *Service) Lookup(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrInvalidToken
	}
	meta, err := s.tokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, err
	}
	if meta.Expired(s.now()) {
		if err := s.tokens.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("expired session cleanup failed", zap.String("session_id", meta.SessionID), zap.Error(err))
		}
		return Identity{}, ErrInvalidToken
	}
	id := Identity{SessionID: meta.SessionID, ExpiresAt: meta.ExpiresAt}
	if meta.UserID != nil {
		id.UserID = *meta.UserID
	}
	return id, nil
}

// Revoke ends the session behind token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// Sweep deletes expired tokens. Lookup already rejects them; this only
// reclaims storage.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	n, err := s.tokens.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired sessions swept", zap.Int("count", n))
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("session sweep failed", zap.Error(err))
			}
		}
	}
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
