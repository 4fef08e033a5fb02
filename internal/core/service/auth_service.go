package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/aurorastore/shop-backend/internal/api/metrics"
	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// ReplayGuard abstracts the login replay store (Redis). A nil guard
// disables replay protection.
type ReplayGuard interface {
	IsDuplicate(ctx context.Context, userID int64, authDate string) (bool, error)
	Mark(ctx context.Context, userID int64, authDate string) error
}

// AuthService verifies Telegram login widget payloads and binds verified
// identities to user records.
type AuthService struct {
	store         ports.Store
	guard         ReplayGuard
	botToken      string
	adminHandle   string
	sessionSecret string
	sessionTTL    time.Duration
	log           zerolog.Logger
}

func NewAuthService(store ports.Store, guard ReplayGuard, botToken, adminHandle, sessionSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		store:         store,
		guard:         guard,
		botToken:      botToken,
		adminHandle:   adminHandle,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
		log:           log,
	}
}

// verifiedIdentity is the outcome of a successful signature check.
type verifiedIdentity struct {
	ID        int64
	FirstName string
	Username  string
}

// Login implements ports.AuthService.
func (s *AuthService) Login(ctx context.Context, fields map[string]string) (string, *domain.User, error) {
	identity, err := verifyWidgetPayload(fields, s.botToken)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_signature").Inc()
		return "", nil, err
	}

	if s.guard != nil {
		authDate := fields["auth_date"]
		dup, gerr := s.guard.IsDuplicate(ctx, identity.ID, authDate)
		if gerr != nil {
			s.log.Warn().Err(gerr).Int64("user_id", identity.ID).Msg("replay check failed, processing anyway")
		} else if dup {
			metrics.LoginsTotal.WithLabelValues("replay").Inc()
			return "", nil, fmt.Errorf("replayed login payload: %w", domain.ErrInvalidSignature)
		}
	}

	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	user := snap.FindUser(identity.ID)
	if user == nil {
		snap.Users = append(snap.Users, domain.User{
			ID:        identity.ID,
			FirstName: identity.FirstName,
			Username:  identity.Username,
			Role:      domain.RoleUser,
		})
		user = &snap.Users[len(snap.Users)-1]
	}

	// Role is derived on every login, never persisted from a prior value.
	// A handle change therefore upgrades or downgrades on next login.
	user.Role = s.roleFor(identity.Username)

	if err := s.store.WriteAll(ctx, snap); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if s.guard != nil {
		if merr := s.guard.Mark(ctx, identity.ID, fields["auth_date"]); merr != nil {
			s.log.Warn().Err(merr).Int64("user_id", identity.ID).Msg("failed to mark login payload")
		}
	}

	token, err := s.sessionToken(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: sign session token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("login verified")

	result := *user
	return token, &result, nil
}

func (s *AuthService) roleFor(username string) string {
	if strings.EqualFold(username, s.adminHandle) {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func (s *AuthService) sessionToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": user.Role,
		"exp":  time.Now().Add(s.sessionTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.sessionSecret))
}

// verifyWidgetPayload checks the widget signature exactly as published by
// Telegram: the hash field is removed, the remaining fields are rendered as
// key=value lines sorted by key and joined with \n, and the HMAC-SHA256 of
// that string under SHA-256(botToken) must equal the hash, hex lowercase.
func verifyWidgetPayload(fields map[string]string, botToken string) (*verifiedIdentity, error) {
	supplied, ok := fields["hash"]
	if !ok || supplied == "" {
		return nil, fmt.Errorf("missing hash field: %w", domain.ErrInvalidSignature)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(b.String()))
	computed := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computed), []byte(supplied)) {
		return nil, domain.ErrInvalidSignature
	}

	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed id %q: %w", fields["id"], domain.ErrInvalidSignature)
	}

	return &verifiedIdentity{
		ID:        id,
		FirstName: fields["first_name"],
		Username:  fields["username"],
	}, nil
}
