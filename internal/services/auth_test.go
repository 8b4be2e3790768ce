package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/learnai/learnai-backend/internal/platform/apierr"
	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/requestdata"
	"github.com/learnai/learnai-backend/internal/types"
)

func newTokenFixture(t *testing.T, secret string, accessTTL time.Duration) *authService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	svc := NewAuthService(nil, log, nil, nil, nil, secret, accessTTL, 24*time.Hour)
	return svc.(*authService)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTokenFixture(t, "round-trip-secret", time.Hour)
	user := &types.User{ID: uuid.New()}

	token, err := svc.generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatal("request data missing after valid token")
	}
	if rd.UserID != user.ID {
		t.Fatalf("user id %s, want %s", rd.UserID, user.ID)
	}
	if rd.TokenString != token {
		t.Fatalf("token string not carried into context")
	}
}

func TestSetContextFromTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTokenFixture(t, "secret-a", time.Hour)
	verifier := newTokenFixture(t, "secret-b", time.Hour)

	token, err := issuer.generateAccessToken(&types.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	_, err = verifier.SetContextFromToken(context.Background(), token)
	if err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
	status, code := apierr.StatusOf(err, 0)
	if status != http.StatusUnauthorized || code != "invalid_token" {
		t.Fatalf("got (%d, %q), want (401, invalid_token)", status, code)
	}
}

func TestSetContextFromTokenRejectsExpired(t *testing.T) {
	svc := newTokenFixture(t, "expiry-secret", -time.Minute)

	token, err := svc.generateAccessToken(&types.User{ID: uuid.New()})
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	if _, err := svc.SetContextFromToken(context.Background(), token); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestSetContextFromTokenEmptyIsNoop(t *testing.T) {
	svc := newTokenFixture(t, "noop-secret", time.Hour)

	ctx, err := svc.SetContextFromToken(context.Background(), "")
	if err != nil {
		t.Fatalf("empty token should not error: %v", err)
	}
	if requestdata.GetRequestData(ctx) != nil {
		t.Fatal("empty token should not attach request data")
	}
}
