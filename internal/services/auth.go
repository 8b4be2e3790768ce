package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/apierr"
	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/requestdata"
	"github.com/learnai/learnai-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// AuthService handles registration, login and the access/refresh
// token lifecycle. Access tokens are short-lived HS256 JWTs; refresh
// tokens are opaque uuids stored server-side and revocable.
type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) (string, string, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context, refreshToken string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	activity      ActivityService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	activity ActivityService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           baseLog.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		activity:      activity,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (string, string, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return "", "", apierr.New(http.StatusBadRequest, "invalid_email", errors.New("a valid email is required"))
	}
	if len(user.Password) < 8 {
		return "", "", apierr.New(http.StatusBadRequest, "weak_password", errors.New("password must be at least 8 characters"))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", "", apierr.New(http.StatusConflict, "email_taken", errors.New("email already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	if user.SkillLevel == "" {
		user.SkillLevel = types.SkillBeginner
	}
	if user.LearningPace == "" {
		user.LearningPace = types.PaceModerate
	}
	if user.PreferredContentType == "" {
		user.PreferredContentType = types.ContentVideo
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		accessToken, refreshToken, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return "", "", err
	}

	as.log.Info("user registered", "user_id", user.ID)
	return accessToken, refreshToken, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))
		}
		return "", "", fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apierr.New(http.StatusUnauthorized, "invalid_credentials", errors.New("invalid email or password"))
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		user.LoginCount++
		user.LastActiveAt = &now
		if err := as.userRepo.Update(ctx, tx, user); err != nil {
			return fmt.Errorf("update login stats: %w", err)
		}
		if as.activity != nil {
			// Failed appends don't block login.
			_ = as.activity.Log(ctx, tx, user.ID, types.ActivityLogin, nil)
		}
		accessToken, refreshToken, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return "", "", err
	}

	as.log.Info("user logged in", "user_id", user.ID)
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", apierr.New(http.StatusUnauthorized, "missing_refresh_token", errors.New("refresh token required"))
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.New(http.StatusUnauthorized, "invalid_refresh_token", errors.New("unknown refresh token"))
			}
			return fmt.Errorf("load refresh token: %w", err)
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.Revoke(ctx, tx, existing.ID); err != nil {
				return fmt.Errorf("revoke expired token: %w", err)
			}
			return apierr.New(http.StatusUnauthorized, "refresh_token_expired", errors.New("refresh token expired"))
		}

		user, err := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if err != nil {
			return fmt.Errorf("load user for refresh: %w", err)
		}

		// Rotate: old token revoked, new pair issued.
		if err := as.userTokenRepo.Revoke(ctx, tx, existing.ID); err != nil {
			return fmt.Errorf("revoke old token: %w", err)
		}
		accessToken, newRefreshToken, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context, refreshToken string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.New(http.StatusUnauthorized, "unauthenticated", errors.New("no request identity"))
	}
	if refreshToken == "" {
		return as.userTokenRepo.RevokeAllForUser(ctx, nil, rd.UserID)
	}

	token, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("load refresh token: %w", err)
	}
	if token.UserID != rd.UserID {
		return apierr.New(http.StatusForbidden, "forbidden", errors.New("token does not belong to caller"))
	}
	return as.userTokenRepo.Revoke(ctx, nil, token.ID)
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, userToken); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "invalid_token", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.New(http.StatusUnauthorized, "invalid_token", errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("invalid subject: %w", err))
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
