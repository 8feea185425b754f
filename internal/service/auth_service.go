package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"lostfound-backend/internal/config"
	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/repository"
)

var (
	ErrInvalidGoogleToken = errors.New("invalid Google ID token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// GoogleProfile is the verified identity extracted from a Google ID token.
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// IdentityVerifier turns a bearer credential into a verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

type AuthService interface {
	GoogleLogin(ctx context.Context, idToken string) (*domain.TokenResponse, error)
	Refresh(ctx context.Context, token string) (*domain.TokenResponse, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByPublicID(ctx context.Context, publicID string) (*domain.User, error)
}

// Claims carries the caller's public identifier in the subject; the internal
// user key never leaves the service.
type Claims struct {
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	verifier IdentityVerifier
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, verifier IdentityVerifier, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
		cfg:      cfg,
	}
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*domain.TokenResponse, error) {
	profile, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.userRepo.GetByPublicID(ctx, profile.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &domain.User{
			ID:       uuid.New(),
			PublicID: profile.Subject,
			Name:     profile.Name,
			Email:    profile.Email,
			Image:    profile.Picture,
			Role:     string(domain.RoleUser),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.issueToken(user)
}

func (s *authService) Refresh(ctx context.Context, token string) (*domain.TokenResponse, error) {
	claims, err := s.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPublicID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.issueToken(user)
}

func (s *authService) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) GetUserByPublicID(ctx context.Context, publicID string) (*domain.User, error) {
	return s.userRepo.GetByPublicID(ctx, publicID)
}

func (s *authService) issueToken(user *domain.User) (*domain.TokenResponse, error) {
	now := time.Now()
	expiry := now.Add(s.cfg.JWTAccessExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.PublicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		AccessToken: signed,
		ExpiresAt:   expiry.Unix(),
	}, nil
}

// googleVerifier validates ID tokens against Google's tokeninfo endpoint and
// checks the audience claim against the configured OAuth client.
type googleVerifier struct {
	clientID   string
	httpClient *http.Client
}

func NewGoogleVerifier(clientID string) IdentityVerifier {
	return &googleVerifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	endpoint := "https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidGoogleToken
	}

	var info struct {
		Sub     string `json:"sub"`
		Aud     string `json:"aud"`
		Exp     string `json:"exp"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	if info.Aud != v.clientID {
		return nil, ErrInvalidGoogleToken
	}
	if exp, err := strconv.ParseInt(info.Exp, 10, 64); err != nil || exp < time.Now().Unix() {
		return nil, ErrInvalidGoogleToken
	}

	return &GoogleProfile{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
