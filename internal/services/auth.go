package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/ctxutil"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterProvider(ctx context.Context, provider *types.Provider) error
	LoginProvider(ctx context.Context, email, password string) (string, string, error)
	RefreshProvider(ctx context.Context) (string, string, error)
	LogoutProvider(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	providerRepo repos.ProviderRepo
	tokenRepo    repos.ProviderTokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	providerRepo repos.ProviderRepo,
	tokenRepo repos.ProviderTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		providerRepo: providerRepo,
		tokenRepo:    tokenRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (as *authService) RegisterProvider(ctx context.Context, provider *types.Provider) error {
	provider.Email = strings.ToLower(strings.TrimSpace(provider.Email))
	provider.FirstName = strings.TrimSpace(provider.FirstName)
	provider.LastName = strings.TrimSpace(provider.LastName)
	provider.BusinessName = strings.TrimSpace(provider.BusinessName)

	if provider.Email == "" || provider.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	if provider.FirstName == "" || provider.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(provider.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	provider.Password = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := as.providerRepo.EmailExists(ctx, tx, provider.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return fmt.Errorf("email already registered")
		}
		provider.ID = uuid.New()
		if _, err := as.providerRepo.Create(ctx, tx, []*types.Provider{provider}); err != nil {
			if repos.IsUniqueViolation(err) {
				return fmt.Errorf("email already registered")
			}
			return fmt.Errorf("create provider: %w", err)
		}
		return nil
	})
}

func (as *authService) LoginProvider(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}

	providers, err := as.providerRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("fetch provider by email: %w", err)
	}
	if len(providers) == 0 {
		return "", "", fmt.Errorf("invalid email or password")
	}
	provider := providers[0]

	if err := bcrypt.CompareHashAndPassword([]byte(provider.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid email or password")
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One live session per provider: clear any prior token rows.
		found, err := as.tokenRepo.GetByProviderIDs(ctx, tx, []uuid.UUID{provider.ID})
		if err != nil {
			return fmt.Errorf("check provider tokens: %w", err)
		}
		if len(found) > 0 {
			ids := make([]uuid.UUID, 0, len(found))
			for _, t := range found {
				ids = append(ids, t.ID)
			}
			if err := as.tokenRepo.FullDeleteByIDs(ctx, tx, ids); err != nil {
				return fmt.Errorf("delete stale tokens: %w", err)
			}
		}

		tok, err := as.generateAccessToken(provider)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()

		row := types.ProviderToken{
			ID:           uuid.New(),
			ProviderID:   provider.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.tokenRepo.Create(ctx, tx, []*types.ProviderToken{&row}); err != nil {
			return fmt.Errorf("create provider token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshProvider(ctx context.Context) (string, string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return "", "", fmt.Errorf("no request data in context")
	}
	if rd.RefreshToken == "" {
		return "", "", fmt.Errorf("refresh token missing")
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.tokenRepo.GetByRefreshToken(ctx, tx, rd.RefreshToken)
		if err != nil {
			return fmt.Errorf("fetch refresh token: %w", err)
		}
		if existing == nil {
			return fmt.Errorf("unknown refresh token")
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.tokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
				as.log.Warn("delete expired refresh token", "error", err)
			}
			return fmt.Errorf("refresh token expired")
		}

		provider, err := as.providerRepo.GetByID(ctx, tx, existing.ProviderID)
		if err != nil {
			return fmt.Errorf("load provider for refresh: %w", err)
		}
		if provider == nil {
			return fmt.Errorf("no provider for refresh token")
		}

		tok, err := as.generateAccessToken(provider)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()

		row := types.ProviderToken{
			ID:           uuid.New(),
			ProviderID:   provider.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.tokenRepo.Create(ctx, tx, []*types.ProviderToken{&row}); err != nil {
			return fmt.Errorf("create provider token: %w", err)
		}
		if err := as.tokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("remove old refresh token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutProvider(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return fmt.Errorf("no request data in context")
	}
	if rd.TokenString == "" {
		return fmt.Errorf("token string missing")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := as.tokenRepo.GetByAccessToken(ctx, tx, rd.TokenString)
		if err != nil {
			return fmt.Errorf("find token: %w", err)
		}
		if found == nil {
			return nil
		}
		if err := as.tokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{found.ID}); err != nil {
			return fmt.Errorf("delete token: %w", err)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(provider *types.Provider) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   provider.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates an access token and stores the resulting
// request data on the context. A blank token passes through untouched so
// public routes can share the middleware.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	providerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid provider id in token: %w", err)
	}

	var refreshToken string
	if row, err := as.tokenRepo.GetByAccessToken(ctx, nil, tokenString); err != nil {
		as.log.Warn("fetch token row by access token", "error", err)
	} else if row != nil {
		refreshToken = row.RefreshToken
	}

	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		ProviderID:   providerID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
