package service

import (
	"context"
	"errors"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/repository"
	"github.com/Baaaki/resume-backend/internal/utils"
	"github.com/Baaaki/resume-backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const TokenTypeBearer = "Bearer"

// TokenPair is returned by every successful credential operation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	// ExpiresIn is the access token lifetime in milliseconds.
	ExpiresIn int64
}

type AuthService struct {
	store  *repository.Store
	issuer *utils.TokenIssuer
	codec  *utils.TokenCodec
}

func NewAuthService(store *repository.Store, issuer *utils.TokenIssuer) *AuthService {
	return &AuthService{
		store:  store,
		issuer: issuer,
		codec:  issuer.Codec(),
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*TokenPair, error) {
	start := time.Now()

	logger.Log.Debug("Processing user registration", zap.String("email", email))

	hashStart := time.Now()
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}
	hashDuration := time.Since(hashStart)

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         models.RoleUser,
		Enabled:      true,
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Users.ExistsByEmail(email)
		if err != nil {
			return err
		}
		if exists {
			return duplicate("Email already registered: %s", email)
		}
		return tx.Users.CreateUser(user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = duplicate("Email already registered: %s", email)
	}
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			logger.Log.Warn("Registration rejected: email already exists", zap.String("email", email))
		} else {
			logger.Log.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", email),
		zap.Duration("hash_duration", hashDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	start := time.Now()

	logger.Log.Debug("Processing user login", zap.String("email", email))

	var user *models.User
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users.GetUserByEmail(email)
		return err
	})
	if err != nil {
		logger.Log.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found", zap.String("email", email))
		return nil, newError(ErrInvalidCredentials, "Invalid email or password")
	}

	verifyStart := time.Now()
	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Stored password hash is unreadable", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, newError(ErrInvalidCredentials, "Invalid email or password")
	}
	verifyDuration := time.Since(verifyStart)

	if !valid {
		logger.Log.Warn("Login failed: invalid password", zap.String("email", email), zap.Uint("user_id", user.ID))
		return nil, newError(ErrInvalidCredentials, "Invalid email or password")
	}
	if !user.Enabled {
		logger.Log.Warn("Login failed: account disabled", zap.Uint("user_id", user.ID))
		return nil, newError(ErrInvalidCredentials, "Account is disabled")
	}

	s.afterLogin(ctx, user, password)

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("User logged in successfully",
		zap.Uint("user_id", user.ID),
		zap.Duration("password_verify_duration", verifyDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return pair, nil
}

// Refresh issues a new access token. The refresh token itself is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		logger.Log.Warn("Refresh rejected: invalid refresh token", zap.Error(err))
		return nil, newError(ErrInvalidCredentials, "Invalid refresh token")
	}

	user, err := s.lookup(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.Log.Warn("Refresh rejected: user not found", zap.String("email", claims.Subject))
		return nil, newError(ErrUnknownIdentity, "User not found")
	}
	if !s.tokenValidFor(claims, user) {
		logger.Log.Warn("Refresh rejected: token not valid for user", zap.Uint("user_id", user.ID))
		return nil, newError(ErrInvalidCredentials, "Invalid refresh token")
	}

	access, err := s.issuer.IssueAccessToken(user.Email)
	if err != nil {
		logger.Log.Error("Failed to issue access token", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Access token refreshed", zap.Uint("user_id", user.ID))

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    s.issuer.AccessTTL().Milliseconds(),
	}, nil
}

// Authenticate resolves a bearer token to its user. Any failure, including
// token errors, is returned so the caller can decide to continue anonymously.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	user, err := s.lookup(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newError(ErrUnknownIdentity, "User not found")
	}
	if !s.tokenValidFor(claims, user) {
		return nil, utils.ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) tokenValidFor(claims *utils.Claims, user *models.User) bool {
	return claims.Subject == user.Email && user.Enabled && time.Now().Before(claims.ExpiresAt)
}

func (s *AuthService) lookup(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := s.store.ReadOnly(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users.GetUserByEmail(email)
		return err
	})
	if err != nil {
		logger.Log.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
	}
	return user, err
}

// afterLogin records the login and upgrades legacy password hashes. Failures
// are logged only, they never fail the login.
func (s *AuthService) afterLogin(ctx context.Context, user *models.User, password string) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.TouchLastLogin(user.ID, time.Now().UTC()); err != nil {
			return err
		}
		if !utils.NeedsRehash(user.PasswordHash) {
			return nil
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		logger.Log.Info("Upgrading legacy password hash", zap.Uint("user_id", user.ID))
		return tx.Users.UpdatePasswordHash(user.ID, hash)
	})
	if err != nil {
		logger.Log.Warn("Failed to record login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}

func (s *AuthService) issuePair(subject string) (*TokenPair, error) {
	access, err := s.issuer.IssueAccessToken(subject)
	if err != nil {
		logger.Log.Error("Failed to issue access token", zap.String("email", subject), zap.Error(err))
		return nil, err
	}
	refresh, err := s.issuer.IssueRefreshToken(subject)
	if err != nil {
		logger.Log.Error("Failed to issue refresh token", zap.String("email", subject), zap.Error(err))
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    s.issuer.AccessTTL().Milliseconds(),
	}, nil
}
