package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/metrics"
	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
	"github.com/ArowuTest/conomy-backend/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultCodeAttempts = 5

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl registers and signs in users
type AuthServiceImpl struct {
	tx           repositories.Transactor
	userRepo     repositories.UserRepository
	referrals    ReferralService
	tokens       *jwt.TokenService
	codeAttempts int
	newID        func() string
}

// AuthOption configures an AuthServiceImpl
type AuthOption func(*AuthServiceImpl)

// WithIDGenerator replaces the generator used for new user IDs
func WithIDGenerator(newID func() string) AuthOption {
	return func(s *AuthServiceImpl) { s.newID = newID }
}

// WithCodeAttempts bounds how many identifiers are tried before a referral
// code collision fails the registration
func WithCodeAttempts(n int) AuthOption {
	return func(s *AuthServiceImpl) { s.codeAttempts = n }
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(
	tx repositories.Transactor,
	userRepo repositories.UserRepository,
	referrals ReferralService,
	tokens *jwt.TokenService,
	opts ...AuthOption,
) *AuthServiceImpl {
	s := &AuthServiceImpl{
		tx:           tx,
		userRepo:     userRepo,
		referrals:    referrals,
		tokens:       tokens,
		codeAttempts: defaultCodeAttempts,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates the account and links the referrer, if any, in one transaction
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (resp *models.AuthResponse, err error) {
	defer func() { metrics.RecordOperation("register", outcome(err)) }()

	if err := validateRegistration(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *models.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return ErrEmailInUse
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		id, code, err := s.allocateIdentity(ctx)
		if err != nil {
			return err
		}

		user = &models.User{
			ID:           id,
			FullName:     strings.TrimSpace(req.FullName),
			Email:        email,
			Contact:      strings.TrimSpace(req.Contact),
			District:     strings.TrimSpace(req.District),
			ReferralCode: code,
			PasswordHash: string(hash),
		}
		referrer, err := s.referrals.RegisterReferral(ctx, id, user.FullName, req.ReferredBy)
		if err != nil {
			return err
		}
		if referrer != nil {
			referredBy := referrer.ReferralCode
			user.ReferredBy = &referredBy
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			switch {
			case errors.Is(err, repositories.ErrDuplicateEmail):
				return ErrEmailInUse
			case errors.Is(err, repositories.ErrDuplicateReferralCode):
				return ErrReferralCodeCollision
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmailInUse) {
			slog.Error("Registration failed", "error", err, "email", email)
		}
		return nil, storeErr("register", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role())
	if err != nil {
		return nil, err
	}
	slog.Info("User registered", "userId", user.ID, "referralCode", user.ReferralCode, "referred", user.ReferredBy != nil)
	return &models.AuthResponse{Token: token, User: user}, nil
}

// allocateIdentity picks a fresh user ID whose derived referral code is unused.
func (s *AuthServiceImpl) allocateIdentity(ctx context.Context) (string, string, error) {
	for attempt := 1; attempt <= s.codeAttempts; attempt++ {
		id := s.newID()
		code := DeriveReferralCode(id)
		existing, err := s.userRepo.FindByReferralCode(ctx, code)
		if err != nil {
			return "", "", err
		}
		if len(existing) == 0 {
			return id, code, nil
		}
		slog.Warn("Referral code collision, retrying with a new identifier", "code", code, "attempt", attempt)
	}
	return "", "", ErrReferralCodeCollision
}

// Login checks the credentials and issues a session token
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (resp *models.AuthResponse, err error) {
	defer func() { metrics.RecordOperation("login", outcome(err)) }()

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeErr("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role())
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Profile returns the signed-in user's "Me" view
func (s *AuthServiceImpl) Profile(ctx context.Context, sess Session) (*models.Profile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}
	shortID := user.ID
	if len(shortID) > ReferralCodeLength {
		shortID = shortID[:ReferralCodeLength]
	}
	return &models.Profile{
		User:        user,
		DisplayName: user.DisplayName(),
		ShortID:     strings.ToUpper(shortID),
	}, nil
}

// Authenticate resolves a bearer token into a Session
func (s *AuthServiceImpl) Authenticate(token string) (Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return Session{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

func validateRegistration(req *models.RegisterRequest) error {
	if req == nil {
		return invalid("body", "registration details are required")
	}
	trimmed := *req
	trimmed.FullName = strings.TrimSpace(req.FullName)
	trimmed.Email = strings.TrimSpace(req.Email)
	trimmed.Contact = strings.TrimSpace(req.Contact)
	trimmed.District = strings.TrimSpace(req.District)
	return validateStruct(&trimmed)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
