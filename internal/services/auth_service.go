package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Chinmay2660/tracker-api/internal/constants"
	"github.com/Chinmay2660/tracker-api/internal/models"
	"github.com/Chinmay2660/tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// defaultColumns seeds a new account's pipeline. The Applied column carries
// the applied role so its entered dates mirror the job's applied date.
var defaultColumns = []models.Column{
	{Title: constants.AppliedColumnTitle, Role: models.ColumnRoleApplied, Order: 0},
	{Title: "Interviewing", Role: models.ColumnRoleGeneric, Order: 1},
	{Title: "Offer", Role: models.ColumnRoleGeneric, Order: 2},
	{Title: "Rejected", Role: models.ColumnRoleGeneric, Order: 3},
}

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	columnRepo repository.ColumnRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, columnRepo repository.ColumnRepository) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		columnRepo: columnRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// Signup creates a new user along with the default pipeline columns.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	if err := s.seedDefaultColumns(user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.PasswordHash == "" {
		// OAuth-only account
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GoogleProfile is the subset of the Google userinfo response the service
// needs to resolve an account.
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// LoginWithGoogle resolves a Google profile to a local account: lookup by
// OAuth subject id first, then by email (linking the subject to an existing
// account), creating the user on first login.
func (s *AuthService) LoginWithGoogle(profile GoogleProfile) (*models.User, error) {
	if profile.Subject == "" || profile.Email == "" {
		return nil, fmt.Errorf("incomplete google profile")
	}

	email := strings.ToLower(profile.Email)

	user, err := s.userRepo.FindByGoogleID(profile.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user, err = s.userRepo.FindByEmail(email)
	if err == nil {
		// Existing password account: link the Google identity to it.
		user.GoogleID = &profile.Subject
		if user.Name == "" {
			user.Name = profile.Name
		}
		if user.Picture == "" {
			user.Picture = profile.Picture
		}
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user = &models.User{
		Email:    email,
		Name:     profile.Name,
		Picture:  profile.Picture,
		GoogleID: &profile.Subject,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	if err := s.seedDefaultColumns(user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *AuthService) seedDefaultColumns(userID uint64) error {
	for _, col := range defaultColumns {
		col.UserID = userID
		if err := s.columnRepo.Create(&col); err != nil {
			return fmt.Errorf("failed to seed default columns: %w", err)
		}
	}
	return nil
}
