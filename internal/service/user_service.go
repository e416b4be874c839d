package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nemosite/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned for unknown user ids.
	ErrUserNotFound = errors.New("user not found")
)

// UserService is the credential store for the maintainer account.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// UserUpdateInput describes the mutable account-settings fields. An empty
// Password keeps the stored hash untouched.
type UserUpdateInput struct {
	Email            string
	Name             string
	AboutMe          string
	Password         string
	ProfileImagePath string
}

// Create registers a new account with a bcrypt-hashed password. An empty
// name falls back to "user", matching the provisioning script behaviour.
func (s *UserService) Create(email, password, name string) (*db.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidCredentials)
	}

	var existing db.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		name = "user"
	}

	user := db.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Verify checks an email/password pair and returns the matching user.
func (s *UserService) Verify(email, password string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(id string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByEmail fetches a user by email, typically for document author lookup.
func (s *UserService) GetByEmail(email string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// Update overwrites the mutable profile fields. The password is only
// re-hashed when a new one is supplied; changing the email to one already
// registered by another account fails with ErrDuplicateEmail.
func (s *UserService) Update(id string, input UserUpdateInput) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	newEmail := strings.TrimSpace(input.Email)
	if newEmail != "" && newEmail != user.Email {
		var other db.User
		err := s.db.Where("email = ? AND id <> ?", newEmail, id).First(&other).Error
		if err == nil {
			return nil, ErrDuplicateEmail
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = newEmail
	}

	user.Name = strings.TrimSpace(input.Name)
	user.AboutMe = input.AboutMe

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if strings.TrimSpace(input.ProfileImagePath) != "" {
		user.ProfileImagePath = strings.TrimSpace(input.ProfileImagePath)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
