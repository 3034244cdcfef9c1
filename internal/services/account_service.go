// filepath: internal/services/account_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Popap2/forymusic/internal/models"
	"github.com/Popap2/forymusic/internal/repository"
	"github.com/Popap2/forymusic/internal/shared"
)

// bcrypt silently works on at most 72 bytes, so longer passwords are
// rejected up front instead of being truncated.
const maxPasswordLen = 72

// Compile-time check to ensure interface is implemented
var _ AccountService = (*accountService)(nil)

// accountService handles business logic for listener accounts.
type accountService struct {
	Repo   *repository.Repository
	Logger *logrus.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo *repository.Repository, logger *logrus.Logger) *accountService {
	return &accountService{Repo: repo, Logger: logger}
}

// Register creates a new account with freshly hashed credentials and
// empty preference collections.
func (s *accountService) Register(email, password string) (*models.Account, error) {
	email = shared.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(password) > maxPasswordLen {
		return nil, fmt.Errorf("%w: password exceeds %d bytes", ErrValidation, maxPasswordLen)
	}

	s.Logger.Debugf("AccountService: registering '%s'", email)
	account, err := s.Repo.CreateAccount(&repository.AccountCreateArgs{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
		}
		s.Logger.Errorf("AccountService: failed to register '%s': %v", email, err)
		return nil, fmt.Errorf("failed to register account: %w", err)
	}
	return account, nil
}

// Authenticate verifies credentials and returns the matching account.
// A missing account and a wrong password are indistinguishable to the
// caller so login probing reveals nothing about registered emails.
func (s *accountService) Authenticate(email, password string) (*models.Account, error) {
	email = shared.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	account, err := s.Repo.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// GetAccountByID retrieves an account with decoded preferences.
func (s *accountService) GetAccountByID(id int64) (*models.Account, error) {
	account, err := s.Repo.GetAccountByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	return account, nil
}

// ReplaceLikes swaps the stored likes list for the given one. The list
// replaces wholesale; an empty list clears.
func (s *accountService) ReplaceLikes(id int64, likes models.Likes) (*models.Account, error) {
	for _, ref := range likes {
		if strings.TrimSpace(ref) == "" {
			return nil, fmt.Errorf("%w: likes entries must be non-empty", ErrValidation)
		}
	}

	if err := s.Repo.UpdateAccountLikes(id, likes); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
		}
		s.Logger.Errorf("AccountService: failed to replace likes for account %d: %v", id, err)
		return nil, fmt.Errorf("failed to replace likes: %w", err)
	}

	// Re-fetch so the caller sees the final stored state.
	return s.GetAccountByID(id)
}

// ReplacePlaylists swaps the stored playlists for the given ones.
func (s *accountService) ReplacePlaylists(id int64, playlists models.Playlists) (*models.Account, error) {
	for _, pl := range playlists {
		if strings.TrimSpace(pl.Name) == "" {
			return nil, fmt.Errorf("%w: playlist names must be non-empty", ErrValidation)
		}
	}

	if err := s.Repo.UpdateAccountPlaylists(id, playlists); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
		}
		s.Logger.Errorf("AccountService: failed to replace playlists for account %d: %v", id, err)
		return nil, fmt.Errorf("failed to replace playlists: %w", err)
	}

	return s.GetAccountByID(id)
}

// validateEmail applies a minimal shape check. Anything beyond one
// "@" with text on both sides is between the mail system and the user.
func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(email) > 254 {
		return fmt.Errorf("%w: email exceeds 254 characters", ErrValidation)
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return fmt.Errorf("%w: email address is malformed", ErrValidation)
	}
	return nil
}
