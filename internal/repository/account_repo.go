// filepath: internal/repository/account_repo.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Popap2/forymusic/internal/models"
)

// ErrAccountExists is returned when registering an email that is already taken.
var ErrAccountExists = errors.New("account already exists")

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountCreateArgs is the input for creating accounts in the database layer.
// It is separate from models.Account to carry the plaintext password for
// the one place it is hashed.
type AccountCreateArgs struct {
	Email    string
	Password string
}

// CreateAccount hashes the password and inserts a new account row with
// empty preference collections. The caller normalizes the email first;
// the UNIQUE index enforces case-insensitive uniqueness on top of that.
func (s *Repository) CreateAccount(args *AccountCreateArgs) (*models.Account, error) {
	s.Logger.Debugf("CreateAccount: Hashing password for '%s'", args.Email)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(args.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (email, password_hash, likes, playlists)
		VALUES (?, ?, '[]', '[]')
	`
	result, err := s.DB.Exec(query, args.Email, string(hashedPassword))
	if err != nil {
		// Check for UNIQUE constraint violation
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	s.Logger.Debugf("CreateAccount: Account '%s' created with ID %d", args.Email, id)

	return &models.Account{
		ID:           id,
		Email:        args.Email,
		PasswordHash: string(hashedPassword),
		Likes:        models.Likes{},
		Playlists:    models.Playlists{},
	}, nil
}

// GetAccountByEmail retrieves an account by its normalized email, using a
// cache for performance.
func (s *Repository) GetAccountByEmail(email string) (*models.Account, error) {
	cacheKey := fmt.Sprintf("account_by_email_%s", email)
	if account, found := s.Cache.Get(cacheKey); found {
		return account.(*models.Account), nil
	}

	s.Logger.Debugf("GetAccountByEmail: CACHE MISS for '%s'. Querying DB.", email)
	query := "SELECT id, email, password_hash, likes, playlists FROM users WHERE email = ?"
	account, err := s.scanAccount(s.DB.QueryRow(query, email))
	if err != nil {
		return nil, err
	}

	s.Cache.Set(cacheKey, account, cacheTTL)
	s.Cache.Set(fmt.Sprintf("account_by_id_%d", account.ID), account, cacheTTL)

	return account, nil
}

// GetAccountByID retrieves an account by its ID, using a cache for performance.
func (s *Repository) GetAccountByID(id int64) (*models.Account, error) {
	cacheKey := fmt.Sprintf("account_by_id_%d", id)
	if account, found := s.Cache.Get(cacheKey); found {
		return account.(*models.Account), nil
	}

	s.Logger.Debugf("GetAccountByID: CACHE MISS for ID %d. Querying DB.", id)
	query := "SELECT id, email, password_hash, likes, playlists FROM users WHERE id = ?"
	account, err := s.scanAccount(s.DB.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	s.Cache.Set(cacheKey, account, cacheTTL)
	s.Cache.Set(fmt.Sprintf("account_by_email_%s", account.Email), account, cacheTTL)

	return account, nil
}

// UpdateAccountLikes replaces the full likes collection for an account.
// Last write wins; there is no merge.
func (s *Repository) UpdateAccountLikes(id int64, likes models.Likes) error {
	likesJSON, err := likes.ToJSON()
	if err != nil {
		return err
	}
	return s.replacePreferenceColumn(id, "likes", likesJSON)
}

// UpdateAccountPlaylists replaces the full playlists collection for an account.
func (s *Repository) UpdateAccountPlaylists(id int64, playlists models.Playlists) error {
	playlistsJSON, err := playlists.ToJSON()
	if err != nil {
		return err
	}
	return s.replacePreferenceColumn(id, "playlists", playlistsJSON)
}

// replacePreferenceColumn writes one of the JSON preference columns and
// invalidates the account's cache entries. A missing row surfaces as
// ErrAccountNotFound rather than a silent no-op.
func (s *Repository) replacePreferenceColumn(id int64, column, value string) error {
	query := fmt.Sprintf("UPDATE users SET %s = ? WHERE id = ?", column)
	result, err := s.DB.Exec(query, value, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	s.invalidateAccountCache(id)
	return nil
}

// invalidateAccountCache drops both cache keys for an account.
func (s *Repository) invalidateAccountCache(id int64) {
	cacheKey := fmt.Sprintf("account_by_id_%d", id)
	if cached, found := s.Cache.Get(cacheKey); found {
		account := cached.(*models.Account)
		s.Cache.Delete(fmt.Sprintf("account_by_email_%s", account.Email))
	}
	s.Cache.Delete(cacheKey)
}

// scanAccount reads one account row and decodes the preference columns.
func (s *Repository) scanAccount(row *sql.Row) (*models.Account, error) {
	var (
		account       models.Account
		likesJSON     string
		playlistsJSON string
	)
	if err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &likesJSON, &playlistsJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	likes, err := models.LikesFromJSON(likesJSON)
	if err != nil {
		return nil, fmt.Errorf("corrupt likes column for account %d: %w", account.ID, err)
	}
	playlists, err := models.PlaylistsFromJSON(playlistsJSON)
	if err != nil {
		return nil, fmt.Errorf("corrupt playlists column for account %d: %w", account.ID, err)
	}
	account.Likes = likes
	account.Playlists = playlists

	return &account, nil
}
