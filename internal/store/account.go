// Package store holds the volatile in-process state of the application:
// accounts, rooms with their participant sets, and moderation bans.
// All state lives in mutex-guarded maps and is lost on restart.
package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pairdojo/pairdojo/internal/model"
)

// Store errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is at capacity")
)

// Directory owns account creation and lookup.
// Email uniqueness is enforced here, under the lock, so concurrent
// signups with the same address cannot both succeed.
type Directory struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
	byEmail  map[string]string // lower-cased email -> account id
}

// NewDirectory creates an empty account directory.
func NewDirectory() *Directory {
	return &Directory{
		accounts: make(map[string]*model.Account),
		byEmail:  make(map[string]string),
	}
}

// CreateAccount registers a new account.
// Returns ErrEmailTaken if the email is already present (case-insensitive).
func (d *Directory) CreateAccount(email, displayName, passwordHash string) (*model.Account, error) {
	key := strings.ToLower(email)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[key]; exists {
		return nil, ErrEmailTaken
	}

	account := &model.Account{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	d.accounts[account.ID] = account
	d.byEmail[key] = account.ID

	return account, nil
}

// GetByEmail looks up an account by email, case-insensitively.
func (d *Directory) GetByEmail(email string) (*model.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrAccountNotFound
	}

	account, ok := d.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// GetByID looks up an account by its id.
func (d *Directory) GetByID(id string) (*model.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}
