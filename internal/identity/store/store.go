package store

import (
	"context"
	"errors"

	"github.com/corrida-app/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and let the Tx variant
// reuse the same query code inside a transaction.
type Store interface {
	Users() Users
	Wallets() Wallets

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Multi-step
	// mutations (create user + wallet, add role + wallet) go through here so
	// both steps commit or neither does.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user (with roles) by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByCPF is the login lookup; CPF is the unique login key.
	GetUserByCPF(ctx context.Context, cpf string) (domain.User, error)

	// GetUserByEmail is used for the registration uniqueness check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and its role rows (id is provided by the
	// app via ULID). A duplicate CPF or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users with their roles.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// AddRole records an additional role grant. Idempotent at the SQL level;
	// the "already holds role" conflict is checked by the service first.
	AddRole(ctx context.Context, userID string, role domain.Role) error

	// UpdateProfile mutates name and, when non-empty, phone_number.
	UpdateProfile(ctx context.Context, userID, name, phoneNumber string) error

	// SetPhoneNumber sets phone_number and bumps updated_at.
	SetPhoneNumber(ctx context.Context, userID, phoneNumber string) error

	// SetStatus updates the lifecycle status.
	SetStatus(ctx context.Context, userID string, status domain.Status) error

	// SetDriverDocuments stores the uploaded CNH and car document URLs.
	SetDriverDocuments(ctx context.Context, userID, cnhURL, carDocumentURL string) error
}

type Wallets interface {
	// GetWallet fetches the wallet for a (user, type) pair.
	GetWallet(ctx context.Context, userID string, t domain.WalletType) (domain.Wallet, error)

	// CreateWallet inserts a wallet. The insert is an upsert keyed on
	// (user_id, type): if the wallet already exists nothing happens and no
	// error is returned, making wallet creation idempotent under races.
	CreateWallet(ctx context.Context, w domain.Wallet) error
}
