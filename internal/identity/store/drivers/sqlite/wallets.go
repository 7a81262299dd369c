package sqlite

import (
	"context"

	"github.com/corrida-app/identity/internal/identity/domain"
)

type walletsRepo struct {
	db dbtx
}

func (r *walletsRepo) GetWallet(ctx context.Context, userID string, t domain.WalletType) (domain.Wallet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, balance, created_at, updated_at
		FROM wallets WHERE user_id = ? AND type = ?`,
		userID, string(t))

	var (
		w   domain.Wallet
		typ string
	)
	err := row.Scan(&w.ID, &w.UserID, &typ, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return domain.Wallet{}, mapNotFound(err)
	}
	w.Type = domain.WalletType(typ)
	return w, nil
}

func (r *walletsRepo) CreateWallet(ctx context.Context, w domain.Wallet) error {
	// Keyed upsert: a concurrent create for the same (user_id, type) leaves
	// exactly one row and neither caller sees an error.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wallets (id, user_id, type, balance) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, type) DO NOTHING`,
		w.ID, w.UserID, string(w.Type), w.Balance,
	)
	return err
}
