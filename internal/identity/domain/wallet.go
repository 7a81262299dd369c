package domain

import "time"

// WalletType is the financial-category counterpart to a functional role.
// ADMIN maps to the shared COMPANY wallet type.
type WalletType string

const (
	WalletPassenger  WalletType = "PASSENGER"
	WalletDriver     WalletType = "DRIVER"
	WalletCompany    WalletType = "COMPANY"
	WalletInfluencer WalletType = "INFLUENCER"
)

// WalletTypeForRole maps a granted role to the wallet type created alongside it.
func WalletTypeForRole(r Role) WalletType {
	switch r {
	case RoleDriver:
		return WalletDriver
	case RoleAdmin:
		return WalletCompany
	case RoleInfluencer:
		return WalletInfluencer
	default:
		return WalletPassenger
	}
}

// Wallet is a per-(user, type) financial account. At most one wallet exists
// per (UserID, Type) pair; creation is idempotent.
type Wallet struct {
	ID        string
	UserID    string
	Type      WalletType
	Balance   int64 // cents
	CreatedAt time.Time
	UpdatedAt time.Time
}
