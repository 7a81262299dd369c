package sqlite

import (
	"context"
	"database/sql"

	"github.com/corrida-app/identity/internal/identity/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, cpf, password_hash, image_url, phone_number,
	cnh_image_url, car_document_image_url, status, balance, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUserWithRoles(ctx, row)
}

func (r *usersRepo) GetUserByCPF(ctx context.Context, cpf string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE cpf = ?`, cpf)
	return r.scanUserWithRoles(ctx, row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return r.scanUserWithRoles(ctx, row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, cpf, password_hash, image_url, phone_number,
			cnh_image_url, car_document_image_url, status, balance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, mapStringNull(u.Email), u.CPF, u.PasswordHash,
		u.ImageURL, u.PhoneNumber, u.CNHImageURL, u.CarDocumentImageURL,
		string(u.Status), u.Balance,
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, role := range u.Roles {
		if err := r.AddRole(ctx, u.ID, role); err != nil {
			return err
		}
	}
	return nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One pass over user_roles instead of a query per user.
	roleRows, err := r.db.QueryContext(ctx, `SELECT user_id, role FROM user_roles`)
	if err != nil {
		return nil, err
	}
	defer roleRows.Close()

	rolesByUser := make(map[string]domain.RoleSet)
	for roleRows.Next() {
		var userID, tag string
		if err := roleRows.Scan(&userID, &tag); err != nil {
			return nil, err
		}
		if role, ok := domain.ParseRole(tag); ok {
			rolesByUser[userID] = append(rolesByUser[userID], role)
		}
	}
	if err := roleRows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Roles = rolesByUser[users[i].ID]
	}
	return users, nil
}

func (r *usersRepo) AddRole(ctx context.Context, userID string, role domain.Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		ON CONFLICT (user_id, role) DO NOTHING`,
		userID, string(role),
	)
	return err
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, name, phoneNumber string) error {
	if phoneNumber == "" {
		_, err := r.db.ExecContext(ctx, `
			UPDATE users SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			name, userID)
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = ?, phone_number = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, phoneNumber, userID)
	return err
}

func (r *usersRepo) SetPhoneNumber(ctx context.Context, userID, phoneNumber string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET phone_number = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		phoneNumber, userID)
	return err
}

func (r *usersRepo) SetStatus(ctx context.Context, userID string, status domain.Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(status), userID)
	return err
}

func (r *usersRepo) SetDriverDocuments(ctx context.Context, userID, cnhURL, carDocumentURL string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET cnh_image_url = ?, car_document_image_url = ?,
			updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		cnhURL, carDocumentURL, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u      domain.User
		email  sql.NullString
		status string
	)
	err := row.Scan(
		&u.ID, &u.Name, &email, &u.CPF, &u.PasswordHash, &u.ImageURL,
		&u.PhoneNumber, &u.CNHImageURL, &u.CarDocumentImageURL, &status,
		&u.Balance, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Email = mapNullString(email)
	u.Status = domain.Status(status)
	return u, nil
}

func (r *usersRepo) scanUserWithRoles(ctx context.Context, row *sql.Row) (domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT role FROM user_roles WHERE user_id = ? ORDER BY role`, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return domain.User{}, err
		}
		if role, ok := domain.ParseRole(tag); ok {
			u.Roles = append(u.Roles, role)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
