package app

import (
	"fmt"

	"carlog/pkg/auth"
	"carlog/pkg/domain"
)

// Login validates admin credentials and issues a session token.
func (a *App) Login(email, password string) (domain.Admin, string, error) {
	admin, ok, err := a.store.GetAdminByEmail(normalizeEmail(email))
	if err != nil {
		return domain.Admin{}, "", fmt.Errorf("fetch admin: %w", err)
	}
	if !ok {
		return domain.Admin{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, admin.PasswordHash) {
		return domain.Admin{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(admin.ID)
	if err != nil {
		return domain.Admin{}, "", fmt.Errorf("issue token: %w", err)
	}
	return admin, token, nil
}

// Logout revokes the presented token.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// AdminFromToken resolves an admin from a session token. A false result means
// the token is invalid, revoked, or orphaned; errors report session-store or
// database failures, not bad credentials.
func (a *App) AdminFromToken(token string) (domain.Admin, bool, error) {
	id, ok, err := a.sessions.AdminIDByToken(token)
	if err != nil {
		return domain.Admin{}, false, fmt.Errorf("resolve token: %w", err)
	}
	if !ok {
		return domain.Admin{}, false, nil
	}
	admin, found, err := a.store.GetAdminByID(id)
	if err != nil {
		return domain.Admin{}, false, fmt.Errorf("fetch admin: %w", err)
	}
	if !found {
		return domain.Admin{}, false, nil
	}
	return admin, true, nil
}
