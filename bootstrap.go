package hobbies

import (
	"context"

	"github.com/goliatone/go-errors"
)

// EnsureAdminUser creates the admin account on first boot. An existing user
// with the configured email is left untouched. With no password configured
// the account gets a random hash, the password must then be reset out of
// band before the account is usable.
func EnsureAdminUser(ctx context.Context, repo RepositoryManager, cfg *AppConfig, logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	if cfg.AdminEmail == "" {
		return nil
	}

	if _, err := repo.Users().GetByIdentifier(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.IsNotFound(err) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to look up admin user")
	}

	hash := RandomPasswordHash()
	if cfg.AdminPassword != "" {
		var err error
		if hash, err = HashPassword(cfg.AdminPassword); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to hash admin password")
		}
	}

	admin := &User{
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        cfg.AdminEmail,
		Role:         RoleAdmin,
		Status:       UserStatusActive,
		PasswordHash: hash,
	}

	if _, err := repo.Users().Register(ctx, admin); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create admin user")
	}

	logger.Info("created admin user", "email", cfg.AdminEmail)
	return nil
}
