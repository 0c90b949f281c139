package database

import (
	"context"
	"errors"

	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/config"
	"golang.org/x/crypto/bcrypt"
)

// InitSuperAdmin creates the configured operator account if it does not exist yet.
// An existing account is left untouched.
func InitSuperAdmin(ctx context.Context, db Database, cfg *config.SuperAdminConfig) (*User, bool, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, false, nil
	}
	existing, err := db.GetUserByUsername(ctx, cfg.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	admin := &User{
		Name:         cfg.Username,
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         cnst.RoleAdmin,
	}
	if err := db.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			// created concurrently by another replica
			existing, getErr := db.GetUserByUsername(ctx, cfg.Username)
			return existing, false, getErr
		}
		return nil, false, err
	}
	return admin, true, nil
}
