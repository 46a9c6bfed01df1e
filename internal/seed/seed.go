// Package seed provisions the default accounts the back office ships with.
package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/repository"
)

const bcryptCost = 10

// defaultUsers are created at first boot. They log in with a known credential
// and first_login cleared so they can log in straight away.
var defaultUsers = []struct {
	username string
	password string
	role     model.Role
	fullName string
}{
	{"admin", "admin123", model.RoleAdmin, "Administrator"},
	{"booker", "booker123", model.RoleBooker, "Booker User"},
}

// EnsureDefaultUsers creates the default admin and booker accounts if they do
// not exist yet. Existing accounts are left untouched.
func EnsureDefaultUsers(ctx context.Context, userRepo repository.UserRepository) error {
	for _, def := range defaultUsers {
		_, err := userRepo.FindByUsername(ctx, def.username)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("check user %s: %w", def.username, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(def.password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", def.username, err)
		}

		user := &model.User{
			Username:     def.username,
			PasswordHash: string(hashed),
			Role:         def.role,
			FullName:     def.fullName,
			FirstLogin:   false,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", def.username, err)
		}
	}
	return nil
}
