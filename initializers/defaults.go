package initializers

import (
	"errors"
	"log"
	"os"
	"strings"

	"blog-api/repository"
)

// EnsureAdminUser creates the administrator account from ADMIN_USERNAME,
// ADMIN_EMAIL and ADMIN_PASSWORD when all are set. It is idempotent: an
// already-existing account is left untouched.
func EnsureAdminUser(users *repository.UsersRepository) error {
	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		return nil
	}

	existing, err := users.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if _, err := users.CreateUser(username, email, password); err != nil {
		// A concurrent start may have created it between the check and
		// the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return err
	}

	log.Println("Admin user created:", username)
	return nil
}
