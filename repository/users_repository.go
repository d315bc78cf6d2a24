package repository

import (
	"database/sql"
	"errors"

	"blog-api/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicate reports a username or email uniqueness violation.
var ErrDuplicate = errors.New("username or email already exists")

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// CreateUser hashes the password and inserts the user in a single
// transaction. Uniqueness is pre-checked inside the transaction and also
// enforced by the unique constraints; either violation surfaces as
// ErrDuplicate.
func (r *UsersRepository) CreateUser(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1 OR email = $2
		)`, username, email).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	var userID int
	err = tx.QueryRow(`
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`, username, email, string(hash)).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetUserByID(userID)
}

// VerifyPassword runs the bcrypt comparison. A malformed stored hash
// fails closed (returns false).
func (r *UsersRepository) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (r *UsersRepository) GetUserByID(id int) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UsersRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UsersRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username))
}

func (r *UsersRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
