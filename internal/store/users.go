package store

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const msgWrongCredentials = "the credentials you provided are wrong"

type UsersStore struct {
	db   DB
	cost int
}

func NewUsersStore(db DB) *UsersStore {
	return &UsersStore{db: db, cost: bcrypt.DefaultCost}
}

// AddUser stores a new user with a bcrypt-hashed password.
func (s *UsersStore) AddUser(ctx context.Context, in UserInput) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return "", fmt.Errorf("users: hash password: %w", err)
	}

	var id string
	err = s.db.QueryRow(ctx, `
		INSERT INTO users (id, username, password, fullname)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, newID("user"), in.Username, string(hash), in.Fullname).Scan(&id)
	if isUniqueViolation(err) {
		return "", apperror.Invariant("failed to add user, username already taken").Wrap(err)
	}
	if err != nil {
		return "", fmt.Errorf("users: insert: %w", err)
	}
	return id, nil
}

func (s *UsersStore) GetUserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRow(ctx, `
		SELECT id, username, fullname
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Fullname)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperror.NotFound("user not found")
	}
	if err != nil {
		return User{}, fmt.Errorf("users: get: %w", err)
	}
	return u, nil
}

// VerifyUserCredential returns the user id when the password matches. Unknown
// usernames and wrong passwords fail the same way.
func (s *UsersStore) VerifyUserCredential(ctx context.Context, username, password string) (string, error) {
	var id, hash string
	err := s.db.QueryRow(ctx, `
		SELECT id, password
		FROM users
		WHERE username = $1
	`, username).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperror.Authentication(msgWrongCredentials)
	}
	if err != nil {
		return "", fmt.Errorf("users: lookup credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", apperror.Authentication(msgWrongCredentials).Wrap(err)
	}
	return id, nil
}

func (s *UsersStore) GetUsersByUsername(ctx context.Context, query string) ([]User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, username, fullname
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username
	`, query)
	if err != nil {
		return nil, fmt.Errorf("users: search: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Fullname); err != nil {
			return nil, fmt.Errorf("users: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("users: rows: %w", err)
	}
	return users, nil
}
