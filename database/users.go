package database

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	models "github.com/ERRORIK404/Scientific_Calculator/pkg/db_models"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

func (h *DB) CreateUser(login, hashpassword string) error {
	_, err := h.DB.Exec(
		"INSERT INTO users (login, password_hash) VALUES (?, ?)",
		login, hashpassword,
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return locerr.ErrUserExists
	}
	return err
}

func (h *DB) GetUser(login string) (*models.User, error) {
	var user models.User
	err := h.DB.QueryRow(
		"SELECT id, login, password_hash FROM users WHERE login = ?",
		login,
	).Scan(&user.ID, &user.Login, &user.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, locerr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
