package database

import (
	"database/sql"
	"errors"
	"time"

	models "github.com/ERRORIK404/Scientific_Calculator/pkg/db_models"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

// AddExport сохраняет выгруженную историю пользователя и возвращает её id
func (h *DB) AddExport(login, fileName, content string, createdAt time.Time) (int64, error) {
	res, err := h.DB.Exec(
		"INSERT INTO exports (user_login, file_name, content, created_at) VALUES (?, ?, ?, ?)",
		login, fileName, content, createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetUserExports возвращает выгрузки без содержимого, новые первыми
func (h *DB) GetUserExports(login string) ([]models.Export, error) {
	rows, err := h.DB.Query(
		"SELECT id, user_login, file_name, created_at FROM exports WHERE user_login = ? ORDER BY id DESC",
		login,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exports := []models.Export{}
	for rows.Next() {
		var (
			export    models.Export
			createdAt string
		)
		if err := rows.Scan(&export.ID, &export.UserLogin, &export.FileName, &createdAt); err != nil {
			return nil, err
		}
		if export.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		exports = append(exports, export)
	}
	return exports, rows.Err()
}

// GetExportByID отдаёт выгрузку только её владельцу
func (h *DB) GetExportByID(id int64, login string) (*models.Export, error) {
	var (
		export    models.Export
		createdAt string
	)
	err := h.DB.QueryRow(
		"SELECT id, user_login, file_name, content, created_at FROM exports WHERE id = ? AND user_login = ?",
		id, login,
	).Scan(&export.ID, &export.UserLogin, &export.FileName, &export.Content, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, locerr.ErrExportNotFound
	}
	if err != nil {
		return nil, err
	}
	if export.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	return &export, nil
}
