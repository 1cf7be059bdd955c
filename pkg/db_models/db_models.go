package db_models

import "time"

type User struct {
	ID           int
	Login        string
	PasswordHash string
}

// Export сохранённая выгрузка истории. В списках Content пустой
type Export struct {
	ID        int64     `json:"id"`
	UserLogin string    `json:"-"`
	FileName  string    `json:"file_name"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
