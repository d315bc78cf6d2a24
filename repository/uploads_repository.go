package repository

import (
	"database/sql"

	"blog-api/models"
)

type UploadsRepository struct {
	db *sql.DB
}

func NewUploadsRepository(db *sql.DB) *UploadsRepository {
	return &UploadsRepository{db: db}
}

// CreateUpload records an object stored in the uploads bucket. The id is
// the object key and primary key.
func (r *UploadsRepository) CreateUpload(id string, userID int, filename, contentType string, size int64) (*models.Upload, error) {
	_, err := r.db.Exec(`
		INSERT INTO uploads (id, user_id, filename, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, id, userID, filename, contentType, size)
	if err != nil {
		return nil, err
	}
	return r.GetUploadByID(id)
}

func (r *UploadsRepository) GetUploadByID(id string) (*models.Upload, error) {
	var u models.Upload
	err := r.db.QueryRow(`
		SELECT id, user_id, filename, content_type, size, created_at
		FROM uploads
		WHERE id = $1
	`, id).Scan(&u.ID, &u.UserID, &u.Filename, &u.ContentType, &u.Size, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}
