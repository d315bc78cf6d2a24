package repository

import (
	"database/sql"

	"blog-api/models"
)

type PostsRepository struct {
	db *sql.DB
}

func NewPostsRepository(db *sql.DB) *PostsRepository {
	return &PostsRepository{db: db}
}

// CreatePost inserts the post in a transaction. Content must already be
// sanitized by the caller; this layer never transforms it.
func (r *PostsRepository) CreatePost(userID int, title, content string) (*models.Post, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var postID int
	err = tx.QueryRow(`
		INSERT INTO posts (title, content, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`, title, content, userID).Scan(&postID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetPostByID(postID)
}

// GetPostByID returns the post with its author joined, or (nil, nil)
// when it does not exist.
func (r *PostsRepository) GetPostByID(id int) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRow(`
		SELECT p.id, p.title, p.content, p.created_at, p.user_id, u.username
		FROM posts p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UserID, &p.AuthorUsername)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// GetPosts returns one page of posts ordered newest first, with authors
// eager-joined, plus the total post count.
func (r *PostsRepository) GetPosts(limit, offset int) ([]models.Post, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(`
		SELECT p.id, p.title, p.content, p.created_at, p.user_id, u.username
		FROM posts p
		INNER JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		err = rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UserID, &p.AuthorUsername)
		if err != nil {
			return nil, 0, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
