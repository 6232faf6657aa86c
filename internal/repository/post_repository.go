package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"postauth/internal/models"
)

const selectPosts = `
	SELECT p.post_id, p.title, p.content, p.created_at, p.updated_at, p.author_id,
	       u.username AS author_name, p.is_published, p.version
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, created_at, author_id, is_published, version)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING post_id
	`

	err := r.DB.QueryRowxContext(ctx, query,
		post.Title,
		post.Content,
		post.CreatedAt,
		post.AuthorID,
		post.IsPublished,
	).Scan(&post.PostID)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	post.Version = 1
	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := selectPosts + `WHERE p.post_id = $1`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", postID, err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetPublished(ctx context.Context) ([]models.Post, error) {
	query := selectPosts + `WHERE p.is_published ORDER BY p.created_at DESC, p.post_id DESC`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("get published posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByAuthorName(ctx context.Context, username string) ([]models.Post, error) {
	query := selectPosts + `WHERE u.normalized_username = $1 ORDER BY p.created_at DESC, p.post_id DESC`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, NormalizeUsername(username)); err != nil {
		return nil, fmt.Errorf("get posts of %s: %w", username, err)
	}

	return posts, nil
}

// Update writes title, content, publication state and updated_at, guarded by
// the version read with the post. A version mismatch (or a vanished row)
// yields ErrConcurrencyConflict.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = $1,
			content = $2,
			is_published = $3,
			updated_at = $4,
			version = version + 1
		WHERE post_id = $5 AND version = $6
	`

	result, err := r.DB.ExecContext(ctx, query,
		post.Title,
		post.Content,
		post.IsPublished,
		post.UpdatedAt,
		post.PostID,
		post.Version,
	)
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.PostID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrConcurrencyConflict
	}

	post.Version++
	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int64) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) Exists(ctx context.Context, postID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = $1)`

	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, postID); err != nil {
		return false, fmt.Errorf("check post %d exists: %w", postID, err)
	}

	return exists, nil
}
