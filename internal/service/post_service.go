package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"postauth/internal/models"
	"postauth/internal/repository"
)

type PostService interface {
	CreatePost(ctx context.Context, req models.PostRequest, caller *models.Caller) (*models.Post, error)
	GetPost(ctx context.Context, postID int64, caller *models.Caller) (*models.Post, error)
	UpdatePost(ctx context.Context, postID int64, req models.PostRequest, caller *models.Caller) error
	DeletePost(ctx context.Context, postID int64, caller *models.Caller) error
	ListPublished(ctx context.Context) ([]models.Post, error)
	ListMine(ctx context.Context, caller *models.Caller) ([]models.Post, error)
}

type postService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	validator *Validator
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, validator *Validator, log logrus.FieldLogger) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

func (p *postService) CreatePost(ctx context.Context, req models.PostRequest, caller *models.Caller) (*models.Post, error) {
	if caller.IsAnonymous() {
		return nil, ErrUnauthorized
	}

	if err := p.validator.ValidatePost(req); err != nil {
		return nil, err
	}

	author, err := p.userRepo.GetUserByUsername(ctx, caller.Name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	post := &models.Post{
		Title:       req.Title,
		Content:     req.Content,
		CreatedAt:   p.now().UTC(),
		AuthorID:    author.UserID,
		AuthorName:  author.Username,
		IsPublished: req.IsPublished,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{"post_id": post.PostID, "author": author.Username}).Info("post created")
	return post, nil
}

// authorize loads the post and applies the access rule for action. Absence
// is reported before any access decision.
func (p *postService) authorize(ctx context.Context, action Action, postID int64, caller *models.Caller) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanAccess(action, post, caller) {
		p.log.WithFields(logrus.Fields{
			"post_id": postID,
			"action":  action.String(),
			"caller":  callerName(caller),
			"roles":   caller.Roles(),
		}).Warn("access denied")
		return nil, ErrForbidden
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID int64, caller *models.Caller) (*models.Post, error) {
	return p.authorize(ctx, ActionView, postID, caller)
}

func (p *postService) UpdatePost(ctx context.Context, postID int64, req models.PostRequest, caller *models.Caller) error {
	if err := p.validator.ValidatePost(req); err != nil {
		return err
	}

	post, err := p.authorize(ctx, ActionEdit, postID, caller)
	if err != nil {
		return err
	}

	updatedAt := p.now().UTC()
	post.Title = req.Title
	post.Content = req.Content
	post.IsPublished = req.IsPublished
	post.UpdatedAt = &updatedAt

	err = p.postRepo.Update(ctx, post)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrConcurrencyConflict) {
		return err
	}

	// One re-check: a post deleted under us is a plain 404, anything else is surfaced.
	exists, existsErr := p.postRepo.Exists(ctx, postID)
	if existsErr != nil {
		return existsErr
	}
	if !exists {
		return ErrNotFound
	}

	p.log.WithField("post_id", postID).Warn("concurrent update conflict")
	return fmt.Errorf("update post %d: %w", postID, ErrPersistenceConflict)
}

func (p *postService) DeletePost(ctx context.Context, postID int64, caller *models.Caller) error {
	if _, err := p.authorize(ctx, ActionDelete, postID, caller); err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrNotFound
		}
		return err
	}

	p.log.WithFields(logrus.Fields{"post_id": postID, "caller": caller.Name}).Info("post deleted")
	return nil
}

func (p *postService) ListPublished(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetPublished(ctx)
}

func (p *postService) ListMine(ctx context.Context, caller *models.Caller) ([]models.Post, error) {
	if caller.IsAnonymous() {
		return nil, ErrUnauthorized
	}

	return p.postRepo.GetByAuthorName(ctx, caller.Name)
}

func callerName(caller *models.Caller) string {
	if caller.IsAnonymous() {
		return "anonymous"
	}
	return caller.Name
}
