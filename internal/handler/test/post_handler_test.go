package test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"postauth/internal/models"
	"postauth/internal/service"
)

func withCaller(r *http.Request, caller *models.Caller) *http.Request {
	if caller == nil {
		return r
	}
	return r.WithContext(service.WithCaller(r.Context(), caller))
}

func withID(r *http.Request, id string) *http.Request {
	return mux.SetURLVars(r, map[string]string{"id": id})
}

func TestGetPublishedPostsHandler(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	posts := new(MockPostService)
	posts.On("ListPublished", mock.Anything).Return([]models.Post{
		{PostID: 3, Title: "Hi", Content: "There", CreatedAt: created, AuthorID: "id-alice", AuthorName: "alice", IsPublished: true, Version: 4},
	}, nil)
	h := newTestHandlers(new(MockAuthService), posts, nil)

	rr := httptest.NewRecorder()
	h.GetPublishedPosts(rr, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{
		"id": 3,
		"title": "Hi",
		"content": "There",
		"createdAt": "2026-02-01T09:00:00Z",
		"updatedAt": null,
		"authorName": "alice",
		"isPublished": true
	}]`, rr.Body.String())
}

func TestGetMyPostsHandler(t *testing.T) {
	alice := models.NewCaller("alice", nil)

	t.Run("returns caller's posts", func(t *testing.T) {
		posts := new(MockPostService)
		posts.On("ListMine", mock.Anything, alice).Return([]models.Post{}, nil)
		h := newTestHandlers(new(MockAuthService), posts, nil)

		rr := httptest.NewRecorder()
		h.GetMyPosts(rr, withCaller(httptest.NewRequest(http.MethodGet, "/api/posts/my", nil), alice))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("anonymous", func(t *testing.T) {
		posts := new(MockPostService)
		posts.On("ListMine", mock.Anything, (*models.Caller)(nil)).Return(nil, service.ErrUnauthorized)
		h := newTestHandlers(new(MockAuthService), posts, nil)

		rr := httptest.NewRecorder()
		h.GetMyPosts(rr, httptest.NewRequest(http.MethodGet, "/api/posts/my", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGetPostHandler(t *testing.T) {
	bob := models.NewCaller("bob", nil)

	tests := []struct {
		name           string
		id             string
		caller         *models.Caller
		mockSetup      func(*MockPostService)
		expectedStatus int
	}{
		{
			name: "visible post",
			id:   "7",
			mockSetup: func(m *MockPostService) {
				m.On("GetPost", mock.Anything, int64(7), (*models.Caller)(nil)).
					Return(&models.Post{PostID: 7, IsPublished: true}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "someone else's draft",
			id:     "7",
			caller: bob,
			mockSetup: func(m *MockPostService) {
				m.On("GetPost", mock.Anything, int64(7), bob).Return(nil, service.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "missing",
			id:   "99",
			mockSetup: func(m *MockPostService) {
				m.On("GetPost", mock.Anything, int64(99), (*models.Caller)(nil)).Return(nil, service.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "id out of range",
			id:             "99999999999999999999",
			mockSetup:      func(m *MockPostService) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostService)
			tt.mockSetup(posts)
			h := newTestHandlers(new(MockAuthService), posts, nil)

			req := withID(httptest.NewRequest(http.MethodGet, "/api/posts/"+tt.id, nil), tt.id)
			rr := httptest.NewRecorder()
			h.GetPost(rr, withCaller(req, tt.caller))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			posts.AssertExpectations(t)
		})
	}
}

func TestCreatePostHandler(t *testing.T) {
	alice := models.NewCaller("alice", nil)
	input := models.PostRequest{Title: "Hello", Content: "World"}

	t.Run("created", func(t *testing.T) {
		posts := new(MockPostService)
		posts.On("CreatePost", mock.Anything, input, alice).
			Return(&models.Post{PostID: 12, Title: "Hello", Content: "World", AuthorName: "alice"}, nil)
		h := newTestHandlers(new(MockAuthService), posts, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBufferString(`{"title":"Hello","content":"World"}`))
		rr := httptest.NewRecorder()
		h.CreatePost(rr, withCaller(req, alice))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/api/posts/12", rr.Header().Get("Location"))
		var body models.Post
		decode(t, rr, &body)
		assert.Equal(t, int64(12), body.PostID)
		assert.Equal(t, "alice", body.AuthorName)
	})

	t.Run("validation", func(t *testing.T) {
		posts := new(MockPostService)
		posts.On("CreatePost", mock.Anything, models.PostRequest{Content: "World"}, alice).
			Return(nil, &service.ValidationError{Errors: []service.FieldError{{Code: "TitleRequired", Description: "The Title field is required."}}})
		h := newTestHandlers(new(MockAuthService), posts, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBufferString(`{"content":"World"}`))
		rr := httptest.NewRecorder()
		h.CreatePost(rr, withCaller(req, alice))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "TitleRequired")
	})

	t.Run("malformed body", func(t *testing.T) {
		posts := new(MockPostService)
		h := newTestHandlers(new(MockAuthService), posts, nil)

		rr := httptest.NewRecorder()
		h.CreatePost(rr, withCaller(httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBufferString("[")), alice))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdatePostHandler(t *testing.T) {
	alice := models.NewCaller("alice", nil)
	input := models.PostRequest{Title: "T", Content: "C", IsPublished: true}

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{"updated", nil, http.StatusNoContent},
		{"not author", service.ErrForbidden, http.StatusForbidden},
		{"gone", service.ErrNotFound, http.StatusNotFound},
		{"concurrent write", fmt.Errorf("update post 7: %w", service.ErrPersistenceConflict), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostService)
			posts.On("UpdatePost", mock.Anything, int64(7), input, alice).Return(tt.serviceErr)
			h := newTestHandlers(new(MockAuthService), posts, nil)

			req := httptest.NewRequest(http.MethodPut, "/api/posts/7", bytes.NewBufferString(`{"title":"T","content":"C","isPublished":true}`))
			rr := httptest.NewRecorder()
			h.UpdatePost(rr, withCaller(withID(req, "7"), alice))

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
			}
			posts.AssertExpectations(t)
		})
	}
}

func TestDeletePostHandler(t *testing.T) {
	admin := models.NewCaller("root", []string{models.RoleAdmin})

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"already deleted", service.ErrNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"anonymous", service.ErrUnauthorized, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostService)
			posts.On("DeletePost", mock.Anything, int64(5), admin).Return(tt.serviceErr)
			h := newTestHandlers(new(MockAuthService), posts, nil)

			req := withID(httptest.NewRequest(http.MethodDelete, "/api/posts/5", nil), "5")
			rr := httptest.NewRecorder()
			h.DeletePost(rr, withCaller(req, admin))

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
