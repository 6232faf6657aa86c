package service

import (
	"strings"

	"postauth/internal/models"
)

type Action int

const (
	ActionView Action = iota
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionView:
		return "view"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// CanAccess decides whether caller may perform action on post. Published
// posts are viewable by anyone; everything else needs the author or an Admin.
func CanAccess(action Action, post *models.Post, caller *models.Caller) bool {
	if action == ActionView && post.IsPublished {
		return true
	}

	switch action {
	case ActionView, ActionEdit, ActionDelete:
	default:
		return false
	}

	if caller.IsAnonymous() {
		return false
	}

	return isAuthor(post, caller) || caller.HasRole(models.RoleAdmin)
}

// Usernames are unique case-insensitively, so ownership compares the same way.
func isAuthor(post *models.Post, caller *models.Caller) bool {
	return strings.EqualFold(post.AuthorName, caller.Name)
}
