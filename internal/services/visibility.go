package services

import (
	"schoolhub/internal/models"
)

// Author is the identity attached to a rendered post.
type Author struct {
	ID   *uint  `json:"id"`
	Name string `json:"name"`
}

const anonymousName = "Anonymous"

// RenderAuthor decides whether a post's author identity is exposed to the
// requester. Anonymous posts show the real identity to teachers only;
// everyone else gets a null id and a placeholder name. Non-anonymous
// posts always show the real identity. Applied on every post read path so
// no alternate field leaks the author.
func RenderAuthor(authorID uint, authorName string, isAnonymous bool, requester models.Role) Author {
	if !isAnonymous || requester == models.RoleTeacher {
		id := authorID
		return Author{ID: &id, Name: authorName}
	}
	return Author{ID: nil, Name: anonymousName}
}
