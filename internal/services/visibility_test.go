package services

import (
	"testing"

	"schoolhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAuthor(t *testing.T) {
	cases := []struct {
		name        string
		isAnonymous bool
		requester   models.Role
		wantName    string
		wantID      bool
	}{
		{"plain post, student", false, models.RoleStudent, "Alice", true},
		{"plain post, teacher", false, models.RoleTeacher, "Alice", true},
		{"anonymous post, student", true, models.RoleStudent, "Anonymous", false},
		{"anonymous post, admin", true, models.RoleAdmin, "Anonymous", false},
		{"anonymous post, teacher", true, models.RoleTeacher, "Alice", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			author := RenderAuthor(7, "Alice", tc.isAnonymous, tc.requester)
			assert.Equal(t, tc.wantName, author.Name)
			if tc.wantID {
				require.NotNil(t, author.ID)
				assert.Equal(t, uint(7), *author.ID)
			} else {
				assert.Nil(t, author.ID)
			}
		})
	}
}
