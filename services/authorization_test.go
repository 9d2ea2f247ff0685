package services

import (
	"testing"

	"blog-platform/helper"
	"blog-platform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOwner(t *testing.T) {
	assert.True(t, IsOwner(5, 5))
	assert.False(t, IsOwner(5, 6))
	assert.False(t, IsOwner(0, 0))
	assert.False(t, IsOwner(5, 0))
}

func TestIsOwner_AfterIngressNormalization(t *testing.T) {
	caller, err := helper.ParseID("5")
	require.NoError(t, err)
	assert.True(t, IsOwner(5, caller))
}

func TestIsVisible(t *testing.T) {
	owner := &models.Identity{ID: 1}
	other := &models.Identity{ID: 2}

	draft := &models.Post{AuthorID: 1, Status: models.StatusDraft}
	published := &models.Post{AuthorID: 1, Status: models.StatusPublished}

	tests := []struct {
		name   string
		post   *models.Post
		caller *models.Identity
		want   bool
	}{
		{"published anonymous", published, nil, true},
		{"published other", published, other, true},
		{"published owner", published, owner, true},
		{"draft anonymous", draft, nil, false},
		{"draft other", draft, other, false},
		{"draft owner", draft, owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.post, tt.caller))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, "go, web", *NormalizeTags(" go ,web,, Go "))
	assert.Equal(t, "single", *NormalizeTags("single"))
	assert.Nil(t, NormalizeTags(""))
	assert.Nil(t, NormalizeTags(" , ,"))
}
