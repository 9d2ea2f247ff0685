package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blog-platform/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	posts    *mockPostRepo
	comments *mockCommentRepo
	service  CommentService
	owner    *models.Identity
	reader   *models.Identity
}

func newCommentFixture() *commentFixture {
	posts := newMockPostRepo()
	comments := newMockCommentRepo()
	return &commentFixture{
		posts:    posts,
		comments: comments,
		service:  NewCommentService(comments, posts, newTestValidator(), testLogger()),
		owner:    &models.Identity{ID: 1, Name: "Ann"},
		reader:   &models.Identity{ID: 2, Name: "Bob"},
	}
}

func (f *commentFixture) post(t *testing.T, status models.PostStatus) *models.Post {
	t.Helper()
	p := &models.Post{Title: "t", Content: "c", AuthorID: f.owner.ID, Status: status}
	require.NoError(t, f.posts.Create(context.Background(), p))
	return p
}

func TestCommentService_CreateOnPublished(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	post := f.post(t, models.StatusPublished)

	c, err := f.service.CreateComment(ctx, post.ID, f.reader, models.CreateCommentRequest{Content: " nice post "})
	require.NoError(t, err)
	assert.Equal(t, "nice post", c.Content)
	assert.Equal(t, models.CommentApproved, c.Status)
	assert.Equal(t, "Bob", c.AuthorName)
	assert.Equal(t, f.reader.ID, c.OwnerID())

	list, err := f.service.GetComments(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Count)
	assert.Equal(t, post.ID, list.PostID)
	assert.Len(t, list.Comments, 1)
}

func TestCommentService_DraftRejectsEveryone(t *testing.T) {
	f := newCommentFixture()
	draft := f.post(t, models.StatusDraft)

	for _, caller := range []*models.Identity{f.owner, f.reader} {
		_, err := f.service.CreateComment(context.Background(), draft.ID, caller, models.CreateCommentRequest{Content: ""})
		var forbidden *models.ErrorForbidden
		require.True(t, errors.As(err, &forbidden))
		assert.Equal(t, models.ForbiddenPostNotPublished, forbidden.Reason)
	}
	assert.Zero(t, f.comments.creates)
}

func TestCommentService_CreateErrors(t *testing.T) {
	f := newCommentFixture()
	post := f.post(t, models.StatusPublished)

	_, err := f.service.CreateComment(context.Background(), 999, f.reader, models.CreateCommentRequest{Content: "x"})
	var notFound *models.ErrorNotFound
	assert.True(t, errors.As(err, &notFound))

	var verr validator.ValidationErrors
	_, err = f.service.CreateComment(context.Background(), post.ID, f.reader, models.CreateCommentRequest{Content: "   "})
	assert.True(t, errors.As(err, &verr))

	_, err = f.service.CreateComment(context.Background(), post.ID, f.reader, models.CreateCommentRequest{Content: strings.Repeat("a", 1001)})
	assert.True(t, errors.As(err, &verr))
}

func TestCommentService_ListHidesDraftComments(t *testing.T) {
	f := newCommentFixture()
	draft := f.post(t, models.StatusDraft)

	_, err := f.service.GetComments(context.Background(), draft.ID, f.reader)
	var notFound *models.ErrorNotFound
	assert.True(t, errors.As(err, &notFound))

	list, err := f.service.GetComments(context.Background(), draft.ID, f.owner)
	require.NoError(t, err)
	assert.NotNil(t, list.Comments)
	assert.Zero(t, list.Count)
}

func TestCommentService_Delete(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	post := f.post(t, models.StatusPublished)

	c, err := f.service.CreateComment(ctx, post.ID, f.reader, models.CreateCommentRequest{Content: "mine"})
	require.NoError(t, err)

	// the post author does not own the comment
	err = f.service.DeleteComment(ctx, c.ID, f.owner)
	var forbidden *models.ErrorForbidden
	assert.True(t, errors.As(err, &forbidden))
	assert.Zero(t, f.comments.deletes)

	require.NoError(t, f.service.DeleteComment(ctx, c.ID, f.reader))

	var notFound *models.ErrorNotFound
	assert.True(t, errors.As(f.service.DeleteComment(ctx, c.ID, f.reader), &notFound))
	assert.True(t, errors.As(f.service.DeleteComment(ctx, c.ID, f.reader), &notFound))
}

func TestCommentService_AnonymousCommentOwnedByNobody(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()
	post := f.post(t, models.StatusPublished)

	guest := &models.Comment{PostID: post.ID, AuthorName: "Guest", Content: "hi", Status: models.CommentApproved}
	require.NoError(t, f.comments.Create(ctx, guest))

	err := f.service.DeleteComment(ctx, guest.ID, &models.Identity{ID: 0})
	var forbidden *models.ErrorForbidden
	assert.True(t, errors.As(err, &forbidden))
}
