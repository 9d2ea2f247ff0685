package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"blog-platform/helper"
	"blog-platform/logging"
	"blog-platform/models"

	"github.com/go-playground/validator/v10"
)

var errStoreDown = errors.New("store unavailable")

func newTestValidator() *validator.Validate {
	v, _ := helper.NewValidator()
	return v
}

func testLogger() *logging.Logger {
	return logging.Discard()
}

type mockUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
	err    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Internal("user.create", m.err)
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return &models.ErrorConflict{Resource: "user", Field: "email", Message: "Email already registered"}
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, models.Internal("user.get", m.err)
	}
	u, ok := m.users[id]
	if !ok {
		return nil, models.NotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, models.Internal("user.get_by_email", m.err)
	}
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.NotFound("user", 0)
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return models.NotFound("user", user.ID)
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

type mockPostRepo struct {
	mu        sync.Mutex
	posts     map[uint]*models.Post
	nextID    uint
	err       error
	viewsErr  error
	updates   int
	deletes   int
	viewCalls int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: map[uint]*models.Post{}, nextID: 1}
}

func (m *mockPostRepo) Create(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Internal("post.create", m.err)
	}
	post.ID = m.nextID
	m.nextID++
	post.CreatedAt = time.Now().Add(time.Duration(post.ID) * time.Millisecond)
	post.UpdatedAt = post.CreatedAt
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id uint) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, models.Internal("post.get", m.err)
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, models.NotFound("post", id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockPostRepo) GetList(_ context.Context, params models.PostListParams) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.sorted() {
		if !p.IsPublished() {
			continue
		}
		if params.AuthorID > 0 && p.AuthorID != params.AuthorID {
			continue
		}
		out = append(out, p)
	}
	total := int64(len(out))
	start := (params.Page - 1) * params.Limit
	if start > len(out) {
		return []models.Post{}, total, nil
	}
	end := start + params.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *mockPostRepo) GetByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.sorted() {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPostRepo) Update(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	p, ok := m.posts[post.ID]
	if !ok {
		return models.NotFound("post", post.ID)
	}
	p.Title = post.Title
	p.Content = post.Content
	p.Status = post.Status
	p.Tags = post.Tags
	p.Image = post.Image
	p.UpdatedAt = time.Now()
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if _, ok := m.posts[id]; !ok {
		return models.NotFound("post", id)
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) IncrementViews(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewCalls++
	if m.viewsErr != nil {
		return models.Internal("post.increment_views", m.viewsErr)
	}
	if p, ok := m.posts[id]; ok {
		p.Views++
	}
	return nil
}

func (m *mockPostRepo) sorted() []models.Post {
	out := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

type mockCommentRepo struct {
	mu       sync.Mutex
	comments map[uint]*models.Comment
	nextID   uint
	creates  int
	deletes  int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: map[uint]*models.Comment{}, nextID: 1}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	comment.ID = m.nextID
	m.nextID++
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	m.comments[comment.ID] = &cp
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, models.NotFound("comment", id)
	}
	cp := *c
	return &cp, nil
}

func (m *mockCommentRepo) GetApprovedByPost(_ context.Context, postID uint) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID && c.Status == models.CommentApproved {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockCommentRepo) CountApprovedByPost(ctx context.Context, postID uint) (int64, error) {
	list, err := m.GetApprovedByPost(ctx, postID)
	return int64(len(list)), err
}

func (m *mockCommentRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if _, ok := m.comments[id]; !ok {
		return models.NotFound("comment", id)
	}
	delete(m.comments, id)
	return nil
}
