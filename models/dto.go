package models

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type VerifyResponse struct {
	Valid bool       `json:"valid"`
	User  PublicUser `json:"user"`
}

// UpdateProfileRequest leaves a field unchanged when it is omitted.
type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email  *string `json:"email" validate:"omitempty,email,max=100"`
	Avatar *string `json:"avatar" validate:"omitempty,max=255"`
	Bio    *string `json:"bio" validate:"omitempty,max=1000"`
}

type CreatePostRequest struct {
	Title   string     `json:"title" validate:"required,min=1,max=200"`
	Content string     `json:"content" validate:"required"`
	Status  PostStatus `json:"status" validate:"omitempty,oneof=draft published"`
	Tags    string     `json:"tags" validate:"max=500"`
	Image   string     `json:"image" validate:"max=255"`
}

// UpdatePostRequest replaces title and content. An empty status keeps the
// current one; nil tags or image keep the stored value and "" clears it.
type UpdatePostRequest struct {
	Title   string     `json:"title" validate:"required,min=1,max=200"`
	Content string     `json:"content" validate:"required"`
	Status  PostStatus `json:"status" validate:"omitempty,oneof=draft published"`
	Tags    *string    `json:"tags" validate:"omitempty,max=500"`
	Image   *string    `json:"image" validate:"omitempty,max=255"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type PostListParams struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
	Tag      string `form:"tag"`
	AuthorID uint   `form:"author_id"`
	Query    string `form:"q"`
}

type PostStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}

type MyPostsResponse struct {
	Posts     []Post    `json:"posts"`
	Count     int       `json:"count"`
	Published int       `json:"published"`
	Drafts    int       `json:"drafts"`
	Stats     PostStats `json:"stats"`
}

type CommentListResponse struct {
	Comments []Comment `json:"comments"`
	Count    int64     `json:"count"`
	PostID   uint      `json:"postId"`
}

type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}
