package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Username string `json:"username" form:"username" binding:"required,min=3,max=50"`
	FullName string `json:"full_name" form:"full_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateArticleRequest struct {
	Title         string        `json:"title" binding:"required,max=255"`
	Content       string        `json:"content" binding:"required"`
	CategoryID    *int64        `json:"category_id"`
	Tags          []int64       `json:"tags"`
	CoverImageURL *string       `json:"cover_image_url" binding:"omitempty,max=2048"`
	Status        ArticleStatus `json:"status"`
}

// UpdateArticleRequest is a partial update. A category_id of 0 clears the
// category; a tags array, even empty, replaces the current tags.
type UpdateArticleRequest struct {
	Title         *string        `json:"title" binding:"omitempty,min=1,max=255"`
	Content       *string        `json:"content" binding:"omitempty,min=1"`
	CategoryID    *int64         `json:"category_id"`
	Tags          []int64        `json:"tags"`
	CoverImageURL *string        `json:"cover_image_url"`
	Status        *ArticleStatus `json:"status"`
}

type CategoryRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,max=100"`
	Description *string `json:"description" form:"description"`
}

type TagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	FullName  *string `json:"full_name" binding:"omitempty,min=1,max=100"`
	Bio       *string `json:"bio" binding:"omitempty,max=1000"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=2048"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
	// SessionToken is the identity provider session, when it keeps one.
	SessionToken string `json:"session_token,omitempty"`
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}
