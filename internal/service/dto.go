// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

// Request DTOs. Update inputs use pointer fields: nil means "not
// provided", a non-nil pointer is an explicit value, even when empty.

// CreateProfileInput is the profile nested in CreateUserInput.
type CreateProfileInput struct {
	Bio       string `json:"bio" validate:"required"`
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}

// CreateUserInput is the body of POST /users.
type CreateUserInput struct {
	Email    string              `json:"email" validate:"required,email,max=320"`
	Password string              `json:"password" validate:"required,min=8,max=72"`
	Profile  *CreateProfileInput `json:"profile" validate:"required"`
}

// UpdateProfileInput is the optional profile patch in UpdateUserInput.
type UpdateProfileInput struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

func (in *UpdateProfileInput) empty() bool {
	return in == nil || (in.Bio == nil && in.AvatarURL == nil)
}

// UpdateUserInput is the body of PUT /users/{id}.
type UpdateUserInput struct {
	Email    *string             `json:"email" validate:"omitempty,email,max=320"`
	Password *string             `json:"password" validate:"omitempty,min=8,max=72"`
	Profile  *UpdateProfileInput `json:"profile"`
}

// CreatePostInput is the body of POST /posts.
type CreatePostInput struct {
	Title   string `json:"title" validate:"max=300"`
	Content string `json:"content" validate:"max=100000"`
}

// UpdatePostInput is the body of PUT /posts/{id}.
type UpdatePostInput struct {
	Title   *string `json:"title" validate:"omitempty,max=300"`
	Content *string `json:"content" validate:"omitempty,max=100000"`
}

// CreateCategoryInput is the body of POST /categories.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"max=200"`
	Slug        string `json:"slug" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateCategoryInput is the body of PUT /categories/{id}.
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Slug        *string `json:"slug" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}
