// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service holds the business rules for users, posts and
// categories. Services validate input DTOs, run precondition checks
// against their store, perform the mutation, and report failures as
// *apperror.AppError values that handlers render unchanged.
//
// Stores are consumed through the interfaces below so the PostgreSQL
// stores and the in-memory stores are interchangeable.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"blogapi/internal/apperror"
	"blogapi/internal/models"
	"blogapi/internal/store"
)

// UserStore persists users together with their profile.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, u *models.User) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostStore persists posts.
type PostStore interface {
	List(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryStore persists categories and their links to posts.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachPost(ctx context.Context, categoryID, postID uuid.UUID) error
	DetachPost(ctx context.Context, categoryID, postID uuid.UUID) error
}

// Message is the body returned by delete operations.
type Message struct {
	Message string `json:"message"`
}

// validate checks DTO struct tags. Field names in messages use the json
// tag so clients see the names they sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs the struct-tag rules on in and converts the first
// failure into a Validation error.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.NewValidation("Invalid request body")
	}
	return apperror.NewValidation(fieldMessage(verrs[0]))
}

// fieldMessage renders one validator failure as a sentence.
func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), rootNamespace(fe))
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// rootNamespace returns the "StructName." prefix validator puts in front
// of every namespace.
func rootNamespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i+1]
	}
	return ""
}

// translate maps store sentinel errors to application errors. dupMessages
// gives the Conflict message per duplicate field.
func translate(op string, err error, notFound string, dupMessages map[string]string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFound(notFound)
	}
	if field, ok := store.IsDuplicate(err); ok {
		if msg, ok := dupMessages[field]; ok {
			return apperror.NewConflict(msg)
		}
		return apperror.NewConflict("Record already exists")
	}
	return apperror.NewInternal(op, err)
}

// supplied reports whether an optional DTO field was present in the request.
func supplied(s *string) bool {
	return s != nil
}

// blank reports whether an optional field was supplied with only whitespace.
func blank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) == ""
}

// isBlank reports whether a required field is empty or whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
