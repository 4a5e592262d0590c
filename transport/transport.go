package transport

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// CommentInputs is the comment form on a news article.
type CommentInputs struct {
	Name    string `validate:"required" json:"name"`
	Email   string `validate:"required,email" json:"email"`
	Comment string `validate:"required" json:"comment"`
}

func CommentInputsFromForm(form url.Values) *CommentInputs {
	return &CommentInputs{
		Name:    strings.TrimSpace(form.Get("full_name")),
		Email:   strings.TrimSpace(form.Get("email")),
		Comment: strings.TrimSpace(form.Get("comment")),
	}
}

func (i *CommentInputs) Validate() error {
	return validate.Struct(i)
}

// LoginInputs is the login form.
type LoginInputs struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

func LoginInputsFromForm(form url.Values) *LoginInputs {
	return &LoginInputs{
		Email:    strings.TrimSpace(form.Get("email")),
		Password: form.Get("password"),
	}
}

func (i *LoginInputs) Validate() error {
	return validate.Struct(i)
}

// RegisterInputs is the account registration form.
type RegisterInputs struct {
	FullName  string `validate:"required" json:"full_name"`
	Email     string `validate:"required,email" json:"email"`
	Password  string `validate:"required,min=8" json:"password"`
	Password2 string `validate:"required,eqfield=Password" json:"password2"`
}

func RegisterInputsFromForm(form url.Values) *RegisterInputs {
	return &RegisterInputs{
		FullName:  strings.TrimSpace(form.Get("full_name")),
		Email:     strings.TrimSpace(form.Get("email")),
		Password:  form.Get("password"),
		Password2: form.Get("password2"),
	}
}

func (i *RegisterInputs) Validate() error {
	return validate.Struct(i)
}

// PostInputs is the dashboard form used to create and edit blog posts.
type PostInputs struct {
	Title       string `validate:"required"`
	Image       string `validate:"omitempty,url"`
	Description string `validate:"required"`
	Tags        string
	CategoryID  int    `validate:"required,min=1"`
	Status      string `validate:"required,oneof=Active Draft Disabled"`
}

func PostInputsFromForm(form url.Values) *PostInputs {
	categoryID, _ := strconv.Atoi(form.Get("category"))
	return &PostInputs{
		Title:       strings.TrimSpace(form.Get("title")),
		Image:       strings.TrimSpace(form.Get("image")),
		Description: strings.TrimSpace(form.Get("description")),
		Tags:        strings.TrimSpace(form.Get("tags")),
		CategoryID:  categoryID,
		Status:      form.Get("post_status"),
	}
}

func (i *PostInputs) Validate() error {
	return validate.Struct(i)
}

// ReplyInputs is an author's reply to a comment.
type ReplyInputs struct {
	CommentID int    `validate:"required,min=1"`
	Reply     string `validate:"required"`
}

func (i *ReplyInputs) Validate() error {
	return validate.Struct(i)
}
