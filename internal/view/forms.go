package view

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"docportal/internal/apperr"
	"docportal/internal/model"
)

// UploadForm is the upload submission before it reaches the backend.
type UploadForm struct {
	Title       string    `json:"title" validate:"required"`
	Author      string    `json:"author"`
	File        io.Reader `json:"file" validate:"required"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
}

// QuestionForm is the Q&A submission.
type QuestionForm struct {
	Question string `json:"question" form:"question" validate:"required,min=3"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"username": "Username",
	"password": "Password",
	"email":    "Email",
	"fullName": "Full name",
	"role":     "Role",
	"title":    "Title",
	"file":     "File",
	"question": "Question",
}

// check validates a form and converts failures into a validation error keyed by field.
func check(op string, form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(op, "Invalid input", nil)
	}
	fields := make(map[string]string, len(verrs))
	first := ""
	for _, fe := range verrs {
		msg := fieldMessage(fe)
		if _, ok := fields[fe.Field()]; !ok {
			fields[fe.Field()] = msg
		}
		if first == "" {
			first = msg
		}
	}
	return apperr.Validation(op, first, fields)
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		if fe.Field() == "question" {
			return "Please enter a question"
		}
		return label + " is required"
	case "min":
		if fe.Field() == "question" {
			return fmt.Sprintf("Question must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "email":
		return "Invalid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid"
	}
}

func normalizeLogin(f model.LoginRequest) model.LoginRequest {
	f.Username = strings.TrimSpace(f.Username)
	return f
}

func normalizeRegister(f model.RegisterRequest) model.RegisterRequest {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	f.FullName = strings.TrimSpace(f.FullName)
	f.Role = model.Role(strings.ToUpper(strings.TrimSpace(string(f.Role))))
	return f
}
