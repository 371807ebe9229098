package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BookForm is the edit-book submission. Add accepts anything (missing fields
// default at the boundary); edit is the validated path.
type BookForm struct {
	Title           string `form:"title" binding:"required,min=1,max=100"`
	Author          string `form:"author" binding:"required,min=1,max=100"`
	Rating          int    `form:"rating" binding:"omitempty,min=1,max=5"`
	CurrentReadPage int    `form:"current_read_page" binding:"omitempty,min=1,max=99999"`
	TotalPageCount  int    `form:"total_page_count" binding:"omitempty,min=1,max=99999"`
}

// fieldLabels match the labels shown next to the form inputs.
var fieldLabels = map[string]string{
	"Title":           "Title",
	"Author":          "Author",
	"Rating":          "Rating",
	"CurrentReadPage": "Current Read Page",
	"TotalPageCount":  "Total Book Page",
	"Username":        "Username",
	"Password":        "Password",
	"ConfirmPassword": "Confirm Password",
}

// ValidationMessages turns a gin binding error into per-field messages in
// "Label: problem" form. Non-validator errors get a single generic message.
func ValidationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{"Invalid form submission"}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		label := fieldLabels[fieldErr.Field()]
		if label == "" {
			label = fieldErr.Field()
		}
		messages = append(messages, fmt.Sprintf("%s: %s", label, fieldMessage(fieldErr)))
	}
	return messages
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Field() {
	case "Title", "Author":
		return "must be between 1 and 100 characters long"
	case "Rating":
		return "must be between 1 and 5"
	case "CurrentReadPage":
		return "Current Read Page must be between 1 and 99999"
	case "TotalPageCount":
		return "Total Book Page must be between 1 and 99999"
	case "Username":
		return "must be between 4 and 25 characters long"
	case "Password":
		return "is required"
	case "ConfirmPassword":
		return "Passwords must match"
	default:
		return fmt.Sprintf("failed validation on %s", fieldErr.Tag())
	}
}
