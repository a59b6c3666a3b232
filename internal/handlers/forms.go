package handlers

import "strings"

// Form validation is deliberately separated from rendering: each form is a
// plain struct parsed from the request, and Validate returns field-keyed
// messages for the template to display next to the inputs.

type TaskForm struct {
	Title       string
	Description string
	IsCompleted bool
}

func (f *TaskForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		errs["title"] = "Title is required"
	} else if len(f.Title) > 200 {
		errs["title"] = "Title must be at most 200 characters"
	}

	return errs
}

type RegisterForm struct {
	Username        string
	Password        string
	PasswordConfirm string
}

func (f *RegisterForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Username = strings.TrimSpace(f.Username)
	if len(f.Username) < 3 {
		errs["username"] = "Username must be at least 3 characters long"
	} else {
		for _, char := range f.Username {
			if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9') || char == '_') {
				errs["username"] = "Username can only contain letters, numbers, and underscores"
				break
			}
		}
	}

	if len(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters long"
	}

	if f.PasswordConfirm != f.Password {
		errs["password_confirm"] = "Passwords do not match"
	}

	return errs
}
