package validation

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/yashrajoria/storefront-client/notify"
)

// FieldState is the validation mark on a field
type FieldState int

const (
	Unmarked FieldState = iota
	Valid
	Invalid
)

func (s FieldState) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unmarked"
	}
}

// Field is one input, select or textarea
type Field struct {
	Name     string
	Type     string
	Value    string
	Required bool
	State    FieldState

	node *html.Node
}

// Form is a set of fields validated together
type Form struct {
	Name   string
	Fields []*Field

	node *html.Node
}

// Field looks a field up by name
func (f *Form) Field(name string) *Field {
	for _, field := range f.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// ValidateForm marks every required field valid or invalid and reports whether
// all of them passed. Fields without the required marker are left unmarked.
func ValidateForm(form *Form) bool {
	ok := true
	for _, field := range form.Fields {
		if !field.Required {
			continue
		}

		if strings.TrimSpace(field.Value) == "" {
			field.State = Invalid
			ok = false
		} else {
			field.State = Valid
		}

		if field.Type == "email" && field.Value != "" && !IsValidEmail(field.Value) {
			field.State = Invalid
			ok = false
		}
		if field.Type == "password" && field.Value != "" && !IsValidPassword(field.Value) {
			field.State = Invalid
			ok = false
		}
	}
	return ok
}

// GuardSubmit validates form and shows a warning notice when it fails.
// It returns whether the submit may proceed.
func GuardSubmit(form *Form, notifier notify.Notifier) bool {
	if ValidateForm(form) {
		return true
	}
	if notifier != nil {
		notifier.Show("Please fill in all required fields correctly", notify.Warning)
	}
	return false
}
