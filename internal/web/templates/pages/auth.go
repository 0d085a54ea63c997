package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/quizhall/quizhall/internal/web/templates/layout"
)

// RegisterData holds data for the registration page
type RegisterData struct {
	layout.PageData
	Username    string
	Email       string
	DisplayName string
	Error       string
	FieldErrors map[string]string
}

// Register renders the player registration form
func Register(data RegisterData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Create a player account</h1>
`); err != nil {
			return err
		}
		if err := writeFormError(w, data.Error); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="/player/register" class="form">
%s
`, layout.CSRFField(data.CSRFToken)); err != nil {
			return err
		}
		if err := writeField(w, "username", "Username", "text", data.Username, data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "email", "Email", "email", data.Email, data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "display_name", "Display name", "text", data.DisplayName, data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "password", "Password", "password", "", data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "password_confirm", "Confirm password", "password", "", data.FieldErrors); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<button type="submit">Register</button>
</form>
<p>Already have an account? <a href="/player/login">Log in</a></p>
`)
		return err
	})
	return layout.Base(data.PageData, content)
}

// LoginData holds data for the player and admin login pages
type LoginData struct {
	layout.PageData
	Heading  string
	Action   string
	Username string
	Error    string
}

// Login renders a login form posting back to its own path
func Login(data LoginData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>
`, templ.EscapeString(data.Heading)); err != nil {
			return err
		}
		if err := writeFormError(w, data.Error); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="form">
%s
`, templ.EscapeString(data.Action), layout.CSRFField(data.CSRFToken)); err != nil {
			return err
		}
		if err := writeField(w, "username", "Username", "text", data.Username, nil); err != nil {
			return err
		}
		if err := writeField(w, "password", "Password", "password", "", nil); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<button type="submit">Log in</button>
</form>
`)
		return err
	})
	return layout.Base(data.PageData, content)
}

func writeFormError(w io.Writer, message string) error {
	if message == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<div class="form-error">%s</div>
`, templ.EscapeString(message))
	return err
}

func writeField(w io.Writer, name, label, inputType, value string, fieldErrors map[string]string) error {
	if _, err := fmt.Fprintf(w, `<label for="%[1]s">%[2]s</label>
<input type="%[3]s" id="%[1]s" name="%[1]s" value="%[4]s">
`, name, templ.EscapeString(label), inputType, templ.EscapeString(value)); err != nil {
		return err
	}
	if msg, ok := fieldErrors[name]; ok {
		if _, err := fmt.Fprintf(w, `<span class="field-error" data-field="%s">%s</span>
`, name, templ.EscapeString(msg)); err != nil {
			return err
		}
	}
	return nil
}
