package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/services/roles"
)

// FlashMessage is a one-shot notification shown at the top of a page
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData holds data common to every page
type PageData struct {
	Title      string
	Identity   *model.Identity
	Membership roles.Membership
	Flash      *FlashMessage
	CSRFToken  string
}

// Base wraps page content in the shared HTML shell: head, nav and flash
func Base(data PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - QuizHall</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
`, templ.EscapeString(data.Title)); err != nil {
			return err
		}

		if err := nav(data).Render(ctx, w); err != nil {
			return err
		}

		if data.Flash != nil {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-%s">%s</div>
`, templ.EscapeString(data.Flash.Type), templ.EscapeString(data.Flash.Message)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<main class="container">
`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
</body>
</html>
`)
		return err
	})
}

func nav(data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav class="nav">
<a class="brand" href="/">QuizHall</a>
<div class="nav-links">
`); err != nil {
			return err
		}

		if data.Identity != nil {
			if _, err := fmt.Fprintf(w, `<span class="nav-user">%s</span>
`, templ.EscapeString(data.Identity.Username)); err != nil {
				return err
			}
			if data.Membership.IsAdmin {
				if _, err := io.WriteString(w, `<a href="/admin/home">Admin</a>
<a href="/admin/questions">Questions</a>
`); err != nil {
					return err
				}
			}
			if data.Membership.IsPlayer {
				if _, err := io.WriteString(w, `<a href="/player/common">Play</a>
`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `<a href="/logout">Logout</a>
`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<a href="/player/register">Register</a>
<a href="/player/login">Player login</a>
<a href="/admin/login">Admin login</a>
`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>
</nav>
`)
		return err
	})
}

// CSRFField renders the hidden CSRF input when a token is present
func CSRFField(token string) string {
	if token == "" {
		return ""
	}
	return fmt.Sprintf(`<input type="hidden" name="gorilla.csrf.Token" value="%s">`, templ.EscapeString(token))
}
