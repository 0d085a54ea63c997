package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/quizhall/quizhall/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
}

// Home renders the public landing page
func Home(data HomeData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="hero">
<h1>Welcome to QuizHall</h1>
<p>Register as a player, log in and test yourself on a short quiz.</p>
<div class="actions">
<a class="button" href="/player/register">Register</a>
<a class="button" href="/player/login">Player login</a>
<a class="button button-secondary" href="/admin/login">Admin login</a>
</div>
</section>
`)
		return err
	})
	return layout.Base(data.PageData, content)
}
