package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/web/templates/layout"
)

// AdminHomeData holds data for the admin landing page
type AdminHomeData struct {
	layout.PageData
	QuestionCount int
}

// AdminHome renders the admin landing page
func AdminHome(data AdminHomeData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Admin</h1>
<p>The question bank currently holds %d questions.</p>
<div class="actions">
<a class="button" href="/admin/questions">Manage questions</a>
<a class="button" href="/admin/questions/add">Add a question</a>
</div>
`, data.QuestionCount)
		return err
	})
	return layout.Base(data.PageData, content)
}

// QuestionListData holds data for the paginated question listing
type QuestionListData struct {
	layout.PageData
	Questions  []*model.Question
	Page       int
	TotalPages int
}

// QuestionList renders one page of the question bank
func QuestionList(data QuestionListData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Questions</h1>
<a class="button" href="/admin/questions/add">Add a question</a>
`); err != nil {
			return err
		}

		if len(data.Questions) == 0 {
			if _, err := io.WriteString(w, `<p class="empty">No questions on this page.</p>
`); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<table class="question-list">
<thead><tr><th>ID</th><th>Question</th><th>Correct</th><th></th></tr></thead>
<tbody>
`); err != nil {
				return err
			}
			for _, q := range data.Questions {
				if _, err := fmt.Fprintf(w, `<tr data-question-id="%[1]d">
<td>%[1]d</td>
<td>%[2]s</td>
<td>%[3]s</td>
<td><a href="/admin/questions/edit/%[1]d">Edit</a> <a href="/admin/questions/delete/%[1]d">Delete</a></td>
</tr>
`, q.ID, templ.EscapeString(q.Text), q.Correct); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tbody>
</table>
`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<nav class="pagination">
`); err != nil {
			return err
		}
		if data.Page > 1 {
			if _, err := fmt.Fprintf(w, `<a class="page-prev" href="/admin/questions?page=%d">Previous</a>
`, data.Page-1); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<span class="page-current">Page %d of %d</span>
`, data.Page, data.TotalPages); err != nil {
			return err
		}
		if data.Page < data.TotalPages {
			if _, err := fmt.Fprintf(w, `<a class="page-next" href="/admin/questions?page=%d">Next</a>
`, data.Page+1); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</nav>
`)
		return err
	})
	return layout.Base(data.PageData, content)
}

// QuestionFormData holds data for the create and edit forms
type QuestionFormData struct {
	layout.PageData
	Heading     string
	Action      string
	Question    *model.Question
	Error       string
	FieldErrors map[string]string
}

// QuestionForm renders the shared create/edit question form
func QuestionForm(data QuestionFormData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		q := data.Question
		if q == nil {
			q = &model.Question{}
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>
`, templ.EscapeString(data.Heading)); err != nil {
			return err
		}
		if err := writeFormError(w, data.Error); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="form question-form">
%s
`, templ.EscapeString(data.Action), layout.CSRFField(data.CSRFToken)); err != nil {
			return err
		}
		if err := writeField(w, "text", "Question text", "text", q.Text, data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "option_a", "Option A", "text", q.OptionA, data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "option_b", "Option B", "text", q.OptionB, data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "option_c", "Option C (optional)", "text", q.OptionC, data.FieldErrors); err != nil {
			return err
		}
		if err := writeField(w, "option_d", "Option D (optional)", "text", q.OptionD, data.FieldErrors); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label for="correct">Correct answer</label>
<select id="correct" name="correct">
`); err != nil {
			return err
		}
		for _, letter := range []string{model.OptionLetterA, model.OptionLetterB, model.OptionLetterC, model.OptionLetterD} {
			selected := ""
			if q.Correct == letter {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%[1]s"%[2]s>%[1]s</option>
`, letter, selected); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>
`); err != nil {
			return err
		}
		if msg, ok := data.FieldErrors["correct"]; ok {
			if _, err := fmt.Fprintf(w, `<span class="field-error" data-field="correct">%s</span>
`, templ.EscapeString(msg)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button type="submit">Save</button>
<a class="button button-secondary" href="/admin/questions">Cancel</a>
</form>
`)
		return err
	})
	return layout.Base(data.PageData, content)
}

// QuestionDeleteData holds data for the delete confirmation page
type QuestionDeleteData struct {
	layout.PageData
	Question *model.Question
}

// QuestionDelete renders the delete confirmation page
func QuestionDelete(data QuestionDeleteData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		q := data.Question
		_, err := fmt.Fprintf(w, `<h1>Delete question</h1>
<p>Are you sure you want to delete question %d?</p>
<blockquote class="question-preview">%s</blockquote>
<form method="post" action="/admin/questions/delete/%d" class="form">
%s
<button type="submit" class="button-danger">Delete</button>
<a class="button button-secondary" href="/admin/questions">Cancel</a>
</form>
`, q.ID, templ.EscapeString(q.Text), q.ID, layout.CSRFField(data.CSRFToken))
		return err
	})
	return layout.Base(data.PageData, content)
}
