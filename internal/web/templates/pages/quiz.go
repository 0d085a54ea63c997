package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/quizhall/quizhall/internal/model"
	"github.com/quizhall/quizhall/internal/web/templates/layout"
)

// PlayerCommonData holds data for the player landing page
type PlayerCommonData struct {
	layout.PageData
	DisplayName string
}

// PlayerCommon renders the player landing page
func PlayerCommon(data PlayerCommonData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Hello, %s</h1>
<p>Ready to test yourself?</p>
<a class="button" href="/quiz">Start the quiz</a>
`, templ.EscapeString(data.DisplayName))
		return err
	})
	return layout.Base(data.PageData, content)
}

// QuizData holds data for the quiz form
type QuizData struct {
	layout.PageData
	Questions []*model.Question
}

// Quiz renders the quiz form with one radio group per question
func Quiz(data QuizData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Quiz</h1>
`); err != nil {
			return err
		}
		if len(data.Questions) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No questions are available yet. Check back later.</p>
`)
			return err
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="/quiz" class="quiz-form">
%s
`, layout.CSRFField(data.CSRFToken)); err != nil {
			return err
		}
		for i, q := range data.Questions {
			if _, err := fmt.Fprintf(w, `<fieldset class="question" data-question-id="%d">
<legend>%d. %s</legend>
`, q.ID, i+1, templ.EscapeString(q.Text)); err != nil {
				return err
			}
			for _, letter := range []string{model.OptionLetterA, model.OptionLetterB, model.OptionLetterC, model.OptionLetterD} {
				text := q.OptionText(letter)
				if text == "" {
					continue
				}
				if _, err := fmt.Fprintf(w, `<label><input type="radio" name="q%d" value="%s"> %s</label>
`, q.ID, letter, templ.EscapeString(text)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</fieldset>
`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<button type="submit">Submit answers</button>
</form>
`)
		return err
	})
	return layout.Base(data.PageData, content)
}

// QuizResultData holds data for the graded-quiz page
type QuizResultData struct {
	layout.PageData
	Result *model.Result
}

// QuizResult renders the outcome of a graded submission
func QuizResult(data QuizResultData) templ.Component {
	content := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		r := data.Result
		_, err := fmt.Fprintf(w, `<h1>Your result</h1>
<div class="result">
<p class="score">You scored <strong>%d</strong> out of <strong>%d</strong></p>
<p class="percentage">%.2f%%</p>
<p class="breakdown">Attempted: %d, not attempted: %d</p>
</div>
<a class="button" href="/quiz">Try again</a>
<a class="button button-secondary" href="/player/common">Back</a>
`, r.Score, r.Total, r.Percentage, r.Attempted, r.NotAttempted)
		return err
	})
	return layout.Base(data.PageData, content)
}
