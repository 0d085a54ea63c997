package model

// QuestionID uniquely identifies a question; ids are allocated in
// ascending order and listing follows that order.
type QuestionID int64

// Option letters for the correct answer
const (
	OptionLetterA = "A"
	OptionLetterB = "B"
	OptionLetterC = "C"
	OptionLetterD = "D"
)

// Question is a single multiple-choice question. Options C and D may be
// blank; the option slot named by Correct must not be.
type Question struct {
	ID      QuestionID
	Text    string
	OptionA string
	OptionB string
	OptionC string
	OptionD string
	Correct string // one of "A".."D"
}

// OptionText returns the text of the option slot for a letter, or ""
// for an unknown letter.
func (q *Question) OptionText(letter string) string {
	switch letter {
	case OptionLetterA:
		return q.OptionA
	case OptionLetterB:
		return q.OptionB
	case OptionLetterC:
		return q.OptionC
	case OptionLetterD:
		return q.OptionD
	}
	return ""
}

// Result is the outcome of grading one quiz submission. It is never
// persisted; quiz attempts have no history.
type Result struct {
	Score        int
	Total        int
	Attempted    int
	NotAttempted int
	Percentage   float64 // rounded to two decimal places, 0 when Total is 0
}
