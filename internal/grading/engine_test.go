package grading

import (
	"math"
	"testing"

	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
)

func optionWithID(id uint, text string, correct bool) model.QuestionOption {
	opt := model.QuestionOption{Text: text, IsCorrect: correct}
	opt.ID = id
	return opt
}

func mcqQuestion(id uint, maxScore float64, options ...model.QuestionOption) model.Question {
	q := model.Question{
		Type:     model.QuestionMCQ,
		MaxScore: maxScore,
		Options:  options,
	}
	q.ID = id
	return q
}

func exactQuestion(id uint, maxScore float64, correct string) model.Question {
	q := model.Question{
		Type:          model.QuestionShortAnswer,
		AnswerMode:    model.AnswerModeExact,
		MaxScore:      maxScore,
		CorrectAnswer: correct,
	}
	q.ID = id
	return q
}

func anyMatchQuestion(id uint, maxScore float64, answerCount int, acceptable ...string) model.Question {
	q := model.Question{
		Type:          model.QuestionShortAnswer,
		AnswerMode:    model.AnswerModeAnyMatch,
		MaxScore:      maxScore,
		CorrectAnswer: model.AcceptableAnswers(acceptable).Serialize(),
		AnswerCount:   answerCount,
	}
	q.ID = id
	return q
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreMCQ(t *testing.T) {
	q := mcqQuestion(1, 5,
		optionWithID(10, "Kumasi", false),
		optionWithID(11, "Accra", true),
		optionWithID(12, "Tamale", false),
	)

	tests := []struct {
		name   string
		answer string
		want   float64
	}{
		{"correct option id", "11", 5},
		{"wrong option id", "10", 0},
		{"option text instead of id", "Accra", 0},
		{"unknown id", "99", 0},
		{"empty answer", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreQuestion(q, tt.answer); !almostEqual(got, tt.want) {
				t.Errorf("ScoreQuestion(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestScoreMCQMultipleCorrectOptions(t *testing.T) {
	q := mcqQuestion(1, 5,
		optionWithID(10, "2+2", true),
		optionWithID(11, "3+1", true),
		optionWithID(12, "5", false),
	)
	for _, answer := range []string{"10", "11"} {
		if got := ScoreQuestion(q, answer); !almostEqual(got, 5) {
			t.Errorf("ScoreQuestion(%q) = %v, want 5", answer, got)
		}
	}
}

func TestScoreExact(t *testing.T) {
	q := exactQuestion(2, 5, "Accra")

	tests := []struct {
		name   string
		answer string
		want   float64
	}{
		{"exact", "Accra", 5},
		{"case insensitive", "accra", 5},
		{"surrounding whitespace", "  accra  ", 5},
		{"wrong answer", "Kumasi", 0},
		{"partial text", "Acc", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreQuestion(q, tt.answer); !almostEqual(got, tt.want) {
				t.Errorf("ScoreQuestion(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestScoreAnyMatchPartialCredit(t *testing.T) {
	q := anyMatchQuestion(3, 15, 3, "Paris", "London", "Berlin")

	tests := []struct {
		name   string
		answer string
		want   float64
	}{
		{"all three", "Paris\nLondon\nBerlin", 15},
		{"two of three", "Paris\nLondon", 10},
		{"duplicate does not double count", "Paris\nParis\nLondon", 10},
		{"case insensitive duplicate", "paris\nPARIS\nlondon", 10},
		{"one match with noise", "Paris\nMadrid\nRome", 5},
		{"no matches", "Madrid\nRome", 0},
		{"blank lines ignored", "\n\nParis\n\n", 5},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreQuestion(q, tt.answer); !almostEqual(got, tt.want) {
				t.Errorf("ScoreQuestion(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestScoreAnyMatchCapsAtRequiredCount(t *testing.T) {
	// Five acceptable answers but only two required: two matches is
	// already full marks, a third adds nothing.
	q := anyMatchQuestion(4, 10, 2, "red", "green", "blue", "cyan", "magenta")

	if got := ScoreQuestion(q, "red\ngreen\nblue"); !almostEqual(got, 10) {
		t.Errorf("score = %v, want 10", got)
	}
	if got := ScoreQuestion(q, "red"); !almostEqual(got, 5) {
		t.Errorf("score = %v, want 5", got)
	}
}

func TestScoreAnyMatchZeroAnswerCountFallsBackToListLength(t *testing.T) {
	q := anyMatchQuestion(5, 9, 0, "a", "b", "c")

	if got := ScoreQuestion(q, "a\nb"); !almostEqual(got, 6) {
		t.Errorf("score = %v, want 6", got)
	}
}

func TestScoreAnyMatchMalformedAcceptableAnswers(t *testing.T) {
	q := anyMatchQuestion(6, 10, 2, "x")
	q.CorrectAnswer = "not json"

	if got := ScoreQuestion(q, "x"); got != 0 {
		t.Errorf("score = %v, want 0 on malformed acceptable answers", got)
	}
}

func TestGradeScoresOnlySelectedQuestions(t *testing.T) {
	questions := map[uint]model.Question{
		1: mcqQuestion(1, 5, optionWithID(10, "Accra", true), optionWithID(11, "Kumasi", false)),
		2: exactQuestion(2, 5, "Volta"),
		3: anyMatchQuestion(3, 15, 3, "Paris", "London", "Berlin"),
		4: exactQuestion(4, 100, "unpicked"),
	}
	answers := map[uint]string{
		1: "10",
		2: "volta",
		3: "Paris\nParis\nLondon",
		4: "unpicked", // outside the selection, must not count
	}
	selected := model.QuestionIDList{1, 2, 3}

	out := Grade(selected, questions, answers)

	if !almostEqual(out.Total, 20) {
		t.Fatalf("Total = %v, want 20", out.Total)
	}
	if len(out.PerQuestion) != 3 {
		t.Fatalf("PerQuestion has %d entries, want 3", len(out.PerQuestion))
	}
	if _, ok := out.PerQuestion[4]; ok {
		t.Error("question outside the selection was scored")
	}
	if !almostEqual(out.PerQuestion[3], 10) {
		t.Errorf("PerQuestion[3] = %v, want 10", out.PerQuestion[3])
	}
}

func TestGradeUnansweredQuestionsScoreZero(t *testing.T) {
	questions := map[uint]model.Question{
		1: exactQuestion(1, 5, "a"),
		2: exactQuestion(2, 5, "b"),
	}
	out := Grade(model.QuestionIDList{1, 2}, questions, map[uint]string{1: "a"})

	if !almostEqual(out.Total, 5) {
		t.Errorf("Total = %v, want 5", out.Total)
	}
	if got := out.PerQuestion[2]; got != 0 {
		t.Errorf("PerQuestion[2] = %v, want 0", got)
	}
}

func TestGradeEmptySelectionYieldsZero(t *testing.T) {
	questions := map[uint]model.Question{
		1: exactQuestion(1, 5, "a"),
	}
	out := Grade(model.QuestionIDList{}, questions, map[uint]string{1: "a"})

	if out.Total != 0 || len(out.PerQuestion) != 0 {
		t.Errorf("Grade on empty selection = %+v, want zero outcome", out)
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	questions := map[uint]model.Question{
		1: anyMatchQuestion(1, 15, 3, "Paris", "London", "Berlin"),
		2: exactQuestion(2, 5, "Accra"),
	}
	answers := map[uint]string{1: "London\nBerlin", 2: "accra"}
	selected := model.QuestionIDList{1, 2}

	first := Grade(selected, questions, answers)
	second := Grade(selected, questions, answers)

	if !almostEqual(first.Total, second.Total) {
		t.Errorf("totals differ across runs: %v vs %v", first.Total, second.Total)
	}
	for id, score := range first.PerQuestion {
		if !almostEqual(second.PerQuestion[id], score) {
			t.Errorf("question %d differs across runs: %v vs %v", id, score, second.PerQuestion[id])
		}
	}
}
