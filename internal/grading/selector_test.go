package grading

import (
	"testing"

	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
)

func bankOf(ids ...uint) []model.Question {
	bank := make([]model.Question, len(ids))
	for i, id := range ids {
		bank[i].ID = id
	}
	return bank
}

func TestSelectQuestionsWithoutPooling(t *testing.T) {
	a := &model.Assessment{UsePooling: false}
	attempt := &model.Attempt{}

	got := SelectQuestions(a, attempt, bankOf(3, 1, 2))

	want := model.QuestionIDList{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSelectQuestionsPooledUsesStoredOrder(t *testing.T) {
	a := &model.Assessment{UsePooling: true, QuestionsToAnswer: 2}
	attempt := &model.Attempt{QuestionOrder: model.QuestionIDList{5, 2}.Serialize()}

	got := SelectQuestions(a, attempt, bankOf(1, 2, 3, 4, 5))

	if len(got) != 2 || got[0] != 5 || got[1] != 2 {
		t.Fatalf("got %v, want [5 2]", got)
	}
}

func TestSelectQuestionsPooledFailsClosed(t *testing.T) {
	a := &model.Assessment{UsePooling: true, QuestionsToAnswer: 2}
	bank := bankOf(1, 2, 3)

	tests := []struct {
		name  string
		order string
	}{
		{"missing order", ""},
		{"unparsable order", "{broken"},
		{"empty list", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempt := &model.Attempt{QuestionOrder: tt.order}
			if got := SelectQuestions(a, attempt, bank); len(got) != 0 {
				t.Errorf("got %v, want empty selection", got)
			}
		})
	}
}
