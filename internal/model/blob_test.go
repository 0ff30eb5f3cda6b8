package model

import (
	"errors"
	"testing"
)

func TestParseQuestionIDList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []uint
		wantErr bool
	}{
		{"valid list", "[3,1,2]", []uint{3, 1, 2}, false},
		{"single element", "[7]", []uint{7}, false},
		{"empty string", "", nil, true},
		{"empty list", "[]", nil, true},
		{"not json", "{broken", nil, true},
		{"wrong type", `["a","b"]`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestionIDList(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedBlob) {
					t.Fatalf("err = %v, want ErrMalformedBlob", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestQuestionIDListRoundTrip(t *testing.T) {
	original := QuestionIDList{5, 2, 9}

	parsed, err := ParseQuestionIDList(original.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 3 || parsed[0] != 5 || parsed[1] != 2 || parsed[2] != 9 {
		t.Errorf("round trip changed the list: %v", parsed)
	}
}

func TestQuestionIDListContains(t *testing.T) {
	l := QuestionIDList{1, 2, 3}
	if !l.Contains(2) {
		t.Error("Contains(2) = false, want true")
	}
	if l.Contains(9) {
		t.Error("Contains(9) = true, want false")
	}
}

func TestParseAcceptableAnswers(t *testing.T) {
	answers, err := ParseAcceptableAnswers(`["Paris","London"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(answers) != 2 || answers[0] != "Paris" || answers[1] != "London" {
		t.Errorf("got %v", answers)
	}

	if _, err := ParseAcceptableAnswers(""); !errors.Is(err, ErrMalformedBlob) {
		t.Errorf("empty input: err = %v, want ErrMalformedBlob", err)
	}
	if _, err := ParseAcceptableAnswers("nope"); !errors.Is(err, ErrMalformedBlob) {
		t.Errorf("garbage input: err = %v, want ErrMalformedBlob", err)
	}
}

func TestAcceptableAnswersRoundTrip(t *testing.T) {
	original := AcceptableAnswers{"red", "green", "blue"}

	parsed, err := ParseAcceptableAnswers(original.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != 3 || parsed[2] != "blue" {
		t.Errorf("round trip changed the set: %v", parsed)
	}
}
