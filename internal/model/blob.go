package model

import (
	"encoding/json"
	"errors"
)

// The two columns below are opaque blobs to everything except the code
// that parses them: Attempt.QuestionOrder to the question selector and
// any-match Question.CorrectAnswer to the grading engine. These types are
// that parse/serialize boundary.

var ErrMalformedBlob = errors.New("malformed serialized value")

// QuestionIDList is an ordered list of question IDs.
type QuestionIDList []uint

func ParseQuestionIDList(s string) (QuestionIDList, error) {
	if s == "" {
		return nil, ErrMalformedBlob
	}
	var ids QuestionIDList
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, ErrMalformedBlob
	}
	if len(ids) == 0 {
		return nil, ErrMalformedBlob
	}
	return ids, nil
}

func (l QuestionIDList) Serialize() string {
	b, _ := json.Marshal(l)
	return string(b)
}

func (l QuestionIDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// AcceptableAnswers is the set of strings an any-match short answer
// accepts.
type AcceptableAnswers []string

func ParseAcceptableAnswers(s string) (AcceptableAnswers, error) {
	if s == "" {
		return nil, ErrMalformedBlob
	}
	var answers AcceptableAnswers
	if err := json.Unmarshal([]byte(s), &answers); err != nil {
		return nil, ErrMalformedBlob
	}
	return answers, nil
}

func (a AcceptableAnswers) Serialize() string {
	b, _ := json.Marshal(a)
	return string(b)
}
