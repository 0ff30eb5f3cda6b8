// Package grading converts raw answer text into scores. It is pure: no
// database, no transport, fully deterministic for a given input.
package grading

import (
	"strconv"
	"strings"

	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
)

// Outcome is the result of one grading run.
type Outcome struct {
	// PerQuestion holds a score for every selected question, including
	// zeros for unanswered ones.
	PerQuestion map[uint]float64
	Total       float64
}

// Grade scores exactly the selected question set against the stored
// answers. Answer rows for questions outside the selection never
// contribute. Re-running with the same input yields the same outcome.
func Grade(selected model.QuestionIDList, questions map[uint]model.Question, answers map[uint]string) Outcome {
	out := Outcome{PerQuestion: make(map[uint]float64, len(selected))}
	for _, id := range selected {
		q, ok := questions[id]
		if !ok {
			out.PerQuestion[id] = 0
			continue
		}
		score := ScoreQuestion(q, answers[id])
		out.PerQuestion[id] = score
		out.Total += score
	}
	return out
}

// ScoreQuestion scores a single question. An absent or empty answer
// scores zero.
func ScoreQuestion(q model.Question, answerText string) float64 {
	if answerText == "" {
		return 0
	}
	switch q.Type {
	case model.QuestionMCQ:
		return scoreMCQ(q, answerText)
	case model.QuestionShortAnswer:
		if q.AnswerMode == model.AnswerModeAnyMatch {
			return scoreAnyMatch(q, answerText)
		}
		return scoreExact(q, answerText)
	}
	return 0
}

// scoreMCQ awards full marks iff the stored answer equals the numeric
// identifier of an option flagged correct. Exact string comparison;
// option identifiers are numeric, so no case folding.
func scoreMCQ(q model.Question, answerText string) float64 {
	for _, opt := range q.Options {
		if opt.IsCorrect && answerText == strconv.FormatUint(uint64(opt.ID), 10) {
			return q.MaxScore
		}
	}
	return 0
}

func scoreExact(q model.Question, answerText string) float64 {
	if strings.EqualFold(strings.TrimSpace(answerText), strings.TrimSpace(q.CorrectAnswer)) {
		return q.MaxScore
	}
	return 0
}

// scoreAnyMatch gives linear partial credit: each distinct student line
// that matches an unused acceptable answer counts once, capped at the
// required answer count.
func scoreAnyMatch(q model.Question, answerText string) float64 {
	acceptable, err := model.ParseAcceptableAnswers(q.CorrectAnswer)
	if err != nil || len(acceptable) == 0 {
		return 0
	}
	lowered := make([]string, len(acceptable))
	for i, a := range acceptable {
		lowered[i] = strings.ToLower(strings.TrimSpace(a))
	}

	required := q.AnswerCount
	if required <= 0 {
		required = len(acceptable)
	}

	matched := 0
	used := make([]bool, len(lowered))
	seen := make(map[string]bool)
	for _, line := range strings.Split(answerText, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		for i, a := range lowered {
			if !used[i] && a == line {
				used[i] = true
				matched++
				break
			}
		}
	}

	if matched > required {
		matched = required
	}
	return q.MaxScore / float64(required) * float64(matched)
}
