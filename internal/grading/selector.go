package grading

import "github.com/AtizaD/school-assessment-system-sub006/internal/model"

// SelectQuestions resolves the ordered question ID list a student must
// answer for an attempt. Read-only and deterministic: the pooled subset
// is fixed at attempt creation, never re-drawn here.
//
// When pooling is active and the stored order is missing or unparsable,
// the result is an empty list. The attempt then grades to zero rather
// than leaking the full bank; the caller logs the anomaly.
func SelectQuestions(assessment *model.Assessment, attempt *model.Attempt, bank []model.Question) model.QuestionIDList {
	if !assessment.UsePooling {
		ids := make(model.QuestionIDList, len(bank))
		for i, q := range bank {
			ids[i] = q.ID
		}
		return ids
	}

	ids, err := model.ParseQuestionIDList(attempt.QuestionOrder)
	if err != nil {
		return model.QuestionIDList{}
	}
	return ids
}
