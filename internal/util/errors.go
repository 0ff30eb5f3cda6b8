package util

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRegistered         = errors.New("email already registered")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrAssessmentNotFound      = errors.New("assessment not found")
	ErrAssessmentNotAccessible = errors.New("assessment not accessible")
	ErrAssessmentNotToday      = errors.New("assessment not open today")
	ErrAssessmentLocked        = errors.New("assessment has active attempts")
	ErrNotEnrolled             = errors.New("student not enrolled in class")
	ErrQuestionNotFound        = errors.New("question not found")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadyEnded     = errors.New("attempt already completed")
	ErrAttemptNotEnded         = errors.New("attempt not yet completed")
	ErrAlreadyGraded           = errors.New("result already recorded")
	ErrAutoSubmitFailed        = errors.New("auto-submit failed")
	ErrInvalidCSRFToken        = errors.New("invalid anti-forgery token")
)
