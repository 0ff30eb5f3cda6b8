package service

import (
	"testing"
	"time"

	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
)

func TestAssessmentOpenOn(t *testing.T) {
	scheduled := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		assessment model.Assessment
		now        time.Time
		want       bool
	}{
		{
			name:       "on the scheduled day",
			assessment: model.Assessment{Date: scheduled},
			now:        scheduled.Add(14 * time.Hour),
			want:       true,
		},
		{
			name:       "day before",
			assessment: model.Assessment{Date: scheduled, AllowLateSubmission: true, LateSubmissionDays: 3},
			now:        scheduled.Add(-2 * time.Hour),
			want:       false,
		},
		{
			name:       "day after without late submission",
			assessment: model.Assessment{Date: scheduled},
			now:        scheduled.AddDate(0, 0, 1),
			want:       false,
		},
		{
			name:       "within late window",
			assessment: model.Assessment{Date: scheduled, AllowLateSubmission: true, LateSubmissionDays: 3},
			now:        scheduled.AddDate(0, 0, 3).Add(12 * time.Hour),
			want:       true,
		},
		{
			name:       "past late window",
			assessment: model.Assessment{Date: scheduled, AllowLateSubmission: true, LateSubmissionDays: 3},
			now:        scheduled.AddDate(0, 0, 4).Add(time.Hour),
			want:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assessmentOpenOn(&tt.assessment, tt.now); got != tt.want {
				t.Errorf("assessmentOpenOn() = %v, want %v", got, tt.want)
			}
		})
	}
}
