package service

import (
	"testing"
	"time"

	"github.com/AtizaD/school-assessment-system-sub006/internal/model"
)

func minutes(n int) *int { return &n }

func TestEffectiveDuration(t *testing.T) {
	tests := []struct {
		name       string
		assessment model.Assessment
		reset      *model.AssessmentReset
		want       time.Duration
	}{
		{"nominal duration", model.Assessment{Duration: minutes(60)}, nil, 60 * time.Minute},
		{"nil duration is untimed", model.Assessment{}, nil, 0},
		{"zero duration is untimed", model.Assessment{Duration: minutes(0)}, nil, 0},
		{"partial reset overrides duration", model.Assessment{Duration: minutes(60)}, &model.AssessmentReset{ResetType: model.ResetTypePartial}, PartialResetWindow},
		{"partial reset overrides untimed", model.Assessment{}, &model.AssessmentReset{ResetType: model.ResetTypePartial}, PartialResetWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveDuration(&tt.assessment, tt.reset); got != tt.want {
				t.Errorf("EffectiveDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		attempt     model.Attempt
		assessment  model.Assessment
		reset       *model.AssessmentReset
		wantSecs    int64
		wantLimited bool
	}{
		{
			name:        "time left mid attempt",
			attempt:     model.Attempt{StartTime: now.Add(-30 * time.Minute), Status: model.AttemptInProgress},
			assessment:  model.Assessment{Duration: minutes(60)},
			wantSecs:    1800,
			wantLimited: true,
		},
		{
			name:        "deadline passed clamps to zero",
			attempt:     model.Attempt{StartTime: now.Add(-61 * time.Minute), Status: model.AttemptInProgress},
			assessment:  model.Assessment{Duration: minutes(60)},
			wantSecs:    0,
			wantLimited: true,
		},
		{
			name:        "terminal attempt reports zero",
			attempt:     model.Attempt{StartTime: now.Add(-time.Minute), Status: model.AttemptCompleted},
			assessment:  model.Assessment{Duration: minutes(60)},
			wantSecs:    0,
			wantLimited: true,
		},
		{
			name:        "untimed attempt never expires",
			attempt:     model.Attempt{StartTime: now.Add(-48 * time.Hour), Status: model.AttemptInProgress},
			assessment:  model.Assessment{},
			wantSecs:    0,
			wantLimited: false,
		},
		{
			name:        "partial reset restarts from attempt start",
			attempt:     model.Attempt{StartTime: now.Add(-2 * time.Minute), Status: model.AttemptInProgress},
			assessment:  model.Assessment{Duration: minutes(60)},
			reset:       &model.AssessmentReset{ResetType: model.ResetTypePartial},
			wantSecs:    180,
			wantLimited: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secs, limited := Remaining(&tt.attempt, &tt.assessment, tt.reset, now)
			if secs != tt.wantSecs || limited != tt.wantLimited {
				t.Errorf("Remaining() = (%d, %v), want (%d, %v)", secs, limited, tt.wantSecs, tt.wantLimited)
			}
		})
	}
}

func TestSyncClock(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	server := now.UnixMilli()

	tests := []struct {
		name       string
		clientTime int64
		wantOffset int64
	}{
		{"client behind", server - 1500, 1500},
		{"client ahead", server + 2000, -2000},
		{"in sync", server, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SyncClock(tt.clientTime, now)
			if got.ServerTimestamp != server {
				t.Errorf("ServerTimestamp = %d, want %d", got.ServerTimestamp, server)
			}
			if got.OffsetMs != tt.wantOffset {
				t.Errorf("OffsetMs = %d, want %d", got.OffsetMs, tt.wantOffset)
			}
		})
	}
}
