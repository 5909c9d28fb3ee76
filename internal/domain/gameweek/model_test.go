package gameweek

import (
	"errors"
	"testing"
	"time"
)

func TestTypeFromFixtureCount(t *testing.T) {
	cases := map[int]Type{0: TypeBlank, 9: TypeBlank, 10: TypeNormal, 11: TypeDouble, 14: TypeDouble}
	for matches, want := range cases {
		if got := TypeFromFixtureCount(matches); got != want {
			t.Fatalf("matches=%d got=%s want=%s", matches, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	deadline := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		at   time.Time
		want Compliance
	}{
		{at: deadline.Add(-time.Minute), want: ComplianceOnTime},
		{at: deadline, want: ComplianceOnTime},
		{at: deadline.Add(30 * time.Minute), want: ComplianceGracePeriod},
		{at: deadline.Add(time.Hour), want: ComplianceGracePeriod},
		{at: deadline.Add(time.Hour + time.Second), want: ComplianceLate},
	}
	for _, tc := range tests {
		if got := Classify(deadline, tc.at); got != tc.want {
			t.Fatalf("at=%s got=%s want=%s", tc.at, got, tc.want)
		}
	}
}

func TestCurrent(t *testing.T) {
	deadline := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	events := []Info{
		{Number: 1, Deadline: deadline, IsCurrent: true},
		{Number: 2, Deadline: deadline.Add(7 * 24 * time.Hour), IsNext: true},
	}

	got, ok := Current(events, deadline.Add(30*time.Minute))
	if !ok || got.Number != 1 {
		t.Fatalf("within grace the current event stays: got=%+v ok=%v", got, ok)
	}

	got, ok = Current(events, deadline.Add(2*time.Hour))
	if !ok || got.Number != 2 {
		t.Fatalf("after grace the next event takes over: got=%+v ok=%v", got, ok)
	}

	got, ok = Current([]Info{{Number: 1, IsNext: true}}, deadline)
	if !ok || got.Number != 1 {
		t.Fatalf("pre-season falls back to next event: got=%+v ok=%v", got, ok)
	}

	if _, ok := Current(nil, deadline); ok {
		t.Fatalf("expected no current gameweek")
	}
}

func validSubmission() Submission {
	return Submission{
		TeamID:           1,
		Gameweek:         5,
		Starting:         []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		Bench:            []int64{12, 13, 14, 15},
		CaptainID:        7,
		ViceCaptainID:    10,
		ClubMultiplierID: 3,
	}
}

func TestSubmissionValidateShape(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Submission)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Submission) {}},
		{name: "ten starters", mutate: func(s *Submission) { s.Starting = s.Starting[:10] }, wantErr: true},
		{name: "three bench", mutate: func(s *Submission) { s.Bench = s.Bench[:3] }, wantErr: true},
		{name: "duplicate", mutate: func(s *Submission) { s.Bench[0] = 1 }, wantErr: true},
		{name: "same captain and vice", mutate: func(s *Submission) { s.ViceCaptainID = 7 }, wantErr: true},
		{name: "captain on bench", mutate: func(s *Submission) { s.CaptainID = 12 }, wantErr: true},
		{name: "vice not selected", mutate: func(s *Submission) { s.ViceCaptainID = 99 }, wantErr: true},
		{name: "missing club multiplier", mutate: func(s *Submission) { s.ClubMultiplierID = 0 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSubmission()
			tc.mutate(&s)
			err := s.ValidateShape()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSubmission) {
					t.Fatalf("expected ErrInvalidSubmission, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSubmissionAsDefaultFor(t *testing.T) {
	s := validSubmission()
	s.Chip = "bench_boost"

	got := s.AsDefaultFor(6)
	if got.Gameweek != 6 || got.Chip != "" || !got.IsDefault {
		t.Fatalf("unexpected default submission: %+v", got)
	}
	got.Starting[0] = 99
	if s.Starting[0] != 1 {
		t.Fatalf("default submission must not share slices")
	}
}
