package workflow

import (
	"testing"
	"time"

	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/internal/users"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(v float64) *float64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestDerive(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		user users.User
		want Stage
	}{
		{
			name: "fresh profile starts at upload",
			user: users.User{},
			want: StageUpload,
		},
		{
			name: "completed analysis lands directly in processing",
			user: users.User{
				ArchetypeAnalyzedAt:              timePtr(now),
				ArchetypeInvestigativePercentage: floatPtr(42),
			},
			want: StageProcessing,
		},
		{
			name: "analysis timestamp without axis scores is not an analysis",
			user: users.User{
				ArchetypeAnalyzedAt: timePtr(now),
			},
			want: StageUpload,
		},
		{
			name: "transcript with extracted rows awaits validation",
			user: users.User{
				TorStoragePath: strPtr("transcripts/abc/tor.pdf"),
				TorUploadedAt:  timePtr(now),
				GradeRows:      []grades.Row{{ID: 1, Subject: "CS 101 - Intro"}},
			},
			want: StageValidation,
		},
		{
			name: "transcript without extraction stays at upload",
			user: users.User{
				TorStoragePath: strPtr("transcripts/abc/tor.pdf"),
				TorUploadedAt:  timePtr(now),
			},
			want: StageUpload,
		},
		{
			name: "analysis outranks pending validation",
			user: users.User{
				TorStoragePath:               strPtr("transcripts/abc/tor.pdf"),
				GradeRows:                    []grades.Row{{ID: 1}},
				ArchetypeAnalyzedAt:          timePtr(now),
				ArchetypeSocialPercentage:    floatPtr(61.5),
				PrimaryArchetype:             strPtr("social"),
			},
			want: StageProcessing,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := Derive(&tc.user)
			if state.Stage != tc.want {
				t.Errorf("expected stage %q, got %q", tc.want, state.Stage)
			}
		})
	}

	t.Run("certificate intent moves processing into certificate upload", func(t *testing.T) {
		u := users.User{
			ArchetypeAnalyzedAt:       timePtr(now),
			ArchetypeSocialPercentage: floatPtr(61.5),
		}
		state := Derive(&u).WithCertificateIntent()
		if state.Stage != StageCertificateUpload {
			t.Errorf("expected stage %q, got %q", StageCertificateUpload, state.Stage)
		}
	})

	t.Run("certificate intent is ignored before analysis completes", func(t *testing.T) {
		u := users.User{
			TorStoragePath: strPtr("transcripts/abc/tor.pdf"),
			GradeRows:      []grades.Row{{ID: 1}},
		}
		state := Derive(&u).WithCertificateIntent()
		if state.Stage != StageValidation {
			t.Errorf("expected stage %q, got %q", StageValidation, state.Stage)
		}
	})

	t.Run("state carries profile facts", func(t *testing.T) {
		u := users.User{
			TorStoragePath:   strPtr("transcripts/abc/tor.pdf"),
			CertificatePaths: []string{"certificates/a/x.pdf", "certificates/b/y.png"},
			GradeRows:        []grades.Row{{ID: 1}, {ID: 2}},
		}
		state := Derive(&u)
		if !state.HasTranscript {
			t.Error("expected HasTranscript")
		}
		if state.CertificateCount != 2 {
			t.Errorf("expected 2 certificates, got %d", state.CertificateCount)
		}
		if state.GradeRowCount != 2 {
			t.Errorf("expected 2 grade rows, got %d", state.GradeRowCount)
		}
	})
}
