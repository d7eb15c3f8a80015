package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/pkg/pagination"
)

// System defines the public contract for profile domain operations.
//
// Certificate uploads come in two flavors with different atomicity:
// UploadCertificates is all-or-nothing (every file persists or none does),
// while AddCertificate persists a single file and is the building block of
// the caller-driven sequential loop, which can partially succeed.
type System interface {
	Handler(maxTranscriptSize, maxCertificateSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[User], error)

	Find(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)

	UploadTranscript(ctx context.Context, cmd UploadTranscriptCommand) (*TranscriptRef, error)
	DeleteTranscript(ctx context.Context, email string) error

	UploadCertificates(ctx context.Context, email string, files []CertificateFile) ([]CertificateRef, error)
	AddCertificate(ctx context.Context, email string, file CertificateFile) (*CertificateRef, error)
	DeleteCertificate(ctx context.Context, email, path string) error

	ExtractGrades(ctx context.Context, email, storagePath string) (*GradeTable, error)
	Grades(ctx context.Context, email string) (*GradeTable, error)
	UpdateGradeCell(ctx context.Context, email string, id int64, field string, value any) (*GradeTable, error)
	AddGradeRow(ctx context.Context, email, semester string) (*GradeTable, error)
	DeleteGradeRow(ctx context.Context, email string, id int64) (*GradeTable, error)
	SaveGrades(ctx context.Context, email string, rows []grades.Row) (*GradeTable, error)

	UpdateNotes(ctx context.Context, email, notes string) error
}
