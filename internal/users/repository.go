package users

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/pkg/pagination"
	"github.com/mcggEz/gradalyze/pkg/query"
	"github.com/mcggEz/gradalyze/pkg/repository"
	"github.com/mcggEz/gradalyze/pkg/storage"
)

// uploadConcurrency bounds parallel blob writes in the batch certificate path.
const uploadConcurrency = 4

const userColumns = `id, email, name, student_number, program, password_hash,
	tor_storage_path, tor_uploaded_at, tor_page_count, tor_notes,
	certificate_paths, grade_rows,
	archetype_realistic_percentage, archetype_investigative_percentage,
	archetype_artistic_percentage, archetype_social_percentage,
	archetype_enterprising_percentage, archetype_conventional_percentage,
	primary_archetype, archetype_analyzed_at, created_at, updated_at`

type repo struct {
	db         *sql.DB
	storage    storage.System
	engine     engine.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a profile repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	eng engine.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		engine:     eng,
		logger:     logger.With("system", "users"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxTranscriptSize, maxCertificateSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxTranscriptSize, maxCertificateSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Email", "StudentNumber")

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	found, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	for i := range found {
		r.decorate(&found[i])
	}

	result := pagination.NewPageResult(found, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	r.decorate(&u)
	return &u, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Email", email)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	r.decorate(&u)
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	q := fmt.Sprintf(`
		INSERT INTO users(id, email, name, student_number, program, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, userColumns)

	insertArgs := []any{
		uuid.New(),
		strings.ToLower(strings.TrimSpace(cmd.Email)),
		cmd.Name,
		cmd.StudentNumber,
		cmd.Program,
		cmd.PasswordHash,
	}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user registered", "id", u.ID, "email", u.Email)
	r.decorate(&u)
	return &u, nil
}

func (r *repo) UploadTranscript(ctx context.Context, cmd UploadTranscriptCommand) (*TranscriptRef, error) {
	key := buildTranscriptKey(uuid.New(), sanitizeFilename(cmd.Filename))

	progress := cmd.Progress
	if progress == nil {
		progress = r.uploadProgressLogger(cmd.Email, cmd.Filename)
	}
	reader := storage.NewProgressReader(bytes.NewReader(cmd.Data), int64(len(cmd.Data)), progress)

	if err := r.storage.Upload(ctx, key, reader, cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload transcript blob: %w", err)
	}

	q := `
		UPDATE users
		SET tor_storage_path = $1, tor_uploaded_at = now(), tor_page_count = $2, updated_at = now()
		WHERE email = $3`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, key, cmd.PageCount, cmd.Email)
	})
	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("transcript uploaded", "email", cmd.Email, "key", key)
	return &TranscriptRef{
		URL:         r.storage.URL(key),
		StoragePath: key,
		Name:        cmd.Filename,
		PageCount:   cmd.PageCount,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

// uploadProgressLogger reports blob write progress at quarter milestones so a
// large transcript upload leaves a trace in the system log.
func (r *repo) uploadProgressLogger(email, filename string) storage.ProgressFunc {
	next := 25
	return func(percent int) {
		for percent >= next && next <= 100 {
			r.logger.Info("transcript upload progress", "email", email, "filename", filename, "percent", next)
			next += 25
		}
	}
}

func (r *repo) DeleteTranscript(ctx context.Context, email string) error {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !u.HasTranscript() {
		return ErrNoTranscript
	}
	key := *u.TorStoragePath

	q := `
		UPDATE users
		SET tor_storage_path = NULL, tor_uploaded_at = NULL, tor_page_count = NULL, updated_at = now()
		WHERE email = $1`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, email)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, key); delErr != nil {
		r.logger.Warn("blob delete failed after DB update", "key", key, "error", delErr)
	}

	r.logger.Info("transcript deleted", "email", email)
	return nil
}

// UploadCertificates persists a batch atomically. Blobs upload concurrently;
// if any write or the profile update fails, every blob written so far is
// removed and no certificate refs survive.
func (r *repo) UploadCertificates(ctx context.Context, email string, files []CertificateFile) ([]CertificateRef, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrInvalidInput)
	}

	keys := make([]string, len(files))
	for i, file := range files {
		keys[i] = buildCertificateKey(uuid.New(), sanitizeFilename(file.Filename))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, file := range files {
		g.Go(func() error {
			return r.storage.Upload(gctx, keys[i], bytes.NewReader(file.Data), file.ContentType)
		})
	}
	if err := g.Wait(); err != nil {
		r.rollbackBlobs(ctx, keys)
		return nil, fmt.Errorf("upload certificate batch: %w", err)
	}

	if err := r.appendCertificatePaths(ctx, email, keys); err != nil {
		r.rollbackBlobs(ctx, keys)
		return nil, err
	}

	now := time.Now().UTC()
	refs := make([]CertificateRef, len(files))
	for i, file := range files {
		refs[i] = CertificateRef{
			URL:         r.storage.URL(keys[i]),
			StoragePath: keys[i],
			Name:        file.Filename,
			UploadedAt:  now,
		}
	}

	r.logger.Info("certificate batch uploaded", "email", email, "count", len(refs))
	return refs, nil
}

// AddCertificate persists a single certificate. Callers looping over files
// with this operation accept partial success; a mid-loop failure leaves
// earlier files committed.
func (r *repo) AddCertificate(ctx context.Context, email string, file CertificateFile) (*CertificateRef, error) {
	key := buildCertificateKey(uuid.New(), sanitizeFilename(file.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(file.Data), file.ContentType); err != nil {
		return nil, fmt.Errorf("upload certificate blob: %w", err)
	}

	if err := r.appendCertificatePaths(ctx, email, []string{key}); err != nil {
		r.rollbackBlobs(ctx, []string{key})
		return nil, err
	}

	r.logger.Info("certificate uploaded", "email", email, "key", key)
	return &CertificateRef{
		URL:         r.storage.URL(key),
		StoragePath: key,
		Name:        file.Filename,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (r *repo) DeleteCertificate(ctx context.Context, email, path string) error {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	target := ""
	remaining := make([]string, 0, len(u.CertificatePaths))
	for _, p := range u.CertificatePaths {
		if target == "" && matchesCertificate(p, path, r.storage.URL(p)) {
			target = p
			continue
		}
		remaining = append(remaining, p)
	}
	if target == "" {
		return ErrNoCertificate
	}

	if err := r.setCertificatePaths(ctx, email, remaining); err != nil {
		return err
	}

	if delErr := r.storage.Delete(ctx, target); delErr != nil {
		r.logger.Warn("blob delete failed after DB update", "key", target, "error", delErr)
	}

	r.logger.Info("certificate deleted", "email", email, "key", target)
	return nil
}

func (r *repo) ExtractGrades(ctx context.Context, email, storagePath string) (*GradeTable, error) {
	if storagePath == "" {
		u, err := r.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if !u.HasTranscript() {
			return nil, ErrNoTranscript
		}
		storagePath = *u.TorStoragePath
	}

	result, err := r.engine.ExtractGrades(ctx, email, storagePath)
	if err != nil {
		return nil, err
	}

	rows := grades.Normalize(result.Grades, r.logger)
	if err := r.persistGradeRows(ctx, email, rows); err != nil {
		return nil, err
	}

	r.logger.Info("grades extracted", "email", email, "rows", len(rows))
	return buildGradeTable(rows), nil
}

func (r *repo) Grades(ctx context.Context, email string) (*GradeTable, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return buildGradeTable(u.GradeRows), nil
}

func (r *repo) UpdateGradeCell(ctx context.Context, email string, id int64, field string, value any) (*GradeTable, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rows, err := grades.UpdateCell(u.GradeRows, id, field, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := r.persistGradeRows(ctx, email, rows); err != nil {
		return nil, err
	}
	return buildGradeTable(rows), nil
}

func (r *repo) AddGradeRow(ctx context.Context, email, semester string) (*GradeTable, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rows := grades.AddRow(u.GradeRows, semester)
	if err := r.persistGradeRows(ctx, email, rows); err != nil {
		return nil, err
	}
	return buildGradeTable(rows), nil
}

func (r *repo) DeleteGradeRow(ctx context.Context, email string, id int64) (*GradeTable, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rows, err := grades.DeleteRow(u.GradeRows, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := r.persistGradeRows(ctx, email, rows); err != nil {
		return nil, err
	}
	return buildGradeTable(rows), nil
}

func (r *repo) SaveGrades(ctx context.Context, email string, rows []grades.Row) (*GradeTable, error) {
	checked := make([]grades.Row, len(rows))
	for i, row := range rows {
		if err := grades.ValidateRow(row); err != nil {
			return nil, fmt.Errorf("%w: row %d: %s", ErrInvalidInput, row.ID, err)
		}
		checked[i] = grades.ReconcileSubject(row)
	}
	if err := r.persistGradeRows(ctx, email, checked); err != nil {
		return nil, err
	}
	return buildGradeTable(checked), nil
}

func (r *repo) UpdateNotes(ctx context.Context, email, notes string) error {
	q := `UPDATE users SET tor_notes = $1, updated_at = now() WHERE email = $2`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, notes, email)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) decorate(u *User) {
	if u.HasTranscript() {
		url := r.storage.URL(*u.TorStoragePath)
		u.TorURL = &url
	}
}

func (r *repo) persistGradeRows(ctx context.Context, email string, rows []grades.Row) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal grade rows: %w", err)
	}

	q := `UPDATE users SET grade_rows = $1, updated_at = now() WHERE email = $2`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, payload, email)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) appendCertificatePaths(ctx context.Context, email string, keys []string) error {
	payload, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("marshal certificate paths: %w", err)
	}

	q := `
		UPDATE users
		SET certificate_paths = COALESCE(certificate_paths, '[]'::jsonb) || $1::jsonb, updated_at = now()
		WHERE email = $2`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, payload, email)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) setCertificatePaths(ctx context.Context, email string, keys []string) error {
	payload, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("marshal certificate paths: %w", err)
	}

	q := `UPDATE users SET certificate_paths = $1, updated_at = now() WHERE email = $2`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, payload, email)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) rollbackBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := r.storage.Delete(ctx, key); err != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", err)
		}
	}
}

func matchesCertificate(stored, requested, storedURL string) bool {
	return stored == requested || storedURL == requested || strings.HasSuffix(requested, stored)
}

func buildTranscriptKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("transcripts/%s/%s", id, filename)
}

func buildCertificateKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("certificates/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "file"
	}
	return url.PathEscape(name)
}
