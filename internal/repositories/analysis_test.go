package repositories

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestAnalysisRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	id := uuid.New()
	docID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "resume_document_id", "job_description", "status", "created_at"}).
		AddRow(id.String(), docID.String(), "Senior Go engineer", "queued", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "analyses" WHERE id = $1`)).WillReturnRows(rows)

	analysis, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, id, analysis.ID)
	assert.Equal(t, docID, analysis.ResumeDocumentID)
	assert.Equal(t, models.StatusQueued, analysis.Status)
	assert.True(t, analysis.Status.Pending())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "analyses" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "analyses" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(uuid.New(), models.StatusProcessing))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "analyses" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateError(uuid.New(), "boom"), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_FindPendingJobs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	rows := sqlmock.NewRows([]string{"id", "status"}).
		AddRow(uuid.NewString(), "queued").
		AddRow(uuid.NewString(), "queued")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "analyses" WHERE status = $1 ORDER BY created_at ASC`)).
		WillReturnRows(rows)

	pending, err := repo.FindPendingJobs(10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "filename", "original_file_name", "file_path"}).
		AddRow(id.String(), "resume_x.pdf", "jane.pdf", "/tmp/resume_x.pdf")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "documents" WHERE id = $1`)).WillReturnRows(rows)

	doc, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "jane.pdf", doc.OriginalFileName)
	assert.Equal(t, "/tmp/resume_x.pdf", doc.FilePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// jsonArg matches a jsonb column value written through the json serializer.
type jsonArg string

func (a jsonArg) Match(v driver.Value) bool {
	switch val := v.(type) {
	case string:
		return val == string(a)
	case []byte:
		return string(val) == string(a)
	}
	return false
}

func TestAnalysisRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "analyses"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

	err := repo.Create(&models.Analysis{
		ID:               id,
		ResumeDocumentID: uuid.New(),
		JobDescription:   "Senior Go engineer",
		Status:           models.StatusQueued,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_CreateFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "analyses"`)).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(&models.Analysis{ID: uuid.New(), Status: models.StatusQueued})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create analysis")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func analysisResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		OverallScore:    82,
		SkillScore:      75,
		RoleScore:       90,
		ExperienceScore: 60,
		MatchedKeywords: []string{"go", "postgresql"},
		MissingKeywords: []string{"kubernetes"},
		Suggestions:     []string{"Quantify your impact"},
		ResumeKeywords:  []string{"go", "postgresql", "docker"},
		JDKeywords:      []string{"go", "postgresql", "kubernetes"},
	}
}

func TestAnalysisRepository_UpdateResult(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "analyses" SET "status"=$1,"overall_score"=$2,"skill_score"=$3,"role_score"=$4,"experience_score"=$5,"matched_keywords"=$6,"missing_keywords"=$7,"suggestions"=$8,"resume_keywords"=$9,"jd_keywords"=$10,"updated_at"=$11 WHERE id = $12`)).
		WithArgs(
			"completed",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			jsonArg(`["go","postgresql"]`),
			jsonArg(`["kubernetes"]`),
			jsonArg(`["Quantify your impact"]`),
			jsonArg(`["go","postgresql","docker"]`),
			jsonArg(`["go","postgresql","kubernetes"]`),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateResult(uuid.New(), analysisResult()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_UpdateResultNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "analyses" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdateResult(uuid.New(), analysisResult()), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisRepository_UpdateError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "analyses" SET "error_message"=$1,"status"=$2,"updated_at"=$3 WHERE id = $4`)).
		WithArgs("Resume appears to be a scanned image.", "failed", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateError(uuid.New(), "Resume appears to be a scanned image."))
	assert.NoError(t, mock.ExpectationsWereMet())
}
