package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open test database")

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Person{},
		&model.Organization{},
		&model.Case{},
		&model.Statement{},
		&model.Source{},
		&model.Repercussion{},
		&model.OperationLog{},
		&model.IntegrationSetting{},
	))
	return db
}

func createPerson(t *testing.T, db *gorm.DB, name string) *model.Person {
	t.Helper()
	p := &model.Person{ID: uuid.NewString(), Slug: uuid.NewString(), Name: name}
	require.NoError(t, db.Create(p).Error)
	return p
}

type stmtFixture struct {
	statementDate time.Time
	person        *model.Person
	caseID        *string
	statementType string
	content       string
	views         int64
	responses     int
	publications  []string
	repercussions int
}

func defaultFixture() stmtFixture {
	return stmtFixture{
		statementDate: time.Now().Add(-24 * time.Hour),
		statementType: model.StatementTypeOriginal,
		content:       "Everything I said was taken entirely out of context and I stand by it.",
	}
}

// createStatement inserts a statement plus the related rows the policies read.
func createStatement(t *testing.T, db *gorm.DB, fx stmtFixture) *model.Statement {
	t.Helper()

	var personID *string
	if fx.person != nil {
		personID = &fx.person.ID
	}
	s := &model.Statement{
		ID:            uuid.NewString(),
		Content:       fx.content,
		StatementDate: fx.statementDate,
		StatementType: fx.statementType,
		PersonID:      personID,
		CaseID:        fx.caseID,
		ViewCount:     fx.views,
	}
	require.NoError(t, db.Create(s).Error)

	for i := 0; i < fx.responses; i++ {
		resp := &model.Statement{
			ID:            uuid.NewString(),
			Content:       fmt.Sprintf("Response %d", i),
			StatementDate: fx.statementDate.Add(time.Duration(i+1) * time.Hour),
			StatementType: model.StatementTypeResponse,
			RespondsToID:  &s.ID,
		}
		require.NoError(t, db.Create(resp).Error)
	}
	for _, pub := range fx.publications {
		src := &model.Source{
			ID:          uuid.NewString(),
			StatementID: s.ID,
			Publication: pub,
			URL:         "https://example.com/article",
		}
		require.NoError(t, db.Create(src).Error)
	}
	for i := 0; i < fx.repercussions; i++ {
		rep := &model.Repercussion{
			ID:               uuid.NewString(),
			StatementAboutID: &s.ID,
			Type:             model.RepercussionJobLoss,
			Title:            "Lost position",
		}
		require.NoError(t, db.Create(rep).Error)
	}
	return s
}

func createStatementPageCase(t *testing.T, db *gorm.DB, stmt *model.Statement) *model.Case {
	t.Helper()
	cs := &model.Case{
		ID:              uuid.NewString(),
		Slug:            "page-" + uuid.NewString(),
		Title:           "Statement page",
		CaseDate:        stmt.StatementDate,
		Status:          model.CaseStatusDocumented,
		Visibility:      model.VisibilityDraft,
		IsRealIncident:  false,
		WasAutoImported: true,
	}
	require.NoError(t, db.Create(cs).Error)
	require.NoError(t, db.Model(&model.Statement{}).Where("id = ?", stmt.ID).Update("case_id", cs.ID).Error)
	return cs
}
