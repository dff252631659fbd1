package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/valuation-server/internal/repository"
	"github.com/godilite/valuation-server/internal/repository/models"
	dbbuilder "github.com/godilite/valuation-server/pkg/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := dbbuilder.New(
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(":memory:"),
		dbbuilder.WithMaxOpenConns(1),
		dbbuilder.WithInitStatements(repository.Schema...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func testSections() []models.SectionSeed {
	return []models.SectionSeed{
		{
			Prefix: "1.",
			Title:  "Team",
			Questions: []models.QuestionSeed{
				{Number: "1.1", Text: "Founder experience", ResponseType: "dropdown", Options: []string{"None", "Previous exit"}},
				{Number: "1.2", Text: "Team size", ResponseType: "number"},
			},
		},
		{
			Prefix: "6.",
			Title:  "Financials",
			Questions: []models.QuestionSeed{
				{Number: "6.1", Text: "Revenue last year", ResponseType: "number"},
			},
		},
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestValuationRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewValuationRepository(db)

	require.NoError(t, repo.UpsertCompany(ctx, "company-1", "Acme", "Seed"))

	valuationID, err := repo.CreateValuation(ctx, "company-1", testSections())
	require.NoError(t, err)
	require.NotEmpty(t, valuationID)

	t.Run("FetchCompanyStage", func(t *testing.T) {
		stage, err := repo.FetchCompanyStage(ctx, "company-1")
		require.NoError(t, err)
		assert.Equal(t, "Seed", stage)
	})

	t.Run("UpsertCompany updates the stage", func(t *testing.T) {
		require.NoError(t, repo.UpsertCompany(ctx, "company-2", "Beta", "seed"))
		require.NoError(t, repo.UpsertCompany(ctx, "company-2", "Beta", "growth"))

		stage, err := repo.FetchCompanyStage(ctx, "company-2")
		require.NoError(t, err)
		assert.Equal(t, "growth", stage)
	})

	t.Run("FetchQuestionnaireData keeps section and question order", func(t *testing.T) {
		rows, err := repo.FetchQuestionnaireData(ctx, valuationID)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, "1.1", rows[0].QuestionNumber)
		assert.Equal(t, "1.2", rows[1].QuestionNumber)
		assert.Equal(t, "6.1", rows[2].QuestionNumber)
		assert.Equal(t, rows[0].SectionID, rows[1].SectionID)
		assert.NotEqual(t, rows[0].SectionID, rows[2].SectionID)

		assert.True(t, rows[0].OptionsJSON.Valid)
		assert.JSONEq(t, `["None","Previous exit"]`, rows[0].OptionsJSON.String)
		assert.False(t, rows[1].OptionsJSON.Valid)
		assert.False(t, rows[0].Response.Valid)
	})

	t.Run("AnswerQuestion", func(t *testing.T) {
		require.NoError(t, repo.AnswerQuestion(ctx, valuationID, "6.1", "$500,000"))

		rows, err := repo.FetchQuestionnaireData(ctx, valuationID)
		require.NoError(t, err)
		assert.Equal(t, "$500,000", rows[2].Response.String)
		assert.True(t, rows[2].Response.Valid)
	})

	t.Run("AnswerQuestion unknown question", func(t *testing.T) {
		err := repo.AnswerQuestion(ctx, valuationID, "9.9", "x")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("persist and read back", func(t *testing.T) {
		calculatedAt := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
		fields := models.ValuationFields{
			Stage:              "seed",
			CombinedValuation:  mustDecimal(t, "1234567.89"),
			Scorecard:          mustDecimal(t, "2400000"),
			ChecklistMethod:    mustDecimal(t, "3000000"),
			VentureCap:         mustDecimal(t, "1600000"),
			DCFGrowth:          mustDecimal(t, "1400000"),
			DCFMultiple:        mustDecimal(t, "1200000"),
			MethodologyWeights: `{"scorecard":{"weight":30,"enabled":true}}`,
			CalculatedAt:       calculatedAt,
		}

		require.NoError(t, repo.PersistValuationResult(ctx, valuationID, fields))

		rec, err := repo.GetValuation(ctx, valuationID)
		require.NoError(t, err)

		assert.Equal(t, valuationID, rec.ID)
		assert.Equal(t, "company-1", rec.CompanyID)
		assert.Equal(t, "seed", rec.Stage)
		assert.True(t, fields.CombinedValuation.Equal(rec.SelectedValuation))
		assert.True(t, fields.CombinedValuation.Equal(rec.PreMoneyValuation))
		assert.True(t, mustDecimal(t, "185185.1835").Equal(rec.Investment), rec.Investment.String())
		assert.True(t, mustDecimal(t, "1419753.0735").Equal(rec.PostMoneyValuation), rec.PostMoneyValuation.String())
		assert.True(t, fields.Scorecard.Equal(rec.Scorecard))
		assert.True(t, fields.DCFMultiple.Equal(rec.DCFMultiple))
		assert.Equal(t, fields.MethodologyWeights, rec.MethodologyWeights)
		require.NotNil(t, rec.CalculatedAt)
		assert.True(t, calculatedAt.Equal(*rec.CalculatedAt))
	})

	t.Run("persist overwrites", func(t *testing.T) {
		fields := models.ValuationFields{
			Stage:              "seed",
			CombinedValuation:  decimal.NewFromInt(2_000_000),
			MethodologyWeights: `{}`,
			CalculatedAt:       time.Now(),
		}
		require.NoError(t, repo.PersistValuationResult(ctx, valuationID, fields))

		rec, err := repo.GetValuation(ctx, valuationID)
		require.NoError(t, err)
		assert.Equal(t, "300000", rec.Investment.String())
		assert.Equal(t, "2300000", rec.PostMoneyValuation.String())
	})

	t.Run("new valuation has no calculation yet", func(t *testing.T) {
		id, err := repo.CreateValuation(ctx, "company-1", nil)
		require.NoError(t, err)

		rec, err := repo.GetValuation(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, rec.CalculatedAt)
		assert.True(t, rec.SelectedValuation.IsZero())

		rows, err := repo.FetchQuestionnaireData(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FetchCompanyStage(ctx, "nobody")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.GetValuation(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		err = repo.PersistValuationResult(ctx, "missing", models.ValuationFields{CalculatedAt: time.Now()})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestValuationRepository_PersistFailures(t *testing.T) {
	ctx := context.Background()
	fields := models.ValuationFields{
		Stage:             "seed",
		CombinedValuation: decimal.NewFromInt(2_000_000),
		CalculatedAt:      time.Now(),
	}

	t.Run("write error rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE valuations SET").WillReturnError(errors.New("disk I/O error"))
		mock.ExpectRollback()

		repo := repository.NewValuationRepository(db)
		err = repo.PersistValuationResult(ctx, "val-1", fields)

		assert.ErrorContains(t, err, "disk I/O error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows updated", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE valuations SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := repository.NewValuationRepository(db)
		err = repo.PersistValuationResult(ctx, "val-1", fields)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE valuations SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

		repo := repository.NewValuationRepository(db)
		err = repo.PersistValuationResult(ctx, "val-1", fields)

		assert.ErrorContains(t, err, "commit PersistValuationResult")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("questionnaire query failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT").WillReturnError(errors.New("no such table: questions"))

		repo := repository.NewValuationRepository(db)
		_, err = repo.FetchQuestionnaireData(ctx, "val-1")

		assert.ErrorContains(t, err, "query FetchQuestionnaireData")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
