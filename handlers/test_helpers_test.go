package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"court_agenda_go/config"
	"court_agenda_go/db"
	"court_agenda_go/middleware"
	"court_agenda_go/models"
	"court_agenda_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Case{},
		&models.Hearing{},
		&models.HearingHistory{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
	})
	c.Set(middleware.ContextKeyActor, services.Actor{ID: "clerk-1", Name: "Clerk"})

	return e, c, rec
}
