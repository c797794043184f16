package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aebox-api/internal/database"
	"aebox-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func setupCrudTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Application{}, &models.Space{}))
	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
		_ = sqlDB.Close()
	})

	r := gin.New()
	r.PUT("/api/applications/:id", UpdateApplication)
	r.PUT("/api/spaces/:id", UpdateSpace)
	return r
}

func putJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateApplicationPreservesOmittedFields(t *testing.T) {
	r := setupCrudTest(t)

	app := &models.Application{Name: "notes", Description: "scratchpad", BoxID: 1, ViewID: "view_1"}
	require.NoError(t, database.CreateApplication(app))

	w := putJSON(r, "/api/applications/1", `{"name":"agenda"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	reloaded, err := database.GetApplication(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "agenda", reloaded.Name)
	assert.Equal(t, "scratchpad", reloaded.Description)
	assert.Equal(t, "view_1", reloaded.ViewID)
}

func TestUpdateApplicationWithNoFields(t *testing.T) {
	r := setupCrudTest(t)

	require.NoError(t, database.CreateApplication(&models.Application{Name: "notes", BoxID: 1}))

	w := putJSON(r, "/api/applications/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSpacePreservesOmittedFields(t *testing.T) {
	r := setupCrudTest(t)

	space := models.Space{Name: "work", Description: "day job"}
	require.NoError(t, database.DB.Create(&space).Error)

	w := putJSON(r, "/api/spaces/1", `{"name":"office"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Space
	require.NoError(t, database.DB.First(&reloaded, space.ID).Error)
	assert.Equal(t, "office", reloaded.Name)
	assert.Equal(t, "day job", reloaded.Description)
}
