package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupoint/scoring-api/internal/models"
	"github.com/edupoint/scoring-api/internal/service"
	appErrors "github.com/edupoint/scoring-api/pkg/errors"
)

type configRepoMock struct {
	defaultConfig *models.ScoringConfiguration
	created       *models.ScoringConfiguration
}

func (m *configRepoMock) List(ctx context.Context, filter models.ScoringConfigFilter) ([]models.ScoringConfiguration, error) {
	return nil, nil
}

func (m *configRepoMock) FindByID(ctx context.Context, id string) (*models.ScoringConfiguration, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "scoring configuration not found")
}

func (m *configRepoMock) ListByEducationLevel(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error) {
	return nil, nil
}

func (m *configRepoMock) ListSiblings(ctx context.Context, level models.EducationLevel) ([]models.ScoringConfiguration, error) {
	return nil, nil
}

func (m *configRepoMock) FindDefault(ctx context.Context, level models.EducationLevel) (*models.ScoringConfiguration, error) {
	if m.defaultConfig == nil {
		return nil, appErrors.Clone(appErrors.ErrNoDefaultConfig, "no default")
	}
	return m.defaultConfig, nil
}

func (m *configRepoMock) Create(ctx context.Context, config *models.ScoringConfiguration) error {
	m.created = config
	return nil
}

func (m *configRepoMock) Update(ctx context.Context, config *models.ScoringConfiguration) error {
	return nil
}

func (m *configRepoMock) SoftDelete(ctx context.Context, id string) error {
	return nil
}

type gradingSystemReaderMock struct{}

func (m *gradingSystemReaderMock) FindByID(ctx context.Context, id string) (*models.GradingSystem, error) {
	return &models.GradingSystem{
		ID: id, Name: "Standard", MinScore: 0, MaxScore: 100, PassMark: 40,
		Ranges: []models.GradeRange{
			{Grade: "F", MinScore: 0, MaxScore: 39},
			{Grade: "P", MinScore: 40, MaxScore: 100, IsPassing: true},
		},
	}, nil
}

func floatPtr(v float64) *float64 { return &v }

func newConfigHandler(repo *configRepoMock) *ScoringConfigHandler {
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	svc := service.NewScoringConfigService(repo, &gradingSystemReaderMock{}, cache, 0, nil, nil)
	return NewScoringConfigHandler(svc)
}

func validConfigPayload() service.SaveScoringConfigRequest {
	return service.SaveScoringConfigRequest{
		Name:              "SS Termly",
		EducationLevel:    models.LevelSeniorSecondary,
		ResultType:        models.ResultTypeTermly,
		GradingSystemID:   "gs-1",
		FirstTestMax:      floatPtr(10),
		SecondTestMax:     floatPtr(10),
		ThirdTestMax:      floatPtr(10),
		ExamMax:           floatPtr(70),
		TotalMax:          floatPtr(100),
		CAWeightPercent:   floatPtr(30),
		ExamWeightPercent: floatPtr(70),
	}
}

func postJSON(t *testing.T, handlerFunc gin.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handlerFunc(c)
	return w
}

func TestScoringConfigHandlerCreate(t *testing.T) {
	repo := &configRepoMock{}
	handler := newConfigHandler(repo)

	w := postJSON(t, handler.Create, "/scoring-configs", validConfigPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, models.LevelSeniorSecondary, repo.created.EducationLevel)
}

func TestScoringConfigHandlerCreateReportsViolations(t *testing.T) {
	repo := &configRepoMock{}
	handler := newConfigHandler(repo)

	payload := validConfigPayload()
	payload.CAWeightPercent = floatPtr(40)
	payload.ExamMax = floatPtr(60)

	w := postJSON(t, handler.Create, "/scoring-configs", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Violations []struct {
			Rule string `json:"rule"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.GreaterOrEqual(t, len(envelope.Violations), 2)
	assert.Nil(t, repo.created)
}

func TestScoringConfigHandlerValidateDryRun(t *testing.T) {
	repo := &configRepoMock{}
	handler := newConfigHandler(repo)

	payload := validConfigPayload()
	payload.CAWeightPercent = floatPtr(40)

	w := postJSON(t, handler.Validate, "/scoring-configs/validate", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			OK         bool              `json:"ok"`
			Violations []json.RawMessage `json:"violations"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.OK)
	assert.NotEmpty(t, envelope.Data.Violations)
	assert.Nil(t, repo.created)
}

func TestScoringConfigHandlerGetDefaultAbsent(t *testing.T) {
	repo := &configRepoMock{}
	handler := newConfigHandler(repo)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/scoring-configs/default/PRIMARY", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "level", Value: "PRIMARY"}}

	handler.GetDefault(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, appErrors.ErrNoDefaultConfig.Code, envelope.Error.Code)
}
