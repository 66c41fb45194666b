package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedulepro/schedule-pro-api/internal/catalog"
	"github.com/schedulepro/schedule-pro-api/internal/dto"
	"github.com/schedulepro/schedule-pro-api/internal/models"
	"github.com/schedulepro/schedule-pro-api/internal/service"
)

func newSolveRouter(t *testing.T, offerings []*models.Offering) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := catalog.New()
	store.Replace(offerings)
	svc := service.NewSolverService(store, validator.New(), service.NewMetricsService(), zap.NewNop(), service.SolverServiceConfig{})

	r := gin.New()
	r.POST("/solve", NewSolveHandler(svc).Solve)
	return r
}

func handlerOfferings() []*models.Offering {
	credits := 3.0
	return []*models.Offering{
		{
			CRN: "11001", CourseKey: "CS 100", Section: "001", Title: "Intro to CS",
			Meetings: []models.Meeting{{Day: models.Monday, StartMin: 600, EndMin: 680}},
			Status:   models.StatusOpen, Delivery: models.DeliveryInPerson, Credits: &credits,
		},
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSolveEndpointSuccess(t *testing.T) {
	r := newSolveRouter(t, handlerOfferings())

	w := postJSON(t, r, "/solve", dto.SolveRequest{RequiredCourseKeys: []string{"CS 100"}})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.SolveResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.Count)
	require.Len(t, envelope.Data.Schedules, 1)
	assert.Equal(t, "11001", envelope.Data.Schedules[0].Offerings[0].CRN)
}

func TestSolveEndpointValidationError(t *testing.T) {
	r := newSolveRouter(t, handlerOfferings())

	w := postJSON(t, r, "/solve", map[string]any{"requiredCourseKeys": []string{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestSolveEndpointUnknownCourse(t *testing.T) {
	r := newSolveRouter(t, handlerOfferings())

	w := postJSON(t, r, "/solve", dto.SolveRequest{RequiredCourseKeys: []string{"NOPE 1"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_COURSE")
}
