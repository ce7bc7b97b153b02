package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"weatherchat.app/models"
)

func (s *IntegrationTestSuite) TestQuery_FullPipeline() {
	w := s.runQuery("What is the weather like in London today?")

	s.Require().Equal(http.StatusOK, w.Code)

	var result models.QueryResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))

	s.NotEmpty(result.ID)
	s.False(result.CreatedAt.IsZero())
	s.Equal("What is the weather like in London today?", result.Question)
	s.Equal("London", result.Location)
	s.InDelta(51.5074, result.Coordinates.Latitude, 0.0001)
	s.InDelta(-0.1278, result.Coordinates.Longitude, 0.0001)

	s.Require().NotNil(result.Current)
	s.Equal("London", result.Current.City)
	s.Equal("GB", result.Current.Country)
	s.Equal("overcast clouds", result.Current.Description)
	s.InDelta(15.0, result.Current.Temperature, 0.001)

	s.NotEmpty(result.Forecast)
	s.NotEmpty(result.ForecastDays)
	s.Equal("Europe/London", result.Timezone)
}

func (s *IntegrationTestSuite) TestQuery_ResolvesTimezonePerLocation() {
	w := s.runQuery("Is it raining in Tokyo right now?")

	s.Require().Equal(http.StatusOK, w.Code)

	var result models.QueryResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))

	s.Equal("Tokyo", result.Location)
	s.Equal("Asia/Tokyo", result.Timezone)

	// Forecast days carry dates computed in the resolved zone
	s.Require().NotEmpty(result.ForecastDays)
	for _, day := range result.ForecastDays {
		s.NotEmpty(day.Date)
		s.NotEmpty(day.Entries)
	}
}

func (s *IntegrationTestSuite) TestQuery_UnknownLocation() {
	w := s.runQuery("Tell me something nice")

	s.Require().Equal(http.StatusUnprocessableEntity, w.Code)

	var errorResponse models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
	s.Contains(errorResponse.Error, "location")
}

func (s *IntegrationTestSuite) TestQuery_EmptyQuestion() {
	w := s.runQuery("   ")

	s.Require().Equal(http.StatusBadRequest, w.Code)

	var errorResponse models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
	s.Equal("question cannot be empty", errorResponse.Error)
}

func (s *IntegrationTestSuite) TestQuery_MissingQuestionField() {
	req := httptest.NewRequest("POST", "/api/query", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusBadRequest, w.Code)

	var errorResponse models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &errorResponse))
	s.Equal("invalid request format", errorResponse.Error)
}
