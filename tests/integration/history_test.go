package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"weatherchat.app/models"
)

type historyResponse struct {
	Count   int                  `json:"count"`
	Results []models.QueryResult `json:"results"`
}

func (s *IntegrationTestSuite) getHistory() historyResponse {
	req := httptest.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)

	var response historyResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (s *IntegrationTestSuite) TestHistory_RecordsQueriesNewestFirst() {
	s.Require().Equal(http.StatusOK, s.runQuery("How warm is it in London?").Code)
	s.Require().Equal(http.StatusOK, s.runQuery("What about Paris?").Code)

	history := s.getHistory()
	s.Require().Equal(2, history.Count)
	s.Require().Len(history.Results, 2)
	s.Equal("Paris", history.Results[0].Location)
	s.Equal("London", history.Results[1].Location)
}

func (s *IntegrationTestSuite) TestHistory_ClearRemovesEntries() {
	s.Require().Equal(http.StatusOK, s.runQuery("How cold is Kyiv today?").Code)
	s.Require().Equal(1, s.getHistory().Count)

	s.clearHistory()

	history := s.getHistory()
	s.Equal(0, history.Count)
	s.Empty(history.Results)
}

func (s *IntegrationTestSuite) TestHistory_SkipsFailedQueries() {
	w := s.runQuery("Tell me a joke instead")
	s.Require().Equal(http.StatusUnprocessableEntity, w.Code)

	history := s.getHistory()
	s.Equal(0, history.Count)
}
