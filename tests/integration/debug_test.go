package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
)

func (s *IntegrationTestSuite) TestDebug_ReportsPipelineState() {
	s.Require().Equal(http.StatusOK, s.runQuery("How warm is it in Tokyo?").Code)

	req := httptest.NewRequest("GET", "/api/debug", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))

	s.Contains(response, "pipeline")
	s.Contains(response, "history")
	s.Contains(response, "config")

	pipeline, ok := response["pipeline"].(map[string]interface{})
	s.Require().True(ok)
	s.Contains(pipeline, "queries_succeeded")
	s.Contains(pipeline, "queries_failed")
	s.Contains(pipeline, "queries_total")
	s.Contains(pipeline, "success_ratio")

	history, ok := response["history"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal(float64(1), history["count"])

	cfg, ok := response["config"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal(s.config.LLM.Model, cfg["model"])
	s.Equal("metric", cfg["units"])
	s.Equal(true, cfg["timezone_lookup"])
}

func (s *IntegrationTestSuite) TestMetrics_ExposesQueryCounters() {
	s.Require().Equal(http.StatusOK, s.runQuery("Weather in Paris please").Code)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)

	body := w.Body.String()
	s.Contains(body, "weatherchat_queries_total")
	s.Contains(body, "weatherchat_pipeline_stage_total")
	s.Contains(body, "weatherchat_query_duration_seconds")
	s.Contains(body, "weatherchat_history_size")
}
