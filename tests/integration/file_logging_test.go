package integration

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"
)

func (s *IntegrationTestSuite) TestUpstreamLogging_RecordsWeatherTraffic() {
	s.Require().Equal(http.StatusOK, s.runQuery("What is the weather like in London today?").Code)

	var entries []map[string]interface{}
	s.Require().Eventually(func() bool {
		data, err := os.ReadFile(s.logPath)
		if err != nil {
			return false
		}

		entries = entries[:0]
		for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
			if line == "" {
				continue
			}
			var entry map[string]interface{}
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				return false
			}
			entries = append(entries, entry)
		}
		return len(entries) >= 4
	}, 2*time.Second, 100*time.Millisecond, "upstream log never filled")

	events := make(map[string]bool)
	for _, entry := range entries {
		s.Equal("OpenWeatherMap", entry["provider"])
		s.NotEmpty(entry["timestamp"])
		if entry["target"] == "51.5074,-0.1278" {
			event, _ := entry["event"].(string)
			events[event] = true
		}
	}

	// Current conditions and forecast each log a request/response pair
	s.True(events["request"], "expected a logged request for the London call")
	s.True(events["response"], "expected a logged response for the London call")
}
