package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type cityData struct {
	Name        string
	Lat         string
	Lon         string
	Country     string
	Temp        float64
	Description string
	Zone        string
}

var cities = map[string]cityData{
	"london": {"London", "51.5074", "-0.1278", "GB", 15.0, "overcast clouds", "Europe/London"},
	"paris":  {"Paris", "48.8566", "2.3522", "FR", 18.0, "clear sky", "Europe/Paris"},
	"kyiv":   {"Kyiv", "50.4501", "30.5234", "UA", 12.0, "light snow", "Europe/Kyiv"},
	"tokyo":  {"Tokyo", "35.6762", "139.6503", "JP", 22.0, "scattered clouds", "Asia/Tokyo"},
}

type modelRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func modelAnswer(text string) gin.H {
	return gin.H{
		"candidates": []gin.H{
			{
				"content": gin.H{
					"parts": []gin.H{
						{"text": text},
					},
				},
			},
		},
	}
}

func handleGenerate(c *gin.Context) {
	if c.Query("key") == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "API key required"}})
		return
	}

	var req modelRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Contents) == 0 || len(req.Contents[0].Parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request"}})
		return
	}

	prompt := req.Contents[0].Parts[0].Text
	lower := strings.ToLower(prompt)

	if strings.Contains(prompt, "Extract only the location name") {
		for name, city := range cities {
			if strings.Contains(lower, name) {
				answer := fmt.Sprintf("{\"location\": \"%s\"}", city.Name)
				c.JSON(http.StatusOK, modelAnswer(answer))
				return
			}
		}
		// No known place in the question: answer in prose so clients
		// exercise their extraction failure path
		c.JSON(http.StatusOK, modelAnswer("I could not find a location in that question."))
		return
	}

	if strings.Contains(prompt, "latitude and longitude") {
		for name, city := range cities {
			if strings.Contains(lower, name) {
				answer := fmt.Sprintf("```json\n{\"lat\": \"%s\", \"lon\": \"%s\"}\n```", city.Lat, city.Lon)
				c.JSON(http.StatusOK, modelAnswer(answer))
				return
			}
		}
		c.JSON(http.StatusOK, modelAnswer("```json\n{\"lat\": \"0.0000\", \"lon\": \"0.0000\"}\n```"))
		return
	}

	c.JSON(http.StatusOK, modelAnswer("I am not sure what you are asking."))
}

func findCityByCoords(latStr, lonStr string) (cityData, bool) {
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return cityData{}, false
	}

	for _, city := range cities {
		cityLat, _ := strconv.ParseFloat(city.Lat, 64)
		cityLon, _ := strconv.ParseFloat(city.Lon, 64)
		if abs(cityLat-lat) < 0.01 && abs(cityLon-lon) < 0.01 {
			return city, true
		}
	}
	return cityData{}, false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func handleCurrentWeather(c *gin.Context) {
	if c.Query("appid") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
		return
	}

	city, ok := findCityByCoords(c.Query("lat"), c.Query("lon"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": city.Name,
		"dt":   1710064800,
		"sys": gin.H{
			"country": city.Country,
			"sunrise": 1710049500,
			"sunset":  1710090900,
		},
		"main": gin.H{
			"temp":       city.Temp,
			"feels_like": city.Temp - 1.5,
			"temp_min":   city.Temp - 2.0,
			"temp_max":   city.Temp + 2.0,
			"humidity":   71,
			"pressure":   1014,
		},
		"wind": gin.H{
			"speed": 4.1,
			"deg":   240,
		},
		"weather": []gin.H{
			{"description": city.Description},
		},
	})
}

func handleForecast(c *gin.Context) {
	if c.Query("appid") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
		return
	}

	city, ok := findCityByCoords(c.Query("lat"), c.Query("lon"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
		return
	}

	var list []gin.H
	base := int64(1710064800)
	for i := 0; i < 40; i++ {
		list = append(list, gin.H{
			"dt": base + int64(i)*10800,
			"main": gin.H{
				"temp": city.Temp + float64(i%8)*0.5,
			},
			"weather": []gin.H{
				{"description": city.Description},
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

func handleTimezone(c *gin.Context) {
	if c.Query("key") == "" {
		c.JSON(http.StatusOK, gin.H{"status": "FAILED", "message": "API key required"})
		return
	}
	if c.Query("by") != "position" {
		c.JSON(http.StatusOK, gin.H{"status": "FAILED", "message": "unsupported lookup"})
		return
	}

	city, ok := findCityByCoords(c.Query("lat"), c.Query("lng"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "FAILED", "message": "no timezone found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "OK",
		"message":  "",
		"zoneName": city.Zone,
	})
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Fake model endpoint: the path parameter carries "model:generateContent"
	r.POST("/v1beta/models/:action", handleGenerate)

	// Fake OpenWeatherMap endpoints
	r.GET("/data/2.5/weather", handleCurrentWeather)
	r.GET("/data/2.5/forecast", handleForecast)

	// Fake TimezoneDB endpoint
	r.GET("/v2.1/get-time-zone", handleTimezone)

	slog.Info("Mock upstream server starting on :9090")
	if err := r.Run(":9090"); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
