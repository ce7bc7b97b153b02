package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Pick up .env the same way the application does
	_ = godotenv.Load()

	fmt.Println("Environment Preflight Check")
	fmt.Println("===========================")

	ok := true

	fmt.Println("\n1. Required configuration:")
	ok = checkEnvVar("LLM_API_KEY", true) && ok
	ok = checkEnvVar("OPENWEATHER_API_KEY", true) && ok
	checkEnvVar("TIMEZONEDB_API_KEY", false)

	fmt.Println("\n2. Server port:")
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	checkPortFree(port)

	fmt.Println("\n3. Mock upstream server (integration tests only):")
	checkMockServer()

	if !ok {
		fmt.Println("\nPreflight failed: fill in the missing configuration and run again.")
		os.Exit(1)
	}

	fmt.Println("\nPreflight passed.")
}

func checkEnvVar(name string, required bool) bool {
	if os.Getenv(name) != "" {
		fmt.Printf("   ✓ %s is set\n", name)
		return true
	}

	if required {
		fmt.Printf("   ✗ %s is missing (required)\n", name)
		return false
	}

	fmt.Printf("   - %s is not set (timezone lookups will fall back to UTC)\n", name)
	return true
}

func checkPortFree(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		fmt.Printf("   ✗ Port %s is already in use; the server will fail to start\n", port)
		return
	}

	if closeErr := listener.Close(); closeErr != nil {
		fmt.Printf("   Warning: failed to release probe listener: %v\n", closeErr)
	}
	fmt.Printf("   ✓ Port %s is free\n", port)
}

func checkMockServer() {
	resp, err := http.Get("http://localhost:9090/health")
	if err != nil {
		fmt.Println("   - Mock upstream server is not running")
		fmt.Println("     Start it with: go run ./cmd/integration-runner serve")
		return
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			fmt.Printf("   Warning: failed to close response body: %v\n", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusOK {
		fmt.Println("   ✓ Mock upstream server is running on :9090")
		return
	}

	fmt.Printf("   ✗ Mock upstream server answered with status %d\n", resp.StatusCode)
}
