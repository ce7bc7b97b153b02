package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	mockServerDir    = "tests/mocks/upstream-server"
	mockServerBinary = "mock-upstream-server"
	mockServerHealth = "http://localhost:9090/health"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "test":
		runFullCycle()
	case "quick":
		runIntegrationTests()
	case "serve":
		serveMockServer()
	case "status":
		showStatus()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Integration Test Runner")
	fmt.Println("Usage: go run ./cmd/integration-runner <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  test   - Full test cycle (start mock server + run tests + stop)")
	fmt.Println("  quick  - Run tests against an already running mock server")
	fmt.Println("  serve  - Run the mock upstream server in the foreground")
	fmt.Println("  status - Show whether the mock upstream server is reachable")
}

func runFullCycle() {
	checkPortConflicts()
	prepareMockServer()
	buildMockServer()

	server := startMockServer()
	defer stopMockServer(server)

	waitForMockServer()
	runIntegrationTests()
}

func runIntegrationTests() {
	fmt.Println("Running integration tests...")

	cmd := exec.Command("go", "test", "-v", "-timeout=10m", "./tests/integration/...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("Integration tests failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Integration tests completed successfully")
}

func serveMockServer() {
	prepareMockServer()

	fmt.Println("Starting mock upstream server on :9090 (Ctrl+C to stop)...")
	cmd := exec.Command("go", "run", ".")
	cmd.Dir = mockServerDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Printf("Mock upstream server exited: %v", err)
		os.Exit(1)
	}
}

func prepareMockServer() {
	fmt.Println("Preparing mock upstream server dependencies...")

	cmd := exec.Command("go", "mod", "tidy")
	cmd.Dir = mockServerDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Printf("Failed to run go mod tidy in mock upstream server: %v", err)
		os.Exit(1)
	}
}

func buildMockServer() {
	fmt.Println("Building mock upstream server...")

	cmd := exec.Command("go", "build", "-o", mockServerBinary, ".")
	cmd.Dir = mockServerDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Printf("Failed to build mock upstream server: %v", err)
		os.Exit(1)
	}
}

func startMockServer() *exec.Cmd {
	fmt.Println("Starting mock upstream server on :9090...")

	cmd := exec.Command("./" + mockServerBinary)
	cmd.Dir = mockServerDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to start mock upstream server: %v", err)
		os.Exit(1)
	}

	return cmd
}

func stopMockServer(server *exec.Cmd) {
	if server == nil || server.Process == nil {
		return
	}

	fmt.Println("Stopping mock upstream server...")
	if err := server.Process.Kill(); err != nil {
		log.Printf("Failed to stop mock upstream server: %v", err)
	}
	_ = server.Wait()

	if err := os.Remove(filepath.Join(mockServerDir, mockServerBinary)); err != nil {
		log.Printf("Failed to remove mock server binary: %v", err)
	}
}

func waitForMockServer() {
	fmt.Println("Waiting for mock upstream server to be ready...")

	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		if probeMockServer() {
			fmt.Println("Mock upstream server is ready")
			return
		}

		fmt.Printf("Waiting for mock upstream server... (%d/%d)\n", i+1, maxRetries)
		time.Sleep(time.Second)
	}

	fmt.Println("Mock upstream server failed to start within timeout")
	os.Exit(1)
}

func probeMockServer() bool {
	resp, err := http.Get(mockServerHealth)
	if err != nil {
		return false
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Failed to close response body: %v", closeErr)
		}
	}()

	return resp.StatusCode == http.StatusOK
}

func checkPortConflicts() {
	ports := []string{"9090"}
	conflicts := []string{}

	for _, port := range ports {
		cmd := exec.Command("netstat", "-an")
		output, err := cmd.Output()
		if err == nil {
			if strings.Contains(string(output), ":"+port) {
				conflicts = append(conflicts, port)
			}
		}
	}

	if len(conflicts) > 0 {
		fmt.Printf("Warning: The following ports are in use: %s\n", strings.Join(conflicts, ", "))
		fmt.Println("The mock upstream server listens on 9090; stop whatever holds it first.")
	}
}

func showStatus() {
	if probeMockServer() {
		fmt.Println("Mock upstream server is running on :9090")
		return
	}

	fmt.Println("Mock upstream server is not reachable on :9090")
	fmt.Println("Start it with: go run ./cmd/integration-runner serve")
}
