package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/emsportal/certintel/internal/directory"
	"github.com/emsportal/certintel/internal/document"
	"github.com/emsportal/certintel/internal/intelligence"
)

// TestServerIntegration wires the server the way main does: roster and
// catalog loaded from JSON files, then a full extract-and-autofill pass
// against a file on disk.
func TestServerIntegration(t *testing.T) {
	tempDir := t.TempDir()

	rosterPath := filepath.Join(tempDir, "roster.json")
	if err := os.WriteFile(rosterPath, []byte(`[
		{"id":"u1","firstName":"Jane","middleName":"A","lastName":"Doe","displayName":"Jane Doe"},
		{"id":"u2","firstName":"Robert","lastName":"Jones","displayName":"Rob Jones"}
	]`), 0o644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}

	catalogPath := filepath.Join(tempDir, "catalog.json")
	if err := os.WriteFile(catalogPath, []byte(`[
		{"id":"cls-evoc","name":"Emergency Vehicle Operations"}
	]`), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	certFile := filepath.Join(tempDir, "evoc-jane.png")
	if err := os.WriteFile(certFile, []byte("fake scan bytes"), 0o644); err != nil {
		t.Fatalf("failed to write certificate: %v", err)
	}

	roster, err := directory.LoadRoster(rosterPath)
	if err != nil {
		t.Fatalf("failed to load roster: %v", err)
	}
	catalog, err := directory.LoadCatalog(catalogPath)
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	cfg := testConfig(tempDir)
	acquirer := document.NewAcquirer(stubEngine{text: certText}, cfg.MaxFileSize)
	service := intelligence.NewService(acquirer, time.Duration(cfg.TimeoutSeconds)*time.Second)
	search := document.NewSearch(cfg.MaxFileSize)

	server, err := NewServer(cfg, service, search, roster, catalog)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Find the uploaded file.
	searchRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{"query": "jane"},
		},
	}
	searchResult, err := server.handleCertificateSearchDirectory(context.Background(), searchRequest)
	if err != nil {
		t.Fatalf("search handler failed: %v", err)
	}
	if text := extractTextFromResult(searchResult); !strings.Contains(text, "evoc-jane.png") {
		t.Fatalf("search should find the certificate, got: %s", text)
	}

	// Auto-fill against the matching member.
	autofillRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path":               certFile,
				"selected_person_id": "u1",
			},
		},
	}
	autofillResult, err := server.handleCertificateAutofill(context.Background(), autofillRequest)
	if err != nil {
		t.Fatalf("autofill handler failed: %v", err)
	}
	text := extractTextFromResult(autofillResult)
	for _, want := range []string{
		"Class [applied]: Emergency Vehicle Operations (catalog id: cls-evoc)",
		"Hours [applied]: 12.0",
		"Recipient [applied]: Jane A. Doe",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("autofill result should contain %q, got: %s", want, text)
		}
	}
}

func TestServerToolsRegistration(t *testing.T) {
	server := newTestServer(t, testConfig(t.TempDir()), "")

	// Test that tools are properly registered by checking the MCP server
	if server.mcpServer == nil {
		t.Fatal("MCP server should be initialized")
	}

	// The mark3labs library doesn't expose registered tools directly,
	// but we can verify the server was created successfully
	// which means tools were registered without errors
}

func TestServerRunStdio(t *testing.T) {
	server := newTestServer(t, testConfig(t.TempDir()), "")

	// Test that the server can start (and quickly stop)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Start server in a goroutine
	done := make(chan error, 1)
	go func() {
		done <- server.runStdioMode(ctx)
	}()

	// Wait for timeout or completion
	select {
	case err := <-done:
		// Server should have stopped due to context timeout
		// This is expected behavior
		if err != nil {
			t.Logf("Server stopped with: %v (expected due to timeout)", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Error("Server did not stop within expected time")
	}
}
