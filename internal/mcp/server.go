package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/emsportal/certintel/internal/autofill"
	"github.com/emsportal/certintel/internal/config"
	"github.com/emsportal/certintel/internal/descriptions"
	"github.com/emsportal/certintel/internal/document"
	"github.com/emsportal/certintel/internal/intelligence"
	"github.com/emsportal/certintel/internal/match"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *intelligence.Service
	search    *document.Search
	roster    []match.Person
	catalog   []autofill.ClassEntry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *intelligence.Service, search *document.Search,
	roster []match.Person, catalog []autofill.ClassEntry,
) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if search == nil {
		return nil, fmt.Errorf("search cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		service:   service,
		search:    search,
		roster:    roster,
		catalog:   catalog,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register certificate extract tool
	certificateExtractTool := mcp.NewTool(
		"certificate_extract",
		mcp.WithDescription(descriptions.GetToolDescription("certificate_extract")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the certificate file (PDF or image)"),
		),
	)
	s.mcpServer.AddTool(certificateExtractTool, s.handleCertificateExtract)

	// Register certificate parse text tool
	certificateParseTextTool := mcp.NewTool(
		"certificate_parse_text",
		mcp.WithDescription(descriptions.GetToolDescription("certificate_parse_text")),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Raw OCR or PDF-layer text to parse"),
		),
	)
	s.mcpServer.AddTool(certificateParseTextTool, s.handleCertificateParseText)

	// Register recipient match tool
	recipientMatchTool := mcp.NewTool(
		"recipient_match",
		mcp.WithDescription(descriptions.GetToolDescription("recipient_match")),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Free-text recipient name to match against the roster"),
		),
	)
	s.mcpServer.AddTool(recipientMatchTool, s.handleRecipientMatch)

	// Register certificate autofill tool
	certificateAutofillTool := mcp.NewTool(
		"certificate_autofill",
		mcp.WithDescription(descriptions.GetToolDescription("certificate_autofill")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the certificate file (PDF or image)"),
		),
		mcp.WithString("selected_person_id",
			mcp.Description("Roster ID of the member already selected on the form, if any"),
		),
	)
	s.mcpServer.AddTool(certificateAutofillTool, s.handleCertificateAutofill)

	// Register certificate search directory tool
	certificateSearchDirectoryTool := mcp.NewTool(
		"certificate_search_directory",
		mcp.WithDescription(descriptions.GetToolDescription("certificate_search_directory")),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy file-name matching"),
		),
	)
	s.mcpServer.AddTool(certificateSearchDirectoryTool, s.handleCertificateSearchDirectory)

	// Register server info tool
	serverInfoTool := mcp.NewTool(
		"certintel_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("certintel_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleCertificateExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.extractFromFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(userFacingError(err)), nil
	}

	responseText := fmt.Sprintf("Extracted certificate fields from: %s\n", path)
	responseText += fmt.Sprintf("Text source: %s\n", result.Source)
	responseText += fmt.Sprintf("Processing time: %s\n\n", result.ProcessingTime)
	responseText += s.formatFields(result.Fields)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleCertificateParseText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields := intelligence.ParseFields(text)
	return mcp.NewToolResultText(s.formatFields(fields)), nil
}

func (s *Server) handleRecipientMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(s.roster) == 0 {
		return mcp.NewToolResultError("no roster is loaded; start the server with --roster"), nil
	}

	best := s.service.MatchRecipient(name, s.roster)
	possible := s.service.RankPossibleRecipients(name, s.roster)

	responseText := fmt.Sprintf("Recipient match for: %s\n\n", name)
	if best != nil {
		responseText += fmt.Sprintf("Best match: %s (id: %s)\n", best.DisplayName, best.ID)
	} else {
		responseText += "Best match: none decisive; pick from the candidates below\n"
	}
	responseText += s.formatCandidates(possible)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleCertificateAutofill(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	var selected *match.Person
	if id, ok := args["selected_person_id"].(string); ok && id != "" {
		selected = s.findPersonByID(id)
		if selected == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no roster member with id %q", id)), nil
		}
	}

	result, err := s.extractFromFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(userFacingError(err)), nil
	}

	outcome, err := autofill.Reconcile(result.Fields, autofill.Context{
		Catalog:        s.catalog,
		SelectedPerson: selected,
	})
	if err != nil {
		return mcp.NewToolResultError(userFacingError(err)), nil
	}

	responseText := fmt.Sprintf("Auto-fill for: %s\n", path)
	responseText += fmt.Sprintf("Text source: %s\n\n", result.Source)
	responseText += s.formatOutcome(outcome)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleCertificateSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.CertificateDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	files, err := s.search.SearchDirectory(directory, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if len(files) == 0 {
		responseText = fmt.Sprintf("No certificate files found in directory: %s", directory)
		if query != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", query)
		}
	} else {
		responseText = s.formatSearchResult(directory, query, files)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Certificate directory: %s\n", s.config.CertificateDirectory)
	text += fmt.Sprintf("Max file size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("OCR language: %s\n", s.config.OCRLanguage)
	text += fmt.Sprintf("Extraction timeout: %ds\n", s.config.TimeoutSeconds)
	text += fmt.Sprintf("Roster members loaded: %d\n", len(s.roster))
	text += fmt.Sprintf("Catalog classes loaded: %d\n\n", len(s.catalog))

	text += "Available tools:\n"
	for _, name := range descriptions.GetAllToolNames() {
		desc := descriptions.GetToolDescription(name)
		// First line of the long-form description is the summary.
		if idx := strings.Index(desc, "\n"); idx > 0 {
			desc = desc[:idx]
		}
		text += fmt.Sprintf("• %s: %s\n", name, desc)
	}

	return mcp.NewToolResultText(text), nil
}

// extractFromFile reads a certificate file and runs the extraction pipeline.
func (s *Server) extractFromFile(ctx context.Context, path string) (*intelligence.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.service.ExtractCertificateFields(ctx, data, document.MimeTypeForPath(path))
}

func (s *Server) findPersonByID(id string) *match.Person {
	for i := range s.roster {
		if s.roster[i].ID == id {
			return &s.roster[i]
		}
	}
	return nil
}

// userFacingError maps pipeline errors to short actionable messages.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, intelligence.ErrUnreadableDocument):
		return "Unable to read text from certificate; try a clearer PDF or image."
	case errors.Is(err, intelligence.ErrProcessingTimeout):
		return "Certificate processing timed out; resubmit the file to try again."
	case errors.Is(err, intelligence.ErrLowConfidenceExtraction):
		return "The document does not resemble a known certificate layout; enter the fields manually."
	default:
		return err.Error()
	}
}

// Formatting methods
func (s *Server) formatFields(fields intelligence.ExtractedCertificateFields) string {
	if fields.IsEmpty() {
		return "No recognizable fields were found.\n"
	}

	text := "Fields:\n"
	if fields.RecipientName != "" {
		text += fmt.Sprintf("  Recipient: %s\n", fields.RecipientName)
	}
	if fields.TrainingClassName != "" {
		text += fmt.Sprintf("  Class: %s\n", fields.TrainingClassName)
	}
	if fields.HoursLogged != nil {
		text += fmt.Sprintf("  Hours: %.1f\n", *fields.HoursLogged)
	}
	if fields.CourseIdentifier != "" {
		text += fmt.Sprintf("  Course identifier: %s\n", fields.CourseIdentifier)
	}
	if fields.LogNumber != "" {
		text += fmt.Sprintf("  Log number: %s\n", fields.LogNumber)
	}
	if fields.CourseDate != nil {
		text += fmt.Sprintf("  Completion date: %s\n", fields.CourseDate.Format("2006-01-02"))
	} else if fields.CourseDateText != "" {
		text += fmt.Sprintf("  Completion date (unparsed): %s\n", fields.CourseDateText)
	}
	text += fmt.Sprintf("  Looks like a known template: %t\n", fields.IsLikelyKnownTemplate)
	return text
}

func (s *Server) formatCandidates(candidates []match.Candidate) string {
	if len(candidates) == 0 {
		return "\nNo plausible candidates scored above the suggest threshold.\n"
	}

	text := fmt.Sprintf("\nPossible candidates (%d):\n", len(candidates))
	for i, c := range candidates {
		text += fmt.Sprintf("%d. %s (id: %s, score: %d)\n", i+1, c.Person.DisplayName, c.Person.ID, c.Score)
	}
	return text
}

func (s *Server) formatOutcome(outcome *autofill.Outcome) string {
	text := fmt.Sprintf("Overall severity: %s\n\n", outcome.Severity)

	text += "Decisions:\n"
	if outcome.ClassStatus != "" {
		text += fmt.Sprintf("  Class [%s]: %s", outcome.ClassStatus, outcome.ClassName)
		if outcome.ClassID != "" {
			text += fmt.Sprintf(" (catalog id: %s)", outcome.ClassID)
		}
		text += "\n"
	}
	if outcome.DateStatus != "" {
		if outcome.StartDate != nil {
			text += fmt.Sprintf("  Date [%s]: %s\n", outcome.DateStatus, outcome.StartDate.Format("2006-01-02"))
		} else {
			text += fmt.Sprintf("  Date [%s]: %s\n", outcome.DateStatus, outcome.DateText)
		}
	}
	if outcome.HoursStatus != "" {
		text += fmt.Sprintf("  Hours [%s]: %.1f\n", outcome.HoursStatus, *outcome.Hours)
	}
	if outcome.CourseIDStatus != "" {
		text += fmt.Sprintf("  Course identifier [%s]: %s\n", outcome.CourseIDStatus, outcome.CourseIdentifier)
	}
	if outcome.RecipientStatus != "" {
		text += fmt.Sprintf("  Recipient [%s]: %s\n", outcome.RecipientStatus, outcome.RecipientName)
	}

	if len(outcome.Messages) > 0 {
		text += "\nMessages:\n"
		for _, m := range outcome.Messages {
			text += fmt.Sprintf("  [%s] %s\n", m.Severity, m.Text)
		}
	}
	return text
}

func (s *Server) formatSearchResult(directory, query string, files []document.FileInfo) string {
	text := fmt.Sprintf("Found %d certificate file(s) in directory: %s\n", len(files), directory)
	if query != "" {
		text += fmt.Sprintf("Search query: %s\n", query)
	}
	text += "\nFiles:\n"

	for i, file := range files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Type: %s\n", file.MimeType)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(files)-1 {
			text += "\n"
		}
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting certificate intelligence server in stdio mode")
		log.Printf("Certificate directory: %s", s.config.CertificateDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
