package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Extraction Tools
	CertificateExtractDescription = `Extract structured fields from a training certificate file (PDF or image).

**When to use:** An operator uploaded a certificate and you need the recipient, class title, hours, course identifier, log number, and completion date as structured data.

**Why it's useful:** Combines PDF text-layer extraction with OCR fallback and runs the full heuristic field parser in one call, so callers never deal with raw recognition output.

**Examples:**
• Record a completed class: "Extract fields from evoc-certificate.pdf to fill the training submission"
• Triage a scanned upload: "Extract fields from scan-0042.png and check the template confidence flag"
• Audit an old record: "Re-extract fields from archived-cert.pdf and compare against the logged hours"

**Common workflows:**
1. Submission Auto-fill: Extract fields → Match recipient → Reconcile against the form → Operator confirms
2. Quality Triage: Extract fields → Check isLikelyKnownTemplate → Route low-confidence uploads to manual entry
3. Batch Backfill: Search directory → Extract each certificate → Reconcile and store

**Best practices:** Check the template confidence flag before trusting the result; an unreadable file returns an error rather than empty fields.`

	CertificateParseTextDescription = `Run the certificate field parser against raw text you already have.

**When to use:** Text was recognized elsewhere (an external OCR service, a copy-paste from a viewer) and you only need the heuristic field extraction.

**Why it's useful:** Skips acquisition entirely: the parser is deterministic and side-effect free, so the same text always yields the same fields.

**Examples:**
• Re-parse after manual cleanup: "Parse this corrected OCR text and see if the class title resolves now"
• Test a new template: "Parse the text of a certificate layout we haven't seen before"
• Debug a miss: "Parse the raw text from the last extraction to see which anchors fired"

**Common workflows:**
1. Heuristic Debugging: Extract file → Inspect raw text → Re-parse edited text → Compare fields
2. External OCR Integration: Recognize elsewhere → Parse text here → Reconcile as usual

**Best practices:** Field misses are normal and never errors; absent fields simply stay empty in the response.`

	// Matching Tools
	RecipientMatchDescription = `Match an extracted recipient name against the member roster.

**When to use:** A certificate names its recipient and you need to know which roster member it belongs to, or a ranked shortlist when nobody clears the strict bar.

**Why it's useful:** Scores name variants (initials, middle names, display names) and token overlap, so OCR-mangled or reordered names still resolve without ever auto-selecting a weak match.

**Examples:**
• Auto-select: "Match 'Robert Jones' against the roster to file this certificate"
• Disambiguate: "Rank possible members for 'R. Jnes' so the operator can pick"
• Verify: "Confirm the extracted name matches the member already selected on the form"

**Common workflows:**
1. Auto-fill: Extract fields → Match recipient → Auto-select on a decisive score, else show the ranked list
2. Manual Review: Rank possible recipients → Operator picks → Reconcile with the chosen person

**Best practices:** A null best match is a deliberate outcome, not a failure; surface the ranked candidates instead of forcing a choice.`

	CertificateAutofillDescription = `Run the full pipeline on a certificate file and reconcile the result against form context.

**When to use:** You want one call that extracts fields, matches the class against the catalog, checks the recipient against the selected member, and reports what was applied, suggested, or conflicting.

**Why it's useful:** Encodes the apply/suggest/conflict policy in one place: values only auto-apply when safe, mismatches surface as warnings, and low-confidence extractions are refused outright.

**Examples:**
• Standard submission: "Auto-fill the training form from cert.pdf with member u42 selected"
• Unknown class: "Auto-fill from cert.pdf and suggest creating the class if the catalog misses"
• Identity guard: "Auto-fill and flag a conflict when the certificate names someone else"

**Common workflows:**
1. Operator Auto-fill: Upload → Auto-fill → Review messages → Confirm suggested values → Save
2. Conflict Handling: Auto-fill → Warning severity on a name mismatch → Operator resolves identity first

**Best practices:** Treat 'suggested' values as requiring confirmation; a refusal means the document doesn't resemble a known certificate and manual entry is safer.`

	// Discovery Tools
	CertificateSearchDirectoryDescription = `Find certificate files (PDFs and images) in a directory with optional fuzzy search.

**When to use:** Need to locate uploaded certificates by name pattern, explore a drop directory, or build a backfill worklist.

**Why it's useful:** Filters to processable file types and supports word-level matching on file names, so partial class or member names find the right files.

**Examples:**
• Find one member's uploads: "Search /uploads/ for files containing 'jones'"
• Build a backfill list: "List all certificate files in /archive/2024/"
• Locate a class batch: "Find files matching 'evoc june' in the drop directory"

**Common workflows:**
1. Batch Backfill: Search directory → Extract each file → Reconcile and store results
2. Upload Triage: Search recent files → Auto-fill each → Queue conflicts for review

**Best practices:** Combine with certificate_extract per file; unsupported file types are skipped rather than failing the search.`

	// Utility Tools
	ServerInfoDescription = `Get server status, configuration, loaded roster and catalog sizes, and available tools.

**When to use:** Starting a session, troubleshooting missing roster data, or checking which tools and limits are in effect.

**Why it's useful:** One call shows the configured certificate directory, file-size limit, OCR language, extraction timeout, and how many roster members and catalog classes are loaded.

**Examples:**
• Session start: "Check server info before processing a batch of uploads"
• Debugging: "Verify the roster actually loaded when matches come back empty"
• Capability check: "List the available tools and their parameters"

**Common workflows:**
1. Session Startup: Check info → Verify roster/catalog counts → Begin processing
2. Debugging: Review configuration → Fix paths → Re-check info

**Best practices:** Run first when matches or catalog lookups behave unexpectedly; an empty roster is the usual culprit.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"certificate_extract":          CertificateExtractDescription,
	"certificate_parse_text":       CertificateParseTextDescription,
	"recipient_match":              RecipientMatchDescription,
	"certificate_autofill":         CertificateAutofillDescription,
	"certificate_search_directory": CertificateSearchDirectoryDescription,
	"certintel_server_info":        ServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
