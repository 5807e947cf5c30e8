package intelligence

import "regexp"

// The extraction heuristics below were tuned against the Maryland fire/rescue
// training institute certificate family. They are starting defaults and
// should be re-tuned against a representative corpus before being trusted on
// arbitrary certificate designs.

// recipientAnchors locate the line that precedes (or contains) the recipient
// name. Matching is case-insensitive against whole lines.
var recipientAnchors = []string{
	"awarded to",
	"this certifies that",
	"certifies that",
	"is presented to",
	"presented to",
	"participant:",
	"completed by",
}

// recipientStops end the name-collection window once hit.
var recipientStops = []string{
	"has passed",
	"has successfully",
	"course work",
	"in recognition",
	"log number",
	"for completing",
}

// recipientFallbacks run against the whitespace-collapsed text when no anchor
// line produced a usable name. Ordered: first match wins.
var recipientFallbacks = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:awarded to|is presented to|presented to|this certifies that|certifies that|completed by)[:\s]+([A-Z][A-Za-z.'-]*(?:\s+[A-Z][A-Za-z.'-]*){1,3})`),
	regexp.MustCompile(`(?i)participant[:\s]+([A-Z][A-Za-z.'-]*(?:\s+[A-Z][A-Za-z.'-]*){1,3})`),
}

// classAnchors locate the class/course title. Ordered from most to least
// specific so "completed all course work in" wins over the generic form.
var classAnchors = []string{
	"completed all course work in",
	"course work in",
	"successfully completed",
}

// classCollectLimit bounds how many wrapped lines a title may span.
const classCollectLimit = 3

// nameCollectLimit bounds how many wrapped lines a recipient name may span.
const nameCollectLimit = 2

// classFallbacks mirror generic "successfully completed <title>" phrasing on
// the compact text.
var classFallbacks = []*regexp.Regexp{
	regexp.MustCompile(`(?i)successfully completed (?:the )?(.+?)(?:\s*\(|\s+log number|\s+on \d|$)`),
	regexp.MustCompile(`(?i)certificate of completion (?:for|in)\s+(.+?)(?:\s*\(|\s+log number|$)`),
}

// hoursParen matches the parenthesized hour count that terminates a title,
// e.g. "(12.0 Hours)".
var hoursParen = regexp.MustCompile(`(?i)\(\s*(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)\s*\)`)

// hoursLabeled prefers an explicit "total hours:" label over a bare figure.
var hoursLabeled = regexp.MustCompile(`(?i)total\s+hours?\s*[:\-]?\s*(\d+(?:\.\d+)?)`)

// hoursBare matches any decimal immediately followed by an hours word.
var hoursBare = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)\b`)

// courseIDStructured matches the structured code shape used on known
// templates: letters, digits, letter+digits, digits, hyphen separated,
// e.g. EMS-202-S025-2025. Three-segment log numbers do not match.
var courseIDStructured = regexp.MustCompile(`\b[A-Z]{2,6}-\d{2,4}-[A-Z]\d{1,4}-\d{2,4}\b`)

// courseIDLabeled is the generic labeled fallback.
var courseIDLabeled = regexp.MustCompile(`(?i)(?:course|class|program)\s*(?:id|identifier|number|no\.?|#)\s*[:\-]?\s*([A-Za-z0-9][A-Za-z0-9-]{2,})`)

// logNumberLabeled captures the "log number"-labeled alphanumeric token.
var logNumberLabeled = regexp.MustCompile(`(?i)\blog\s*(?:number|no\.?|#)\s*[:\-]?\s*([A-Za-z0-9][A-Za-z0-9-]+)`)

// dateLabeled captures the text following an explicit date label; the capture
// is handed to the tolerant date parser.
var dateLabeled = regexp.MustCompile(`(?i)(?:completion|course|class|issued?)\s*date\s*[:\-]?\s*([A-Za-z0-9,/. -]{6,30})`)

// dateMonthName and dateNumeric find bare dates anywhere in the text.
var dateMonthName = regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept?|oct|nov|dec)\.?\s+\d{1,2},?\s+\d{4}\b`)

var dateNumeric = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)

// templateMarkers are the layout signals counted by the template heuristic.
// Two or more hits flag the text as a likely known certificate template.
var templateMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)awarded to|is presented to|presented to|this certifies that`),
	regexp.MustCompile(`(?i)has passed all (?:examinations|course work)|has passed`),
	regexp.MustCompile(`(?i)(?:completed all )?course work in`),
	regexp.MustCompile(`(?i)\blog\s*(?:number|no\.?|#)`),
	courseIDStructured,
}

// templateMarkerMinimum is how many markers must hit before the extractor
// trusts the layout.
const templateMarkerMinimum = 2
