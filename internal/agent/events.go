package agent

// Event is one unit of analysis progress pushed to the client. The JSON
// shape is part of the SSE wire contract: status and error carry message,
// content carries text, done carries only its type.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Event types.
const (
	EventStatus  = "status"
	EventContent = "content"
	EventError   = "error"
	EventDone    = "done"
)

// StatusEvent reports progress while a tool runs.
func StatusEvent(message string) Event {
	return Event{Type: EventStatus, Message: message}
}

// ContentEvent carries a chunk of the final analysis text.
func ContentEvent(text string) Event {
	return Event{Type: EventContent, Text: text}
}

// ErrorEvent reports a failed analysis.
func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}

// DoneEvent marks a successfully completed analysis.
func DoneEvent() Event {
	return Event{Type: EventDone}
}

// statusLabels maps tool names to the progress messages shown while each
// tool runs.
var statusLabels = map[string]string{
	ToolRealtimeQuote:       "Getting real-time price...",
	ToolStockQuote:          "Fetching stock data...",
	ToolCompanyInfo:         "Getting company info...",
	ToolFinancialStatements: "Loading financials...",
	ToolSECFiling:           "Fetching SEC filing...",
	ToolKeyMetrics:          "Getting metrics...",
}

// StatusLabel returns the progress label for a tool name. Names outside
// the catalog get a generic label.
func StatusLabel(tool string) string {
	if label, ok := statusLabels[tool]; ok {
		return label
	}
	return "Working..."
}
