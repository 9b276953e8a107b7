package model

// Severity tags a status message; it governs presentation only.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Status is the transient (message, severity) pair shown to the user.
// The zero value means "no message visible".
type Status struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Empty reports whether no message is currently set.
func (s Status) Empty() bool {
	return s.Message == ""
}

// User-facing status messages. The wording is load-bearing: the page shows
// these strings verbatim.
const (
	MsgEmptyInput    = "Please enter a Google Drive link."
	MsgInvalidLink   = "Invalid Google Drive link format. Please ensure it's a valid file link."
	MsgGenerated     = "Direct download link generated successfully!"
	MsgCopied        = "Link copied to clipboard!"
	MsgCopyFailed    = "Failed to copy link. Please copy manually."
	MsgNothingToCopy = "No link to copy!"
)
