package models

import "strings"

type Sender string

const (
	User Sender = "user"
	AI   Sender = "ai"
)

// AcknowledgmentText is the fixed assistant reply shown while a report is generated.
const AcknowledgmentText = "Thanks for your description. Please wait a moment while I generate your complete bug report."

type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

func NewUserMessage(text string) Message {
	return Message{Sender: User, Text: text}
}

func NewAcknowledgment() Message {
	return Message{Sender: AI, Text: AcknowledgmentText}
}

// DisplayName returns the label shown in front of a transcript entry.
func (s Sender) DisplayName() string {
	switch s {
	case User:
		return "You"
	case AI:
		return "Assistant"
	default:
		return strings.TrimSpace(string(s))
	}
}

// ReportRequest is the body of POST /generateReport.
type ReportRequest struct {
	Messages []Message `json:"messages"`
}

// ReportResponse is the backend reply. Body is the report text.
type ReportResponse struct {
	Body string `json:"body"`
}
