package models

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatTurn struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ── Request/Response Types ──────────────────────────────

type SendMessageRequest struct {
	Content string `json:"content"`
}

type ChatTranscriptResponse struct {
	SessionID string     `json:"session_id"`
	Turns     []ChatTurn `json:"turns"`
	Pending   bool       `json:"pending"`
}
