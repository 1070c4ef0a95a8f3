package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// HistoryLabelLength is the number of runes of a prompt shown in history listings.
const HistoryLabelLength = 30

// Credentials is the login/signup payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email" example:"you@example.com"`
	Password string `json:"password" validate:"required,min=1" example:"secret"`
}

// LoginResponse is returned by the AI service on successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// AskRequest is the body of an Ask call.
type AskRequest struct {
	Prompt string `json:"prompt"`
}

// AskResponse is the body returned by a successful Ask call.
type AskResponse struct {
	Response string `json:"response"`
}

// HistoryEntry is one stored prompt/response pair, as ordered by the AI service.
type HistoryEntry struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// UnmarshalJSON accepts numeric as well as string ids; the AI service assigns
// integer primary keys.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		Prompt   string          `json:"prompt"`
		Response string          `json:"response"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Prompt = raw.Prompt
	e.Response = raw.Response
	e.ID = ""

	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
	case id[0] == '"':
		if err := json.Unmarshal(id, &e.ID); err != nil {
			return fmt.Errorf("history entry id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("history entry id: %w", err)
		}
		e.ID = n.String()
	}
	return nil
}

// Label returns the first HistoryLabelLength runes of the prompt followed by
// "...", whatever the prompt's length.
func (e HistoryEntry) Label() string {
	prompt := e.Prompt
	if utf8.RuneCountInString(prompt) > HistoryLabelLength {
		prompt = string([]rune(prompt)[:HistoryLabelLength])
	}
	return prompt + "..."
}

// Exchange is the query currently displayed on the dashboard and its answer.
// Response stays empty until the round trip for Query resolves successfully.
type Exchange struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
