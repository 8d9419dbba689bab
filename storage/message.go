package storage

import "encoding/json"

// Sender labels as shown in the chat transcript.
const (
	SenderUser      = "You"
	SenderAssistant = "UrbanGPT"
	SenderError     = "Error"
)

// Message is one entry in a chat transcript. Immutable once appended.
// Text holds either plain text or HTML rendered from the assistant's
// markdown reply. Table carries raw regression output verbatim.
type Message struct {
	Sender   string `json:"sender"`
	Text     string `json:"text"`
	Table    string `json:"table,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// DecodeHistory parses a chat content blob. Empty content is an empty
// history, not an error: chats are created with no messages.
func DecodeHistory(content string) ([]Message, error) {
	if content == "" {
		return nil, nil
	}
	var history []Message
	if err := json.Unmarshal([]byte(content), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// EncodeHistory serializes a history to the stored content form.
func EncodeHistory(history []Message) (string, error) {
	if history == nil {
		history = []Message{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
