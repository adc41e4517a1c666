package model

// Role is the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the roles a completion service accepts.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one conversational turn. Once appended to a session it is never
// reordered or mutated.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
