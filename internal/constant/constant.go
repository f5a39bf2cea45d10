package constant

import "time"

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Inference defaults
	DefaultLLMModel    = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000

	// InferenceFallbackResponse stands in when the provider returns no
	// extractable text.
	InferenceFallbackResponse = "Sorry, I could not generate a response."

	// Placeholders used when a turn carries attachments but no typed text.
	AnalyzeFilesPrefix       = "Please analyze these files:"
	AnalyzeImagesPlaceholder = "Please analyze these images."
	AnalyzeFilesPlaceholder  = "Please analyze these files."

	// Conversation titles derive from the first message: 50 characters,
	// ellipsis when longer.
	ConversationTitleLimit   = 50
	DefaultConversationTitle = "New Conversation"

	// ConversationListLimit caps the history browser page.
	ConversationListLimit = 50

	// AutoSaveQuietPeriod is the trailing-debounce window for session
	// persistence. A mutation inside the window re-arms the timer.
	AutoSaveQuietPeriod = 2 * time.Second

	// AddToolSentinelID marks the "add new tool" registry entry. It has
	// no prompt and must never be sent to inference.
	AddToolSentinelID = 999

	// CustomToolIDOffset is added to a custom persona's position so its
	// synthetic id never collides with a built-in one.
	CustomToolIDOffset = 1000
)

// BuiltinPersona is a statically defined registry entry.
type BuiltinPersona struct {
	ID     int
	Name   string
	Prompt string
}

// BuiltinPersonas are fixed at process start. The sentinel is appended
// by the registry after any custom entries.
var BuiltinPersonas = []BuiltinPersona{
	{ID: 1, Name: "Tool 1", Prompt: "You are Tool 1. Help the user with Tool 1 specific tasks."},
	{ID: 2, Name: "Tool 2", Prompt: "You are Tool 2. Help the user with Tool 2 specific tasks."},
	{ID: 3, Name: "Tool 3", Prompt: "You are Tool 3. Help the user with Tool 3 specific tasks."},
	{ID: 4, Name: "Tool 4", Prompt: "You are Tool 4. Help the user with Tool 4 specific tasks."},
	{ID: 5, Name: "Tool 5", Prompt: "You are Tool 5. Help the user with Tool 5 specific tasks."},
	{ID: 6, Name: "Tool 6", Prompt: "You are Tool 6. Help the user with Tool 6 specific tasks."},
	{ID: 7, Name: "Tool 7", Prompt: "You are Tool 7. Help the user with Tool 7 specific tasks."},
	{ID: 8, Name: "Tool 8", Prompt: "You are Tool 8. Help the user with Tool 8 specific tasks."},
}

// Activity kinds published on the event bus.
const (
	ActivityMessageSent         = "MESSAGE_SENT"
	ActivityConversationSaved   = "CONVERSATION_SAVED"
	ActivityConversationDeleted = "CONVERSATION_DELETED"
	ActivityToolCreated         = "TOOL_CREATED"
	ActivityUserLogin           = "USER_LOGIN"
	ActivityUserRegister        = "USER_REGISTER"
)

// UserActivityTopicName is the pub/sub topic activity events flow over.
const UserActivityTopicName = "USER_ACTIVITY"
