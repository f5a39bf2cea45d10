package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/memory"
	"persona-chat-be/pkg/extract"
	"persona-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeActivityService struct{}

func (fakeActivityService) Track(userId uuid.UUID, kind string, metadata map[string]interface{}) {}
func (fakeActivityService) Consume(ctx context.Context) error                                    { return nil }

// fakeToolService serves the built-in registry plus the sentinel,
// without touching the database.
type fakeToolService struct{}

func (f *fakeToolService) ListPersonas(ctx context.Context, userId uuid.UUID) ([]entity.Persona, error) {
	personas := make([]entity.Persona, 0, len(constant.BuiltinPersonas)+1)
	for _, b := range constant.BuiltinPersonas {
		personas = append(personas, entity.Persona{Id: b.ID, Name: b.Name, Prompt: b.Prompt})
	}
	personas = append(personas, entity.Persona{Id: constant.AddToolSentinelID, Name: "+ Add Tool", IsAddToolMarker: true})
	return personas, nil
}

func (f *fakeToolService) GetPersona(ctx context.Context, userId uuid.UUID, personaId int) (*entity.Persona, error) {
	personas, _ := f.ListPersonas(ctx, userId)
	for i := range personas {
		if personas[i].Id == personaId {
			return &personas[i], nil
		}
	}
	return nil, nil
}

func (f *fakeToolService) DefaultPersona() entity.Persona {
	b := constant.BuiltinPersonas[0]
	return entity.Persona{Id: b.ID, Name: b.Name, Prompt: b.Prompt}
}

func (f *fakeToolService) ResolvePersonaByName(ctx context.Context, userId uuid.UUID, name string) (*entity.Persona, error) {
	personas, _ := f.ListPersonas(ctx, userId)
	for i := range personas {
		if personas[i].Name == name && personas[i].Usable() {
			return &personas[i], nil
		}
	}
	return nil, nil
}

func (f *fakeToolService) CreateTool(ctx context.Context, userId uuid.UUID, req *dto.CreateToolRequest, trainingDocs []extract.FileDescriptor) (*entity.CustomTool, error) {
	return nil, errors.New("not supported")
}

// fakeConversationService records saves and serves one stored record.
type fakeConversationService struct {
	mu     sync.Mutex
	saved  []*entity.Conversation
	stored *entity.Conversation
}

func (f *fakeConversationService) ListConversations(ctx context.Context, userId uuid.UUID) ([]dto.ConversationListItemResponse, error) {
	return nil, nil
}

func (f *fakeConversationService) GetConversation(ctx context.Context, userId, conversationId uuid.UUID) (*entity.Conversation, error) {
	if f.stored != nil && f.stored.Id == conversationId {
		return f.stored, nil
	}
	return nil, errors.New("conversation not found")
}

func (f *fakeConversationService) DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error {
	return nil
}

func (f *fakeConversationService) SaveConversation(ctx context.Context, conversation *entity.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if conversation.Id == uuid.Nil {
		conversation.Id = uuid.New()
	}
	snapshot := *conversation
	f.saved = append(f.saved, &snapshot)
	return nil
}

func (f *fakeConversationService) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func (f *fakeConversationService) lastSaved() *entity.Conversation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saved) == 0 {
		return nil
	}
	return f.saved[len(f.saved)-1]
}

// fakeLLM records every outbound history and answers with a canned
// reply or error.
type fakeLLM struct {
	mu    sync.Mutex
	calls [][]llm.Message
	reply string
	err   error
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, messages)
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeLLM) lastCall() []llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func newTestSessionService(provider llm.LLMProvider, conversations IConversationService) *sessionService {
	return &sessionService{
		sessions:            memory.NewLiveSessionRepository(),
		timers:              make(map[string]*time.Timer),
		toolService:         &fakeToolService{},
		conversationService: conversations,
		activityService:     fakeActivityService{},
		llmProvider:         provider,
		logger:              noopLogger{},
		quietPeriod:         30 * time.Millisecond,
	}
}

func TestSendMessageAppendsReply(t *testing.T) {
	provider := &fakeLLM{reply: "pong"}
	svc := newTestSessionService(provider, &fakeConversationService{})
	userId := uuid.New()

	res, err := svc.SendMessage(context.Background(), userId, "hello")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if res.Sent == nil || res.Sent.Role != constant.ChatMessageRoleUser {
		t.Fatalf("sent = %+v", res.Sent)
	}
	if res.Reply == nil || res.Reply.Role != constant.ChatMessageRoleAssistant {
		t.Fatalf("reply = %+v", res.Reply)
	}
	if res.Reply.Content.PlainText() != "pong" {
		t.Errorf("reply content = %q", res.Reply.Content.PlainText())
	}
	if res.Reply.Tool != "Tool 1" {
		t.Errorf("reply tool = %q, want default persona", res.Reply.Tool)
	}
	if res.Reply.Id <= res.Sent.Id {
		t.Errorf("reply id %d should exceed sent id %d", res.Reply.Id, res.Sent.Id)
	}

	state, _ := svc.GetState(context.Background(), userId)
	if len(state.Messages) != 2 {
		t.Fatalf("got %d session messages, want 2", len(state.Messages))
	}
	if state.AwaitingResponse {
		t.Error("awaiting flag should be cleared after completion")
	}
}

func TestSendMessageEmptyTurnIsNoOp(t *testing.T) {
	provider := &fakeLLM{reply: "pong"}
	svc := newTestSessionService(provider, &fakeConversationService{})
	userId := uuid.New()

	res, err := svc.SendMessage(context.Background(), userId, "   ")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if res.Sent != nil || res.Reply != nil {
		t.Errorf("expected empty response, got %+v", res)
	}
	if provider.callCount() != 0 {
		t.Error("no inference call expected for an empty turn")
	}
}

func TestSendMessageWhileAwaitingIsNoOp(t *testing.T) {
	provider := &fakeLLM{reply: "pong"}
	svc := newTestSessionService(provider, &fakeConversationService{})
	userId := uuid.New()

	svc.sessions.Save(&memory.LiveSession{
		UserID:           userId.String(),
		PersonaID:        1,
		Messages:         []entity.Message{},
		AwaitingResponse: true,
	})

	res, err := svc.SendMessage(context.Background(), userId, "hello")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if res.Sent != nil {
		t.Error("turn should be rejected while a response is pending")
	}
	if provider.callCount() != 0 {
		t.Error("no inference call expected while awaiting")
	}
}

func TestOutboundHistoryFilteredByPersona(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc := newTestSessionService(provider, &fakeConversationService{})
	userId := uuid.New()

	svc.sessions.Save(&memory.LiveSession{
		UserID:    userId.String(),
		PersonaID: 1,
		Messages: []entity.Message{
			{Id: 1, Role: "user", Content: entity.NewTextContent("mine"), Persona: "Tool 1"},
			{Id: 2, Role: "assistant", Content: entity.NewTextContent("mine too"), Persona: "Tool 1"},
			{Id: 3, Role: "user", Content: entity.NewTextContent("other"), Persona: "Tool 2"},
			{Id: 4, Role: "assistant", Content: entity.NewTextContent("other too"), Persona: "Tool 2"},
		},
	})

	if _, err := svc.SendMessage(context.Background(), userId, "next"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}

	outbound := provider.lastCall()
	if len(outbound) != 4 {
		t.Fatalf("got %d outbound messages, want system + 2 history + user", len(outbound))
	}
	if outbound[0].Role != llm.RoleSystem || !strings.Contains(outbound[0].Content, "Tool 1") {
		t.Errorf("first outbound = %+v, want Tool 1 system prompt", outbound[0])
	}
	for _, m := range outbound[1:] {
		if strings.Contains(m.Content, "other") {
			t.Errorf("cross-persona message leaked to inference: %+v", m)
		}
	}
	if last := outbound[len(outbound)-1]; last.Role != llm.RoleUser || last.Content != "next" {
		t.Errorf("last outbound = %+v, want the new user message", last)
	}

	// The combined timeline keeps both personas' messages.
	state, _ := svc.GetState(context.Background(), userId)
	if len(state.Messages) != 6 {
		t.Errorf("got %d timeline messages, want all 4 prior + turn pair", len(state.Messages))
	}
}

func TestSendMessageInferenceError(t *testing.T) {
	provider := &fakeLLM{err: errors.New("boom")}
	svc := newTestSessionService(provider, &fakeConversationService{})
	userId := uuid.New()

	res, err := svc.SendMessage(context.Background(), userId, "hello")
	if err != nil {
		t.Fatalf("SendMessage should not fail on inference errors, got: %v", err)
	}
	if res.Reply == nil {
		t.Fatal("expected an assistant error message")
	}
	if got := res.Reply.Content.PlainText(); got != "Error: boom" {
		t.Errorf("reply = %q, want %q", got, "Error: boom")
	}

	state, _ := svc.GetState(context.Background(), userId)
	if state.AwaitingResponse {
		t.Error("awaiting flag should clear even on failure")
	}
	if len(state.Messages) != 2 {
		t.Errorf("got %d messages, want the turn pair", len(state.Messages))
	}
}

func TestSendMessageEmptyReplyFallback(t *testing.T) {
	provider := &fakeLLM{reply: ""}
	svc := newTestSessionService(provider, &fakeConversationService{})

	res, err := svc.SendMessage(context.Background(), uuid.New(), "hello")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if got := res.Reply.Content.PlainText(); got != constant.InferenceFallbackResponse {
		t.Errorf("reply = %q, want fallback", got)
	}
}

func TestSendMessagePdfMarkers(t *testing.T) {
	provider := &fakeLLM{reply: "[PDF_START:report]body text[PDF_END]"}
	svc := newTestSessionService(provider, &fakeConversationService{})

	res, err := svc.SendMessage(context.Background(), uuid.New(), "make a pdf")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if res.Pdf == nil {
		t.Fatal("expected a pdf request")
	}
	if res.Pdf.Filename != "report.pdf" || res.Pdf.Content != "body text" {
		t.Errorf("pdf = %+v", res.Pdf)
	}
	if got := res.Reply.Content.PlainText(); got != "Generated PDF: report.pdf" {
		t.Errorf("visible reply = %q", got)
	}
}

func TestSendMessageConsumesAttachments(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc := newTestSessionService(provider, &fakeConversationService{})
	userId := uuid.New()

	if _, err := svc.AttachFiles(context.Background(), userId, []extract.Input{
		{Name: "notes.txt", Type: "text/plain", Data: []byte("remember this")},
	}); err != nil {
		t.Fatalf("AttachFiles error: %v", err)
	}

	res, err := svc.SendMessage(context.Background(), userId, "see file")
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if len(res.Sent.Files) != 1 || res.Sent.Files[0].Name != "notes.txt" {
		t.Errorf("sent files = %+v", res.Sent.Files)
	}
	if !strings.Contains(res.Sent.Content.PlainText(), "[File: notes.txt]") {
		t.Errorf("sent content = %q, want rendered file block", res.Sent.Content.PlainText())
	}

	state, _ := svc.GetState(context.Background(), userId)
	if len(state.Attachments) != 0 {
		t.Errorf("attachments should be consumed by the send, got %d", len(state.Attachments))
	}
}

func TestSelectPersonaLockedAfterFirstMessage(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	svc := newTestSessionService(provider, &fakeConversationService{})
	userId := uuid.New()

	state, err := svc.SelectPersona(context.Background(), userId, 3)
	if err != nil {
		t.Fatalf("SelectPersona error: %v", err)
	}
	if state.PersonaId != 3 {
		t.Fatalf("persona = %d, want 3", state.PersonaId)
	}

	if _, err := svc.SendMessage(context.Background(), userId, "hello"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}

	// Silent no-op once the conversation has messages.
	state, err = svc.SelectPersona(context.Background(), userId, 5)
	if err != nil {
		t.Fatalf("SelectPersona error: %v", err)
	}
	if state.PersonaId != 3 {
		t.Errorf("persona = %d, want unchanged 3", state.PersonaId)
	}
}

func TestSelectPersonaRejectsSentinel(t *testing.T) {
	svc := newTestSessionService(&fakeLLM{}, &fakeConversationService{})
	if _, err := svc.SelectPersona(context.Background(), uuid.New(), constant.AddToolSentinelID); err == nil {
		t.Fatal("expected error selecting the add-tool sentinel")
	}
	if _, err := svc.SelectPersona(context.Background(), uuid.New(), 12345); err == nil {
		t.Fatal("expected error selecting an unknown persona")
	}
}

func TestDebouncedAutoSave(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	conversations := &fakeConversationService{}
	svc := newTestSessionService(provider, conversations)
	userId := uuid.New()

	if _, err := svc.SendMessage(context.Background(), userId, "first"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if conversations.saveCount() != 0 {
		t.Fatal("save should wait out the quiet period")
	}

	time.Sleep(4 * svc.quietPeriod)
	if got := conversations.saveCount(); got != 1 {
		t.Fatalf("got %d saves after one turn, want exactly 1", got)
	}

	state, _ := svc.GetState(context.Background(), userId)
	if state.ConversationId == nil {
		t.Fatal("session should adopt the persisted conversation id")
	}
	firstId := *state.ConversationId

	if _, err := svc.SendMessage(context.Background(), userId, "second"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	time.Sleep(4 * svc.quietPeriod)
	if got := conversations.saveCount(); got != 2 {
		t.Fatalf("got %d saves after two turns, want 2", got)
	}
	if last := conversations.lastSaved(); last.Id != firstId {
		t.Errorf("second save id = %s, want same record %s", last.Id, firstId)
	}
	if last := conversations.lastSaved(); len(last.Messages) != 4 {
		t.Errorf("second save carries %d messages, want 4", len(conversations.lastSaved().Messages))
	}
}

func TestTeardownCancelsPendingSave(t *testing.T) {
	conversations := &fakeConversationService{}
	svc := newTestSessionService(&fakeLLM{reply: "ok"}, conversations)
	userId := uuid.New()

	if _, err := svc.SendMessage(context.Background(), userId, "hello"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	svc.Teardown(userId)

	time.Sleep(4 * svc.quietPeriod)
	if got := conversations.saveCount(); got != 0 {
		t.Errorf("got %d saves after teardown, want 0", got)
	}
	if _, found := svc.sessions.Get(userId.String()); found {
		t.Error("session should be dropped on teardown")
	}
}

func TestSwitchConversationFlushesAndResets(t *testing.T) {
	conversations := &fakeConversationService{}
	svc := newTestSessionService(&fakeLLM{reply: "ok"}, conversations)
	userId := uuid.New()

	if _, err := svc.SendMessage(context.Background(), userId, "hello"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}

	// Switching flushes the armed save immediately.
	state, err := svc.SwitchConversation(context.Background(), userId, nil)
	if err != nil {
		t.Fatalf("SwitchConversation error: %v", err)
	}
	if got := conversations.saveCount(); got != 1 {
		t.Errorf("got %d saves, want the pending save flushed on switch", got)
	}
	if len(state.Messages) != 0 || state.ConversationId != nil {
		t.Errorf("state after reset = %+v, want empty session", state)
	}
	if state.PersonaId != 1 {
		t.Errorf("persona = %d, want default", state.PersonaId)
	}
}

func TestSwitchConversationLoadsRecord(t *testing.T) {
	stored := &entity.Conversation{
		Id:      uuid.New(),
		Persona: "Tool 2",
		Messages: []entity.Message{
			{Id: 1, Role: "user", Content: entity.NewTextContent("old"), Persona: "Tool 2"},
			{Id: 2, Role: "assistant", Content: entity.NewTextContent("older"), Persona: "Tool 2"},
		},
	}
	conversations := &fakeConversationService{stored: stored}
	svc := newTestSessionService(&fakeLLM{reply: "ok"}, conversations)
	userId := uuid.New()

	state, err := svc.SwitchConversation(context.Background(), userId, &stored.Id)
	if err != nil {
		t.Fatalf("SwitchConversation error: %v", err)
	}
	if state.ConversationId == nil || *state.ConversationId != stored.Id {
		t.Errorf("conversation id = %v, want %s", state.ConversationId, stored.Id)
	}
	if len(state.Messages) != 2 {
		t.Errorf("got %d messages, want 2", len(state.Messages))
	}
	if state.PersonaId != 2 {
		t.Errorf("persona = %d, want resolved Tool 2", state.PersonaId)
	}
}

func TestSwitchConversationUnknownId(t *testing.T) {
	svc := newTestSessionService(&fakeLLM{}, &fakeConversationService{})
	unknown := uuid.New()
	if _, err := svc.SwitchConversation(context.Background(), uuid.New(), &unknown); err == nil {
		t.Fatal("expected error for unknown conversation id")
	}
}

func TestResetIfCurrent(t *testing.T) {
	svc := newTestSessionService(&fakeLLM{}, &fakeConversationService{})
	userId := uuid.New()
	openId := uuid.New()

	svc.sessions.Save(&memory.LiveSession{
		UserID:         userId.String(),
		ConversationID: &openId,
		PersonaID:      2,
		Messages:       []entity.Message{{Id: 1, Role: "user", Content: entity.NewTextContent("x"), Persona: "Tool 2"}},
	})

	// Deleting a different conversation leaves the session alone.
	svc.ResetIfCurrent(userId, uuid.New())
	session, _ := svc.sessions.Get(userId.String())
	if session.ConversationID == nil || len(session.Messages) != 1 {
		t.Fatalf("session should be untouched, got %+v", session)
	}

	svc.ResetIfCurrent(userId, openId)
	session, _ = svc.sessions.Get(userId.String())
	if session.ConversationID != nil || len(session.Messages) != 0 {
		t.Errorf("session should be reset, got %+v", session)
	}
	if session.PersonaID != 1 {
		t.Errorf("persona = %d, want default", session.PersonaID)
	}
}

func TestCompleteTurnDropsStaleEpoch(t *testing.T) {
	svc := newTestSessionService(&fakeLLM{}, &fakeConversationService{})
	userId := uuid.New()

	svc.sessions.Save(&memory.LiveSession{
		UserID:           userId.String(),
		PersonaID:        1,
		Messages:         []entity.Message{},
		AwaitingResponse: true,
		Epoch:            1,
	})

	reply := svc.completeTurn(userId, 0, "Tool 1", "late reply")
	if reply != nil {
		t.Error("stale completion should be dropped")
	}
	session, _ := svc.sessions.Get(userId.String())
	if len(session.Messages) != 0 {
		t.Errorf("got %d messages, want stale reply discarded", len(session.Messages))
	}
	if session.AwaitingResponse {
		t.Error("awaiting flag should clear even when the reply is dropped")
	}
}

func TestRemoveAttachment(t *testing.T) {
	svc := newTestSessionService(&fakeLLM{}, &fakeConversationService{})
	userId := uuid.New()

	state, err := svc.AttachFiles(context.Background(), userId, []extract.Input{
		{Name: "a.txt", Type: "text/plain", Data: []byte("a")},
		{Name: "b.txt", Type: "text/plain", Data: []byte("b")},
	})
	if err != nil {
		t.Fatalf("AttachFiles error: %v", err)
	}
	if len(state.Attachments) != 2 {
		t.Fatalf("got %d attachments, want 2", len(state.Attachments))
	}

	state, err = svc.RemoveAttachment(context.Background(), userId, 0)
	if err != nil {
		t.Fatalf("RemoveAttachment error: %v", err)
	}
	if len(state.Attachments) != 1 || state.Attachments[0].Name != "b.txt" {
		t.Errorf("attachments = %+v", state.Attachments)
	}

	if _, err := svc.RemoveAttachment(context.Background(), userId, 5); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}

func TestBuildUserContent(t *testing.T) {
	textFile := extract.FileDescriptor{Name: "a.txt", Content: "aaa", IsText: true}
	image := extract.FileDescriptor{Name: "pic.png", Content: "data:image/png;base64,x", IsImage: true}
	brokenImage := extract.FileDescriptor{Name: "bad.png", IsImage: true, Error: true}
	brokenFile := extract.FileDescriptor{Name: "bad.pdf", Error: true}

	tests := []struct {
		name        string
		text        string
		attachments []extract.FileDescriptor
		wantPlain   bool
		wantText    string
		wantParts   int
	}{
		{
			name:      "text only",
			text:      "hi",
			wantPlain: true,
			wantText:  "hi",
		},
		{
			name:        "text with file",
			text:        "hi",
			attachments: []extract.FileDescriptor{textFile},
			wantPlain:   true,
			wantText:    "hi\n\n[File: a.txt]\naaa",
		},
		{
			name:        "file without text gets the analyze prefix",
			attachments: []extract.FileDescriptor{textFile},
			wantPlain:   true,
			wantText:    constant.AnalyzeFilesPrefix + "\n\n[File: a.txt]\naaa",
		},
		{
			name:        "image only yields a lone image part",
			attachments: []extract.FileDescriptor{image},
			wantParts:   1,
		},
		{
			name:        "text with image yields text and image parts",
			text:        "look",
			attachments: []extract.FileDescriptor{image},
			wantParts:   2,
		},
		{
			name:        "only a failed image falls back to the image placeholder",
			attachments: []extract.FileDescriptor{brokenImage},
			wantPlain:   true,
			wantText:    constant.AnalyzeImagesPlaceholder,
		},
		{
			name:        "only a failed file falls back to the file placeholder",
			attachments: []extract.FileDescriptor{brokenFile},
			wantPlain:   true,
			wantText:    constant.AnalyzeFilesPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildUserContent(tt.text, tt.attachments)
			if tt.wantPlain {
				if !got.IsPlain() {
					t.Fatalf("got part form %+v, want plain", got)
				}
				if got.Text != tt.wantText {
					t.Errorf("text = %q, want %q", got.Text, tt.wantText)
				}
				return
			}
			if got.IsPlain() {
				t.Fatalf("got plain %q, want %d parts", got.Text, tt.wantParts)
			}
			if len(got.Parts) != tt.wantParts {
				t.Errorf("got %d parts, want %d", len(got.Parts), tt.wantParts)
			}
		})
	}
}
