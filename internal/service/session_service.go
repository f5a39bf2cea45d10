package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/repository/memory"
	"persona-chat-be/pkg/extract"
	"persona-chat-be/pkg/llm"
	"persona-chat-be/pkg/pdfgen"

	"github.com/google/uuid"
)

// ISessionService owns the live chat session of each user: the working
// message list, the selected persona, pending attachments and the
// debounced auto-save of the conversation record.
type ISessionService interface {
	GetState(ctx context.Context, userId uuid.UUID) (*dto.SessionStateResponse, error)
	SelectPersona(ctx context.Context, userId uuid.UUID, personaId int) (*dto.SessionStateResponse, error)
	AttachFiles(ctx context.Context, userId uuid.UUID, inputs []extract.Input) (*dto.SessionStateResponse, error)
	RemoveAttachment(ctx context.Context, userId uuid.UUID, index int) (*dto.SessionStateResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, text string) (*dto.SendMessageResponse, error)
	SwitchConversation(ctx context.Context, userId uuid.UUID, conversationId *uuid.UUID) (*dto.SessionStateResponse, error)
	ResetIfCurrent(userId uuid.UUID, conversationId uuid.UUID)
	Teardown(userId uuid.UUID)
}

type sessionService struct {
	mu       sync.Mutex
	sessions *memory.LiveSessionRepository
	timers   map[string]*time.Timer

	toolService         IToolService
	conversationService IConversationService
	activityService     IActivityService
	llmProvider         llm.LLMProvider
	logger              logger.ILogger

	// quietPeriod is the trailing-debounce window for auto-save.
	quietPeriod time.Duration
}

func NewSessionService(
	sessions *memory.LiveSessionRepository,
	toolService IToolService,
	conversationService IConversationService,
	activityService IActivityService,
	llmProvider llm.LLMProvider,
	sysLogger logger.ILogger,
) ISessionService {
	return &sessionService{
		sessions:            sessions,
		timers:              make(map[string]*time.Timer),
		toolService:         toolService,
		conversationService: conversationService,
		activityService:     activityService,
		llmProvider:         llmProvider,
		logger:              sysLogger,
		quietPeriod:         constant.AutoSaveQuietPeriod,
	}
}

// getOrCreate must be called with s.mu held.
func (s *sessionService) getOrCreate(userId uuid.UUID) *memory.LiveSession {
	key := userId.String()
	if session, found := s.sessions.Get(key); found {
		return session
	}
	session := &memory.LiveSession{
		UserID:    key,
		PersonaID: s.toolService.DefaultPersona().Id,
		Messages:  []entity.Message{},
	}
	s.sessions.Save(session)
	return session
}

func (s *sessionService) toStateResponse(session *memory.LiveSession) *dto.SessionStateResponse {
	messages := make([]dto.MessageDTO, 0, len(session.Messages))
	for _, m := range session.Messages {
		messages = append(messages, dto.MessageDTO{
			Id:      m.Id,
			Role:    m.Role,
			Content: m.Content,
			Tool:    m.Persona,
			Files:   m.Files,
		})
	}
	attachments := session.Attachments
	if attachments == nil {
		attachments = []extract.FileDescriptor{}
	}
	return &dto.SessionStateResponse{
		ConversationId:   session.ConversationID,
		PersonaId:        session.PersonaID,
		Messages:         messages,
		Attachments:      attachments,
		AwaitingResponse: session.AwaitingResponse,
	}
}

func (s *sessionService) GetState(ctx context.Context, userId uuid.UUID) (*dto.SessionStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toStateResponse(s.getOrCreate(userId)), nil
}

// SelectPersona is a silent no-op once the conversation has messages:
// persona choice is locked so every turn shares one system-prompt
// framing. An unknown or unusable persona is rejected loudly.
func (s *sessionService) SelectPersona(ctx context.Context, userId uuid.UUID, personaId int) (*dto.SessionStateResponse, error) {
	persona, err := s.toolService.GetPersona(ctx, userId, personaId)
	if err != nil {
		return nil, err
	}
	if persona == nil || !persona.Usable() {
		return nil, fmt.Errorf("persona %d cannot be selected", personaId)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.getOrCreate(userId)
	if len(session.Messages) > 0 {
		return s.toStateResponse(session), nil
	}
	session.PersonaID = personaId
	s.sessions.Save(session)
	return s.toStateResponse(session), nil
}

// AttachFiles extracts every file independently. A failed extraction
// lands in the list as an errored descriptor, it never blocks siblings.
func (s *sessionService) AttachFiles(ctx context.Context, userId uuid.UUID, inputs []extract.Input) (*dto.SessionStateResponse, error) {
	descriptors := extract.ProcessAll(ctx, inputs)

	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.getOrCreate(userId)
	session.Attachments = append(session.Attachments, descriptors...)
	s.sessions.Save(session)
	return s.toStateResponse(session), nil
}

func (s *sessionService) RemoveAttachment(ctx context.Context, userId uuid.UUID, index int) (*dto.SessionStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.getOrCreate(userId)
	if index < 0 || index >= len(session.Attachments) {
		return nil, fmt.Errorf("attachment index %d out of range", index)
	}
	session.Attachments = append(session.Attachments[:index], session.Attachments[index+1:]...)
	s.sessions.Save(session)
	return s.toStateResponse(session), nil
}

// nextMessageId derives a monotonic id from wall-clock milliseconds,
// bumping past the last id when two messages land in the same tick.
func nextMessageId(messages []entity.Message) int64 {
	id := time.Now().UnixMilli()
	if n := len(messages); n > 0 && id <= messages[n-1].Id {
		id = messages[n-1].Id + 1
	}
	return id
}

// buildUserContent assembles the outbound content for one turn from
// typed text and pending attachments. The result is never empty.
func buildUserContent(text string, attachments []extract.FileDescriptor) entity.MessageContent {
	trimmed := strings.TrimSpace(text)

	var images []extract.FileDescriptor
	hadImageAttachment := false
	for _, d := range attachments {
		if d.IsImage {
			hadImageAttachment = true
			if !d.Error {
				images = append(images, d)
			}
		}
	}

	outbound := trimmed
	if rendered := extract.RenderAllForPrompt(attachments); rendered != "" {
		if outbound == "" {
			outbound = constant.AnalyzeFilesPrefix + "\n\n" + rendered
		} else {
			outbound = outbound + "\n\n" + rendered
		}
	}

	var parts []entity.ContentPart
	if outbound != "" {
		parts = append(parts, entity.ContentPart{Type: entity.ContentPartTypeText, Text: outbound})
	}
	for _, img := range images {
		parts = append(parts, entity.ContentPart{Type: entity.ContentPartTypeImageURL, ImageURL: img.Content})
	}

	if len(parts) == 0 {
		if hadImageAttachment {
			parts = append(parts, entity.ContentPart{Type: entity.ContentPartTypeText, Text: constant.AnalyzeImagesPlaceholder})
		} else {
			parts = append(parts, entity.ContentPart{Type: entity.ContentPartTypeText, Text: constant.AnalyzeFilesPlaceholder})
		}
	}

	return entity.NewPartsContent(parts)
}

// buildSystemPrompt augments the persona prompt with its training
// documents, rendered with the same rules as attachments.
func buildSystemPrompt(persona *entity.Persona) string {
	prompt := persona.Prompt
	if len(persona.TrainingDocs) > 0 {
		if rendered := extract.RenderAllForPrompt(persona.TrainingDocs); rendered != "" {
			prompt = prompt + "\n\nReference documents:\n\n" + rendered
		}
	}
	return prompt
}

func contentToLLM(c entity.MessageContent) ([]llm.Part, string) {
	if c.IsPlain() {
		return nil, c.Text
	}
	parts := make([]llm.Part, 0, len(c.Parts))
	for _, p := range c.Parts {
		switch p.Type {
		case entity.ContentPartTypeImageURL:
			parts = append(parts, llm.Part{Type: llm.PartTypeImageURL, ImageURL: p.ImageURL})
		default:
			parts = append(parts, llm.Part{Type: llm.PartTypeText, Text: p.Text})
		}
	}
	return parts, ""
}

// buildOutboundHistory filters history down to the active persona's
// isolated view: cross-persona messages stay visible in the combined
// timeline but never travel to inference.
func buildOutboundHistory(persona *entity.Persona, messages []entity.Message, userMessage entity.Message) []llm.Message {
	history := make([]llm.Message, 0, len(messages)+2)
	history = append(history, llm.Message{
		Role:    llm.RoleSystem,
		Content: buildSystemPrompt(persona),
	})
	for _, m := range messages {
		if m.Persona != persona.Name {
			continue
		}
		parts, text := contentToLLM(m.Content)
		history = append(history, llm.Message{Role: m.Role, Content: text, Parts: parts})
	}
	parts, text := contentToLLM(userMessage.Content)
	history = append(history, llm.Message{Role: llm.RoleUser, Content: text, Parts: parts})
	return history
}

func (s *sessionService) SendMessage(ctx context.Context, userId uuid.UUID, text string) (*dto.SendMessageResponse, error) {
	persona, epoch, priorHistory, userMessage, err := s.beginTurn(ctx, userId, text)
	if err != nil {
		return nil, err
	}
	if userMessage == nil {
		// Empty turn: nothing typed, nothing attached.
		return &dto.SendMessageResponse{}, nil
	}

	outbound := buildOutboundHistory(persona, priorHistory, *userMessage)

	replyText, llmErr := s.llmProvider.Chat(ctx, outbound,
		llm.WithTemperature(constant.DefaultTemperature),
		llm.WithMaxTokens(constant.DefaultMaxTokens),
	)

	var pdfRequest *pdfgen.Request
	if llmErr != nil {
		s.logger.Error("session", "Inference call failed", map[string]interface{}{"error": llmErr.Error()})
		replyText = fmt.Sprintf("Error: %v", llmErr)
	} else {
		if replyText == "" {
			replyText = constant.InferenceFallbackResponse
		}
		pdfRequest, replyText = pdfgen.ParseResponse(replyText)
		if replyText == "" && pdfRequest != nil {
			replyText = fmt.Sprintf("Generated PDF: %s", pdfRequest.Filename)
		}
	}

	reply := s.completeTurn(userId, epoch, persona.Name, replyText)

	s.activityService.Track(userId, constant.ActivityMessageSent, map[string]interface{}{
		"persona": persona.Name,
		"failed":  llmErr != nil,
	})

	response := &dto.SendMessageResponse{
		Sent: &dto.MessageDTO{
			Id:      userMessage.Id,
			Role:    userMessage.Role,
			Content: userMessage.Content,
			Tool:    userMessage.Persona,
			Files:   userMessage.Files,
		},
	}
	if reply != nil {
		response.Reply = &dto.MessageDTO{
			Id:      reply.Id,
			Role:    reply.Role,
			Content: reply.Content,
			Tool:    reply.Persona,
		}
	}
	if pdfRequest != nil {
		response.Pdf = &dto.PdfRequestDTO{
			Filename: pdfRequest.Filename,
			Title:    pdfRequest.Title,
			Content:  pdfRequest.Content,
		}
	}
	return response, nil
}

// beginTurn validates preconditions, appends the optimistic user
// message and marks the session awaiting. Returns a nil message when
// the turn is an allowed no-op (nothing to send). The returned history
// snapshot excludes the new user message.
func (s *sessionService) beginTurn(ctx context.Context, userId uuid.UUID, text string) (*entity.Persona, int64, []entity.Message, *entity.Message, error) {
	s.mu.Lock()
	session := s.getOrCreate(userId)
	personaId := session.PersonaID
	alreadyAwaiting := session.AwaitingResponse
	hasInput := strings.TrimSpace(text) != "" || len(session.Attachments) > 0
	s.mu.Unlock()

	if !hasInput || alreadyAwaiting {
		return nil, 0, nil, nil, nil
	}

	persona, err := s.toolService.GetPersona(ctx, userId, personaId)
	if err != nil {
		return nil, 0, nil, nil, err
	}
	if persona == nil || !persona.Usable() {
		return nil, 0, nil, nil, fmt.Errorf("selected persona cannot send messages")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session = s.getOrCreate(userId)
	if session.AwaitingResponse {
		return nil, 0, nil, nil, nil
	}

	attachments := session.Attachments
	content := buildUserContent(text, attachments)

	files := make([]entity.FileRef, 0, len(attachments))
	for _, d := range attachments {
		files = append(files, entity.FileRef{Name: d.Name, Type: d.Type})
	}

	userMessage := entity.Message{
		Id:      nextMessageId(session.Messages),
		Role:    constant.ChatMessageRoleUser,
		Content: content,
		Persona: persona.Name,
		Files:   files,
	}

	priorHistory := append([]entity.Message(nil), session.Messages...)
	session.Messages = append(session.Messages, userMessage)
	session.Attachments = nil
	session.AwaitingResponse = true
	s.sessions.Save(session)
	s.scheduleSaveLocked(userId, session)

	return persona, session.Epoch, priorHistory, &userMessage, nil
}

// completeTurn appends the assistant reply and clears the awaiting
// flag. A reply arriving for an older epoch (the session was switched
// or reset mid-flight) is dropped.
func (s *sessionService) completeTurn(userId uuid.UUID, epoch int64, personaName, replyText string) *entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getOrCreate(userId)
	session.AwaitingResponse = false

	if session.Epoch != epoch {
		s.sessions.Save(session)
		return nil
	}

	reply := entity.Message{
		Id:      nextMessageId(session.Messages),
		Role:    constant.ChatMessageRoleAssistant,
		Content: entity.NewTextContent(replyText),
		Persona: personaName,
	}
	session.Messages = append(session.Messages, reply)
	s.sessions.Save(session)
	s.scheduleSaveLocked(userId, session)
	return &reply
}

// scheduleSaveLocked arms (or re-arms) the trailing-debounce save for
// the session. Must be called with s.mu held.
func (s *sessionService) scheduleSaveLocked(userId uuid.UUID, session *memory.LiveSession) {
	key := userId.String()
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
	}

	epoch := session.Epoch
	s.timers[key] = time.AfterFunc(s.quietPeriod, func() {
		s.flushSave(userId, epoch)
	})
}

// flushSave persists the session snapshot taken under the lock. The
// epoch guard skips saves that were scheduled before a switch/reset.
func (s *sessionService) flushSave(userId uuid.UUID, epoch int64) {
	s.mu.Lock()
	key := userId.String()
	delete(s.timers, key)

	session, found := s.sessions.Get(key)
	if !found || session.Epoch != epoch || len(session.Messages) == 0 {
		s.mu.Unlock()
		return
	}

	persona, _ := s.toolService.GetPersona(context.Background(), userId, session.PersonaID)
	personaName := ""
	if persona != nil {
		personaName = persona.Name
	}

	conversation := &entity.Conversation{
		UserId:   userId,
		Persona:  personaName,
		Messages: append([]entity.Message(nil), session.Messages...),
	}
	if session.ConversationID != nil {
		conversation.Id = *session.ConversationID
	}
	s.mu.Unlock()

	if err := s.conversationService.SaveConversation(context.Background(), conversation); err != nil {
		// Save failures never block the chat flow.
		s.logger.Warn("session", "Auto-save failed", map[string]interface{}{"error": err.Error()})
		return
	}

	// Adopt the identity assigned on first save, unless the session
	// moved on in the meantime.
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.sessions.Get(key); ok && current.Epoch == epoch && current.ConversationID == nil {
		id := conversation.Id
		current.ConversationID = &id
		s.sessions.Save(current)
	}
}

// SwitchConversation flushes any pending save, then either resets to a
// fresh session (nil id) or loads the persisted record wholesale.
func (s *sessionService) SwitchConversation(ctx context.Context, userId uuid.UUID, conversationId *uuid.UUID) (*dto.SessionStateResponse, error) {
	s.flushPendingSave(userId)

	if conversationId == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		session := s.getOrCreate(userId)
		session.Messages = []entity.Message{}
		session.Attachments = nil
		session.ConversationID = nil
		session.PersonaID = s.toolService.DefaultPersona().Id
		session.AwaitingResponse = false
		session.Epoch++
		s.sessions.Save(session)
		return s.toStateResponse(session), nil
	}

	conversation, err := s.conversationService.GetConversation(ctx, userId, *conversationId)
	if err != nil {
		return nil, err
	}

	persona, err := s.toolService.ResolvePersonaByName(ctx, userId, conversation.Persona)
	if err != nil {
		return nil, err
	}
	personaId := s.toolService.DefaultPersona().Id
	if persona != nil {
		personaId = persona.Id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.getOrCreate(userId)
	session.Messages = append([]entity.Message(nil), conversation.Messages...)
	session.Attachments = nil
	id := conversation.Id
	session.ConversationID = &id
	session.PersonaID = personaId
	session.AwaitingResponse = false
	session.Epoch++
	s.sessions.Save(session)
	return s.toStateResponse(session), nil
}

// flushPendingSave runs an armed save immediately instead of waiting
// out the quiet period.
func (s *sessionService) flushPendingSave(userId uuid.UUID) {
	key := userId.String()

	s.mu.Lock()
	timer, armed := s.timers[key]
	var epoch int64
	if armed {
		timer.Stop()
		delete(s.timers, key)
		if session, found := s.sessions.Get(key); found {
			epoch = session.Epoch
		}
	}
	s.mu.Unlock()

	if armed {
		s.flushSave(userId, epoch)
	}
}

// ResetIfCurrent resets the session when its open conversation was
// deleted from the history browser.
func (s *sessionService) ResetIfCurrent(userId uuid.UUID, conversationId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userId.String()
	session, found := s.sessions.Get(key)
	if !found || session.ConversationID == nil || *session.ConversationID != conversationId {
		return
	}

	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}

	session.Messages = []entity.Message{}
	session.Attachments = nil
	session.ConversationID = nil
	session.PersonaID = s.toolService.DefaultPersona().Id
	session.AwaitingResponse = false
	session.Epoch++
	s.sessions.Save(session)
}

// Teardown cancels any pending save without flushing and drops the
// session, e.g. on logout.
func (s *sessionService) Teardown(userId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userId.String()
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}
	s.sessions.Delete(key)
}
