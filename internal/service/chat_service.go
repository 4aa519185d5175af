package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/internal/pkg/logger"
	"tajwid-pintar-be/pkg/conversation"
	"tajwid-pintar-be/pkg/directive"
	"tajwid-pintar-be/pkg/knowledge"
	"tajwid-pintar-be/pkg/llm"
	"tajwid-pintar-be/pkg/media"
	"tajwid-pintar-be/pkg/prompt"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrTurnInProgress  = errors.New("a previous turn is still being answered")
)

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error)
	SendTurn(ctx context.Context, sessionId string, req *dto.SendTurnRequest) (*dto.SendTurnResponse, error)
}

type ChatSessionStore interface {
	Save(session *entity.ChatSession)
	Get(sessionID string) (*entity.ChatSession, bool)
}

type ChatServiceConfig struct {
	HistoryTurns             int
	GroundingContextMaxBytes int
}

type chatService struct {
	sessions   ChatSessionStore
	store      knowledge.Store
	completion llm.CompletionService
	assembler  *prompt.Assembler
	renderer   *directive.Renderer
	logger     logger.ILogger
	cfg        ChatServiceConfig
	now        func() time.Time
}

func NewChatService(
	sessions ChatSessionStore,
	store knowledge.Store,
	completion llm.CompletionService,
	assembler *prompt.Assembler,
	renderer *directive.Renderer,
	log logger.ILogger,
	cfg ChatServiceConfig,
) IChatService {
	return &chatService{
		sessions:   sessions,
		store:      store,
		completion: completion,
		assembler:  assembler,
		renderer:   renderer,
		logger:     log,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := entity.NewChatSession(uuid.NewString(), cs.now())
	session.History.Append(conversation.Turn{
		Role:      conversation.RoleAssistant,
		Text:      constant.ChatGreetingV1,
		Timestamp: session.CreatedAt,
	})
	cs.sessions.Save(session)

	return &dto.CreateSessionResponse{
		SessionId: session.Id,
		Turns:     cs.turnResponses(session.History.Turns(), nil),
	}, nil
}

func (cs *chatService) GetHistory(ctx context.Context, sessionId string) (*dto.ChatHistoryResponse, error) {
	session, ok := cs.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	records, err := cs.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load knowledge snapshot: %w", err)
	}

	return &dto.ChatHistoryResponse{
		SessionId: session.Id,
		Turns:     cs.turnResponses(session.History.Turns(), knowledge.NewSnapshot(records)),
	}, nil
}

// SendTurn runs one turn: snapshot, grounding context, history, assembly, one
// completion, render. History is only extended when the completion succeeds.
func (cs *chatService) SendTurn(ctx context.Context, sessionId string, req *dto.SendTurnRequest) (*dto.SendTurnResponse, error) {
	session, ok := cs.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !session.TryBeginTurn() {
		return nil, ErrTurnInProgress
	}
	defer session.EndTurn()

	records, err := cs.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load knowledge snapshot: %w", err)
	}
	snap := knowledge.NewSnapshot(records)
	grounding := knowledge.BuildBounded(snap.Records(), cs.cfg.GroundingContextMaxBytes)
	history := session.History.RecentAsText(cs.cfg.HistoryTurns)

	assembled, err := cs.assembler.Assemble(req.Text, grounding, history, req.Image, req.Audio)
	if err != nil {
		var encErr *media.EncodingError
		if errors.As(err, &encErr) {
			cs.logger.Warn("CHAT", "Media rejected", map[string]interface{}{
				"session_id": session.Id,
				"kind":       string(encErr.Kind),
				"error":      encErr.Error(),
			})
		}
		return nil, err
	}
	userText, _ := prompt.ResolveInstruction(req.Text, req.Image != nil, req.Audio != nil)
	askedAt := cs.now()

	reply, err := cs.completion.Complete(ctx, assembled.Completion())
	if err != nil {
		cs.logger.Error("CHAT", "Completion failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return &dto.SendTurnResponse{
			SessionId: session.Id,
			Failed:    true,
			Reply:     constant.ChatFailureReplyV1,
			Plan:      cs.renderer.Render(constant.ChatFailureReplyV1, nil),
		}, nil
	}

	plan := cs.renderer.Render(reply, snap)
	if leaks := prompt.LeakedPhrases(plan.PlainText(), snap.IDs()); len(leaks) > 0 {
		cs.logger.Warn("CHAT", "Answer leaked internal wording", map[string]interface{}{
			"session_id": session.Id,
			"leaks":      leaks,
		})
	}

	turns := []conversation.Turn{
		{
			Role:            conversation.RoleUser,
			Text:            userText,
			ImagePreviewRef: imagePreviewRef(req),
			Timestamp:       askedAt,
		},
		{
			Role:      conversation.RoleAssistant,
			Text:      reply,
			Timestamp: cs.now(),
		},
	}
	session.History.Append(turns...)

	return &dto.SendTurnResponse{
		SessionId: session.Id,
		Reply:     plan.Markdown(),
		Plan:      plan,
		Turns:     cs.turnResponses(turns, snap),
	}, nil
}

// Assistant turns keep the raw reply and are rendered against snap on the
// way out.
func (cs *chatService) turnResponses(turns []conversation.Turn, snap *knowledge.Snapshot) []dto.TurnResponse {
	out := make([]dto.TurnResponse, 0, len(turns))
	for _, t := range turns {
		tr := dto.TurnResponse{
			Role:            string(t.Role),
			Text:            t.Text,
			ImagePreviewRef: t.ImagePreviewRef,
			Timestamp:       t.Timestamp,
		}
		if t.Role == conversation.RoleAssistant {
			plan := cs.renderer.Render(t.Text, snap)
			tr.Text = plan.Markdown()
			tr.Plan = &plan
		}
		out = append(out, tr)
	}
	return out
}

func imagePreviewRef(req *dto.SendTurnRequest) string {
	if req.Image == nil {
		return ""
	}
	if req.Image.Name != "" {
		return req.Image.Name
	}
	return "image"
}
