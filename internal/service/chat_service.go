package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/zinister/mentor/internal/config"
	"github.com/zinister/mentor/internal/domain"
	"github.com/zinister/mentor/internal/session"
	"go.uber.org/zap"
)

// ChatService composes the system instruction, retrieved context and the
// conversation transcript into one model request per user message.
type ChatService struct {
	cfg       *config.Config
	sessions  *session.Manager
	knowledge *KnowledgeService
	generator domain.Generator
	logger    *zap.Logger
}

// NewChatService creates a new chat service. The generator may be nil when
// no provider credential is configured; chats then fail per-call while the
// rest of the widget keeps working.
func NewChatService(
	cfg *config.Config,
	sessions *session.Manager,
	knowledge *KnowledgeService,
	generator domain.Generator,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		cfg:       cfg,
		sessions:  sessions,
		knowledge: knowledge,
		generator: generator,
		logger:    logger,
	}
}

// Chat handles one user message. The user turn is recorded before the
// provider call, so a failed call leaves the transcript consistent: the
// question stays, no assistant turn is appended, and the error surfaces.
func (s *ChatService) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	sess, err := s.resolveSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	history, err := s.sessions.History(sess.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.AppendTurn(sess.ID, domain.RoleUser, req.Message); err != nil {
		return nil, err
	}

	if s.generator == nil {
		return nil, domain.ErrNoCredential
	}

	messages := s.buildMessages(ctx, history, req.Message)
	answer, err := s.generator.Generate(ctx, messages, domain.GenerateOptions{
		Temperature: sess.Settings.Temperature,
		MaxTokens:   sess.Settings.MaxTokens,
	})
	if err != nil {
		s.logger.Error("generation failed", zap.String("session_id", sess.ID), zap.Error(err))
		return nil, fmt.Errorf("generating reply: %w", err)
	}

	if err := s.sessions.AppendTurn(sess.ID, domain.RoleAssistant, answer); err != nil {
		return nil, err
	}

	return &domain.ChatResponse{SessionID: sess.ID, Answer: answer}, nil
}

// buildMessages assembles: system instruction, optional retrieved context as
// a second system block, the prior transcript in order, then the new message.
func (s *ChatService) buildMessages(ctx context.Context, history []domain.Turn, userMessage string) []domain.Message {
	messages := []domain.Message{
		{Role: domain.RoleSystem, Content: s.cfg.Chat.SystemPrompt},
	}

	if s.cfg.RAG.Enabled && s.knowledge != nil {
		if notes := s.knowledge.Recall(ctx, userMessage, s.cfg.RAG.TopK); notes != "" {
			messages = append(messages, domain.Message{
				Role:    domain.RoleSystem,
				Content: "Relevant notes:\n" + notes,
			})
		}
	}

	for _, turn := range history {
		messages = append(messages, domain.Message{Role: turn.Role, Content: turn.Content})
	}

	return append(messages, domain.Message{Role: domain.RoleUser, Content: userMessage})
}

func (s *ChatService) resolveSession(id string) (*domain.Session, error) {
	if id == "" {
		return s.sessions.Create(), nil
	}
	sess, err := s.sessions.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		// Stale browser-side id after a restart: start fresh.
		return s.sessions.Create(), nil
	}
	return sess, err
}
