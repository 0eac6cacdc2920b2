package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-backend/internal/apperrors"
	"auction-backend/internal/models"
	repo "auction-backend/internal/repository"

	"github.com/google/uuid"
)

type ChatService struct {
	messages repo.ChatMessages
	auctions repo.Auctions
	users    repo.Users
}

func NewChatService(m repo.ChatMessages, a repo.Auctions, u repo.Users) *ChatService {
	return &ChatService{messages: m, auctions: a, users: u}
}

// Post resolves the author against the users table, persists the message,
// and returns it with the author's durable username attached. The caller
// broadcasts only after Post returns.
func (s *ChatService) Post(ctx context.Context, authorID, auctionID, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" || auctionID == "" {
		return models.ChatMessage{}, fmt.Errorf("%w: missing auction id or message", apperrors.ErrInvalidInput)
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if _, err := s.auctions.GetByID(ctx, auctionID); err != nil {
		return models.ChatMessage{}, err
	}

	m := models.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		AuctionID: auctionID,
		Message:   text,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.messages.Create(ctx, m)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("persist chat message: %w", err)
	}
	created.Username = author.Username
	return created, nil
}

func (s *ChatService) History(ctx context.Context, auctionID string) ([]models.ChatMessage, error) {
	if _, err := s.auctions.GetByID(ctx, auctionID); err != nil {
		return nil, err
	}
	return s.messages.ListByAuction(ctx, auctionID)
}
