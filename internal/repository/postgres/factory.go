package postgres

import (
	repo "auction-backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users        repo.Users
	Products     repo.Products
	Auctions     repo.Auctions
	ChatMessages repo.ChatMessages
	EventLogs    repo.EventLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        &usersRepo{pool},
		Products:     &productsRepo{pool},
		Auctions:     &auctionsRepo{pool},
		ChatMessages: &chatMessagesRepo{pool},
		EventLogs:    &eventLogsRepo{pool},
	}
}
