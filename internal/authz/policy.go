// Package authz holds the single capability policy for the marketplace.
// Every mutating operation asks Can(actor, action, resource) exactly once
// instead of comparing role strings inline.
package authz

import "auction-backend/internal/models"

type Actor struct {
	ID   string
	Role string
}

type Action string

const (
	UserUpdate Action = "user.update"
	UserDelete Action = "user.delete"

	ProductCreate Action = "product.create"
	ProductUpdate Action = "product.update"
	ProductDelete Action = "product.delete"

	AuctionCreate Action = "auction.create"
	AuctionUpdate Action = "auction.update"
	AuctionDelete Action = "auction.delete"
)

// Resource describes the target of an action. OwnerID is the user the
// resource belongs to: the user themselves, a product's seller, or the
// seller of an auction's product.
type Resource struct {
	OwnerID string
}

func Can(actor Actor, action Action, res Resource) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	switch action {
	case UserUpdate, UserDelete:
		return actor.ID == res.OwnerID
	case ProductCreate:
		return actor.Role == models.RoleSeller
	case ProductUpdate, ProductDelete,
		AuctionCreate, AuctionUpdate, AuctionDelete:
		return actor.Role == models.RoleSeller && actor.ID == res.OwnerID
	}
	return false
}
