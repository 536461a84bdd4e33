package interfaces

import (
	"context"

	"vn-server/internal/models"

	"github.com/google/uuid"
)

// PlayerRepository persists players and their current-scene pointer.
//
//go:generate mockery --name PlayerRepository --output ./mocks --outpkg mocks --case=underscore
type PlayerRepository interface {
	// Create inserts a new player. ID is generated when zero.
	Create(ctx context.Context, querier DBTX, player *models.Player) error
	// GetByID returns models.ErrNotFound if no player exists.
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Player, error)
	// GetByIDForUpdate locks the player row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Player, error)
	// GetByAccountID returns models.ErrNotFound if the account has no player yet.
	GetByAccountID(ctx context.Context, querier DBTX, accountID uuid.UUID) (*models.Player, error)
	UpdateName(ctx context.Context, querier DBTX, id uuid.UUID, name string) error
	// UpdateCurrentScene is the only writer of current_scene_id.
	UpdateCurrentScene(ctx context.Context, querier DBTX, id uuid.UUID, sceneID string) error
}

// AffinityRepository stores one running score per (player, character).
//
//go:generate mockery --name AffinityRepository --output ./mocks --outpkg mocks --case=underscore
type AffinityRepository interface {
	// Get returns models.ErrNotFound if no record exists for the pair.
	Get(ctx context.Context, querier DBTX, playerID uuid.UUID, characterID string) (*models.Affinity, error)
	// ListByPlayer returns all records ordered by character id.
	ListByPlayer(ctx context.Context, querier DBTX, playerID uuid.UUID) ([]models.Affinity, error)
	// AddDelta creates the record on first use and returns the new score.
	AddDelta(ctx context.Context, querier DBTX, playerID uuid.UUID, characterID string, delta int) (int, error)
	// ReplaceAll drops every record of the player and writes scores instead.
	ReplaceAll(ctx context.Context, querier DBTX, playerID uuid.UUID, scores map[string]int) error
}

// SaveSlotRepository stores at most one slot per (player, slot number).
//
//go:generate mockery --name SaveSlotRepository --output ./mocks --outpkg mocks --case=underscore
type SaveSlotRepository interface {
	// Upsert overwrites an occupied slot in place. SavedAt is set from the database.
	Upsert(ctx context.Context, querier DBTX, slot *models.SaveSlot) error
	// Get returns models.ErrNotFound if the slot is empty.
	Get(ctx context.Context, querier DBTX, playerID uuid.UUID, slotNumber int) (*models.SaveSlot, error)
	// ListByPlayer returns slots ordered by slot number ascending.
	ListByPlayer(ctx context.Context, querier DBTX, playerID uuid.UUID) ([]models.SaveSlot, error)
	// Delete reports whether a slot was removed. A missing slot is not an error.
	Delete(ctx context.Context, querier DBTX, playerID uuid.UUID, slotNumber int) (bool, error)
}

// SelectionRepository records idempotent option selections.
//
//go:generate mockery --name SelectionRepository --output ./mocks --outpkg mocks --case=underscore
type SelectionRepository interface {
	// GetByKey returns models.ErrNotFound if the key was never used by the player.
	GetByKey(ctx context.Context, querier DBTX, playerID uuid.UUID, key string) (*models.OptionSelection, error)
	Create(ctx context.Context, querier DBTX, selection *models.OptionSelection) error
}

// StoryContentRepository reads and replaces authored content tables.
//
//go:generate mockery --name StoryContentRepository --output ./mocks --outpkg mocks --case=underscore
type StoryContentRepository interface {
	// LoadAll returns every scene with its scripts, options and option scores.
	LoadAll(ctx context.Context, querier DBTX) (*models.StoryContent, error)
	// ReplaceAll deletes all content and inserts the given one. Call inside a transaction.
	ReplaceAll(ctx context.Context, querier DBTX, content *models.StoryContent) error
}
