package models

import (
	"errors"
	"fmt"
)

var (
	// Resource errors. The specific ones wrap ErrNotFound.
	ErrNotFound         = errors.New("resource not found")
	ErrPlayerNotFound   = fmt.Errorf("player: %w", ErrNotFound)
	ErrSceneNotFound    = fmt.Errorf("scene: %w", ErrNotFound)
	ErrOptionNotFound   = fmt.Errorf("option: %w", ErrNotFound)
	ErrSaveSlotNotFound = fmt.Errorf("save slot: %w", ErrNotFound)

	ErrPlayerExists = errors.New("account already has a player")

	// Transition errors
	ErrTerminalScene    = errors.New("scene is an ending, no further transition")
	ErrChoiceRequired   = errors.New("scene requires an option to be selected")
	ErrNoCurrentScene   = errors.New("player has no current scene")
	ErrNotMinigameScene = errors.New("scene has no minigame line")
	ErrMinigameMismatch = errors.New("minigame id does not match the scene")
	// Сцену с мини-игрой нельзя пропустить через Advance: выход только через результат игры.
	ErrMinigameRequired = errors.New("scene requires its minigame to be completed")

	// Selection idempotency
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrIdempotencyConflict    = errors.New("idempotency key already used for a different option")

	// Auth
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Generic
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)
