package service

import (
	"context"

	"github.com/atinyakov/PageGuard/internal/models"
)

// Decider is the access decision used while rendering.
type Decider interface {
	Decide(ctx context.Context, itemID, sessionID string) (models.Decision, error)
}

// SettingsReader provides the settings consumed by the challenge.
type SettingsReader interface {
	GetSettings(ctx context.Context) (models.Settings, error)
}

// RenderService implements the render pipeline callback.
type RenderService struct {
	access   Decider
	settings SettingsReader
	// action is the unlock endpoint the challenge form posts to.
	action string
}

// NewRenderService constructs a RenderService whose challenges post to action.
func NewRenderService(access Decider, settings SettingsReader, action string) *RenderService {
	return &RenderService{access: access, settings: settings, action: action}
}

// Render returns content unchanged when the session may see itemID, and a
// challenge descriptor otherwise. Settings are only read for challenges.
func (s *RenderService) Render(ctx context.Context, itemID, sessionID, content string) (models.RenderResult, error) {
	decision, err := s.access.Decide(ctx, itemID, sessionID)
	if err != nil {
		return models.RenderResult{}, err
	}
	if decision == models.ShowContent {
		return models.RenderResult{Decision: decision.String(), Content: content}, nil
	}

	st, err := s.settings.GetSettings(ctx)
	if err != nil {
		return models.RenderResult{}, err
	}
	c := BuildChallenge(itemID, s.action, st)
	return models.RenderResult{Decision: decision.String(), Challenge: &c}, nil
}
