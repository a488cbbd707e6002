package backend

import (
	"context"

	"github.com/rotisserie/eris"

	"folio/app/internal/auth"
	"folio/app/internal/portfolio"
)

// Null is the backend used when no data service is configured. Reads succeed with
// empty results, the profile is always missing and sign-in never yields a session.
type Null struct{}

var (
	_ portfolio.Store    = Null{}
	_ auth.Authenticator = Null{}
)

func (Null) GetProfile(context.Context) (*portfolio.Profile, error) {
	return nil, eris.Wrap(portfolio.ErrNotFound, "null backend has no profile")
}

func (Null) InsertProfile(_ context.Context, profile portfolio.Profile) (*portfolio.Profile, error) {
	copied := profile
	return &copied, nil
}

func (Null) UpdateProfile(context.Context, portfolio.Profile) error { return nil }

func (Null) ListSkills(context.Context) ([]portfolio.Skill, error) { return []portfolio.Skill{}, nil }

func (Null) InsertSkill(context.Context, portfolio.Skill) ([]portfolio.Skill, error) {
	return []portfolio.Skill{}, nil
}

func (Null) DeleteSkill(context.Context, string) error { return nil }

func (Null) ListJourney(context.Context) ([]portfolio.JourneyEntry, error) {
	return []portfolio.JourneyEntry{}, nil
}

func (Null) InsertJourneyEntry(context.Context, portfolio.JourneyEntry) ([]portfolio.JourneyEntry, error) {
	return []portfolio.JourneyEntry{}, nil
}

func (Null) DeleteJourneyEntry(context.Context, string) error { return nil }

func (Null) ListProjects(context.Context) ([]portfolio.Project, error) {
	return []portfolio.Project{}, nil
}

func (Null) InsertProject(context.Context, portfolio.Project) ([]portfolio.Project, error) {
	return []portfolio.Project{}, nil
}

func (Null) UpdateProject(context.Context, portfolio.Project) error { return nil }

func (Null) DeleteProject(context.Context, string) error { return nil }

func (Null) SignInWithPassword(context.Context, string, string) (*auth.Session, error) {
	return nil, nil
}

func (Null) SignOut(context.Context, *auth.Session) error { return nil }

func (Null) Refresh(context.Context, string) (*auth.Session, error) { return nil, nil }
