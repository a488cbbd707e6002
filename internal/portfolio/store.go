package portfolio

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when a singleton or addressed record does not exist.
var ErrNotFound = eris.New("record not found")

// Store is the data service boundary over the profiles, skills, journey and projects tables.
// Insert operations return the rows as persisted by the service.
type Store interface {
	GetProfile(ctx context.Context) (*Profile, error)
	InsertProfile(ctx context.Context, profile Profile) (*Profile, error)
	UpdateProfile(ctx context.Context, profile Profile) error

	ListSkills(ctx context.Context) ([]Skill, error)
	InsertSkill(ctx context.Context, skill Skill) ([]Skill, error)
	DeleteSkill(ctx context.Context, id string) error

	ListJourney(ctx context.Context) ([]JourneyEntry, error)
	InsertJourneyEntry(ctx context.Context, entry JourneyEntry) ([]JourneyEntry, error)
	DeleteJourneyEntry(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]Project, error)
	InsertProject(ctx context.Context, project Project) ([]Project, error)
	UpdateProject(ctx context.Context, project Project) error
	DeleteProject(ctx context.Context, id string) error
}
