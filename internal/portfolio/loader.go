package portfolio

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Snapshot is the read-only aggregate handed to the public site.
type Snapshot struct {
	Profile  *Profile       `json:"profile"`
	Skills   []Skill        `json:"skills"`
	Journey  []JourneyEntry `json:"journey"`
	Projects []Project      `json:"projects"`
	Loading  bool           `json:"loading"`
	Error    string         `json:"error,omitempty"`
}

// NewSnapshot returns the initial, still-loading snapshot.
func NewSnapshot() Snapshot {
	return Snapshot{
		Skills:   []Skill{},
		Journey:  []JourneyEntry{},
		Projects: []Project{},
		Loading:  true,
	}
}

// Loader aggregates the four portfolio reads into a Snapshot.
type Loader struct {
	store  Store
	logger *logrus.Logger
}

// NewLoader constructs a Loader reading from store.
func NewLoader(store Store, logger *logrus.Logger) (*Loader, error) {
	if store == nil {
		return nil, eris.New("portfolio store is required")
	}
	return &Loader{store: store, logger: logger}, nil
}

// Load performs the profile, skills, journey and projects queries. A missing profile is a
// valid empty state; any other failure aborts the aggregation and no collection is populated.
func (l *Loader) Load(ctx context.Context) Snapshot {
	snapshot := NewSnapshot()

	data, err := l.fetch(ctx)
	snapshot.Loading = false
	if err != nil {
		if l.logger != nil {
			l.logger.WithField("error", err.Error()).Error("fetching portfolio data")
		}
		snapshot.Error = eris.Cause(err).Error()
		return snapshot
	}

	snapshot.Profile = data.Profile
	snapshot.Skills = nonNil(data.Skills)
	snapshot.Journey = nonNil(data.Journey)
	snapshot.Projects = nonNil(data.Projects)
	return snapshot
}

func (l *Loader) fetch(ctx context.Context) (Snapshot, error) {
	var out Snapshot

	profile, err := l.store.GetProfile(ctx)
	if err != nil && !eris.Is(err, ErrNotFound) {
		return out, eris.Wrap(err, "fetching profile")
	}
	if err == nil {
		out.Profile = profile
	}

	if out.Skills, err = l.store.ListSkills(ctx); err != nil {
		return Snapshot{}, eris.Wrap(err, "fetching skills")
	}

	if out.Journey, err = l.store.ListJourney(ctx); err != nil {
		return Snapshot{}, eris.Wrap(err, "fetching journey")
	}

	if out.Projects, err = l.store.ListProjects(ctx); err != nil {
		return Snapshot{}, eris.Wrap(err, "fetching projects")
	}

	return out, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
