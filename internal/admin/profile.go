package admin

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"folio/app/internal/portfolio"
	"folio/app/internal/site"
)

const (
	MessageProfileSaved    = "Profile saved successfully!"
	MessageSkillRequired   = "Please save your profile first and provide a skill name"
	MessageJourneyRequired = "Please save your profile first and provide a journey description"

	DefaultSkillLevel = 50
	MinSkillLevel     = 0
	MaxSkillLevel     = 100
)

// ProfileForm carries the editable profile fields.
type ProfileForm struct {
	Name         string
	Tagline      string
	Description  string
	ProfileImage string
	ResumeURL    string
	GitHub       string
	LinkedIn     string
	Twitter      string
}

// SkillDraft is the pending new-skill input.
type SkillDraft struct {
	Name  string
	Level int
}

// ProfileView is a read-only copy of the editor state.
type ProfileView struct {
	Profile    portfolio.Profile
	Skills     []portfolio.Skill
	Journey    []portfolio.JourneyEntry
	NewSkill   SkillDraft
	NewJourney string
	Loading    bool
	Saving     bool
	Error      string
	Success    string
}

// ProfileEditor keeps the admin's local copy of profile, skills and journey and applies
// remote mutations to it only after they succeed.
type ProfileEditor struct {
	store  portfolio.Store
	logger *logrus.Logger
	now    func() time.Time

	mu         sync.Mutex
	loaded     bool
	loading    bool
	saving     bool
	profile    portfolio.Profile
	skills     []portfolio.Skill
	journey    []portfolio.JourneyEntry
	newSkill   SkillDraft
	newJourney string
	banner     banner
}

// NewProfileEditor constructs an editor over store. successTTL defaults to three seconds.
func NewProfileEditor(store portfolio.Store, logger *logrus.Logger, successTTL time.Duration) *ProfileEditor {
	return &ProfileEditor{
		store:    store,
		logger:   logger,
		now:      time.Now,
		loading:  true,
		profile:  site.DefaultProfile(),
		skills:   []portfolio.Skill{},
		journey:  []portfolio.JourneyEntry{},
		newSkill: SkillDraft{Level: DefaultSkillLevel},
		banner:   newBanner(successTTL),
	}
}

// Loaded reports whether a Load has completed successfully.
func (e *ProfileEditor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Load reads the profile, skills and journey. A missing profile is replaced by the
// site defaults with an empty id so the first save inserts it.
func (e *ProfileEditor) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loading = true
	defer func() { e.loading = false }()

	profile, err := e.store.GetProfile(ctx)
	if err != nil && !eris.Is(err, portfolio.ErrNotFound) {
		return e.failed(err, "fetching profile data")
	}

	skills, err := e.store.ListSkills(ctx)
	if err != nil {
		return e.failed(err, "fetching profile data")
	}

	journey, err := e.store.ListJourney(ctx)
	if err != nil {
		return e.failed(err, "fetching profile data")
	}

	if profile != nil {
		e.profile = *profile
	} else {
		e.profile = site.DefaultProfile()
	}
	e.skills = append([]portfolio.Skill{}, skills...)
	e.journey = append([]portfolio.JourneyEntry{}, journey...)
	e.loaded = true
	return nil
}

// UpdateProfile replaces the local profile fields; nothing is sent until SaveProfile.
func (e *ProfileEditor) UpdateProfile(form ProfileForm) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profile.Name = form.Name
	e.profile.Tagline = form.Tagline
	e.profile.Description = form.Description
	e.profile.ProfileImage = form.ProfileImage
	e.profile.ResumeURL = form.ResumeURL
	e.profile.SocialLinks = portfolio.SocialLinks{
		GitHub:   form.GitHub,
		LinkedIn: form.LinkedIn,
		Twitter:  form.Twitter,
	}
}

// SaveProfile inserts the profile on first save and updates it by id afterwards.
func (e *ProfileEditor) SaveProfile(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.saving = true
	defer func() { e.saving = false }()
	e.banner.reset()

	if strings.TrimSpace(e.profile.ID) == "" {
		created, err := e.store.InsertProfile(ctx, e.profile)
		if err != nil {
			return e.failed(err, "saving profile")
		}
		if created != nil && created.ID != "" {
			e.profile.ID = created.ID
		}
	} else if err := e.store.UpdateProfile(ctx, e.profile); err != nil {
		return e.failed(err, "saving profile")
	}

	e.banner.succeed(MessageProfileSaved, e.now())
	return nil
}

// AddSkill inserts a skill for the saved profile. The level is clamped to 0..100.
func (e *ProfileEditor) AddSkill(ctx context.Context, name string, level int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.newSkill = SkillDraft{Name: name, Level: clampLevel(level)}
	if e.profile.ID == "" || name == "" {
		e.banner.fail(MessageSkillRequired)
		return validationError(MessageSkillRequired)
	}

	rows, err := e.store.InsertSkill(ctx, portfolio.Skill{
		Name:      name,
		Level:     e.newSkill.Level,
		ProfileID: e.profile.ID,
	})
	e.skills = portfolio.Reduce(e.skills, portfolio.Mutation[portfolio.Skill]{Kind: portfolio.MutationAppend, Rows: rows, Err: err})
	if err != nil {
		return e.failed(err, "adding skill")
	}

	e.newSkill = SkillDraft{Level: DefaultSkillLevel}
	return nil
}

// DeleteSkill removes a skill remotely, then locally.
func (e *ProfileEditor) DeleteSkill(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.store.DeleteSkill(ctx, id)
	e.skills = portfolio.Reduce(e.skills, portfolio.Mutation[portfolio.Skill]{Kind: portfolio.MutationDelete, ID: id, Err: err})
	if err != nil {
		return e.failed(err, "deleting skill")
	}
	return nil
}

// AddJourneyEntry appends a milestone at position len(journey)+1.
func (e *ProfileEditor) AddJourneyEntry(ctx context.Context, description string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.newJourney = description
	if e.profile.ID == "" || description == "" {
		e.banner.fail(MessageJourneyRequired)
		return validationError(MessageJourneyRequired)
	}

	rows, err := e.store.InsertJourneyEntry(ctx, portfolio.JourneyEntry{
		Description: description,
		ProfileID:   e.profile.ID,
		Order:       len(e.journey) + 1,
	})
	e.journey = portfolio.Reduce(e.journey, portfolio.Mutation[portfolio.JourneyEntry]{Kind: portfolio.MutationAppend, Rows: rows, Err: err})
	if err != nil {
		return e.failed(err, "adding journey item")
	}

	e.newJourney = ""
	return nil
}

// DeleteJourneyEntry removes a milestone remotely, then locally.
func (e *ProfileEditor) DeleteJourneyEntry(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.store.DeleteJourneyEntry(ctx, id)
	e.journey = portfolio.Reduce(e.journey, portfolio.Mutation[portfolio.JourneyEntry]{Kind: portfolio.MutationDelete, ID: id, Err: err})
	if err != nil {
		return e.failed(err, "deleting journey item")
	}
	return nil
}

func (e *ProfileEditor) DismissError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.banner.dismissError()
}

func (e *ProfileEditor) DismissSuccess() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.banner.dismissSuccess()
}

// View returns a copy of the current state.
func (e *ProfileEditor) View() ProfileView {
	e.mu.Lock()
	defer e.mu.Unlock()

	errMsg, success := e.banner.current(e.now())
	return ProfileView{
		Profile:    e.profile,
		Skills:     append([]portfolio.Skill{}, e.skills...),
		Journey:    append([]portfolio.JourneyEntry{}, e.journey...),
		NewSkill:   e.newSkill,
		NewJourney: e.newJourney,
		Loading:    e.loading,
		Saving:     e.saving,
		Error:      errMsg,
		Success:    success,
	}
}

// failed records err in the error banner. Callers hold e.mu.
func (e *ProfileEditor) failed(err error, action string) error {
	e.banner.fail(messageOf(err))
	if e.logger != nil {
		e.logger.WithField("error", err.Error()).Error("profile editor: " + action)
	}
	return eris.Wrap(err, action)
}

func clampLevel(level int) int {
	switch {
	case level < MinSkillLevel:
		return MinSkillLevel
	case level > MaxSkillLevel:
		return MaxSkillLevel
	default:
		return level
	}
}
