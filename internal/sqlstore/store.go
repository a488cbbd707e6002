package sqlstore

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"folio/app/internal/portfolio"
)

// Store persists portfolio content in SQLite through Gorm.
type Store struct {
	db     *gorm.DB
	logger *logrus.Logger
	now    func() time.Time
}

// NewStore constructs a Gorm-backed portfolio store.
func NewStore(db *gorm.DB, logger *logrus.Logger) (*Store, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &Store{db: db, logger: logger, now: time.Now}, nil
}

var _ portfolio.Store = (*Store)(nil)

// GetProfile returns the oldest profile row, or portfolio.ErrNotFound.
func (s *Store) GetProfile(ctx context.Context) (*portfolio.Profile, error) {
	var record ProfileRecord
	err := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").First(&record).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrap(portfolio.ErrNotFound, "profile")
		}
		s.logError(nil, err, "fetching profile")
		return nil, eris.Wrap(err, "fetching profile")
	}

	return toDomainProfile(&record), nil
}

func (s *Store) InsertProfile(ctx context.Context, profile portfolio.Profile) (*portfolio.Profile, error) {
	record, err := toRecordProfile(profile)
	if err != nil {
		return nil, err
	}
	record.ID = ""

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logError(nil, err, "creating profile")
		return nil, eris.Wrap(err, "creating profile")
	}

	return toDomainProfile(&record), nil
}

func (s *Store) UpdateProfile(ctx context.Context, profile portfolio.Profile) error {
	record, err := toRecordProfile(profile)
	if err != nil {
		return err
	}

	return s.update(ctx, &ProfileRecord{}, record.ID, map[string]any{
		"name":          record.Name,
		"tagline":       record.Tagline,
		"description":   record.Description,
		"profile_image": record.ProfileImage,
		"resume_url":    record.ResumeURL,
		"social_links":  record.SocialLinks,
		"updated_at":    s.now(),
	}, "updating profile")
}

func (s *Store) ListSkills(ctx context.Context) ([]portfolio.Skill, error) {
	var records []SkillRecord
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		s.logError(nil, err, "listing skills")
		return nil, eris.Wrap(err, "listing skills")
	}

	skills := make([]portfolio.Skill, 0, len(records))
	for _, record := range records {
		skills = append(skills, toDomainSkill(record))
	}
	return skills, nil
}

func (s *Store) InsertSkill(ctx context.Context, skill portfolio.Skill) ([]portfolio.Skill, error) {
	record := SkillRecord{
		Name:      strings.TrimSpace(skill.Name),
		Level:     skill.Level,
		ProfileID: strings.TrimSpace(skill.ProfileID),
	}
	if record.ProfileID == "" {
		return nil, eris.New("skill profile id is required")
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logError(logrus.Fields{"profile_id": record.ProfileID}, err, "creating skill")
		return nil, eris.Wrap(err, "creating skill")
	}
	return []portfolio.Skill{toDomainSkill(record)}, nil
}

func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	return s.remove(ctx, &SkillRecord{}, id, "deleting skill")
}

func (s *Store) ListJourney(ctx context.Context) ([]portfolio.JourneyEntry, error) {
	var records []JourneyRecord
	if err := s.db.WithContext(ctx).Order("sort_order ASC").Order("id ASC").Find(&records).Error; err != nil {
		s.logError(nil, err, "listing journey")
		return nil, eris.Wrap(err, "listing journey")
	}

	entries := make([]portfolio.JourneyEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, toDomainJourney(record))
	}
	return entries, nil
}

func (s *Store) InsertJourneyEntry(ctx context.Context, entry portfolio.JourneyEntry) ([]portfolio.JourneyEntry, error) {
	record := JourneyRecord{
		Description: strings.TrimSpace(entry.Description),
		ProfileID:   strings.TrimSpace(entry.ProfileID),
		SortOrder:   entry.Order,
	}
	if record.ProfileID == "" {
		return nil, eris.New("journey profile id is required")
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logError(logrus.Fields{"profile_id": record.ProfileID}, err, "creating journey entry")
		return nil, eris.Wrap(err, "creating journey entry")
	}
	return []portfolio.JourneyEntry{toDomainJourney(record)}, nil
}

func (s *Store) DeleteJourneyEntry(ctx context.Context, id string) error {
	return s.remove(ctx, &JourneyRecord{}, id, "deleting journey entry")
}

// ListProjects returns projects newest first.
func (s *Store) ListProjects(ctx context.Context) ([]portfolio.Project, error) {
	var records []ProjectRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		s.logError(nil, err, "listing projects")
		return nil, eris.Wrap(err, "listing projects")
	}

	projects := make([]portfolio.Project, 0, len(records))
	for _, record := range records {
		projects = append(projects, toDomainProject(record))
	}
	return projects, nil
}

func (s *Store) InsertProject(ctx context.Context, project portfolio.Project) ([]portfolio.Project, error) {
	record, err := toRecordProject(project)
	if err != nil {
		return nil, err
	}
	record.ID = ""
	record.CreatedAt = s.now().UTC()

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logError(logrus.Fields{"title": record.Title}, err, "creating project")
		return nil, eris.Wrap(err, "creating project")
	}
	return []portfolio.Project{toDomainProject(record)}, nil
}

func (s *Store) UpdateProject(ctx context.Context, project portfolio.Project) error {
	record, err := toRecordProject(project)
	if err != nil {
		return err
	}

	return s.update(ctx, &ProjectRecord{}, record.ID, map[string]any{
		"title":            record.Title,
		"description":      record.Description,
		"long_description": record.LongDescription,
		"image":            record.Image,
		"images":           record.Images,
		"technologies":     record.Technologies,
		"category":         record.Category,
		"live_url":         record.LiveURL,
		"repo_url":         record.RepoURL,
		"updated_at":       s.now(),
	}, "updating project")
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.remove(ctx, &ProjectRecord{}, id, "deleting project")
}

func (s *Store) update(ctx context.Context, model any, id string, values map[string]any, action string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return eris.Errorf("%s: id is required", action)
	}

	result := s.db.WithContext(ctx).Model(model).Where("id = ?", trimmed).Updates(values)
	if result.Error != nil {
		s.logError(logrus.Fields{"id": trimmed}, result.Error, action)
		return eris.Wrapf(result.Error, "%s: %s", action, trimmed)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(portfolio.ErrNotFound, "%s: %s", action, trimmed)
	}
	return nil
}

func (s *Store) remove(ctx context.Context, model any, id string, action string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return eris.Errorf("%s: id is required", action)
	}

	result := s.db.WithContext(ctx).Where("id = ?", trimmed).Delete(model)
	if result.Error != nil {
		s.logError(logrus.Fields{"id": trimmed}, result.Error, action)
		return eris.Wrapf(result.Error, "%s: %s", action, trimmed)
	}
	if result.RowsAffected == 0 {
		return eris.Wrapf(portfolio.ErrNotFound, "%s: %s", action, trimmed)
	}
	return nil
}

func (s *Store) logError(fields logrus.Fields, err error, message string) {
	if s.logger == nil || err == nil {
		return
	}

	entry := s.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
