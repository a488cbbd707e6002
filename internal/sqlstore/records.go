package sqlstore

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"folio/app/internal/portfolio"
)

// ProfileRecord is the singleton owner profile.
type ProfileRecord struct {
	ID           string         `gorm:"primaryKey;size:36"`
	Name         string         `gorm:"size:255;not null"`
	Tagline      string         `gorm:"size:255"`
	Description  string         `gorm:"type:text"`
	ProfileImage string         `gorm:"type:text"`
	ResumeURL    string         `gorm:"type:text"`
	SocialLinks  datatypes.JSON `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ProfileRecord) TableName() string { return "profiles" }

// SkillRecord is one skill bar of the about section.
type SkillRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255;not null"`
	Level     int    `gorm:"not null;default:50"`
	ProfileID string `gorm:"size:36;index;not null"`
	CreatedAt time.Time
}

func (SkillRecord) TableName() string { return "skills" }

// JourneyRecord is one milestone; SortOrder maps to the public "order" field.
type JourneyRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	Description string `gorm:"type:text;not null"`
	ProfileID   string `gorm:"size:36;index;not null"`
	SortOrder   int    `gorm:"column:sort_order;index;not null"`
	CreatedAt   time.Time
}

func (JourneyRecord) TableName() string { return "journey" }

// ProjectRecord is a portfolio gallery entry.
type ProjectRecord struct {
	ID              string         `gorm:"primaryKey;size:36"`
	Title           string         `gorm:"size:255;not null"`
	Description     string         `gorm:"type:text;not null"`
	LongDescription string         `gorm:"type:text"`
	Image           string         `gorm:"type:text;not null"`
	Images          datatypes.JSON `gorm:"type:text"`
	Technologies    datatypes.JSON `gorm:"type:text"`
	Category        string         `gorm:"size:255;index;not null"`
	LiveURL         string         `gorm:"type:text"`
	RepoURL         string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"index:idx_projects_created_at"`
	UpdatedAt       time.Time
}

func (ProjectRecord) TableName() string { return "projects" }

// AdminRecord is a local administrator account.
type AdminRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:255;uniqueIndex:idx_admins_email;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminRecord) TableName() string { return "admins" }

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", eris.Wrap(err, "generating record id")
	}
	return id.String(), nil
}

func assignID(current *string) error {
	if strings.TrimSpace(*current) != "" {
		return nil
	}
	id, err := newID()
	if err != nil {
		return err
	}
	*current = id
	return nil
}

func (r *ProfileRecord) BeforeCreate(*gorm.DB) error { return assignID(&r.ID) }
func (r *SkillRecord) BeforeCreate(*gorm.DB) error   { return assignID(&r.ID) }
func (r *JourneyRecord) BeforeCreate(*gorm.DB) error { return assignID(&r.ID) }
func (r *ProjectRecord) BeforeCreate(*gorm.DB) error { return assignID(&r.ID) }
func (r *AdminRecord) BeforeCreate(*gorm.DB) error   { return assignID(&r.ID) }

func encodeJSON(value any) (datatypes.JSON, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, eris.Wrap(err, "encoding json column")
	}
	return datatypes.JSON(raw), nil
}

func decodeList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func toRecordProfile(p portfolio.Profile) (ProfileRecord, error) {
	links, err := encodeJSON(p.SocialLinks)
	if err != nil {
		return ProfileRecord{}, err
	}
	return ProfileRecord{
		ID:           strings.TrimSpace(p.ID),
		Name:         p.Name,
		Tagline:      p.Tagline,
		Description:  p.Description,
		ProfileImage: p.ProfileImage,
		ResumeURL:    p.ResumeURL,
		SocialLinks:  links,
	}, nil
}

func toDomainProfile(r *ProfileRecord) *portfolio.Profile {
	if r == nil {
		return nil
	}
	var links portfolio.SocialLinks
	if len(r.SocialLinks) > 0 {
		_ = json.Unmarshal(r.SocialLinks, &links)
	}
	return &portfolio.Profile{
		ID:           r.ID,
		Name:         r.Name,
		Tagline:      r.Tagline,
		Description:  r.Description,
		ProfileImage: r.ProfileImage,
		ResumeURL:    r.ResumeURL,
		SocialLinks:  links,
	}
}

func toDomainSkill(r SkillRecord) portfolio.Skill {
	return portfolio.Skill{ID: r.ID, Name: r.Name, Level: r.Level, ProfileID: r.ProfileID}
}

func toDomainJourney(r JourneyRecord) portfolio.JourneyEntry {
	return portfolio.JourneyEntry{ID: r.ID, Description: r.Description, ProfileID: r.ProfileID, Order: r.SortOrder}
}

func toRecordProject(p portfolio.Project) (ProjectRecord, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	technologies := p.Technologies
	if technologies == nil {
		technologies = []string{}
	}

	imagesJSON, err := encodeJSON(images)
	if err != nil {
		return ProjectRecord{}, err
	}
	techJSON, err := encodeJSON(technologies)
	if err != nil {
		return ProjectRecord{}, err
	}

	return ProjectRecord{
		ID:              strings.TrimSpace(p.ID),
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Image:           p.Image,
		Images:          imagesJSON,
		Technologies:    techJSON,
		Category:        p.Category,
		LiveURL:         p.LiveURL,
		RepoURL:         p.RepoURL,
	}, nil
}

func toDomainProject(r ProjectRecord) portfolio.Project {
	created := r.CreatedAt.UTC()
	return portfolio.Project{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Image:           r.Image,
		Images:          decodeList(r.Images),
		Technologies:    decodeList(r.Technologies),
		Category:        r.Category,
		LiveURL:         r.LiveURL,
		RepoURL:         r.RepoURL,
		CreatedAt:       &created,
	}
}
