package portfolio

import "time"

// SocialLinks holds the optional social profile URLs shown in the hero section.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Profile is the singleton owner record of a deployment.
type Profile struct {
	ID           string      `json:"id,omitempty"`
	Name         string      `json:"name"`
	Tagline      string      `json:"tagline"`
	Description  string      `json:"description"`
	ProfileImage string      `json:"profile_image"`
	ResumeURL    string      `json:"resume_url"`
	SocialLinks  SocialLinks `json:"social_links"`
}

// Skill is a named proficiency between 0 and 100.
type Skill struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	ProfileID string `json:"profile_id"`
}

// JourneyEntry is one milestone of the about section, ordered by Order ascending.
type JourneyEntry struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	ProfileID   string `json:"profile_id"`
	Order       int    `json:"order"`
}

// Project is a portfolio gallery entry.
type Project struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description,omitempty"`
	Image           string     `json:"image"`
	Images          []string   `json:"images"`
	Technologies    []string   `json:"technologies"`
	Category        string     `json:"category"`
	LiveURL         string     `json:"live_url,omitempty"`
	RepoURL         string     `json:"repo_url,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// Key returns the record identifier.
func (p Profile) Key() string { return p.ID }

// Key returns the record identifier.
func (s Skill) Key() string { return s.ID }

// Key returns the record identifier.
func (j JourneyEntry) Key() string { return j.ID }

// Key returns the record identifier.
func (p Project) Key() string { return p.ID }

// Gallery returns the carousel images, falling back to the cover image.
func (p Project) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image == "" {
		return nil
	}
	return []string{p.Image}
}

// Clone returns a deep copy so list fields can be edited without aliasing.
func (p Project) Clone() Project {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Technologies != nil {
		out.Technologies = append([]string(nil), p.Technologies...)
	}
	if p.CreatedAt != nil {
		created := *p.CreatedAt
		out.CreatedAt = &created
	}
	return out
}
