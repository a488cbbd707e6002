package supabase

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"folio/app/internal/portfolio"
)

const (
	tableProfiles = "profiles"
	tableSkills   = "skills"
	tableJourney  = "journey"
	tableProjects = "projects"
)

var _ portfolio.Store = (*Client)(nil)

type profileFields struct {
	Name         string                `json:"name"`
	Tagline      string                `json:"tagline"`
	Description  string                `json:"description"`
	ProfileImage string                `json:"profile_image"`
	ResumeURL    string                `json:"resume_url"`
	SocialLinks  portfolio.SocialLinks `json:"social_links"`
}

func newProfileFields(p portfolio.Profile) profileFields {
	return profileFields{
		Name:         p.Name,
		Tagline:      p.Tagline,
		Description:  p.Description,
		ProfileImage: p.ProfileImage,
		ResumeURL:    p.ResumeURL,
		SocialLinks:  p.SocialLinks,
	}
}

type skillFields struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	ProfileID string `json:"profile_id"`
}

type journeyFields struct {
	Description string `json:"description"`
	ProfileID   string `json:"profile_id"`
	Order       int    `json:"order"`
}

type projectFields struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description"`
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	Technologies    []string `json:"technologies"`
	Category        string   `json:"category"`
	LiveURL         string   `json:"live_url"`
	RepoURL         string   `json:"repo_url"`
}

func newProjectFields(p portfolio.Project) projectFields {
	return projectFields{
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Image:           p.Image,
		Images:          p.Images,
		Technologies:    p.Technologies,
		Category:        p.Category,
		LiveURL:         p.LiveURL,
		RepoURL:         p.RepoURL,
	}
}

func selectAll(order string) url.Values {
	query := url.Values{}
	query.Set("select", "*")
	if order != "" {
		query.Set("order", order)
	}
	return query
}

func byID(id string) url.Values {
	query := url.Values{}
	query.Set("id", "eq."+id)
	return query
}

// GetProfile reads the singleton profile. A missing row yields portfolio.ErrNotFound.
func (c *Client) GetProfile(ctx context.Context) (*portfolio.Profile, error) {
	var profile portfolio.Profile
	err := c.do(ctx, request{
		method:    http.MethodGet,
		path:      restPath(tableProfiles),
		query:     selectAll(""),
		singleton: true,
	}, &profile)
	if err != nil {
		if IsCode(err, CodeNoRows) {
			return nil, eris.Wrap(portfolio.ErrNotFound, "profile")
		}
		return nil, eris.Wrap(err, "supabase.GetProfile")
	}
	return &profile, nil
}

func (c *Client) InsertProfile(ctx context.Context, profile portfolio.Profile) (*portfolio.Profile, error) {
	var created portfolio.Profile
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      restPath(tableProfiles),
		query:     selectAll(""),
		body:      []profileFields{newProfileFields(profile)},
		singleton: true,
		represent: true,
	}, &created)
	if err != nil {
		return nil, eris.Wrap(err, "supabase.InsertProfile")
	}
	return &created, nil
}

func (c *Client) UpdateProfile(ctx context.Context, profile portfolio.Profile) error {
	if err := c.patch(ctx, tableProfiles, profile.ID, newProfileFields(profile)); err != nil {
		return eris.Wrap(err, "supabase.UpdateProfile")
	}
	return nil
}

func (c *Client) ListSkills(ctx context.Context) ([]portfolio.Skill, error) {
	var skills []portfolio.Skill
	if err := c.list(ctx, tableSkills, "id.asc", &skills); err != nil {
		return nil, eris.Wrap(err, "supabase.ListSkills")
	}
	return skills, nil
}

func (c *Client) InsertSkill(ctx context.Context, skill portfolio.Skill) ([]portfolio.Skill, error) {
	var rows []portfolio.Skill
	body := []skillFields{{Name: skill.Name, Level: skill.Level, ProfileID: skill.ProfileID}}
	if err := c.insert(ctx, tableSkills, body, &rows); err != nil {
		return nil, eris.Wrap(err, "supabase.InsertSkill")
	}
	return rows, nil
}

func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	if err := c.remove(ctx, tableSkills, id); err != nil {
		return eris.Wrap(err, "supabase.DeleteSkill")
	}
	return nil
}

func (c *Client) ListJourney(ctx context.Context) ([]portfolio.JourneyEntry, error) {
	var entries []portfolio.JourneyEntry
	if err := c.list(ctx, tableJourney, "order.asc", &entries); err != nil {
		return nil, eris.Wrap(err, "supabase.ListJourney")
	}
	return entries, nil
}

func (c *Client) InsertJourneyEntry(ctx context.Context, entry portfolio.JourneyEntry) ([]portfolio.JourneyEntry, error) {
	var rows []portfolio.JourneyEntry
	body := []journeyFields{{Description: entry.Description, ProfileID: entry.ProfileID, Order: entry.Order}}
	if err := c.insert(ctx, tableJourney, body, &rows); err != nil {
		return nil, eris.Wrap(err, "supabase.InsertJourneyEntry")
	}
	return rows, nil
}

func (c *Client) DeleteJourneyEntry(ctx context.Context, id string) error {
	if err := c.remove(ctx, tableJourney, id); err != nil {
		return eris.Wrap(err, "supabase.DeleteJourneyEntry")
	}
	return nil
}

func (c *Client) ListProjects(ctx context.Context) ([]portfolio.Project, error) {
	var projects []portfolio.Project
	if err := c.list(ctx, tableProjects, "created_at.desc", &projects); err != nil {
		return nil, eris.Wrap(err, "supabase.ListProjects")
	}
	return projects, nil
}

func (c *Client) InsertProject(ctx context.Context, project portfolio.Project) ([]portfolio.Project, error) {
	var rows []portfolio.Project
	if err := c.insert(ctx, tableProjects, []projectFields{newProjectFields(project)}, &rows); err != nil {
		return nil, eris.Wrap(err, "supabase.InsertProject")
	}
	return rows, nil
}

func (c *Client) UpdateProject(ctx context.Context, project portfolio.Project) error {
	if err := c.patch(ctx, tableProjects, project.ID, newProjectFields(project)); err != nil {
		return eris.Wrap(err, "supabase.UpdateProject")
	}
	return nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if err := c.remove(ctx, tableProjects, id); err != nil {
		return eris.Wrap(err, "supabase.DeleteProject")
	}
	return nil
}

func (c *Client) list(ctx context.Context, table, order string, out any) error {
	return c.do(ctx, request{
		method: http.MethodGet,
		path:   restPath(table),
		query:  selectAll(order),
	}, out)
}

func (c *Client) insert(ctx context.Context, table string, body, out any) error {
	return c.do(ctx, request{
		method:    http.MethodPost,
		path:      restPath(table),
		query:     selectAll(""),
		body:      body,
		represent: true,
	}, out)
}

func (c *Client) patch(ctx context.Context, table, id string, body any) error {
	if strings.TrimSpace(id) == "" {
		return eris.New("id is required")
	}
	return c.do(ctx, request{
		method: http.MethodPatch,
		path:   restPath(table),
		query:  byID(id),
		body:   body,
	}, nil)
}

func (c *Client) remove(ctx context.Context, table, id string) error {
	if strings.TrimSpace(id) == "" {
		return eris.New("id is required")
	}
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   restPath(table),
		query:  byID(id),
	}, nil)
}
