package site

import (
	"strings"

	"folio/app/internal/portfolio"
)

const (
	ProjectsTitle    = "My Projects"
	ProjectsSubtitle = "A showcase of my recent work and personal projects"
	AboutTitle       = "About Me"
	AboutSubtitle    = "My Journey & Skills"
	CTAText          = "View My Work"

	// VisibleProjects is how many cards render before the "View More Projects" control.
	VisibleProjects = 6
)

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Name string
	Href string
}

// NavLinks are the anchors of the single-page layout.
var NavLinks = []NavLink{
	{Name: "Home", Href: "#home"},
	{Name: "Projects", Href: "#projects"},
	{Name: "About", Href: "#about"},
	{Name: "Contact", Href: "#contact"},
}

// SkillBar is one rendered skill.
type SkillBar struct {
	Name  string
	Level int
}

// Hero is the top section.
type Hero struct {
	Name         string
	Tagline      string
	ProfileImage string
	SocialLinks  portfolio.SocialLinks
	CTAText      string
}

// About is the journey and skills section.
type About struct {
	Title       string
	Subtitle    string
	Description string
	Journey     []string
	Skills      []SkillBar
	ResumeURL   string
}

// CategoryTab is one filter button.
type CategoryTab struct {
	Name   string
	Active bool
}

// Gallery is the projects section.
type Gallery struct {
	Title      string
	Subtitle   string
	Categories []CategoryTab
	Active     string
	Projects   []portfolio.Project
	ShowMore   bool
}

// Page is everything the public page renders, with placeholders substituted.
type Page struct {
	Hero     Hero
	Gallery  Gallery
	About    About
	Year     int
	Owner    string
	Error    string
	NavLinks []NavLink
}

// PageOptions carries the request-level choices of the public page.
type PageOptions struct {
	Category string
	Year     int
}

// BuildPage resolves a snapshot into the public page, falling back to placeholders for
// every missing profile field, an empty journey and an empty skill list.
func BuildPage(snapshot portfolio.Snapshot, opts PageOptions) Page {
	var profile portfolio.Profile
	if snapshot.Profile != nil {
		profile = *snapshot.Profile
	}

	socialLinks := profile.SocialLinks
	if socialLinks == (portfolio.SocialLinks{}) {
		socialLinks = DefaultSocialLinks()
	}

	name := orDefault(profile.Name, DefaultName)

	active := strings.TrimSpace(opts.Category)
	categories := Categories(snapshot.Projects)
	if !contains(categories, active) {
		active = AllCategories
	}
	tabs := make([]CategoryTab, 0, len(categories))
	for _, category := range categories {
		tabs = append(tabs, CategoryTab{Name: category, Active: category == active})
	}
	filtered := FilterByCategory(snapshot.Projects, active)

	return Page{
		Hero: Hero{
			Name:         name,
			Tagline:      orDefault(profile.Tagline, DefaultTagline),
			ProfileImage: orDefault(profile.ProfileImage, DefaultProfileImage),
			SocialLinks:  socialLinks,
			CTAText:      CTAText,
		},
		Gallery: Gallery{
			Title:      ProjectsTitle,
			Subtitle:   ProjectsSubtitle,
			Categories: tabs,
			Active:     active,
			Projects:   filtered,
			ShowMore:   len(filtered) > VisibleProjects,
		},
		About: About{
			Title:       AboutTitle,
			Subtitle:    AboutSubtitle,
			Description: orDefault(profile.Description, DefaultDescription),
			Journey:     journeyLines(snapshot.Journey),
			Skills:      skillBars(snapshot.Skills),
			ResumeURL:   orDefault(profile.ResumeURL, DefaultResumeURL),
		},
		Year:     opts.Year,
		Owner:    name,
		Error:    snapshot.Error,
		NavLinks: NavLinks,
	}
}

func journeyLines(entries []portfolio.JourneyEntry) []string {
	if len(entries) == 0 {
		return DefaultJourney()
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Description)
	}
	return out
}

func skillBars(skills []portfolio.Skill) []SkillBar {
	if len(skills) == 0 {
		return DefaultSkills()
	}
	out := make([]SkillBar, 0, len(skills))
	for _, skill := range skills {
		out = append(out, SkillBar{Name: skill.Name, Level: skill.Level})
	}
	return out
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
