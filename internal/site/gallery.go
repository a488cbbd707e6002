package site

import "folio/app/internal/portfolio"

// AllCategories is the filter tab that shows every project.
const AllCategories = "All"

// Categories returns "All" followed by each distinct category in first-seen order.
func Categories(projects []portfolio.Project) []string {
	seen := make(map[string]struct{}, len(projects))
	out := []string{AllCategories}
	for _, project := range projects {
		if _, ok := seen[project.Category]; ok {
			continue
		}
		seen[project.Category] = struct{}{}
		out = append(out, project.Category)
	}
	return out
}

// FilterByCategory returns the projects of category, preserving order. "All" or an
// empty category returns every project.
func FilterByCategory(projects []portfolio.Project, category string) []portfolio.Project {
	if category == "" || category == AllCategories {
		return append([]portfolio.Project{}, projects...)
	}

	out := make([]portfolio.Project, 0, len(projects))
	for _, project := range projects {
		if project.Category == category {
			out = append(out, project)
		}
	}
	return out
}

// FindProject returns the project with id.
func FindProject(projects []portfolio.Project, id string) (portfolio.Project, bool) {
	for _, project := range projects {
		if project.ID == id {
			return project, true
		}
	}
	return portfolio.Project{}, false
}

// Carousel is the image position of an open project detail overlay.
type Carousel struct {
	Images []string
	Index  int
}

// NewCarousel opens the project gallery at index, wrapped into range.
func NewCarousel(project portfolio.Project, index int) Carousel {
	c := Carousel{Images: project.Gallery()}
	c.Index = c.wrap(index)
	return c
}

func (c Carousel) wrap(index int) int {
	n := len(c.Images)
	if n == 0 {
		return 0
	}
	return ((index % n) + n) % n
}

// Current returns the image under the cursor.
func (c Carousel) Current() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[c.Index]
}

// Next is the index after the current one, wrapping to the first image.
func (c Carousel) Next() int { return c.wrap(c.Index + 1) }

// Prev is the index before the current one, wrapping to the last image.
func (c Carousel) Prev() int { return c.wrap(c.Index - 1) }

// HasControls reports whether navigation arrows should render.
func (c Carousel) HasControls() bool { return len(c.Images) > 1 }
