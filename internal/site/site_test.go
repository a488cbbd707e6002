package site

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"folio/app/internal/portfolio"
)

func sampleProjects() []portfolio.Project {
	return []portfolio.Project{
		{ID: "1", Title: "Portfolio Website", Category: "Web Development"},
		{ID: "2", Title: "Mobile Fitness App", Category: "Mobile Development"},
		{ID: "3", Title: "E-commerce Dashboard", Category: "Web Development"},
		{ID: "4", Title: "Travel Companion", Category: "Mobile Development"},
		{ID: "5", Title: "AI Image Generator", Category: "AI & Machine Learning"},
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	t.Parallel()

	got := Categories(sampleProjects())
	expected := []string{"All", "Web Development", "Mobile Development", "AI & Machine Learning"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}

	if got := Categories(nil); !reflect.DeepEqual(got, []string{"All"}) {
		t.Fatalf("expected only All for no projects, got %v", got)
	}
}

func TestFilterByCategoryPreservesOrder(t *testing.T) {
	t.Parallel()

	got := FilterByCategory(sampleProjects(), "Mobile Development")
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "4" {
		t.Fatalf("expected mobile projects in insertion order, got %+v", got)
	}

	if all := FilterByCategory(sampleProjects(), AllCategories); len(all) != 5 {
		t.Fatalf("expected All to keep every project, got %d", len(all))
	}
}

func TestCarouselWrapsBothWays(t *testing.T) {
	t.Parallel()

	project := portfolio.Project{Images: []string{"a.png", "b.png", "c.png"}}

	c := NewCarousel(project, 0)
	if c.Prev() != 2 {
		t.Fatalf("expected prev of first image to wrap to 2, got %d", c.Prev())
	}

	c = NewCarousel(project, 2)
	if c.Next() != 0 {
		t.Fatalf("expected next of last image to wrap to 0, got %d", c.Next())
	}

	c = NewCarousel(project, -4)
	if c.Index != 2 || c.Current() != "c.png" {
		t.Fatalf("expected out-of-range index to wrap, got %+v", c)
	}

	single := NewCarousel(portfolio.Project{Image: "cover.png"}, 5)
	if single.Current() != "cover.png" || single.HasControls() {
		t.Fatalf("expected cover fallback without controls, got %+v", single)
	}

	empty := NewCarousel(portfolio.Project{}, 3)
	if empty.Current() != "" || empty.Next() != 0 {
		t.Fatalf("expected empty carousel to stay at 0, got %+v", empty)
	}
}

func TestBuildPageUsesPlaceholders(t *testing.T) {
	t.Parallel()

	page := BuildPage(portfolio.Snapshot{}, PageOptions{Year: 2026})

	if page.Hero.Name != DefaultName || page.Owner != DefaultName {
		t.Fatalf("expected default name, got %q", page.Hero.Name)
	}
	if page.About.Description != DefaultDescription || page.About.ResumeURL != DefaultResumeURL {
		t.Fatalf("unexpected about section %+v", page.About)
	}
	if len(page.About.Journey) != 5 || len(page.About.Skills) != 6 {
		t.Fatalf("expected default journey and skills, got %d and %d", len(page.About.Journey), len(page.About.Skills))
	}
	if page.Hero.SocialLinks != DefaultSocialLinks() {
		t.Fatalf("expected default social links, got %+v", page.Hero.SocialLinks)
	}
}

func TestBuildPageAppliesCategory(t *testing.T) {
	t.Parallel()

	snapshot := portfolio.Snapshot{
		Profile:  &portfolio.Profile{Name: "Ada", Tagline: "Analyst"},
		Projects: sampleProjects(),
		Skills:   []portfolio.Skill{{ID: "s1", Name: "Go", Level: 80}},
	}

	page := BuildPage(snapshot, PageOptions{Category: "Mobile Development"})
	if page.Gallery.Active != "Mobile Development" || len(page.Gallery.Projects) != 2 {
		t.Fatalf("expected mobile filter, got %+v", page.Gallery)
	}
	if page.Hero.Name != "Ada" || page.Hero.ProfileImage != DefaultProfileImage {
		t.Fatalf("expected per-field fallback, got %+v", page.Hero)
	}
	if len(page.About.Skills) != 1 || page.About.Skills[0].Name != "Go" {
		t.Fatalf("expected stored skills, got %+v", page.About.Skills)
	}

	unknown := BuildPage(snapshot, PageOptions{Category: "Blockchain"})
	if unknown.Gallery.Active != AllCategories || len(unknown.Gallery.Projects) != 5 {
		t.Fatalf("expected unknown category to fall back to All, got %+v", unknown.Gallery)
	}
}

func TestContactValidation(t *testing.T) {
	t.Parallel()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	contact := NewContact(logger)

	result := contact.Submit(context.Background(), ContactForm{
		Name:    "A",
		Email:   "not-an-email",
		Subject: "Hi",
		Message: "short",
	})
	if result.Success != "" {
		t.Fatal("expected invalid form to be rejected")
	}

	expected := FieldErrors{
		"name":    "Name must be at least 2 characters",
		"email":   "Please enter a valid email address",
		"subject": "Subject must be at least 5 characters",
		"message": "Message must be at least 10 characters",
	}
	if !reflect.DeepEqual(result.Errors, expected) {
		t.Fatalf("expected %v, got %v", expected, result.Errors)
	}
	if result.Form.Name != "A" {
		t.Fatal("expected rejected form values to be kept")
	}
}

func TestContactRejectsShortMessageOnly(t *testing.T) {
	t.Parallel()

	errs := NewContact(nil).Validate(ContactForm{
		Name:    "Grace",
		Email:   "grace@example.com",
		Subject: "Project inquiry",
		Message: "Hello!",
	})
	if len(errs) != 1 || errs["message"] != "Message must be at least 10 characters" {
		t.Fatalf("expected only the message error, got %v", errs)
	}
}

func TestContactAcceptsValidForm(t *testing.T) {
	t.Parallel()

	result := NewContact(nil).Submit(context.Background(), ContactForm{
		Name:    "Grace",
		Email:   "grace@example.com",
		Subject: "Project inquiry",
		Message: "I would like to talk about a project.",
	})
	if result.Success != MessageSent || result.Errors != nil {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Form != (ContactForm{}) {
		t.Fatalf("expected form to be reset, got %+v", result.Form)
	}
}
