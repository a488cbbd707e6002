package admin

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"folio/app/internal/portfolio"
)

const (
	MessageRequiredFields = "Please fill in all required fields"

	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldLongDescription = "long_description"
	FieldImage           = "image"
	FieldImages          = "images"
	FieldTechnologies    = "technologies"
	FieldCategory        = "category"
	FieldLiveURL         = "live_url"
	FieldRepoURL         = "repo_url"
)

// ProjectFields lists every field accepted by SetDraftField and SetEditField.
var ProjectFields = []string{
	FieldTitle,
	FieldDescription,
	FieldLongDescription,
	FieldImage,
	FieldImages,
	FieldTechnologies,
	FieldCategory,
	FieldLiveURL,
	FieldRepoURL,
}

// requiredProject holds the fields a new project cannot be created without.
type requiredProject struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Image       string `validate:"required"`
	Category    string `validate:"required"`
}

// ProjectView is a read-only copy of the editor state.
type ProjectView struct {
	Projects      []portfolio.Project
	Loading       bool
	Adding        bool
	Draft         portfolio.Project
	Editing       *portfolio.Project
	PendingDelete string
	Error         string
}

// ProjectEditor keeps the admin's local project list. At most one project is edited at a time.
type ProjectEditor struct {
	store    portfolio.Store
	logger   *logrus.Logger
	validate *validator.Validate

	mu            sync.Mutex
	loaded        bool
	loading       bool
	projects      []portfolio.Project
	adding        bool
	draft         portfolio.Project
	editing       *portfolio.Project
	pendingDelete string
	errMsg        string
}

// NewProjectEditor constructs an editor over store.
func NewProjectEditor(store portfolio.Store, logger *logrus.Logger) *ProjectEditor {
	return &ProjectEditor{
		store:    store,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		loading:  true,
		projects: []portfolio.Project{},
		draft:    emptyDraft(),
	}
}

func emptyDraft() portfolio.Project {
	return portfolio.Project{Images: []string{}, Technologies: []string{}}
}

// Loaded reports whether a Load has completed successfully.
func (e *ProjectEditor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Load reads all projects newest first.
func (e *ProjectEditor) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loading = true
	defer func() { e.loading = false }()

	projects, err := e.store.ListProjects(ctx)
	if err != nil {
		return e.failed(err, "fetching projects")
	}

	e.projects = append([]portfolio.Project{}, projects...)
	e.loaded = true
	return nil
}

func (e *ProjectEditor) StartAdding() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adding = true
}

func (e *ProjectEditor) CancelAdding() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adding = false
	e.draft = emptyDraft()
}

// SetDraftField updates one field of the new-project draft.
func (e *ProjectEditor) SetDraftField(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return setProjectField(&e.draft, field, value)
}

// AddProject validates the draft, inserts it and prepends the returned rows.
func (e *ProjectEditor) AddProject(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validate.Struct(requiredProject{
		Title:       e.draft.Title,
		Description: e.draft.Description,
		Image:       e.draft.Image,
		Category:    e.draft.Category,
	}); err != nil {
		e.errMsg = MessageRequiredFields
		return validationError(MessageRequiredFields)
	}

	payload := e.draft.Clone()
	if !hasEntries(payload.Images) {
		payload.Images = []string{payload.Image}
	}
	if payload.Technologies == nil {
		payload.Technologies = []string{}
	}

	rows, err := e.store.InsertProject(ctx, payload)
	e.projects = portfolio.Reduce(e.projects, portfolio.Mutation[portfolio.Project]{Kind: portfolio.MutationPrepend, Rows: rows, Err: err})
	if err != nil {
		return e.failed(err, "adding project")
	}

	e.adding = false
	e.draft = emptyDraft()
	return nil
}

// StartEditing copies the project with id into the edit slot, replacing any previous edit.
func (e *ProjectEditor) StartEditing(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, project := range e.projects {
		if project.ID == id {
			edited := project.Clone()
			e.editing = &edited
			return nil
		}
	}
	return eris.Wrapf(portfolio.ErrNotFound, "project %s", id)
}

func (e *ProjectEditor) CancelEditing() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = nil
}

// SetEditField updates one field of the project being edited.
func (e *ProjectEditor) SetEditField(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.editing == nil {
		return eris.New("no project is being edited")
	}
	return setProjectField(e.editing, field, value)
}

// UpdateProject sends the full edited record and replaces the local entry on success.
func (e *ProjectEditor) UpdateProject(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.editing == nil {
		return nil
	}

	edited := e.editing.Clone()
	err := e.store.UpdateProject(ctx, edited)
	e.projects = portfolio.Reduce(e.projects, portfolio.Mutation[portfolio.Project]{Kind: portfolio.MutationReplace, Rows: []portfolio.Project{edited}, Err: err})
	if err != nil {
		return e.failed(err, "updating project")
	}

	e.editing = nil
	return nil
}

// RequestDelete marks id for deletion; ConfirmDelete performs it.
func (e *ProjectEditor) RequestDelete(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDelete = id
}

func (e *ProjectEditor) CancelDelete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDelete = ""
}

// ConfirmDelete deletes the project marked by RequestDelete.
func (e *ProjectEditor) ConfirmDelete(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.pendingDelete
	if id == "" {
		return nil
	}
	e.pendingDelete = ""

	err := e.store.DeleteProject(ctx, id)
	e.projects = portfolio.Reduce(e.projects, portfolio.Mutation[portfolio.Project]{Kind: portfolio.MutationDelete, ID: id, Err: err})
	if err != nil {
		return e.failed(err, "deleting project")
	}

	if e.editing != nil && e.editing.ID == id {
		e.editing = nil
	}
	return nil
}

func (e *ProjectEditor) DismissError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errMsg = ""
}

// View returns a copy of the current state.
func (e *ProjectEditor) View() ProjectView {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := ProjectView{
		Loading:       e.loading,
		Adding:        e.adding,
		Draft:         e.draft.Clone(),
		PendingDelete: e.pendingDelete,
		Error:         e.errMsg,
	}
	view.Projects = make([]portfolio.Project, 0, len(e.projects))
	for _, project := range e.projects {
		view.Projects = append(view.Projects, project.Clone())
	}
	if e.editing != nil {
		edited := e.editing.Clone()
		view.Editing = &edited
	}
	return view
}

func (e *ProjectEditor) failed(err error, action string) error {
	e.errMsg = messageOf(err)
	if e.logger != nil {
		e.logger.WithField("error", err.Error()).Error("project editor: " + action)
	}
	return eris.Wrap(err, action)
}

func setProjectField(project *portfolio.Project, field, value string) error {
	switch strings.TrimSpace(field) {
	case FieldTitle:
		project.Title = value
	case FieldDescription:
		project.Description = value
	case FieldLongDescription:
		project.LongDescription = value
	case FieldImage:
		project.Image = value
	case FieldImages:
		project.Images = portfolio.ParseList(value)
	case FieldTechnologies:
		project.Technologies = portfolio.ParseList(value)
	case FieldCategory:
		project.Category = value
	case FieldLiveURL:
		project.LiveURL = value
	case FieldRepoURL:
		project.RepoURL = value
	default:
		return validationError("unknown project field " + field)
	}
	return nil
}

func hasEntries(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}
