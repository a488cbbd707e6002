package admin

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"folio/app/internal/portfolio"
)

// Workspace is the editor state of one admin browser session.
type Workspace struct {
	Profile  *ProfileEditor
	Projects *ProjectEditor
}

// EnsureLoaded loads whichever editor has not completed a load yet.
func (w *Workspace) EnsureLoaded(ctx context.Context) error {
	var errs []error
	if !w.Profile.Loaded() {
		if err := w.Profile.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if !w.Projects.Loaded() {
		if err := w.Projects.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return eris.Wrap(errs[0], "loading admin workspace")
	}
	return nil
}

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// TTL evicts workspaces idle for longer than this.
	TTL        time.Duration
	SuccessTTL time.Duration
	Logger     *logrus.Logger
}

// Registry hands out one Workspace per admin session id.
type Registry struct {
	store      portfolio.Store
	cache      *cache.Cache
	successTTL time.Duration
	logger     *logrus.Logger
}

// NewRegistry constructs a Registry whose editors use store.
func NewRegistry(store portfolio.Store, opts RegistryOptions) (*Registry, error) {
	if store == nil {
		return nil, eris.New("portfolio store is required")
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Registry{
		store:      store,
		cache:      cache.New(ttl, 2*ttl),
		successTTL: opts.SuccessTTL,
		logger:     opts.Logger,
	}, nil
}

// Workspace returns the workspace of id, creating it on first use. Access extends its TTL.
func (r *Registry) Workspace(id string) *Workspace {
	if value, found := r.cache.Get(id); found {
		if ws, ok := value.(*Workspace); ok {
			r.cache.SetDefault(id, ws)
			return ws
		}
	}

	ws := &Workspace{
		Profile:  NewProfileEditor(r.store, r.logger, r.successTTL),
		Projects: NewProjectEditor(r.store, r.logger),
	}
	if err := r.cache.Add(id, ws, cache.DefaultExpiration); err != nil {
		// Lost a race with a concurrent request of the same session.
		if value, found := r.cache.Get(id); found {
			if existing, ok := value.(*Workspace); ok {
				return existing
			}
		}
		r.cache.SetDefault(id, ws)
	}
	return ws
}

// Forget drops the workspace of id.
func (r *Registry) Forget(id string) {
	r.cache.Delete(id)
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}
