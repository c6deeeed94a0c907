package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/nounsos/desktop/backend/internal/shared/types"
)

// ErrInvalidApp is returned when an app entry cannot be registered
var ErrInvalidApp = errors.New("invalid app config")

// Catalog is the static application table, keyed by app id
type Catalog struct {
	mu   sync.RWMutex
	apps map[string]types.AppConfig
}

// New creates a catalog holding apps
func New(apps ...types.AppConfig) (*Catalog, error) {
	c := &Catalog{apps: make(map[string]types.AppConfig, len(apps))}
	for _, app := range apps {
		if err := c.Register(app); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Builtin returns a catalog with the stock desktop apps
func Builtin() *Catalog {
	c, err := New(builtinApps()...)
	if err != nil {
		// The built-in table is static; failing here is a programming error.
		panic(err)
	}
	return c
}

// Register adds or replaces an app entry after normalizing it
func (c *Catalog) Register(app types.AppConfig) error {
	app, err := normalize(app)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.apps[app.ID] = app
	c.mu.Unlock()
	return nil
}

// Lookup returns the configuration for appID
func (c *Catalog) Lookup(appID string) (types.AppConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	app, ok := c.apps[appID]
	return app, ok
}

// List returns all apps sorted by id
func (c *Catalog) List() []types.AppConfig {
	c.mu.RLock()
	apps := make([]types.AppConfig, 0, len(c.apps))
	for _, app := range c.apps {
		apps = append(apps, app)
	}
	c.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps
}

// Len returns the number of registered apps
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.apps)
}

func normalize(app types.AppConfig) (types.AppConfig, error) {
	if app.ID == "" {
		return app, fmt.Errorf("%w: missing id", ErrInvalidApp)
	}
	if app.Title == "" {
		app.Title = app.ID
	}
	switch app.Kind {
	case "":
		app.Kind = types.KindWindow
	case types.KindWindow, types.KindMiniApp:
	default:
		return app, fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidApp, app.ID, app.Kind)
	}
	if app.Anchor == "" {
		app.Anchor = types.AnchorCenter
	}
	if !app.Anchor.Valid() {
		return app, fmt.Errorf("%w: %s has unknown anchor %q", ErrInvalidApp, app.ID, app.Anchor)
	}

	dims := []*types.Dimension{
		&app.DefaultSize.Width, &app.DefaultSize.Height,
		&app.MinSize.Width, &app.MinSize.Height,
	}
	if app.MaxSize != nil {
		maxSize := *app.MaxSize
		app.MaxSize = &maxSize
		dims = append(dims, &app.MaxSize.Width, &app.MaxSize.Height)
	}
	for _, d := range dims {
		switch d.Unit {
		case "":
			d.Unit = types.UnitPx
		case types.UnitPx, types.UnitRem:
		default:
			return app, fmt.Errorf("%w: %s has unknown unit %q", ErrInvalidApp, app.ID, d.Unit)
		}
		if d.Value < 0 {
			return app, fmt.Errorf("%w: %s has negative dimension", ErrInvalidApp, app.ID)
		}
	}
	return app, nil
}
