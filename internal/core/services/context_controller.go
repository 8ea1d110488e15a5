package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ops_tracker/internal/core/ports/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/utils/accounting"
	"github.com/SscSPs/ops_tracker/internal/utils/mapping"
	"github.com/google/uuid"
)

// ContextController owns the session state and the entity store. Every
// mutation goes through it so that authorship is stamped from the active
// context and writes are applied in submission order.
//
// Persistence sync is best-effort: the in-memory store is updated first and a
// failed sync is logged without rolling the local change back.
type ContextController struct {
	BaseService

	mu    sync.Mutex
	state domain.AppState

	store       portsrepo.EntityStoreFacade
	ledger      portssvc.LedgerSvcFacade
	rates       *accounting.RateTable
	persistence portsrepo.PersistenceFacade
	classifier  portssvc.IntentClassifier
	visibility  VisibilityFilter

	now   func() time.Time
	newID func() string
}

// ControllerOption is a functional option for configuring the context controller
type ControllerOption func(*ContextController)

// WithPersistence enables sync to, and hydration from, a persistence collaborator.
func WithPersistence(p portsrepo.PersistenceFacade) ControllerOption {
	return func(c *ContextController) {
		c.persistence = p
	}
}

// WithClassifier enables ApplyUtterance.
func WithClassifier(classifier portssvc.IntentClassifier) ControllerOption {
	return func(c *ContextController) {
		c.classifier = classifier
	}
}

// WithClock replaces time.Now for authorship stamps.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *ContextController) {
		c.now = now
	}
}

// WithIDGenerator replaces uuid.NewString for entity ids.
func WithIDGenerator(fn func() string) ControllerOption {
	return func(c *ContextController) {
		c.newID = fn
	}
}

// WithDisplayCurrency sets the initial display currency. Unsupported codes are ignored.
func WithDisplayCurrency(code domain.CurrencyCode) ControllerOption {
	return func(c *ContextController) {
		if c.rates.Supports(code) {
			c.state.DisplayCurrency = code
		}
	}
}

// NewContextController creates a controller in the owner role on the default view.
func NewContextController(store portsrepo.EntityStoreFacade, ledger portssvc.LedgerSvcFacade, rates *accounting.RateTable, options ...ControllerOption) *ContextController {
	c := &ContextController{
		store:  store,
		ledger: ledger,
		rates:  rates,
		now:    time.Now,
		newID:  uuid.NewString,
		state: domain.AppState{
			ActiveRole: domain.RoleOwner,
			ActiveView: domain.DefaultView,
		},
	}
	if codes := rates.Codes(); len(codes) > 0 {
		c.state.DisplayCurrency = codes[0]
	}
	if rates.Supports(domain.EUR) {
		c.state.DisplayCurrency = domain.EUR
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.ContextControllerFacade = (*ContextController)(nil)

// Bootstrap makes sure the roster has an owner. An owner already present in the
// store wins over the supplied one.
func (c *ContextController) Bootstrap(ctx context.Context, owner domain.User) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.store.ListUsers() {
		if u.Role == domain.RoleOwner {
			c.state.OwnerID = u.UserID
			c.selectFirstManager()
			return &u, nil
		}
	}

	owner.Name = strings.TrimSpace(owner.Name)
	if owner.Name == "" {
		return nil, fmt.Errorf("%w: owner name is required", apperrors.ErrValidation)
	}
	if owner.UserID == "" {
		owner.UserID = c.newID()
	}
	if owner.AvatarURL == "" {
		owner.AvatarURL = defaultAvatarURL(owner.Name)
	}
	owner.Role = domain.RoleOwner
	owner.CreatedAt = c.now().UTC()

	if err := c.store.AddUser(owner); err != nil {
		c.LogError(ctx, err, "Failed to add owner", slog.String("user_id", owner.UserID))
		return nil, fmt.Errorf("failed to bootstrap owner: %w", err)
	}
	c.sync(ctx, "insert", "USER", owner.UserID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.InsertUser(ctx, mapping.ToModelUser(owner))
	})

	c.state.OwnerID = owner.UserID
	c.selectFirstManager()
	c.LogInfo(ctx, "Owner bootstrapped", slog.String("user_id", owner.UserID))
	return &owner, nil
}

func (c *ContextController) State(_ context.Context) domain.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *ContextController) SwitchRole(ctx context.Context, role domain.UserRole) (domain.AppState, error) {
	if !role.IsValid() {
		return domain.AppState{}, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.ActiveRole = role
	c.state.ActiveView = domain.DefaultView
	c.LogDebug(ctx, "Role switched", slog.String("role", string(role)))
	return c.state, nil
}

func (c *ContextController) SelectSubject(ctx context.Context, subjectID string) (domain.AppState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.store.FindUserByID(subjectID)
	if err != nil {
		return domain.AppState{}, fmt.Errorf("subject %q: %w", subjectID, err)
	}
	if user.Role != domain.RoleManager {
		return domain.AppState{}, fmt.Errorf("%w: user %q is not a manager", apperrors.ErrNotFound, subjectID)
	}
	c.state.SelectedSubjectID = user.UserID
	c.LogDebug(ctx, "Subject selected", slog.String("subject_id", user.UserID))
	return c.state, nil
}

func (c *ContextController) SetDisplayCurrency(_ context.Context, code string) (domain.AppState, error) {
	normalized := domain.NormalizeCurrencyCode(code)
	if !c.rates.Supports(normalized) {
		return domain.AppState{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedCurrency, code)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DisplayCurrency = normalized
	return c.state, nil
}

func (c *ContextController) SetActiveView(_ context.Context, view domain.View) (domain.AppState, error) {
	if !view.IsValid() {
		return domain.AppState{}, fmt.Errorf("%w: unknown view %q", apperrors.ErrValidation, view)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ActiveView = view
	return c.state, nil
}

func (c *ContextController) ViewingContext(_ context.Context) domain.ViewingContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewingContext()
}

// AddManager appends a manager to the roster. Only the owner may do this.
func (c *ContextController) AddManager(ctx context.Context, req dto.AddManagerRequest) (*domain.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.ActiveRole != domain.RoleOwner {
		return nil, fmt.Errorf("%w: only the owner can add managers", apperrors.ErrForbidden)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: manager name is required", apperrors.ErrValidation)
	}

	manager := domain.User{
		UserID:        c.newID(),
		Name:          name,
		Role:          domain.RoleManager,
		AvatarURL:     req.AvatarURL,
		ContactHandle: strings.TrimSpace(req.ContactHandle),
		CreatedAt:     c.now().UTC(),
	}
	if manager.AvatarURL == "" {
		manager.AvatarURL = defaultAvatarURL(name)
	}
	if err := c.store.AddUser(manager); err != nil {
		c.LogError(ctx, err, "Failed to add manager", slog.String("user_id", manager.UserID))
		return nil, fmt.Errorf("failed to add manager: %w", err)
	}
	c.sync(ctx, "insert", "USER", manager.UserID, func(ctx context.Context, w portsrepo.PersistenceWriter) error {
		return w.InsertUser(ctx, mapping.ToModelUser(manager))
	})

	if c.state.SelectedSubjectID == "" {
		c.state.SelectedSubjectID = manager.UserID
	}
	c.LogInfo(ctx, "Manager added", slog.String("user_id", manager.UserID))
	return &manager, nil
}

func (c *ContextController) ListUsers(_ context.Context) []domain.User {
	return c.store.ListUsers()
}

func (c *ContextController) Owner(_ context.Context) (*domain.User, error) {
	c.mu.Lock()
	ownerID := c.state.OwnerID
	c.mu.Unlock()
	if ownerID == "" {
		return nil, fmt.Errorf("%w: no owner in roster", apperrors.ErrNotFound)
	}
	return c.store.FindUserByID(ownerID)
}

func (c *ContextController) Managers(_ context.Context) []domain.User {
	managers := []domain.User{}
	for _, u := range c.store.ListUsers() {
		if u.Role == domain.RoleManager {
			managers = append(managers, u)
		}
	}
	return managers
}

// viewingContext must be called with mu held. In the manager role the acting
// identity is the selected manager.
func (c *ContextController) viewingContext() domain.ViewingContext {
	vc := domain.ViewingContext{
		ActorRole:         c.state.ActiveRole,
		SelectedSubjectID: c.state.SelectedSubjectID,
		OwnerID:           c.state.OwnerID,
	}
	if c.state.ActiveRole == domain.RoleOwner {
		vc.ActorID = c.state.OwnerID
	} else {
		vc.ActorID = c.state.SelectedSubjectID
	}
	return vc
}

// actorID resolves the author of non-financial writes.
func (c *ContextController) actorID() (string, error) {
	id := c.viewingContext().ActorID
	if id == "" {
		return "", fmt.Errorf("%w: no acting identity for role %s", apperrors.ErrNotFound, c.state.ActiveRole)
	}
	return id, nil
}

// financialAuthorID resolves the author of transactions: the manager whose
// budget is affected, whichever role is active.
func (c *ContextController) financialAuthorID() (string, error) {
	id := c.viewingContext().SubjectID()
	if id == "" {
		return "", fmt.Errorf("%w: no manager selected", apperrors.ErrNotFound)
	}
	return id, nil
}

func (c *ContextController) selectFirstManager() {
	if c.state.SelectedSubjectID != "" {
		return
	}
	for _, u := range c.store.ListUsers() {
		if u.Role == domain.RoleManager {
			c.state.SelectedSubjectID = u.UserID
			return
		}
	}
}

// sync pushes a change to the persistence collaborator. Failures are logged
// and the local change is kept.
func (c *ContextController) sync(ctx context.Context, op, kind, id string, fn func(context.Context, portsrepo.PersistenceWriter) error) {
	if c.persistence == nil {
		return
	}
	if err := fn(ctx, c.persistence); err != nil {
		c.LogError(ctx, err, "Persistence sync failed, local state kept",
			slog.String("operation", op),
			slog.String("kind", kind),
			slog.String("id", id))
	}
}

func defaultAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
