// Package address fills address fields of a form from a postal-code lookup.
package address

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

// Lookup resolves a domestic 8-digit postal code
type Lookup interface {
	Lookup(ctx context.Context, cep string) (*valueobject.PostalAddress, error)
}

// State of the autofill controller
type State int

const (
	// StateIdle is the resting state
	StateIdle State = iota
	// StateFetching means a lookup is in flight
	StateFetching
	// StateFailed is a resting state after a failed lookup. Nothing is shown
	// to the user; the fields stay editable.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Fields names the draft slots the controller reads and writes
type Fields struct {
	// Country may be empty for forms that are always domestic
	Country      string
	PostalCode   string
	Street       string
	Neighborhood string
	City         string
	State        string
}

// CustomerFields is the layout of the customer address block
var CustomerFields = Fields{
	Country:      "country",
	PostalCode:   "postal_code",
	Street:       "address",
	Neighborhood: "neighborhood",
	City:         "city",
	State:        "state",
}

// ProjectFields is the layout of the project address block
var ProjectFields = Fields{
	PostalCode:   "postal_code",
	Street:       "address",
	Neighborhood: "district",
	City:         "city",
	State:        "state",
}

// Controller owns the postal code of one form and cross-fills the address
// when a complete domestic code is entered.
//
// A lookup starts only when the code reaches 8 digits and differs from the
// last code that started one. Each lookup carries a token; a response is
// applied only if its token is still current, the draft still holds the same
// code and the form is still mounted.
type Controller struct {
	draft  *form.Draft
	fields Fields
	lookup Lookup
	logger *zap.Logger
	scope  *form.Scope

	mu          sync.Mutex
	state       State
	lastFetched string
	token       uint64
	onSettled   func(State)
}

// Option configures a Controller
type Option func(*Controller)

// WithFields sets the draft slot layout
func WithFields(f Fields) Option {
	return func(c *Controller) {
		c.fields = f
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithContext derives the controller's lifetime from ctx
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.scope = form.NewScope(ctx)
	}
}

// WithSettledHook is called after each lookup that was applied or failed
func WithSettledHook(fn func(State)) Option {
	return func(c *Controller) {
		c.onSettled = fn
	}
}

// NewController creates an autofill controller for draft
func NewController(draft *form.Draft, lookup Lookup, opts ...Option) *Controller {
	c := &Controller{
		draft:  draft,
		fields: CustomerFields,
		lookup: lookup,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scope == nil {
		c.scope = form.NewScope(context.Background())
	}
	if c.fields.Country != "" && c.draft.String(c.fields.Country) == "" {
		c.draft.Set(c.fields.Country, valueobject.DomesticCountry)
	}
	return c
}

// Domestic reports whether the address is resolved by postal code. City and
// state are read-only while it is.
func (c *Controller) Domestic() bool {
	if c.fields.Country == "" {
		return true
	}
	return valueobject.IsDomesticCountry(c.draft.String(c.fields.Country))
}

// SetPostalCode stores the typed code, masked when domestic and free text
// otherwise, and starts a lookup when a new complete code was entered.
// It returns the stored text.
func (c *Controller) SetPostalCode(raw string) string {
	if !c.Domestic() {
		v := valueobject.NormalizeForeignPostalCode(raw)
		c.draft.Set(c.fields.PostalCode, v)
		return v
	}

	masked := valueobject.MaskCEP(raw)
	c.draft.Set(c.fields.PostalCode, masked)

	digits := valueobject.OnlyDigits(masked)
	if len(digits) != valueobject.CEPLength {
		return masked
	}

	c.mu.Lock()
	if digits == c.lastFetched || !c.scope.Alive() {
		c.mu.Unlock()
		return masked
	}
	c.lastFetched = digits
	c.token++
	token := c.token
	c.state = StateFetching
	c.mu.Unlock()

	c.scope.Go(func(ctx context.Context) {
		c.fetch(ctx, token, digits)
	})
	return masked
}

func (c *Controller) fetch(ctx context.Context, token uint64, cep string) {
	result, err := c.lookup.Lookup(ctx, cep)

	c.mu.Lock()
	if token != c.token || !c.scope.Alive() {
		c.mu.Unlock()
		c.logger.Debug("discarding stale postal lookup", zap.String("cep", cep))
		return
	}
	if valueobject.OnlyDigits(c.draft.String(c.fields.PostalCode)) != cep || !c.Domestic() {
		c.state = StateIdle
		c.mu.Unlock()
		c.logger.Debug("postal code changed during lookup", zap.String("cep", cep))
		return
	}

	if err != nil || result == nil {
		c.state = StateFailed
		hook := c.onSettled
		c.mu.Unlock()
		c.logger.Debug("postal lookup failed", zap.String("cep", cep), zap.Error(err))
		if hook != nil {
			hook(StateFailed)
		}
		return
	}

	c.apply(result)
	c.state = StateIdle
	hook := c.onSettled
	c.mu.Unlock()

	c.logger.Debug("postal lookup applied", zap.String("cep", cep))
	if hook != nil {
		hook(StateIdle)
	}
}

// apply writes city and state unconditionally and street and neighborhood
// only where the user has not typed anything.
func (c *Controller) apply(result *valueobject.PostalAddress) {
	c.draft.Update(func(values map[string]any) {
		values[c.fields.City] = valueobject.CapitalizeNameBR(result.City)
		values[c.fields.State] = result.State
	})
	if result.Street != "" {
		c.draft.SetIfEmpty(c.fields.Street, valueobject.CapitalizeNameBR(result.Street))
	}
	if result.Neighborhood != "" {
		c.draft.SetIfEmpty(c.fields.Neighborhood, valueobject.CapitalizeNameBR(result.Neighborhood))
	}
}

// SetCountry changes the country. Leaving the domestic country clears the
// postal code, forgets the last looked-up code and drops any in-flight lookup.
func (c *Controller) SetCountry(country string) {
	if c.fields.Country == "" {
		return
	}
	wasDomestic := c.Domestic()
	c.draft.Set(c.fields.Country, country)
	if wasDomestic && !c.Domestic() {
		c.mu.Lock()
		c.lastFetched = ""
		c.token++
		c.state = StateIdle
		c.mu.Unlock()
		c.draft.Set(c.fields.PostalCode, "")
	}
}

// SetCity stores a hand-typed city. Refused while the country is domestic.
func (c *Controller) SetCity(city string) error {
	if c.Domestic() {
		return shared.ErrDerivedField
	}
	c.draft.Set(c.fields.City, city)
	return nil
}

// SetState stores a hand-typed state. Refused while the country is domestic.
func (c *Controller) SetState(state string) error {
	if c.Domestic() {
		return shared.ErrDerivedField
	}
	c.draft.Set(c.fields.State, state)
	return nil
}

// BlurCity capitalizes a hand-typed city
func (c *Controller) BlurCity() {
	if !c.Domestic() {
		c.draft.Set(c.fields.City, valueobject.CapitalizeNameBR(c.draft.String(c.fields.City)))
	}
}

// CityPlaceholder is shown in the city and state fields
func (c *Controller) CityPlaceholder() string {
	if c.Domestic() {
		return "Preenchido pelo CEP"
	}
	return ""
}

// PostalCodePlaceholder is shown in the postal code field
func (c *Controller) PostalCodePlaceholder() string {
	if c.Domestic() {
		return valueobject.CEPPlaceholder
	}
	return valueobject.ForeignPostalCodeHint
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastFetched returns the last code that started a lookup
func (c *Controller) LastFetched() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFetched
}

// Wait blocks until in-flight lookups have returned
func (c *Controller) Wait() {
	c.scope.Wait()
}

// Close unmounts the controller: pending results are discarded
func (c *Controller) Close() {
	c.scope.Close()
}
