package address

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
)

type stubLookup struct {
	mu      sync.Mutex
	calls   []string
	results map[string]*valueobject.PostalAddress
	gate    chan struct{}
}

func newStubLookup() *stubLookup {
	return &stubLookup{results: map[string]*valueobject.PostalAddress{}}
}

func (s *stubLookup) Lookup(ctx context.Context, cep string) (*valueobject.PostalAddress, error) {
	s.mu.Lock()
	s.calls = append(s.calls, cep)
	gate := s.gate
	res := s.results[cep]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if res == nil {
		return nil, errors.New("not found")
	}
	return res, nil
}

func (s *stubLookup) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

var paulista = &valueobject.PostalAddress{
	PostalCode:   "01310100",
	State:        "SP",
	City:         "SÃO PAULO",
	Neighborhood: "bela vista",
	Street:       "avenida paulista",
}

func TestAutofill_AppliesLookup(t *testing.T) {
	lookup := newStubLookup()
	lookup.results["01310100"] = paulista

	draft := form.NewDraft(nil)
	c := NewController(draft, lookup)
	defer c.Close()

	assert.Equal(t, valueobject.DomesticCountry, draft.String("country"))
	assert.Equal(t, "01310-100", c.SetPostalCode("01310100"))
	c.Wait()

	assert.Equal(t, "São Paulo", draft.String("city"))
	assert.Equal(t, "SP", draft.String("state"))
	assert.Equal(t, "Avenida Paulista", draft.String("address"))
	assert.Equal(t, "Bela Vista", draft.String("neighborhood"))
	assert.Equal(t, StateIdle, c.State())
}

func TestAutofill_KeepsTypedStreet(t *testing.T) {
	lookup := newStubLookup()
	lookup.results["01310100"] = paulista

	draft := form.NewDraft(map[string]any{"address": "Rua Augusta", "city": "Campinas"})
	c := NewController(draft, lookup)
	defer c.Close()

	c.SetPostalCode("01310-100")
	c.Wait()

	assert.Equal(t, "Rua Augusta", draft.String("address"))
	assert.Equal(t, "Bela Vista", draft.String("neighborhood"))
	assert.Equal(t, "São Paulo", draft.String("city"))
}

func TestAutofill_OnlyOnNewCompleteCode(t *testing.T) {
	lookup := newStubLookup()
	lookup.results["01310100"] = paulista

	draft := form.NewDraft(nil)
	c := NewController(draft, lookup)
	defer c.Close()

	c.SetPostalCode("0131")
	c.SetPostalCode("0131010")
	assert.Empty(t, lookup.Calls())

	c.SetPostalCode("01310100")
	c.Wait()
	c.SetPostalCode("01310-100")
	c.Wait()

	assert.Equal(t, []string{"01310100"}, lookup.Calls())
	assert.Equal(t, "01310100", c.LastFetched())
}

func TestAutofill_FailureIsSilentAndNotRetried(t *testing.T) {
	lookup := newStubLookup()
	var settled []State
	draft := form.NewDraft(map[string]any{"city": "Olinda"})
	c := NewController(draft, lookup, WithSettledHook(func(s State) { settled = append(settled, s) }))
	defer c.Close()

	c.SetPostalCode("99999999")
	c.Wait()

	assert.Equal(t, StateFailed, c.State())
	assert.Equal(t, []State{StateFailed}, settled)
	assert.Equal(t, "Olinda", draft.String("city"))

	c.SetPostalCode("99999999")
	c.Wait()
	assert.Len(t, lookup.Calls(), 1)
}

func TestAutofill_StaleResponseDiscarded(t *testing.T) {
	lookup := newStubLookup()
	lookup.results["01310100"] = paulista
	lookup.results["20040002"] = &valueobject.PostalAddress{State: "RJ", City: "rio de janeiro"}
	lookup.gate = make(chan struct{})

	draft := form.NewDraft(nil)
	c := NewController(draft, lookup)
	defer c.Close()

	c.SetPostalCode("01310100")
	c.SetPostalCode("20040002")
	close(lookup.gate)
	c.Wait()

	assert.Equal(t, "Rio de Janeiro", draft.String("city"))
	assert.Equal(t, "RJ", draft.String("state"))
}

func TestAutofill_EditedCodeDiscardsResponse(t *testing.T) {
	lookup := newStubLookup()
	lookup.results["01310100"] = paulista
	lookup.gate = make(chan struct{})

	draft := form.NewDraft(nil)
	c := NewController(draft, lookup)
	defer c.Close()

	c.SetPostalCode("01310100")
	c.SetPostalCode("0131010")
	close(lookup.gate)
	c.Wait()

	assert.Empty(t, draft.String("city"))
	assert.Equal(t, StateIdle, c.State())
}

func TestAutofill_ClosedControllerDiscardsResponse(t *testing.T) {
	lookup := newStubLookup()
	lookup.results["01310100"] = paulista
	lookup.gate = make(chan struct{})

	draft := form.NewDraft(nil)
	c := NewController(draft, lookup)

	c.SetPostalCode("01310100")
	c.Close()
	c.Wait()

	assert.Empty(t, draft.String("city"))

	c.SetPostalCode("20040002")
	c.Wait()
	assert.Len(t, lookup.Calls(), 1)
}

func TestAutofill_ForeignCountry(t *testing.T) {
	lookup := newStubLookup()
	draft := form.NewDraft(nil)
	c := NewController(draft, lookup)
	defer c.Close()

	c.SetPostalCode("01310100")
	c.Wait()
	require.Equal(t, "01310100", c.LastFetched())

	require.ErrorIs(t, c.SetCity("Lisboa"), shared.ErrDerivedField)
	require.ErrorIs(t, c.SetState("LX"), shared.ErrDerivedField)
	assert.Equal(t, "Preenchido pelo CEP", c.CityPlaceholder())

	c.SetCountry("PT")
	assert.False(t, c.Domestic())
	assert.Empty(t, draft.String("postal_code"))
	assert.Empty(t, c.LastFetched())
	assert.Equal(t, valueobject.ForeignPostalCodeHint, c.PostalCodePlaceholder())

	assert.Equal(t, "1000-001 lisboa", c.SetPostalCode("1000-001 lisboa"))
	require.NoError(t, c.SetCity("são joão do estoril"))
	c.BlurCity()
	assert.Equal(t, "São João do Estoril", draft.String("city"))
	assert.Len(t, lookup.Calls(), 1)

	c.SetCountry("BR")
	c.SetPostalCode("01310100")
	c.Wait()
	assert.Len(t, lookup.Calls(), 2)
}

func TestAutofill_ProjectFields(t *testing.T) {
	lookup := newStubLookup()
	lookup.results["01310100"] = paulista

	draft := form.NewDraft(nil)
	c := NewController(draft, lookup, WithFields(ProjectFields))
	defer c.Close()

	assert.True(t, c.Domestic())
	_, hasCountry := draft.Get("country")
	assert.False(t, hasCountry)

	c.SetCountry("US")
	assert.True(t, c.Domestic())

	c.SetPostalCode("01310100")
	c.Wait()
	assert.Equal(t, "Bela Vista", draft.String("district"))
}
