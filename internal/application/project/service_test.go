package project

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/constructpro/dashboard/internal/application/listquery"
	"github.com/constructpro/dashboard/internal/application/submission"
	"github.com/constructpro/dashboard/internal/domain/form"
	"github.com/constructpro/dashboard/internal/domain/project"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/domain/shared/valueobject"
	"github.com/constructpro/dashboard/internal/infrastructure/validation"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListProjects(ctx context.Context, key listquery.Key) (listquery.Page[project.Project], error) {
	args := m.Called(ctx, key)
	return args.Get(0).(listquery.Page[project.Project]), args.Error(1)
}

func (m *MockGateway) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockGateway) CreateProject(ctx context.Context, body any) (*project.Project, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockGateway) UpdateProject(ctx context.Context, id int64, body any) (*project.Project, error) {
	args := m.Called(ctx, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

// MockLookup is a mock implementation of address.Lookup
type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Lookup(ctx context.Context, cep string) (*valueobject.PostalAddress, error) {
	args := m.Called(ctx, cep)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*valueobject.PostalAddress), args.Error(1)
}

func newTestService(gw *MockGateway) (*Service, *shared.Notifications) {
	n := &shared.Notifications{}
	return NewService(gw, validation.New(), submission.NewRunner(submission.WithNotifier(n))), n
}

func validRequest() ProjectRequest {
	return ProjectRequest{
		Name:       "Residencial Aurora",
		Status:     "construction",
		Address:    "Avenida Boa Viagem",
		Number:     "1200",
		District:   "Boa Viagem",
		City:       "Recife",
		State:      "PE",
		PostalCode: "51020000",
		Floors:     "12",
		Features:   []string{"Piscina", " Piscina ", "Academia", ""},
	}
}

func TestService_Create(t *testing.T) {
	gw := new(MockGateway)
	svc, n := newTestService(gw)
	ctx := context.Background()

	var sent any
	gw.On("CreateProject", ctx, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1) }).
		Return(&project.Project{ID: 5, Name: "Residencial Aurora"}, nil)

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	raw, err := json.Marshal(sent)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "51020-000", body["postal_code"])
	assert.Equal(t, []any{"Piscina", "Academia"}, body["features"])
	assert.Nil(t, body["description"])
	assert.Nil(t, body["delivery_date"])
	assert.Equal(t, "12", body["floors"])

	msg, _ := n.Last()
	assert.Equal(t, MsgCreated, msg)
}

func TestService_Validate(t *testing.T) {
	gw := new(MockGateway)
	svc, _ := newTestService(gw)

	req := validRequest()
	req.Name = ""
	req.Status = "planned"
	req.PostalCode = "5102"
	req.Floors = "muitos"
	req.DeliveryDate = "31/12/2027"

	var ve *shared.ValidationError
	require.ErrorAs(t, svc.Validate(req), &ve)
	assert.Equal(t, "Campo obrigatório", ve.Fields["name"])
	assert.Equal(t, "Valor inválido", ve.Fields["status"])
	assert.Equal(t, "CEP inválido", ve.Fields["postal_code"])
	assert.Equal(t, "Informe um número de andares", ve.Fields["floors"])
	assert.Contains(t, ve.Fields, "delivery_date")

	req = validRequest()
	req.DeliveryDate = "2027-12-31"
	assert.NoError(t, svc.Validate(req))
}

func TestService_UpdateFailure(t *testing.T) {
	gw := new(MockGateway)
	svc, n := newTestService(gw)
	ctx := context.Background()

	gw.On("UpdateProject", ctx, int64(5), mock.Anything).Return(nil, shared.ErrNetwork)

	_, err := svc.Update(ctx, 5, validRequest())
	assert.ErrorIs(t, err, shared.ErrNetwork)
	assert.Equal(t, []string{MsgUpdateFailed}, n.Errors())
}

func TestService_List(t *testing.T) {
	gw := new(MockGateway)
	svc, _ := newTestService(gw)
	ctx := context.Background()

	gw.On("ListProjects", ctx, mock.MatchedBy(func(k listquery.Key) bool {
		return k.Search == "aurora" && k.Page == 1 && len(k.Filters) == 0
	})).Return(listquery.Page[project.Project]{
		Items: []project.Project{{ID: 5, Name: "Residencial Aurora", Status: project.StatusFinished, District: "Boa Viagem", City: "Recife"}},
		Total: 1,
	}, nil)

	res, err := svc.List(ctx, url.Values{"search": {"aurora"}, "status": {"ignored"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "#00005", res.Items[0].Code)
	assert.Equal(t, "Concluído", res.Items[0].StatusLabel)
	assert.Equal(t, "Boa Viagem - Recife", res.Items[0].Location)
	assert.Equal(t, []int{1}, res.Window.Pages)
	assert.True(t, res.Window.NextDisabled)
}

func TestService_Options(t *testing.T) {
	svc, _ := newTestService(new(MockGateway))
	opts := svc.Options()
	assert.Len(t, opts.Features, 20)
	assert.Len(t, opts.Statuses, 2)
}

func TestForm_AutofillAndFeatures(t *testing.T) {
	lookup := new(MockLookup)
	lookup.On("Lookup", mock.Anything, "51020000").Return(&valueobject.PostalAddress{
		Street:       "AVENIDA BOA VIAGEM",
		Neighborhood: "boa viagem",
		City:         "RECIFE",
		State:        "PE",
	}, nil)

	f := NewForm(nil, lookup)
	defer f.Close()

	f.Draft.Set("name", "Residencial Aurora")
	f.Draft.Set("number", "1200")
	assert.Equal(t, "51020-000", f.Address.SetPostalCode("51020000"))
	f.Address.Wait()

	f.Features.Type("pisc")
	require.Equal(t, []string{"Piscina"}, f.Features.Suggestions())
	f.Features.Add(f.Features.Suggestions()[0])
	f.Features.Type("Vista para o parque")
	assert.True(t, f.Features.Press(form.KeyEnter))

	req := f.Request()
	assert.Equal(t, "Avenida Boa Viagem", req.Address)
	assert.Equal(t, "Boa Viagem", req.District)
	assert.Equal(t, "Recife", req.City)
	assert.Equal(t, "PE", req.State)
	assert.Equal(t, "construction", req.Status)
	assert.Equal(t, []string{"Piscina", "Vista para o parque"}, req.Features)

	svc, _ := newTestService(new(MockGateway))
	assert.NoError(t, svc.Validate(req))
}

func TestForm_Edit(t *testing.T) {
	floors := "8"
	f := NewForm(&project.Project{
		ID: 5, Name: "Aurora", Status: project.StatusFinished, PostalCode: "51020000",
		Floors: &floors, Features: []string{"Sauna"},
	}, new(MockLookup))
	defer f.Close()

	req := f.Request()
	assert.Equal(t, "51020-000", req.PostalCode)
	assert.Equal(t, "8", req.Floors)
	assert.Equal(t, []string{"Sauna"}, req.Features)
	assert.Equal(t, "finished", req.Status)
}

type failingCache struct{}

func (failingCache) GetOrLoad(ctx context.Context, _ string, load func(context.Context) ([]byte, error)) ([]byte, error) {
	return load(ctx)
}

func (failingCache) InvalidatePrefix(context.Context, string) error {
	return errors.New("cache unavailable")
}

func TestService_InvalidateFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	runner := submission.NewRunner(submission.WithLogger(zap.New(core)))
	gw := new(MockGateway)
	svc := NewService(gw, validation.New(), runner, WithCache(failingCache{}, nil))
	gw.On("CreateProject", mock.Anything, mock.Anything).Return(&project.Project{ID: 43}, nil)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(43), created.ID)

	entries := logs.FilterMessage("Failed to invalidate list cache").All()
	require.Len(t, entries, 1)
	assert.Equal(t, Resource, entries[0].ContextMap()["resource"])
	assert.Equal(t, "cache unavailable", entries[0].ContextMap()["error"])
}
