package queries_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ftl/internal/adapters/out/semantics"
	"ftl/internal/core/application/checks"
	"ftl/internal/core/application/usecases/queries"
	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/event"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/core/domain/services"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Add(ctx context.Context, identity *account.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetActive(ctx context.Context, userID kernel.UUID, name string) (*account.Identity, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Identity), args.Error(1)
}

func (m *MockIdentityRepository) ListActive(ctx context.Context, userID kernel.UUID) ([]*account.Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Identity), args.Error(1)
}

// stubLedger serves fixed assets, histories and per-identity listings.
type stubLedger struct {
	assets     map[string]ledger.Asset
	txs        map[string][]ledger.Transaction
	history    map[string][]ledger.Asset
	historyErr error
}

func (l *stubLedger) Asset(_ context.Context, id kernel.AssetID) (ledger.Asset, error) {
	a, ok := l.assets[id.String()]
	if !ok {
		return ledger.Asset{}, errs.NewObjectNotFoundError("asset", id.String())
	}
	return a, nil
}

func (l *stubLedger) AssetsOf(context.Context, string) ([]string, error) {
	return nil, nil
}

func (l *stubLedger) History(_ context.Context, identity string) ([]ledger.Asset, error) {
	if l.historyErr != nil {
		return nil, l.historyErr
	}
	return l.history[identity], nil
}

func (l *stubLedger) TransactionInputs(context.Context, kernel.AssetID) ([]ledger.Input, error) {
	return nil, nil
}

func (l *stubLedger) Transactions(_ context.Context, id kernel.AssetID) ([]ledger.Transaction, error) {
	txs, ok := l.txs[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("asset", id.String())
	}
	return txs, nil
}

func assetID(n int) kernel.AssetID {
	id, err := kernel.NewAssetID(fmt.Sprintf("%064x", n))
	if err != nil {
		panic(err)
	}
	return id
}

type OrderQueriesTestSuite struct {
	suite.Suite
	vocab      semantic.Vocabulary
	ledger     *stubLedger
	identities *MockIdentityRepository
	userID     kernel.UUID

	started   kernel.AssetID
	completed kernel.AssetID
	stray     kernel.AssetID
	eventDoc  semantic.Document
}

func (s *OrderQueriesTestSuite) SetupTest() {
	vocab, err := semantic.NewVocabulary(semantic.DefaultNamespace)
	s.Require().NoError(err)
	s.vocab = vocab
	docs := semantics.NewDocuments(vocab)

	orderDoc, err := docs.OrderDocument(s.newOrder())
	s.Require().NoError(err)

	s.started, s.completed, s.stray = assetID(1), assetID(2), assetID(3)

	place, err := kernel.NewPlace("Soesterberg")
	s.Require().NoError(err)
	e, err := event.NewEvent(s.started, time.Date(2019, 5, 1, 9, 0, 0, 0, time.UTC), place, event.Load)
	s.Require().NoError(err)
	s.eventDoc, err = docs.EventDocument(e)
	s.Require().NoError(err)

	started := ledger.Asset{ID: s.started.String(), Document: orderDoc, Raw: []byte(`{"id":"started"}`)}
	completed := ledger.Asset{ID: s.completed.String(), Document: orderDoc}
	stray := ledger.Asset{ID: s.stray.String(), Document: s.eventDoc}

	s.ledger = &stubLedger{
		assets: map[string]ledger.Asset{
			started.ID:   started,
			completed.ID: completed,
			stray.ID:     stray,
		},
		txs: map[string][]ledger.Transaction{
			started.ID: {
				{ID: "c1", Operation: ledger.Create, Signers: []string{"pk-alice"}, Recipients: []string{"pk-bob"}},
				{ID: "t1", Operation: ledger.Transfer, Status: ledger.StatusCode(int(order.Confirmed))},
				{ID: "t2", Operation: ledger.Transfer, Status: ledger.StatusCode(int(order.Started)), Data: s.eventDoc},
				{ID: "t3", Operation: ledger.Transfer, Data: orderDoc},
			},
			completed.ID: {
				{ID: "c2", Operation: ledger.Create, Signers: []string{"pk-carol"}, Recipients: []string{"pk-alice"}},
				{ID: "t4", Operation: ledger.Transfer, Status: ledger.StatusCode(int(order.Completed))},
			},
			stray.ID: {
				{ID: "c3", Operation: ledger.Create},
			},
		},
		history: map[string][]ledger.Asset{
			"alice": {started, completed, stray, started},
		},
	}

	s.userID = kernel.NewUUID()
	alice, err := account.NewIdentity(s.userID, "alice", ledger.Keys{
		Signing: ledger.Keypair{PublicKey: "pk-alice", PrivateKey: "sk-alice"},
	}, time.Now())
	s.Require().NoError(err)

	s.identities = &MockIdentityRepository{}
	s.identities.On("ListActive", mock.Anything, s.userID).Return([]*account.Identity{alice}, nil)
}

func (s *OrderQueriesTestSuite) newOrder() order.Order {
	cargo, err := order.NewCargo("flowers", "pallet", 3)
	s.Require().NoError(err)
	soesterberg, err := kernel.NewPlace("Soesterberg")
	s.Require().NoError(err)
	denHaag, err := kernel.NewPlace("Den Haag")
	s.Require().NoError(err)
	o, err := order.NewOrder("ref-1", cargo,
		soesterberg, time.Date(2019, 5, 1, 8, 0, 0, 0, time.UTC),
		denHaag, time.Date(2019, 5, 1, 16, 0, 0, 0, time.UTC),
	)
	s.Require().NoError(err)
	return o
}

func (s *OrderQueriesTestSuite) listHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(
		s.identities, s.ledger, s.ledger,
		services.NewStatusEngine(order.Statuses, s.ledger),
		semantics.NewGraph(), s.vocab,
	)
}

func (s *OrderQueriesTestSuite) getHandler() queries.GetOrderQueryHandler {
	graph := semantics.NewGraph()
	return queries.NewGetOrderQueryHandler(
		checks.NewChecker(s.ledger, s.ledger, graph, s.identities),
		s.ledger, s.ledger,
		services.NewStatusEngine(order.Statuses, s.ledger),
		graph, s.vocab,
	)
}

func (s *OrderQueriesTestSuite) list(role queries.Role, completed *bool) queries.ListOrdersQueryResponse {
	query, err := queries.NewListOrdersQuery(s.userID, role, completed)
	s.Require().NoError(err)
	result, err := s.listHandler().Handle(context.Background(), query)
	s.Require().NoError(err)
	return result
}

func (s *OrderQueriesTestSuite) TestListOrders_AllRoles() {
	result := s.list(queries.AnyRole, nil)

	s.Require().Len(result, 2)
	s.NotContains(result, s.stray.String())

	started := result[s.started.String()]
	s.JSONEq(`{"id":"started"}`, string(started.Asset))
	s.Equal(queries.OrderMetadata{
		Status:     int(order.Started),
		StatusName: "STARTED",
		Roles:      queries.Roles{Customer: "pk-alice", ServiceProvider: "pk-bob"},
	}, started.Metadata)

	completed := result[s.completed.String()]
	s.Equal("COMPLETED", completed.Metadata.StatusName)
	s.Equal("pk-alice", completed.Metadata.Roles.ServiceProvider)
}

func (s *OrderQueriesTestSuite) TestListOrders_FilterByRole() {
	asCustomer := s.list(queries.CustomerRole, nil)
	s.Len(asCustomer, 1)
	s.Contains(asCustomer, s.started.String())

	asProvider := s.list(queries.ProviderRole, nil)
	s.Len(asProvider, 1)
	s.Contains(asProvider, s.completed.String())
}

func (s *OrderQueriesTestSuite) TestListOrders_FilterByCompletion() {
	yes, no := true, false

	done := s.list(queries.AnyRole, &yes)
	s.Len(done, 1)
	s.Contains(done, s.completed.String())

	open := s.list(queries.AnyRole, &no)
	s.Len(open, 1)
	s.Contains(open, s.started.String())
}

func (s *OrderQueriesTestSuite) TestListOrders_LedgerFailure() {
	s.ledger.historyErr = errors.New("connection refused")

	query, err := queries.NewListOrdersQuery(s.userID, queries.AnyRole, nil)
	s.Require().NoError(err)

	_, err = s.listHandler().Handle(context.Background(), query)

	s.Require().ErrorIs(err, errs.ErrCollaboratorFailed)
	s.Contains(err.Error(), "could not retrieve orders")
}

func (s *OrderQueriesTestSuite) TestListOrders_InvalidQuery() {
	_, err := queries.NewListOrdersQuery(s.userID, queries.Role("courier"), nil)
	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)

	_, err = s.listHandler().Handle(context.Background(), queries.ListOrdersQuery{})
	s.Require().ErrorIs(err, queries.ErrListOrdersQueryIsNotConstructed)
}

func (s *OrderQueriesTestSuite) TestGetOrder_ReturnsOrderWithEvents() {
	query, err := queries.NewGetOrderQuery(s.started)
	s.Require().NoError(err)

	result, err := s.getHandler().Handle(context.Background(), query)

	s.Require().NoError(err)
	s.JSONEq(`{"id":"started"}`, string(result.Order))
	s.Require().Len(result.Events, 1)
	s.Equal("t2", result.Events[0].TransactionID)
	s.JSONEq(string(s.eventDoc), string(result.Events[0].RDF))
	s.Equal(int(order.Started), result.Metadata.Status)
	s.Equal("pk-bob", result.Metadata.Roles.ServiceProvider)
}

func (s *OrderQueriesTestSuite) TestGetOrder_UnknownAsset() {
	query, err := queries.NewGetOrderQuery(assetID(99))
	s.Require().NoError(err)

	_, err = s.getHandler().Handle(context.Background(), query)

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderQueriesTestSuite) TestGetOrder_NotAnOrder() {
	query, err := queries.NewGetOrderQuery(s.stray)
	s.Require().NoError(err)

	_, err = s.getHandler().Handle(context.Background(), query)

	s.Require().ErrorIs(err, errs.ErrInadmissible)
	s.Contains(err.Error(), "asset is not of type")
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}

func TestNewGetOrderQuery_RequiresAssetID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.AssetID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
