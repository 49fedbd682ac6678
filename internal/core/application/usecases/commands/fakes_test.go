package commands_test

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"ftl/internal/core/application/usecases/commands"
	"ftl/internal/core/domain/model/account"
	"ftl/internal/core/domain/model/kernel"
	"ftl/internal/core/domain/model/ledger"
	"ftl/internal/core/domain/model/order"
	"ftl/internal/core/domain/model/publication"
	"ftl/internal/core/domain/model/setting"
	"ftl/internal/core/ports"
	"ftl/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// fakeLedger is an in-memory ledger that enforces ownership on transfer.
type fakeLedger struct {
	mu     sync.Mutex
	keys   map[string]string
	assets map[string]*fakeAsset
	seq    int
}

type fakeAsset struct {
	doc   json.RawMessage
	owner string
	txs   []ledger.Transaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{keys: map[string]string{}, assets: map[string]*fakeAsset{}}
}

func (l *fakeLedger) nextID() kernel.AssetID {
	l.seq++
	id, err := kernel.NewAssetID(fmt.Sprintf("%064x", l.seq))
	if err != nil {
		panic(err)
	}
	return id
}

func (l *fakeLedger) owner(assetID kernel.AssetID) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.assets[assetID.String()].owner
}

func (l *fakeLedger) Transactions(_ context.Context, assetID kernel.AssetID) ([]ledger.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assets[assetID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("asset", assetID.String())
	}
	return slices.Clone(a.txs), nil
}

func (l *fakeLedger) Asset(_ context.Context, assetID kernel.AssetID) (ledger.Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assets[assetID.String()]
	if !ok {
		return ledger.Asset{}, errs.NewObjectNotFoundError("asset", assetID.String())
	}
	return ledger.Asset{ID: assetID.String(), Document: a.doc}, nil
}

func (l *fakeLedger) AssetsOf(_ context.Context, identity string) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pk := l.keys[identity]
	var held []string
	for id, a := range l.assets {
		if a.owner == pk {
			held = append(held, id)
		}
	}
	return held, nil
}

func (l *fakeLedger) History(_ context.Context, _ string) ([]ledger.Asset, error) {
	return nil, nil
}

func (l *fakeLedger) TransactionInputs(_ context.Context, txID kernel.AssetID) ([]ledger.Input, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assets[txID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("transaction", txID.String())
	}
	return []ledger.Input{{OwnersBefore: a.txs[0].Signers}}, nil
}

func (l *fakeLedger) Publish(_ context.Context, creds ledger.Credentials, pub ledger.Publication) (kernel.AssetID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID()
	l.assets[id.String()] = &fakeAsset{
		doc:   pub.Document,
		owner: pub.Recipient,
		txs: []ledger.Transaction{{
			ID:         id.String(),
			Operation:  ledger.Create,
			Data:       pub.Document,
			Signers:    []string{l.keys[creds.Identity]},
			Recipients: []string{pub.Recipient},
		}},
	}
	return id, nil
}

func (l *fakeLedger) Transfer(_ context.Context, creds ledger.Credentials, req ledger.TransferRequest) (kernel.AssetID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assets[req.AssetID.String()]
	if !ok {
		return kernel.AssetID{}, errs.NewCollaboratorError("ledger", "unknown asset")
	}
	signer := l.keys[creds.Identity]
	if a.owner != signer {
		return kernel.AssetID{}, errs.NewCollaboratorError("ledger", "signer does not own the asset")
	}
	id := l.nextID()
	a.txs = append(a.txs, ledger.Transaction{
		ID:         id.String(),
		Operation:  ledger.Transfer,
		Status:     req.Status,
		Data:       req.Data,
		Signers:    []string{signer},
		Recipients: []string{req.Recipient},
	})
	a.owner = req.Recipient
	return id, nil
}

func (l *fakeLedger) CreateIdentity(_ context.Context, name string) (ledger.Keys, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pk := "pk-" + name
	l.keys[name] = pk
	return ledger.Keys{
		Signing:  ledger.Keypair{PublicKey: pk, PrivateKey: "sk-" + name},
		Received: ledger.Keypair{PublicKey: "rpk-" + name, PrivateKey: "rsk-" + name},
	}, nil
}

func (l *fakeLedger) Ping(context.Context) error { return nil }

var _ ports.Ledger = (*fakeLedger)(nil)

// memoryStore backs every repository of memoryUoW.
type memoryStore struct {
	mu           sync.Mutex
	users        []*account.User
	identities   []*account.Identity
	addresses    []*account.Address
	settings     map[string]setting.Setting
	publications []*publication.Record
	commits      int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{settings: map[string]setting.Setting{}}
}

type memoryUoW struct{ s *memoryStore }

func (u memoryUoW) Begin(context.Context) error    { return nil }
func (u memoryUoW) Rollback(context.Context) error { return nil }
func (u memoryUoW) Commit(context.Context) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.commits++
	return nil
}

func (u memoryUoW) UserRepository() ports.UserRepository                { return memoryUsers(u) }
func (u memoryUoW) IdentityRepository() ports.IdentityRepository        { return memoryIdentities(u) }
func (u memoryUoW) AddressBookRepository() ports.AddressBookRepository { return memoryAddresses(u) }
func (u memoryUoW) SettingRepository() ports.SettingRepository          { return memorySettings(u) }
func (u memoryUoW) PublicationRepository() ports.PublicationRepository  { return memoryPublications(u) }

func (s *memoryStore) ledgerFactory() commands.LedgerUoWFactory {
	return ledgerUoWFactoryFunc(func() commands.LedgerUoW { return memoryUoW{s} })
}

func (s *memoryStore) accountFactory() commands.AccountUoWFactory {
	return accountUoWFactoryFunc(func() commands.AccountUoW { return memoryUoW{s} })
}

func (s *memoryStore) settingFactory() commands.SettingUoWFactory {
	return settingUoWFactoryFunc(func() commands.SettingUoW { return memoryUoW{s} })
}

type ledgerUoWFactoryFunc func() commands.LedgerUoW

func (f ledgerUoWFactoryFunc) Create() commands.LedgerUoW { return f() }

type accountUoWFactoryFunc func() commands.AccountUoW

func (f accountUoWFactoryFunc) Create() commands.AccountUoW { return f() }

type settingUoWFactoryFunc func() commands.SettingUoW

func (f settingUoWFactoryFunc) Create() commands.SettingUoW { return f() }

type memoryUsers memoryUoW

func (r memoryUsers) Add(_ context.Context, u *account.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users = append(r.s.users, u)
	return nil
}

func (r memoryUsers) GetByTokenDigest(_ context.Context, digest string) (*account.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.TokenDigest() == digest {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("user", "token")
}

func (r memoryUsers) GetByUsername(_ context.Context, username string) (*account.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("user", username)
}

type memoryIdentities memoryUoW

func (r memoryIdentities) Add(_ context.Context, i *account.Identity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.identities = append(r.s.identities, i)
	return nil
}

func (r memoryIdentities) GetActive(ctx context.Context, userID kernel.UUID, name string) (*account.Identity, error) {
	active, _ := r.ListActive(ctx, userID)
	for _, i := range active {
		if name == "" || i.Name() == name {
			return i, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("identity", name)
}

func (r memoryIdentities) ListActive(_ context.Context, userID kernel.UUID) ([]*account.Identity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*account.Identity
	for i := len(r.s.identities) - 1; i >= 0; i-- {
		identity := r.s.identities[i]
		if identity.UserID().IsEqual(userID) && identity.IsActive() {
			out = append(out, identity)
		}
	}
	return out, nil
}

type memoryAddresses memoryUoW

func (r memoryAddresses) Add(_ context.Context, a *account.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.addresses = append(r.s.addresses, a)
	return nil
}

func (r memoryAddresses) GetByAlias(_ context.Context, userID kernel.UUID, alias string) (*account.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.addresses {
		if a.UserID().IsEqual(userID) && a.Alias() == alias {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("address", alias)
}

func (r memoryAddresses) Remove(_ context.Context, userID kernel.UUID, alias string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, a := range r.s.addresses {
		if a.UserID().IsEqual(userID) && a.Alias() == alias {
			r.s.addresses = slices.Delete(r.s.addresses, i, i+1)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("address", alias)
}

type memorySettings memoryUoW

func (r memorySettings) Put(_ context.Context, s setting.Setting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[s.Name()] = s
	return nil
}

func (r memorySettings) Get(_ context.Context, name string) (setting.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.settings[name]
	if !ok {
		return setting.Setting{}, errs.NewObjectNotFoundError("setting", name)
	}
	return s, nil
}

func (r memorySettings) Remove(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.settings[name]; !ok {
		return errs.NewObjectNotFoundError("setting", name)
	}
	delete(r.s.settings, name)
	return nil
}

type memoryPublications memoryUoW

func (r memoryPublications) Add(_ context.Context, p *publication.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.publications = append(r.s.publications, p)
	return nil
}

// recordingPublisher keeps every status change it is asked to publish.
type recordingPublisher struct {
	mu      sync.Mutex
	changes []order.StatusChanged
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, change order.StatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return p.err
}

func (p *recordingPublisher) statuses() []order.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]order.Status, len(p.changes))
	for i, c := range p.changes {
		out[i] = c.Status
	}
	return out
}

func mustPlace(t *testing.T, name string) kernel.Place {
	t.Helper()
	p, err := kernel.NewPlace(name)
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, acceptance, delivery string) order.Order {
	t.Helper()
	cargo, err := order.NewCargo("flowers", "pallet", 3)
	require.NoError(t, err)
	o, err := order.NewOrder("ref-1", cargo,
		mustPlace(t, acceptance), time.Date(2019, 5, 1, 8, 0, 0, 0, time.UTC),
		mustPlace(t, delivery), time.Date(2019, 5, 1, 16, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}
