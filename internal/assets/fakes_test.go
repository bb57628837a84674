package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"brandkit/internal/models"
	"brandkit/internal/pdf"
	"brandkit/internal/storage"
	"brandkit/internal/store"
)

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	err   error
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// MergeBrand mimics jsonb ||: top-level keys of patch replace stored ones.
func (f *fakeUsers) MergeBrand(_ context.Context, id uuid.UUID, patch json.RawMessage) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	stored, _ := json.Marshal(u.Brand)
	var merged map[string]json.RawMessage
	json.Unmarshal(stored, &merged)
	var p map[string]json.RawMessage
	if err := json.Unmarshal(patch, &p); err != nil {
		return nil, err
	}
	for k, v := range p {
		merged[k] = v
	}
	out, _ := json.Marshal(merged)
	var brand models.BrandSnapshot
	if err := json.Unmarshal(out, &brand); err != nil {
		return nil, err
	}
	u.Brand = brand
	cp := *u
	return &cp, nil
}

// fakeRecords is an in-memory RecordStore enforcing one row per
// (user, asset type).
type fakeRecords struct {
	mu     sync.Mutex
	rows   []*models.Asset
	clock  time.Time
	calls  map[string]int
	failOn map[string]error
	// beforeCreate runs once before the next Create, outside the lock.
	beforeCreate func()
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		calls:  map[string]int{},
		failOn: map[string]error{},
	}
}

func (f *fakeRecords) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRecords) enter(op string) error {
	f.calls[op]++
	return f.failOn[op]
}

func clone(a *models.Asset) *models.Asset {
	cp := *a
	cp.CustomData = a.CustomData.Clone()
	if a.FilePath != nil {
		p := *a.FilePath
		cp.FilePath = &p
	}
	return &cp
}

func (f *fakeRecords) FindOne(_ context.Context, userID uuid.UUID, assetType string) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FindOne"); err != nil {
		return nil, err
	}
	for _, r := range f.rows {
		if r.UserID == userID && r.AssetType == assetType {
			return clone(r), nil
		}
	}
	return nil, nil
}

func (f *fakeRecords) FindByID(_ context.Context, id uuid.UUID) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FindByID"); err != nil {
		return nil, err
	}
	for _, r := range f.rows {
		if r.ID == id {
			return clone(r), nil
		}
	}
	return nil, nil
}

func (f *fakeRecords) FindAllByUser(_ context.Context, userID uuid.UUID) ([]models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FindAllByUser"); err != nil {
		return nil, err
	}
	var out []models.Asset
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, *clone(r))
		}
	}
	return out, nil
}

func (f *fakeRecords) Create(_ context.Context, userID uuid.UUID, assetType string, fields store.AssetFields) (*models.Asset, error) {
	if hook := f.beforeCreate; hook != nil {
		f.beforeCreate = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Create"); err != nil {
		return nil, err
	}
	for _, r := range f.rows {
		if r.UserID == userID && r.AssetType == assetType {
			return nil, fmt.Errorf("insert: %w", store.ErrDuplicate)
		}
	}
	now := f.tick()
	a := &models.Asset{
		ID:        uuid.New(),
		UserID:    userID,
		AssetType: assetType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(a, fields)
	f.rows = append(f.rows, a)
	return clone(a), nil
}

func (f *fakeRecords) Update(_ context.Context, id uuid.UUID, fields store.AssetFields) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Update"); err != nil {
		return nil, err
	}
	for _, r := range f.rows {
		if r.ID == id {
			apply(r, fields)
			r.UpdatedAt = f.tick()
			return clone(r), nil
		}
	}
	return nil, nil
}

func (f *fakeRecords) IncrementDownloads(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("IncrementDownloads"); err != nil {
		return false, err
	}
	for _, r := range f.rows {
		if r.ID == id {
			r.Downloads++
			return true, nil
		}
	}
	return false, nil
}

// apply round-trips custom data through JSON, the way the database does.
func apply(a *models.Asset, fields store.AssetFields) {
	a.FileName = fields.FileName
	a.FilePath = nil
	if fields.FilePath != nil {
		p := *fields.FilePath
		a.FilePath = &p
	}
	a.FileSize = fields.FileSize
	raw, err := json.Marshal(fields.CustomData)
	if err != nil {
		panic(err)
	}
	var cd models.CustomData
	if err := json.Unmarshal(raw, &cd); err != nil {
		panic(err)
	}
	a.CustomData = cd
}

func (f *fakeRecords) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// fakeArtifacts is an in-memory ArtifactStore.
type fakeArtifacts struct {
	mu      sync.Mutex
	files   map[string][]byte
	seq     int
	saveErr error
	readErr error
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{files: map[string][]byte{}}
}

func (f *fakeArtifacts) Save(_ context.Context, data []byte, fileName, userID string) (storage.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return storage.File{}, f.saveErr
	}
	f.seq++
	name := fmt.Sprintf("%d-%s", f.seq, fileName)
	p := "assets/" + userID + "/" + name
	f.files[p] = append([]byte(nil), data...)
	return storage.File{FilePath: p, FileName: name, FileSize: int64(len(data))}, nil
}

func (f *fakeArtifacts) Read(_ context.Context, filePath string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	data, ok := f.files[filePath]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (f *fakeArtifacts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// fakeBackend records the markup and options it was asked to convert.
type fakeBackend struct {
	mu     sync.Mutex
	calls  int
	markup string
	opts   pdf.PageOptions
	err    error
}

func (f *fakeBackend) Render(_ context.Context, markup string, opts pdf.PageOptions) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.markup = markup
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 " + fmt.Sprint(len(markup))), nil
}

// fakePreviews is an in-memory PreviewCache.
type fakePreviews struct {
	mu          sync.Mutex
	entries     map[string][]byte
	hits        int
	invalidated []string
}

func newFakePreviews() *fakePreviews {
	return &fakePreviews{entries: map[string][]byte{}}
}

func (f *fakePreviews) Get(_ context.Context, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	if ok {
		f.hits++
	}
	return v, ok
}

func (f *fakePreviews) Set(_ context.Context, key string, html []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = html
}

func (f *fakePreviews) InvalidateUser(_ context.Context, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, userID)
	f.entries = map[string][]byte{}
}

var errBoom = errors.New("boom")
