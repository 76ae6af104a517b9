package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// --- MockDecoder ---

// MockDecoder returns canned dimensions keyed by payload content
type MockDecoder struct {
	mu       sync.Mutex
	sizes    map[string]domain.Dimensions
	gates    map[string]chan struct{}
	calls    int
	failWith error
}

// NewMockDecoder creates a decoder with no known payloads
func NewMockDecoder() *MockDecoder {
	return &MockDecoder{
		sizes: make(map[string]domain.Dimensions),
		gates: make(map[string]chan struct{}),
	}
}

// SetDimensions registers the dimensions reported for a payload
func (m *MockDecoder) SetDimensions(data []byte, dims domain.Dimensions) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes[string(data)] = dims
}

// Block makes decoding of data wait until the returned release func is called
func (m *MockDecoder) Block(data []byte) (release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gate := make(chan struct{})
	m.gates[string(data)] = gate
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// SetShouldFail forces every decode to return err
func (m *MockDecoder) SetShouldFail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MockDecoder) DecodeDimensions(ctx context.Context, data []byte) (domain.Dimensions, error) {
	m.mu.Lock()
	m.calls++
	gate := m.gates[string(data)]
	failWith := m.failWith
	dims, ok := m.sizes[string(data)]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.Dimensions{}, ctx.Err()
		}
	}

	if failWith != nil {
		return domain.Dimensions{}, failWith
	}
	if !ok {
		return domain.Dimensions{}, fmt.Errorf("mock decoder: unknown payload")
	}
	return dims, nil
}

// Calls returns how many decodes were attempted
func (m *MockDecoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- MockPreviewStore ---

// MockPreviewStore hands out sequential tokens and tracks which are live
type MockPreviewStore struct {
	mu      sync.Mutex
	next    int
	live    map[domain.PreviewToken]domain.Slot
	revoked []domain.PreviewToken
}

func NewMockPreviewStore() *MockPreviewStore {
	return &MockPreviewStore{
		live: make(map[domain.PreviewToken]domain.Slot),
	}
}

func (m *MockPreviewStore) Create(ctx context.Context, slot domain.Slot, file *domain.File) (domain.PreviewToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	token := domain.PreviewToken(fmt.Sprintf("preview-%d", m.next))
	m.live[token] = slot
	return token, nil
}

func (m *MockPreviewStore) Resolve(token domain.PreviewToken) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live[token]; !ok {
		return "", fmt.Errorf("preview not found: %s", token)
	}
	return "/mock/previews/" + string(token) + ".png", nil
}

func (m *MockPreviewStore) Revoke(token domain.PreviewToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live[token]; ok {
		delete(m.live, token)
		m.revoked = append(m.revoked, token)
	}
	return nil
}

// Live returns the number of tokens not yet revoked
func (m *MockPreviewStore) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// IsLive reports whether token is still valid
func (m *MockPreviewStore) IsLive(token domain.PreviewToken) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live[token]
	return ok
}

// GetRevoked returns the revoked tokens in revocation order
func (m *MockPreviewStore) GetRevoked() []domain.PreviewToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PreviewToken, len(m.revoked))
	copy(out, m.revoked)
	return out
}

// --- MockCatalog ---

type MockCatalog struct {
	mu       sync.Mutex
	products []domain.Product
	calls    int
}

func NewMockCatalog(products ...domain.Product) *MockCatalog {
	return &MockCatalog{products: products}
}

func (m *MockCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *MockCatalog) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- MockUserDirectory ---

type MockUserDirectory struct {
	users map[string]string
}

func NewMockUserDirectory(users map[string]string) *MockUserDirectory {
	return &MockUserDirectory{users: users}
}

func (m *MockUserDirectory) Match(ctx context.Context, creds domain.LoginCredentials) (bool, error) {
	pw, ok := m.users[creds.Username]
	return ok && pw == creds.Password, nil
}
