package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/droidsdk/pkg/catalog"
	"github.com/arthur-debert/droidsdk/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockInstaller is a testify mock of reconcile.Installer
type MockInstaller struct {
	mock.Mock
}

func (m *MockInstaller) Install(ctx context.Context, e catalog.Entry) (types.Outcome, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(types.Outcome), args.Error(1)
}

// StaticLister returns catalogs parsed from listings in order; the last
// listing repeats once the others are used up
type StaticLister struct {
	mu       sync.Mutex
	listings []string
	calls    int
	// Err is returned by every List when set
	Err error
}

// NewStaticLister creates a lister over the given listings
func NewStaticLister(listings ...string) *StaticLister {
	return &StaticLister{listings: listings}
}

func (l *StaticLister) List(ctx context.Context) (*catalog.Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.Err != nil {
		return nil, l.Err
	}
	if len(l.listings) == 0 {
		return catalog.Parse(""), nil
	}
	text := l.listings[0]
	if len(l.listings) > 1 {
		l.listings = l.listings[1:]
	}
	return catalog.Parse(text), nil
}

// Calls returns how many listings were produced
func (l *StaticLister) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
