package providers

import (
	"testing"

	"github.com/preston-bernstein/nhl-odds-service/internal/teststubs"
)

func TestStubProviderImplementsDataProvider(t *testing.T) {
	var _ DataProvider = (*teststubs.StubProvider)(nil)
}
