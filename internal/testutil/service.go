package testutil

import (
	apppredictions "github.com/preston-bernstein/nhl-odds-service/internal/app/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/odds"
	"github.com/preston-bernstein/nhl-odds-service/internal/prediction"
	"github.com/preston-bernstein/nhl-odds-service/internal/teststubs"
)

// NewOrchestrator wires an orchestrator over stub with default weights and margin.
func NewOrchestrator(stub *teststubs.StubProvider) *prediction.Orchestrator {
	return prediction.New(stub, nil, nil, odds.NewBook(odds.DefaultMargin))
}

// NewPredictionService builds a prediction service backed by stub, with no cache or archive.
func NewPredictionService(stub *teststubs.StubProvider, opts ...apppredictions.Option) *apppredictions.Service {
	return apppredictions.NewService(NewOrchestrator(stub), opts...)
}

// ProviderWithSlate returns a stub provider scheduling the given games.
func ProviderWithSlate(slate ...games.Game) *teststubs.StubProvider {
	return &teststubs.StubProvider{Games: slate}
}
