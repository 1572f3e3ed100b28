// Package app provides service initialization.
package app

import (
	"github.com/guttosm/scoop-service/config"
	"github.com/guttosm/scoop-service/internal/circuitbreaker"
	"github.com/guttosm/scoop-service/internal/client"
	"github.com/guttosm/scoop-service/internal/service"
	"github.com/guttosm/scoop-service/internal/simulator"
)

// ShopAPICircuitBreakerName names the breaker guarding outbound shop API calls.
const ShopAPICircuitBreakerName = "shop_api"

// ServiceComponents holds the shop's business services.
type ServiceComponents struct {
	Cart      *service.CartStore
	Client    *client.Client
	Checkout  *service.CheckoutOrchestrator
	Simulator *simulator.Simulator
	Host      *simulator.HeadlessHost
	// Sink receives domain and request events. Journal is nil when the
	// database is disabled and Sink is then a NopSink.
	Sink    service.EventSink
	Journal *service.AsyncJournal
}

// InitializeServices wires the cart, shop API client, checkout orchestrator
// and session simulator. db may be nil.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	var (
		sink    service.EventSink = service.NopSink{}
		journal *service.AsyncJournal
	)
	if db != nil && db.Journal != nil {
		journal = service.NewAsyncJournal(db.Journal, service.DefaultAsyncJournalConfig())
		sink = journal
	}

	cart := service.NewCartStore(service.WithTaxRate(cfg.Checkout.TaxRate))

	api := client.New(client.Config{
		BaseURL:    cfg.ShopAPI.BaseURL,
		APIVersion: cfg.ShopAPI.APIVersion,
		Timeout:    cfg.ShopAPI.Timeout,
	}, client.WithCircuitBreaker(newShopAPICircuitBreaker(cfg.ShopAPI)))

	checkoutOpts := []service.CheckoutOption{service.WithEventSink(sink)}
	if cfg.Checkout.MinPaymentTokenLength > 0 {
		checkoutOpts = append(checkoutOpts, service.WithMinPaymentTokenLength(cfg.Checkout.MinPaymentTokenLength))
	}
	checkout := service.NewCheckoutOrchestrator(cart, api, checkoutOpts...)

	host := simulator.NewHeadlessHost(checkout)
	sim := simulator.New(cart, host,
		simulator.WithTiming(simulatorTiming(cfg.Simulator)),
		simulator.WithEventSink(sink),
	)

	return &ServiceComponents{
		Cart:      cart,
		Client:    api,
		Checkout:  checkout,
		Simulator: sim,
		Host:      host,
		Sink:      sink,
		Journal:   journal,
	}
}

func newShopAPICircuitBreaker(cfg config.ShopAPIConfig) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             ShopAPICircuitBreakerName,
		OnStateChange:    recordBreakerState,
	})
}

// simulatorTiming fills unset delays from simulator.DefaultTiming.
func simulatorTiming(cfg config.SimulatorConfig) simulator.Timing {
	t := simulator.DefaultTiming()
	if cfg.ShortDelay > 0 {
		t.Short = cfg.ShortDelay
	}
	if cfg.MediumDelay > 0 {
		t.Medium = cfg.MediumDelay
	}
	if cfg.LongDelay > 0 {
		t.Long = cfg.LongDelay
	}
	if cfg.SettleDelay > 0 {
		t.Settle = cfg.SettleDelay
	}
	return t
}

// Stop halts the simulator, waits for in-flight shop API callbacks and
// drains the journal.
func (s *ServiceComponents) Stop() {
	s.Simulator.Stop()
	s.Client.Wait()
	if s.Journal != nil {
		s.Journal.Stop()
	}
}
