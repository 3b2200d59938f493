package di

import (
	"github.com/bankd/bankd/internal/config"
	"github.com/bankd/bankd/internal/core/bank"
	"github.com/bankd/bankd/internal/core/history"
	"github.com/bankd/bankd/internal/rpc"
)

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{
		container: container,
		config:    cfg,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	p.container.Register(ServiceConfig, p.config)

	p.registerBankBuilders()
	p.registerRPCBuilders()

	return nil
}

// registerBankBuilders registers the journal and bank builders.
func (p *Provider) registerBankBuilders() {
	p.container.RegisterBuilder(ServiceJournal, func(c *Container) (interface{}, error) {
		return history.NewJournal(p.config.Bank.HistoryUsers, p.config.Bank.HistoryPerUser)
	})

	p.container.RegisterBuilder(ServiceBank, func(c *Container) (interface{}, error) {
		journal, err := p.GetJournal()
		if err != nil {
			return nil, err
		}
		return bank.New(
			bank.WithInflightLimit(p.config.Bank.MaxInflight),
			bank.WithJournal(journal),
		), nil
	})
}

// registerRPCBuilders registers the HTTP and WebSocket server builders.
func (p *Provider) registerRPCBuilders() {
	p.container.RegisterBuilder(ServiceRPCServer, func(c *Container) (interface{}, error) {
		server := rpc.NewServer(p.config.Server.RequestTimeout())
		if p.config.RateLimit.Enabled {
			server.UseLimiter(rpc.NewClientLimiter(p.config.RateLimit.RPS, p.config.RateLimit.Burst))
		}
		return server, nil
	})

	p.container.RegisterBuilder(ServiceWSServer, func(c *Container) (interface{}, error) {
		return rpc.NewWebSocketServer(p.config.Server.RequestTimeout()), nil
	})
}

// GetBank returns the bank from the container.
func (p *Provider) GetBank() (*bank.Bank, error) {
	svc, err := p.container.Get(ServiceBank)
	if err != nil {
		return nil, err
	}
	return svc.(*bank.Bank), nil
}

// GetJournal returns the journal from the container.
func (p *Provider) GetJournal() (*history.Journal, error) {
	svc, err := p.container.Get(ServiceJournal)
	if err != nil {
		return nil, err
	}
	return svc.(*history.Journal), nil
}

// GetRPCServer returns the HTTP JSON-RPC server from the container.
func (p *Provider) GetRPCServer() (*rpc.Server, error) {
	svc, err := p.container.Get(ServiceRPCServer)
	if err != nil {
		return nil, err
	}
	return svc.(*rpc.Server), nil
}

// GetWSServer returns the WebSocket server from the container.
func (p *Provider) GetWSServer() (*rpc.WebSocketServer, error) {
	svc, err := p.container.Get(ServiceWSServer)
	if err != nil {
		return nil, err
	}
	return svc.(*rpc.WebSocketServer), nil
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
