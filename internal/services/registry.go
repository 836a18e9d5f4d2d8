// Package services holds the capability services registered against the
// application context at startup (dialogs, URL opening, window state, logging).
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Service is an independently initialized capability.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Registry starts services in registration order and stops them in reverse.
type Registry struct {
	mu      sync.RWMutex
	order   []Service
	byName  map[string]Service
	started []Service
	log     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		byName: make(map[string]Service),
		log:    log.With(slog.String("component", "services")),
	}
}

// Register adds a service. Names must be unique.
func (r *Registry) Register(svc Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := svc.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("service %q already registered", name)
	}
	r.byName[name] = svc
	r.order = append(r.order, svc)
	return nil
}

// Get returns the service registered under name.
func (r *Registry) Get(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.byName[name]
	return svc, ok
}

// Names returns service names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	for i, svc := range r.order {
		names[i] = svc.Name()
	}
	return names
}

// StartAll starts every registered service. If one fails, the services
// already started are stopped again in reverse order.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, svc := range r.order {
		if err := svc.Start(ctx); err != nil {
			r.log.Error("service failed to start", slog.String("service", svc.Name()), slog.Any("error", err))
			stopErr := r.stopStarted(ctx)
			return errors.Join(fmt.Errorf("failed to start %s: %w", svc.Name(), err), stopErr)
		}
		r.started = append(r.started, svc)
		r.log.Info("service started", slog.String("service", svc.Name()))
	}
	return nil
}

// StopAll stops started services in reverse order and returns every error.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopStarted(ctx)
}

func (r *Registry) stopStarted(ctx context.Context) error {
	var errs []error
	for i := len(r.started) - 1; i >= 0; i-- {
		svc := r.started[i]
		if err := svc.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", svc.Name(), err))
		}
	}
	r.started = nil
	return errors.Join(errs...)
}
