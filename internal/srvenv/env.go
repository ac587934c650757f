package srvenv

import (
	"context"

	"github.com/go-sod/sodkit/internal/database"
	"github.com/go-sod/sodkit/internal/detector"
	reportdb "github.com/go-sod/sodkit/internal/report/database"
)

type Option func(*Env) *Env

func New(opts ...Option) *Env {
	env := &Env{detectors: make(map[detector.Type]detector.ProvideFn)}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type Env struct {
	database  *database.DB
	types     []detector.Type
	detectors map[detector.Type]detector.ProvideFn
}

// Detectors returns the configured providers keyed by type.
func (s *Env) Detectors() map[detector.Type]detector.ProvideFn {
	return s.detectors
}

// Types lists the configured detector types in configuration order.
func (s *Env) Types() []detector.Type {
	return s.types
}

// Reports returns the report store, nil without a database.
func (s *Env) Reports() *reportdb.DB {
	if s.database == nil {
		return nil
	}
	return reportdb.New(s.database)
}

func WithDetector(t detector.Type, fn detector.ProvideFn) Option {
	return func(s *Env) *Env {
		if _, ok := s.detectors[t]; !ok {
			s.types = append(s.types, t)
		}
		s.detectors[t] = fn
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *Env) *Env {
		s.database = db
		return s
	}
}

func (s *Env) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
