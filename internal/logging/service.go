package logging

import (
	"context"
	"log/slog"
)

// Service is the debug logging capability registered at startup. It owns
// the rotating log file and closes it on shutdown.
type Service struct {
	logger *Logger
	file   string
}

// NewService wraps a debug logger.
func NewService(l *Logger, file string) *Service {
	return &Service{logger: l, file: file}
}

func (s *Service) Name() string { return "log" }

func (s *Service) Start(context.Context) error {
	s.logger.Info("debug logging enabled", slog.String("file", s.file))
	return nil
}

func (s *Service) Stop(context.Context) error {
	return s.logger.Close()
}
