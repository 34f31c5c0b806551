// Package notify delivers task completion and failure messages to a set of
// destination URLs (mailto:, telegram:, slack:, webhook+http://...), routed by
// scheme via go-pkgz/notify.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/notify"
	"gopkg.in/yaml.v3"
)

// Params which defines notification destinations and delivery timeout
type Params struct {
	OnCompletion []string // destination urls notified on successful tasks
	OnFailure    []string // destination urls notified on failed tasks
	ConfigFile   string   // optional yaml file with extra destinations
	Timeout      time.Duration
}

// Service delivers notifications to all registered destinations
type Service struct {
	onCompletion []string
	onFailure    []string
	timeout      time.Duration

	sender func(ctx context.Context, destination, text string) error // set to notify.Send, overridable in tests
}

// destinationsFile is the yaml layout of Params.ConfigFile
type destinationsFile struct {
	OnCompletion []string `yaml:"on_completion"`
	OnFailure    []string `yaml:"on_failure"`
}

// NewService makes notification service. Returns nil service (and no error)
// if no destinations defined, caller treats nil as "notifications disabled".
func NewService(p Params) (*Service, error) {
	res := Service{
		onCompletion: p.OnCompletion,
		onFailure:    p.OnFailure,
		timeout:      p.Timeout,
		sender:       notify.Send,
	}
	if res.timeout <= 0 {
		res.timeout = 10 * time.Second
	}

	if p.ConfigFile != "" {
		data, err := os.ReadFile(p.ConfigFile) // nolint gosec // file path from user config
		if err != nil {
			return nil, fmt.Errorf("can't read notify config %s: %w", p.ConfigFile, err)
		}
		var df destinationsFile
		if err := yaml.Unmarshal(data, &df); err != nil {
			return nil, fmt.Errorf("can't parse notify config %s: %w", p.ConfigFile, err)
		}
		res.onCompletion = append(res.onCompletion, df.OnCompletion...)
		res.onFailure = append(res.onFailure, df.OnFailure...)
	}

	if len(res.onCompletion) == 0 && len(res.onFailure) == 0 {
		return nil, nil
	}
	log.Printf("[INFO] notification service created, on-completion:%d, on-failure:%d destinations",
		len(res.onCompletion), len(res.onFailure))
	return &res, nil
}

// SendCompletion sends message to all on-completion destinations
func (s *Service) SendCompletion(ctx context.Context, msg string) error {
	return s.send(ctx, s.onCompletion, msg)
}

// SendFailure sends message to all on-failure destinations
func (s *Service) SendFailure(ctx context.Context, msg string) error {
	return s.send(ctx, s.onFailure, msg)
}

// IsOnCompletion indicates completion notifications are enabled
func (s *Service) IsOnCompletion() bool { return len(s.onCompletion) > 0 }

// IsOnFailure indicates failure notifications are enabled
func (s *Service) IsOnFailure() bool { return len(s.onFailure) > 0 }

// send delivers msg to each destination, collects errors and keeps going so a
// single broken destination doesn't block the rest
func (s *Service) send(ctx context.Context, destinations []string, msg string) error {
	var errs []error
	for _, dest := range destinations {
		dctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.sender(dctx, dest, msg)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to send to %s: %w", dest, err))
			continue
		}
		log.Printf("[DEBUG] notification sent to %s", dest)
	}
	return errors.Join(errs...)
}
