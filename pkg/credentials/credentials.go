// Package credentials finds the service account used to reach the Google
// backends. Sources are tried in order and the first usable one wins.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// SecretKey is the entry looked up in secret stores.
	SecretKey = "service_account"

	DefaultSecretsFile    = ".secrets.yaml"
	DefaultCredentialFile = "service_account.json"
)

var ErrCredentialsUnavailable = errors.New("no credentials found")

// Credentials is a service account key in its JSON form.
type Credentials struct {
	JSON      []byte
	ProjectID string
	Source    string
}

// Source is one place credentials may come from.
type Source interface {
	Name() string
	Lookup(ctx context.Context) ([]byte, error)
}

type Resolver struct {
	sources []Source
	log     *logrus.Entry
}

func NewResolver(sources ...Source) *Resolver {
	return &Resolver{
		sources: sources,
		log:     logrus.WithField("component", "credentials"),
	}
}

// Resolve returns the credentials of the first source that yields a valid
// service account key. Failures of individual sources are logged and
// skipped; only running out of sources is an error.
func (r *Resolver) Resolve(ctx context.Context) (*Credentials, error) {
	for _, s := range r.sources {
		data, err := s.Lookup(ctx)
		if err != nil {
			r.log.WithError(err).WithField("source", s.Name()).Debug("credential source unavailable")
			continue
		}

		creds, err := parse(data)
		if err != nil {
			r.log.WithError(err).WithField("source", s.Name()).Warn("credential source holds an unusable key")
			continue
		}

		creds.Source = s.Name()
		r.log.WithField("source", s.Name()).Info("using credentials")
		return creds, nil
	}

	return nil, fmt.Errorf("tried %d sources: %w", len(r.sources), ErrCredentialsUnavailable)
}

type serviceAccountKey struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

func parse(data []byte) (*Credentials, error) {
	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("decoding service account key: %w", err)
	}
	if key.ClientEmail == "" {
		return nil, errors.New("service account key has no client_email")
	}

	return &Credentials{
		JSON:      data,
		ProjectID: key.ProjectID,
	}, nil
}
