package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"gopkg.in/yaml.v3"
)

// SecretsFile reads a key from a local YAML secrets file. The value may be a
// mapping (the service account fields inline) or a string holding the JSON
// key.
type SecretsFile struct {
	Path string
	Key  string
}

func (s *SecretsFile) Name() string {
	return "secrets-file:" + s.Path
}

func (s *SecretsFile) Lookup(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}

	var secrets map[string]interface{}
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}

	key := s.Key
	if key == "" {
		key = SecretKey
	}

	switch v := secrets[key].(type) {
	case nil:
		return nil, fmt.Errorf("key %q not found in %s", key, s.Path)
	case string:
		return []byte(v), nil
	case map[string]interface{}:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("key %q in %s has unsupported type %T", key, s.Path, v)
	}
}

// AWSSecret reads the key from AWS Secrets Manager.
type AWSSecret struct {
	SecretID string
	Svc      secretsmanageriface.SecretsManagerAPI
}

func NewAWSSecret(secretID, region string) (*AWSSecret, error) {
	cfg := aws.NewConfig().WithMaxRetries(3)
	if region != "" {
		cfg = cfg.WithRegion(region)
	}

	s, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return &AWSSecret{
		SecretID: secretID,
		Svc:      secretsmanager.New(s),
	}, nil
}

func (a *AWSSecret) Name() string {
	return "aws-secret:" + a.SecretID
}

func (a *AWSSecret) Lookup(ctx context.Context) ([]byte, error) {
	out, err := a.Svc.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(a.SecretID),
	})
	if err != nil {
		return nil, err
	}

	if s := aws.StringValue(out.SecretString); s != "" {
		return []byte(s), nil
	}
	if len(out.SecretBinary) > 0 {
		return out.SecretBinary, nil
	}

	return nil, errors.New("secret has no value")
}

// File reads a service account key file from disk.
type File struct {
	Path string
}

func (f *File) Name() string {
	return "file:" + f.Path
}

func (f *File) Lookup(ctx context.Context) ([]byte, error) {
	return os.ReadFile(f.Path)
}
