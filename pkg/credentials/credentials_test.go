package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

const testKey = `{"type":"service_account","project_id":"pricing-test","client_email":"form@pricing-test.iam.gserviceaccount.com"}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolveFromSecretsFileMapping(t *testing.T) {
	secrets := writeFile(t, "secrets.yaml", `
service_account:
  type: service_account
  project_id: pricing-test
  client_email: form@pricing-test.iam.gserviceaccount.com
`)

	r := NewResolver(&SecretsFile{Path: secrets}, &File{Path: "does-not-exist.json"})
	creds, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if creds.ProjectID != "pricing-test" {
		t.Errorf("project = %q, want pricing-test", creds.ProjectID)
	}
	if creds.Source != "secrets-file:"+secrets {
		t.Errorf("source = %q", creds.Source)
	}
}

func TestResolveFromSecretsFileString(t *testing.T) {
	secrets := writeFile(t, "secrets.yaml", "service_account: '"+testKey+"'\n")

	creds, err := NewResolver(&SecretsFile{Path: secrets}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if string(creds.JSON) != testKey {
		t.Errorf("json = %s", creds.JSON)
	}
}

func TestResolveFallsBackToFile(t *testing.T) {
	secrets := writeFile(t, "secrets.yaml", "other: value\n")
	keyFile := writeFile(t, "service_account.json", testKey)

	creds, err := NewResolver(&SecretsFile{Path: secrets}, &File{Path: keyFile}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if creds.Source != "file:"+keyFile {
		t.Errorf("source = %q, want file source", creds.Source)
	}
}

func TestResolveSkipsUnusableKey(t *testing.T) {
	bad := writeFile(t, "bad.json", `{"type":"service_account"}`)
	good := writeFile(t, "good.json", testKey)

	creds, err := NewResolver(&File{Path: bad}, &File{Path: good}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if creds.Source != "file:"+good {
		t.Errorf("source = %q, want the good file", creds.Source)
	}
}

func TestResolveNoSources(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(
		&SecretsFile{Path: filepath.Join(dir, ".secrets.yaml")},
		&File{Path: filepath.Join(dir, "service_account.json")},
	)

	creds, err := r.Resolve(context.Background())
	if !errors.Is(err, ErrCredentialsUnavailable) {
		t.Fatalf("err = %v, want ErrCredentialsUnavailable", err)
	}
	if creds != nil {
		t.Error("expected nil credentials")
	}
}

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	value string
	err   error
	asked string
}

func (f *fakeSecretsManager) GetSecretValueWithContext(ctx aws.Context, in *secretsmanager.GetSecretValueInput, opts ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	f.asked = aws.StringValue(in.SecretId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.value)}, nil
}

func TestResolveFromAWSSecret(t *testing.T) {
	svc := &fakeSecretsManager{value: testKey}
	r := NewResolver(&AWSSecret{SecretID: "visit-form/service-account", Svc: svc})

	creds, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if svc.asked != "visit-form/service-account" {
		t.Errorf("secret id = %q", svc.asked)
	}
	if creds.ProjectID != "pricing-test" {
		t.Errorf("project = %q", creds.ProjectID)
	}
}

func TestResolveAWSErrorFallsThrough(t *testing.T) {
	svc := &fakeSecretsManager{err: errors.New("access denied")}
	keyFile := writeFile(t, "service_account.json", testKey)

	creds, err := NewResolver(&AWSSecret{SecretID: "x", Svc: svc}, &File{Path: keyFile}).Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if creds.Source != "file:"+keyFile {
		t.Errorf("source = %q", creds.Source)
	}
}
