package oci

import (
	"os"
	"testing"
)

func TestParseRegistryURL(t *testing.T) {
	tests := []struct {
		url      string
		insecure bool
		wantBase string
		wantRepo string
		wantErr  bool
	}{
		{"ghcr.io/org/sboms", false, "https://ghcr.io", "org/sboms", false},
		{"https://ghcr.io/org/sboms", false, "https://ghcr.io", "org/sboms", false},
		{"http://localhost:5000/test/repo", false, "http://localhost:5000", "test/repo", false},
		{"docker.io/library/nginx", false, "https://docker.io", "library/nginx", false},
		{"localhost:5000/test/repo", true, "http://localhost:5000", "test/repo", false},
		{"https://ghcr.io/org/sboms", true, "https://ghcr.io", "org/sboms", false},
		{"ghcr.io", false, "", "", true},
		{"", false, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			gotBase, gotRepo, err := parseRegistryURL(tt.url, tt.insecure)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseRegistryURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
				return
			}
			if gotBase != tt.wantBase {
				t.Errorf("parseRegistryURL(%q) base = %v, want %v", tt.url, gotBase, tt.wantBase)
			}
			if gotRepo != tt.wantRepo {
				t.Errorf("parseRegistryURL(%q) repo = %v, want %v", tt.url, gotRepo, tt.wantRepo)
			}
		})
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		reference string
		wantBase  string
		wantTag   string
		wantErr   bool
	}{
		{"ghcr.io/org/sboms:v1.0.0", "ghcr.io/org/sboms", "v1.0.0", false},
		{"ghcr.io/org/sboms", "ghcr.io/org/sboms", "latest", false},
		{"localhost:5000/test/repo", "localhost:5000/test/repo", "latest", false},
		{"localhost:5000/test/repo:nightly", "localhost:5000/test/repo", "nightly", false},
		{"", "", "", true},
		{"   ", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.reference, func(t *testing.T) {
			gotBase, gotTag, err := ParseReference(tt.reference)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseReference(%q) error = %v, wantErr %v", tt.reference, err, tt.wantErr)
				return
			}
			if gotBase != tt.wantBase {
				t.Errorf("ParseReference(%q) base = %v, want %v", tt.reference, gotBase, tt.wantBase)
			}
			if gotTag != tt.wantTag {
				t.Errorf("ParseReference(%q) tag = %v, want %v", tt.reference, gotTag, tt.wantTag)
			}
		})
	}
}

func TestCalculateDigest(t *testing.T) {
	content := []byte("hello world")
	digest := calculateDigest(content)

	// SHA256 of "hello world"
	expected := "sha256:b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if digest != expected {
		t.Errorf("calculateDigest() = %v, want %v", digest, expected)
	}
}

func TestParseChallenge(t *testing.T) {
	fields := parseChallenge(`Bearer realm="https://auth.example/token",service="registry.example",scope="repository:a/b:pull,push"`)
	if fields["realm"] != "https://auth.example/token" {
		t.Errorf("realm = %q", fields["realm"])
	}
	if fields["service"] != "registry.example" {
		t.Errorf("service = %q", fields["service"])
	}
	if fields["scope"] != "repository:a/b:pull,push" {
		t.Errorf("scope = %q", fields["scope"])
	}
}

func TestNewClientFromEnv(t *testing.T) {
	// Save original env vars
	origUsername := os.Getenv("OCI_USERNAME")
	origPassword := os.Getenv("OCI_PASSWORD")

	// Clean up after test
	defer func() {
		os.Setenv("OCI_USERNAME", origUsername)
		os.Setenv("OCI_PASSWORD", origPassword)
	}()

	// Set test values
	os.Setenv("OCI_USERNAME", "testuser")
	os.Setenv("OCI_PASSWORD", "testpass")

	client := NewClientFromEnv("ghcr.io/test/repo", "v1.0.0")

	if client.config.Registry != "ghcr.io/test/repo" {
		t.Errorf("Registry = %q, want %q", client.config.Registry, "ghcr.io/test/repo")
	}
	if client.config.Tag != "v1.0.0" {
		t.Errorf("Tag = %q, want %q", client.config.Tag, "v1.0.0")
	}
	if client.config.Username != "testuser" {
		t.Errorf("Username = %q, want %q", client.config.Username, "testuser")
	}
	if client.config.Password != "testpass" {
		t.Errorf("Password = %q, want %q", client.config.Password, "testpass")
	}
}

func TestNewClient(t *testing.T) {
	config := Config{
		Registry: "ghcr.io/test/repo",
		Tag:      "v1.0.0",
		Username: "user",
		Password: "pass",
	}

	client := NewClient(config)

	if client.config.Registry != config.Registry {
		t.Errorf("Registry = %q, want %q", client.config.Registry, config.Registry)
	}
	if client.httpClient == nil {
		t.Error("httpClient should not be nil")
	}
}
