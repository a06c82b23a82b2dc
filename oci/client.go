// Package oci pushes generated documents to OCI registries as artifacts,
// using the plain registry v2 HTTP flow: HEAD blob, POST upload session,
// PUT blob, PUT manifest.
package oci

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spdxbridge/sdg/common"
	"github.com/spdxbridge/sdg/settings"
)

// Config holds everything one push needs to reach a registry.
type Config struct {
	Registry string // registry and repository, like "ghcr.io/org/sboms"
	Tag      string
	Username string
	Password string
	Insecure bool // allow plain HTTP when the reference has no scheme
}

// Client runs OCI registry operations against one configured repository.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Transport: settings.Global.ConfiguredHttpTransport(),
			Timeout:   60 * time.Second,
		},
	}
}

// EnvironmentCredentials are the fallback when no credential flags are
// given: OCI_USERNAME/OCI_PASSWORD first, DOCKER_USERNAME/DOCKER_PASSWORD
// second.
func EnvironmentCredentials() (string, string) {
	username := os.Getenv("OCI_USERNAME")
	if username == "" {
		username = os.Getenv("DOCKER_USERNAME")
	}
	password := os.Getenv("OCI_PASSWORD")
	if password == "" {
		password = os.Getenv("DOCKER_PASSWORD")
	}
	return username, password
}

// NewClientFromEnv builds a client with credentials taken from the
// environment.
func NewClientFromEnv(registry, tag string) *Client {
	username, password := EnvironmentCredentials()
	return NewClient(Config{
		Registry: registry,
		Tag:      tag,
		Username: username,
		Password: password,
	})
}

// PushResult tells where the pushed artifact ended up.
type PushResult struct {
	Digest    string `json:"digest"`
	Tag       string `json:"tag"`
	Registry  string `json:"registry"`
	MediaType string `json:"mediaType"`
}

type ociManifest struct {
	SchemaVersion int               `json:"schemaVersion"`
	MediaType     string            `json:"mediaType"`
	Config        ociDescriptor     `json:"config"`
	Layers        []ociDescriptor   `json:"layers"`
	Annotations   map[string]string `json:"annotations,omitempty"`
}

type ociDescriptor struct {
	MediaType   string            `json:"mediaType"`
	Digest      string            `json:"digest"`
	Size        int64             `json:"size"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// ParseReference splits "host/repo:tag" into the registry part and the
// tag. A missing tag means "latest". A colon before the last slash is a
// port, not a tag.
func ParseReference(reference string) (string, string, error) {
	if len(strings.TrimSpace(reference)) == 0 {
		return "", "", errors.New("empty registry reference")
	}
	cut := strings.LastIndex(reference, ":")
	if cut > strings.LastIndex(reference, "/") {
		return reference[:cut], reference[cut+1:], nil
	}
	return reference, "latest", nil
}

// Push uploads one document as an OCI artifact: an empty config blob, a
// single layer carrying the content, and a manifest tying them together
// under the configured tag. The title lands in the layer annotations, so
// registry UIs show the original file name.
func (c *Client) Push(ctx context.Context, content []byte, mediaType, title string) (*PushResult, error) {
	registryBase, repository, err := parseRegistryURL(c.config.Registry, c.config.Insecure)
	if err != nil {
		return nil, fmt.Errorf("invalid registry reference: %w", err)
	}

	common.Debug("Pushing document to %s/%s:%s", registryBase, repository, c.config.Tag)

	contentDigest := calculateDigest(content)
	emptyConfig := []byte("{}")
	configDigest := calculateDigest(emptyConfig)

	authorization, err := c.authenticate(ctx, registryBase, repository)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	err = c.uploadBlob(ctx, registryBase, repository, emptyConfig, configDigest, authorization)
	if err != nil {
		return nil, fmt.Errorf("failed to upload config blob: %w", err)
	}

	err = c.uploadBlob(ctx, registryBase, repository, content, contentDigest, authorization)
	if err != nil {
		return nil, fmt.Errorf("failed to upload content blob: %w", err)
	}

	if len(title) == 0 {
		title = "document"
	}
	manifest := ociManifest{
		SchemaVersion: 2,
		MediaType:     "application/vnd.oci.image.manifest.v1+json",
		Config: ociDescriptor{
			MediaType: "application/vnd.oci.empty.v1+json",
			Digest:    configDigest,
			Size:      int64(len(emptyConfig)),
		},
		Layers: []ociDescriptor{
			{
				MediaType: mediaType,
				Digest:    contentDigest,
				Size:      int64(len(content)),
				Annotations: map[string]string{
					"org.opencontainers.image.title": title,
				},
			},
		},
		Annotations: map[string]string{
			"org.opencontainers.image.created": time.Now().UTC().Format(time.RFC3339),
		},
	}

	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	manifestDigest, err := c.pushManifest(ctx, registryBase, repository, manifestBytes, c.config.Tag, authorization)
	if err != nil {
		return nil, fmt.Errorf("failed to push manifest: %w", err)
	}

	return &PushResult{
		Digest:    manifestDigest,
		Tag:       c.config.Tag,
		Registry:  c.config.Registry,
		MediaType: mediaType,
	}, nil
}

// parseRegistryURL splits a registry reference into the base URL and the
// repository path. An explicit scheme always wins; without one, insecure
// selects plain HTTP.
func parseRegistryURL(registryURL string, insecure bool) (string, string, error) {
	url := registryURL
	protocol := "https://"
	if insecure {
		protocol = "http://"
	}
	if strings.HasPrefix(url, "https://") {
		protocol = "https://"
		url = strings.TrimPrefix(url, "https://")
	} else if strings.HasPrefix(url, "http://") {
		protocol = "http://"
		url = strings.TrimPrefix(url, "http://")
		common.Debug("WARNING: using insecure HTTP connection to registry")
	}

	parts := strings.SplitN(url, "/", 2)
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return "", "", fmt.Errorf("invalid registry reference, expected 'registry/repository'")
	}

	return protocol + parts[0], parts[1], nil
}

func calculateDigest(content []byte) string {
	hash := sha256.Sum256(content)
	return fmt.Sprintf("sha256:%x", hash)
}

// authenticate probes the /v2/ endpoint and produces the Authorization
// header value for the rest of the push. Bearer challenges go through the
// registry's token service; anything else falls back to basic auth.
func (c *Client) authenticate(ctx context.Context, registryBase, repository string) (string, error) {
	if c.config.Username == "" || c.config.Password == "" {
		return "", nil
	}

	basic := "Basic " + base64.StdEncoding.EncodeToString([]byte(c.config.Username+":"+c.config.Password))

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/v2/", registryBase), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return "", nil
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return "", fmt.Errorf("unexpected response from registry: %d", resp.StatusCode)
	}

	challenge := resp.Header.Get("WWW-Authenticate")
	if !strings.HasPrefix(challenge, "Bearer ") {
		return basic, nil
	}
	return c.exchangeToken(ctx, challenge, repository, basic)
}

// exchangeToken turns a Bearer challenge into a token by calling the
// advertised realm with the basic credentials.
func (c *Client) exchangeToken(ctx context.Context, challenge, repository, basic string) (string, error) {
	fields := parseChallenge(challenge)
	realm := fields["realm"]
	if len(realm) == 0 {
		return basic, nil
	}
	service := fields["service"]
	scope := fields["scope"]
	if len(scope) == 0 {
		scope = fmt.Sprintf("repository:%s:pull,push", repository)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", realm, nil)
	if err != nil {
		return "", err
	}
	query := req.URL.Query()
	if len(service) > 0 {
		query.Set("service", service)
	}
	query.Set("scope", scope)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", basic)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed with status %d", resp.StatusCode)
	}

	reply := struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}{}
	err = json.NewDecoder(resp.Body).Decode(&reply)
	if err != nil {
		return "", err
	}
	token := reply.Token
	if len(token) == 0 {
		token = reply.AccessToken
	}
	if len(token) == 0 {
		return "", errors.New("token service reply carried no token")
	}
	return "Bearer " + token, nil
}

// parseChallenge reads the key="value" pairs of a WWW-Authenticate header.
func parseChallenge(challenge string) map[string]string {
	fields := make(map[string]string)
	body := strings.TrimPrefix(challenge, "Bearer ")
	for _, part := range strings.Split(body, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		fields[key] = strings.Trim(value, `"`)
	}
	return fields
}

func (c *Client) uploadBlob(ctx context.Context, registryBase, repository string, content []byte, digest, authorization string) error {
	exists, err := c.blobExists(ctx, registryBase, repository, digest, authorization)
	if err != nil {
		return err
	}
	if exists {
		common.Debug("Blob %s already exists, skipping upload.", digest)
		return nil
	}

	initURL := fmt.Sprintf("%s/v2/%s/blobs/uploads/", registryBase, repository)
	req, err := http.NewRequestWithContext(ctx, "POST", initURL, nil)
	if err != nil {
		return err
	}
	c.addAuth(req, authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to initiate upload: status %d, body: %s", resp.StatusCode, string(body))
	}

	uploadURL := resp.Header.Get("Location")
	if uploadURL == "" {
		return errors.New("no upload location returned")
	}
	if !strings.HasPrefix(uploadURL, "http") {
		uploadURL = registryBase + uploadURL
	}
	if strings.Contains(uploadURL, "?") {
		uploadURL = uploadURL + "&digest=" + digest
	} else {
		uploadURL = uploadURL + "?digest=" + digest
	}

	req, err = http.NewRequestWithContext(ctx, "PUT", uploadURL, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Content-Length", fmt.Sprintf("%d", len(content)))
	c.addAuth(req, authorization)

	resp, err = c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to upload blob: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Client) blobExists(ctx context.Context, registryBase, repository, digest, authorization string) (bool, error) {
	url := fmt.Sprintf("%s/v2/%s/blobs/%s", registryBase, repository, digest)
	req, err := http.NewRequestWithContext(ctx, "HEAD", url, nil)
	if err != nil {
		return false, err
	}
	c.addAuth(req, authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

func (c *Client) pushManifest(ctx context.Context, registryBase, repository string, manifest []byte, tag, authorization string) (string, error) {
	url := fmt.Sprintf("%s/v2/%s/manifests/%s", registryBase, repository, tag)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(manifest))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/vnd.oci.image.manifest.v1+json")
	c.addAuth(req, authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to push manifest: status %d, body: %s", resp.StatusCode, string(body))
	}

	digest := resp.Header.Get("Docker-Content-Digest")
	if digest == "" {
		digest = calculateDigest(manifest)
	}

	return digest, nil
}

func (c *Client) addAuth(req *http.Request, authorization string) {
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
}
