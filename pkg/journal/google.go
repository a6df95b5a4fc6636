package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// DocsConfig configures the Google Docs exporter.
type DocsConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "http://localhost:8090/auth/callback"
	TokenPath    string // Path to store the OAuth token (default: ~/.waypath/google_token.json)
}

// DocsClient handles OAuth2 authentication and Google Docs operations for
// transcript export.
type DocsClient struct {
	config    *oauth2.Config
	tokenPath string

	mu      sync.RWMutex
	token   *oauth2.Token
	service *docs.Service
}

// NewDocsClient creates an exporter. An existing token on disk is loaded
// and used; otherwise the caller must run the OAuth flow via AuthURL and
// HandleCallback.
func NewDocsClient(cfg DocsConfig) (*DocsClient, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}
	if cfg.RedirectURL == "" {
		cfg.RedirectURL = "http://localhost:8090/auth/callback"
	}
	if cfg.TokenPath == "" {
		homeDir, _ := os.UserHomeDir()
		cfg.TokenPath = filepath.Join(homeDir, ".waypath", "google_token.json")
	}

	c := &DocsClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/documents",
				"https://www.googleapis.com/auth/drive.file",
			},
			Endpoint: google.Endpoint,
		},
		tokenPath: cfg.TokenPath,
	}

	if err := c.loadToken(); err == nil {
		if err := c.initService(); err != nil {
			// Token expired; re-auth needed.
			c.token = nil
		}
	}
	return c, nil
}

// Authenticated returns true if the client has a valid token.
func (c *DocsClient) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != nil && c.token.Valid()
}

// AuthURL returns the OAuth2 authorization URL for user consent.
func (c *DocsClient) AuthURL() string {
	return c.config.AuthCodeURL("waypath-export", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// HandleCallback exchanges the authorization code for a token and stores it.
func (c *DocsClient) HandleCallback(code string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if err := c.saveToken(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return c.initService()
}

// CreateDoc creates a new Google Doc with the given title and content and
// returns its document ID.
func (c *DocsClient) CreateDoc(title, content string) (string, error) {
	c.mu.RLock()
	service := c.service
	c.mu.RUnlock()

	if service == nil {
		return "", fmt.Errorf("not authenticated - run the OAuth flow first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := service.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	if content != "" {
		requests := []*docs.Request{
			{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     content,
				},
			},
		}
		_, err = service.Documents.BatchUpdate(created.DocumentId, &docs.BatchUpdateDocumentRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			return created.DocumentId, fmt.Errorf("created doc but failed to add content: %w", err)
		}
	}

	return created.DocumentId, nil
}

// DocURL returns the URL to view a Google Doc.
func DocURL(docID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", docID)
}

func (c *DocsClient) initService() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	ctx := context.Background()
	service, err := docs.NewService(ctx, option.WithHTTPClient(c.config.Client(ctx, c.token)))
	if err != nil {
		return fmt.Errorf("failed to create docs service: %w", err)
	}
	c.service = service
	return nil
}

func (c *DocsClient) loadToken() error {
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = &token
	c.mu.Unlock()
	return nil
}

func (c *DocsClient) saveToken() error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == nil {
		return fmt.Errorf("no token to save")
	}
	if err := os.MkdirAll(filepath.Dir(c.tokenPath), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.tokenPath, data, 0600)
}
