package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nfrund/botsamples/internal/activity"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultTenant is used for multi-tenant bot registrations.
	DefaultTenant = "botframework.com"
	// Scope requested for connector tokens.
	Scope = "https://api.botframework.com/.default"

	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4096
)

// Credentials identify the bot registration used to call the connector.
type Credentials struct {
	AppID       string
	AppPassword string
	TenantID    string
}

// Empty reports whether no credentials were configured, which is the case
// when developing against the emulator.
func (c Credentials) Empty() bool {
	return c.AppID == "" || c.AppPassword == ""
}

// TokenURL returns the OAuth2 token endpoint for the credentials' tenant.
func (c Credentials) TokenURL() string {
	tenant := c.TenantID
	if tenant == "" {
		tenant = DefaultTenant
	}
	return fmt.Sprintf(tokenURLFormat, tenant)
}

// Client posts outbound activities to a channel's connector service.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client that uses httpClient as is. A nil httpClient gets a
// default client with a timeout.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: httpClient,
		logger:     slog.Default().With("component", "connector"),
	}
}

// NewWithCredentials creates a client that authenticates with the OAuth2
// client-credentials flow when credentials are present, and an anonymous
// client otherwise.
func NewWithCredentials(ctx context.Context, creds Credentials) *Client {
	if creds.Empty() {
		return New(nil)
	}
	cc := clientcredentials.Config{
		ClientID:     creds.AppID,
		ClientSecret: creds.AppPassword,
		TokenURL:     creds.TokenURL(),
		Scopes:       []string{Scope},
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = defaultTimeout
	return New(httpClient)
}

// Send delivers an activity, as a reply when it carries a replyToId.
func (c *Client) Send(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error) {
	if a.ReplyToID != "" {
		return c.ReplyToActivity(ctx, a)
	}
	return c.SendToConversation(ctx, a)
}

// SendToConversation appends an activity to the end of its conversation.
func (c *Client) SendToConversation(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error) {
	endpoint, err := activitiesURL(a, "")
	if err != nil {
		return nil, err
	}
	return c.post(ctx, endpoint, a)
}

// ReplyToActivity sends an activity as a reply to a.ReplyToID.
func (c *Client) ReplyToActivity(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error) {
	endpoint, err := activitiesURL(a, a.ReplyToID)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, endpoint, a)
}

func activitiesURL(a *activity.Activity, replyTo string) (string, error) {
	if a.ServiceURL == "" {
		return "", ErrNoServiceURL
	}
	if a.Conversation == nil || a.Conversation.ID == "" {
		return "", ErrNoConversation
	}
	base, err := url.Parse(strings.TrimRight(a.ServiceURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid service url %q: %w", a.ServiceURL, err)
	}

	path := "/v3/conversations/" + url.PathEscape(a.Conversation.ID) + "/activities"
	if replyTo != "" {
		path += "/" + url.PathEscape(replyTo)
	}
	return base.String() + path, nil
}

func (c *Client) post(ctx context.Context, endpoint string, a *activity.Activity) (*activity.ResourceResponse, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build connector request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	if c.logger.Enabled(ctx, slog.LevelDebug) {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "    "); err != nil {
			pretty.Reset()
			pretty.Write(body)
		}
		c.logger.Debug("Outbound request", "request_line", http.MethodPost+" "+endpoint, "body", pretty.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connector request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(msg), URL: endpoint}
	}

	var rr activity.ResourceResponse
	// Some channels answer 200/201 with an empty body.
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode connector response: %w", err)
	}

	c.logger.Debug("Activity delivered", "url", endpoint, "type", a.Type, "resource_id", rr.ID)
	return &rr, nil
}
