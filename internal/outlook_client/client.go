// Package outlook_client fetches mail from a Microsoft 365 mailbox using
// app-only client credentials against Microsoft Graph. The application must
// be registered in Azure AD with the Mail.Read application permission.
package outlook_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	graphBase      = "https://graph.microsoft.com/v1.0"
)

// ErrMailboxRequired is returned when neither the request nor the
// configuration names a mailbox. App-only tokens cannot use /me.
var ErrMailboxRequired = errors.New("mailbox must be provided when using app-only tokens")

// EmailAddress is the sender identity on a Graph message.
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Message is the subset of a Graph mail message the API exposes.
type Message struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    struct {
		EmailAddress EmailAddress `json:"emailAddress"`
	} `json:"from"`
	ReceivedDateTime time.Time `json:"receivedDateTime"`
	BodyPreview      string    `json:"bodyPreview"`
}

// MessageQuery narrows the inbox fetch.
type MessageQuery struct {
	Mailbox         string
	Top             int
	SubjectContains string
	FromAddress     string
}

// Client for fetching mail through Microsoft Graph.
type Client struct {
	tenantID       string
	clientID       string
	clientSecret   string
	defaultMailbox string
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a Graph client from Azure AD app credentials.
func NewClient(tenantID, clientID, clientSecret, defaultMailbox string, logger *zap.Logger) *Client {
	if tenantID == "" || clientID == "" || clientSecret == "" {
		logger.Warn("Azure AD credentials are not fully configured; mail fetching will fail")
	}
	return &Client{
		tenantID:       tenantID,
		clientID:       clientID,
		clientSecret:   clientSecret,
		defaultMailbox: defaultMailbox,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// GetRecentMessages fetches recent inbox messages for the queried mailbox.
func (c *Client) GetRecentMessages(ctx context.Context, q MessageQuery) ([]Message, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	mailbox := q.Mailbox
	if mailbox == "" {
		mailbox = c.defaultMailbox
	}
	if mailbox == "" {
		return nil, ErrMailboxRequired
	}

	top := q.Top
	if top <= 0 {
		top = 10
	}

	params := url.Values{}
	params.Set("$top", strconv.Itoa(top))
	params.Set("$select", "id,subject,from,receivedDateTime,bodyPreview")
	if filter := buildFilter(q.SubjectContains, q.FromAddress); filter != "" {
		params.Set("$filter", filter)
	}

	reqURL := fmt.Sprintf("%s/users/%s/mailFolders/Inbox/messages?%s",
		graphBase, url.PathEscape(mailbox), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Graph messages request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to call graph: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Graph returned non-OK status",
			zap.Int("status", resp.StatusCode), zap.String("mailbox", mailbox))
		return nil, fmt.Errorf("graph api error: status %d", resp.StatusCode)
	}

	var response struct {
		Value []Message `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode graph response: %w", err)
	}

	c.logger.Info("Fetched messages from mailbox",
		zap.String("mailbox", mailbox), zap.Int("count", len(response.Value)))
	return response.Value, nil
}

// getToken obtains an app-only access token from Azure AD.
func (c *Client) getToken(ctx context.Context) (string, error) {
	if c.tenantID == "" || c.clientID == "" || c.clientSecret == "" {
		return "", errors.New("azure ad credentials are not configured")
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("scope", "https://graph.microsoft.com/.default")
	form.Set("grant_type", "client_credentials")

	tokenURL := fmt.Sprintf(tokenURLFormat, c.tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to reach Azure AD token endpoint", zap.Error(err))
		return "", fmt.Errorf("failed to obtain token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Failed to obtain token from Azure AD", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", errors.New("token response contained no access_token")
	}
	return body.AccessToken, nil
}

// buildFilter assembles the OData $filter expression. Graph only supports
// contains() on subject and equality on the sender address here.
func buildFilter(subjectContains, fromAddress string) string {
	var filters []string
	if subjectContains != "" {
		filters = append(filters,
			fmt.Sprintf("contains(subject,'%s')", escapeOData(subjectContains)))
	}
	if fromAddress != "" {
		filters = append(filters,
			fmt.Sprintf("from/emailAddress/address eq '%s'", escapeOData(fromAddress)))
	}
	return strings.Join(filters, " and ")
}

func escapeOData(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
