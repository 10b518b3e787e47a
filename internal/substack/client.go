package substack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mdpub/internal/post"
	"mdpub/internal/prosemirror"
)

const defaultTimeout = 30 * time.Second

// Browser-like User-Agent; the API sits behind Cloudflare and rejects
// obvious non-browser clients.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Client talks to the Substack drafts API of a single publication,
// authenticating with the substack.sid session cookie.
type Client struct {
	client    *http.Client
	baseURL   string
	subdomain string
	sid       string
	userID    int
}

func NewClient(subdomain, sid string, userID int) *Client {
	return &Client{
		client:    &http.Client{Timeout: defaultTimeout},
		baseURL:   fmt.Sprintf("https://%s.substack.com", subdomain),
		subdomain: subdomain,
		sid:       sid,
		userID:    userID,
	}
}

// Draft is the subset of the API's draft representation we care about.
type Draft struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
}

type byline struct {
	ID      int  `json:"id"`
	IsGuest bool `json:"is_guest"`
}

// draftRequest mirrors the payload the Substack editor itself sends. The
// body travels as a JSON-encoded string, not a nested object.
type draftRequest struct {
	DraftTitle           string   `json:"draft_title"`
	DraftSubtitle        string   `json:"draft_subtitle"`
	DraftPodcastURL      any      `json:"draft_podcast_url"`
	DraftPodcastDuration any      `json:"draft_podcast_duration"`
	DraftBody            string   `json:"draft_body"`
	SectionChosen        bool     `json:"section_chosen"`
	DraftSectionID       any      `json:"draft_section_id"`
	DraftBylines         []byline `json:"draft_bylines"`
	Audience             string   `json:"audience"`
	Type                 string   `json:"type"`
}

type publishRequest struct {
	Send bool `json:"send"`
}

// CreateDraft validates the document body against the wire schema and
// creates a draft on the publication.
func (c *Client) CreateDraft(ctx context.Context, doc *post.Document) (*Draft, error) {
	if err := prosemirror.ValidateDoc(doc.Body); err != nil {
		return nil, err
	}

	body, err := json.Marshal(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document body: %w", err)
	}

	payload := draftRequest{
		DraftTitle:    doc.Title,
		DraftSubtitle: doc.Subtitle,
		DraftBody:     string(body),
		DraftBylines:  []byline{{ID: c.userID}},
		Audience:      string(doc.Audience),
		Type:          "newsletter",
	}

	var draft Draft
	if err := c.do(ctx, "/api/v1/drafts", payload, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// PublishDraft publishes a previously created draft and sends it to
// subscribers.
func (c *Client) PublishDraft(ctx context.Context, draftID int) (*Draft, error) {
	var draft Draft
	path := fmt.Sprintf("/api/v1/drafts/%d/publish", draftID)
	if err := c.do(ctx, path, publishRequest{Send: true}, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// DraftURL is the editor URL for a created draft.
func (c *Client) DraftURL(draftID int) string {
	return fmt.Sprintf("%s/publish/post/%d", c.baseURL, draftID)
}

// PostURL is the public URL of a published post.
func (c *Client) PostURL(slug string) string {
	return fmt.Sprintf("%s/p/%s", c.baseURL, slug)
}

func (c *Client) do(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", "substack.sid="+c.sid)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL+"/publish/post?type=newsletter")
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", c.subdomain, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("authentication failed (%d): your SUBSTACK_SID may be expired, get a fresh cookie from your browser's DevTools: %s",
			resp.StatusCode, strings.TrimSpace(string(raw)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("substack API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}
