package substack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdpub/internal/post"
	"mdpub/internal/prosemirror"
)

func testDocument() *post.Document {
	return &post.Document{
		Title:    "My Post",
		Subtitle: "A subtitle",
		Audience: post.AudienceEveryone,
		Body:     prosemirror.Doc(prosemirror.Paragraph(prosemirror.Text("hello"))),
	}
}

func testClient(serverURL string) *Client {
	c := NewClient("example", "sid-value", 42)
	c.baseURL = serverURL
	return c
}

func TestCreateDraft(t *testing.T) {
	var got draftRequest
	var gotCookie string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/drafts", r.URL.Path)
		gotCookie = r.Header.Get("Cookie")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"id": 123})
	}))
	defer server.Close()

	draft, err := testClient(server.URL).CreateDraft(context.Background(), testDocument())
	require.NoError(t, err)
	assert.Equal(t, 123, draft.ID)

	assert.Equal(t, "substack.sid=sid-value", gotCookie)
	assert.Equal(t, "My Post", got.DraftTitle)
	assert.Equal(t, "A subtitle", got.DraftSubtitle)
	assert.Equal(t, "everyone", got.Audience)
	assert.Equal(t, "newsletter", got.Type)
	require.Len(t, got.DraftBylines, 1)
	assert.Equal(t, 42, got.DraftBylines[0].ID)

	// The body travels as a JSON string, not a nested object.
	var body prosemirror.Node
	require.NoError(t, json.Unmarshal([]byte(got.DraftBody), &body))
	assert.Equal(t, prosemirror.TypeDoc, body.Type)
	assert.Equal(t, "hello", body.PlainText())
}

func TestCreateDraft_RejectsInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the API")
	}))
	defer server.Close()

	doc := testDocument()
	doc.Body = prosemirror.Paragraph() // not a doc root

	_, err := testClient(server.URL).CreateDraft(context.Background(), doc)
	assert.Error(t, err)
}

func TestCreateDraft_AuthFailureHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateDraft(context.Background(), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUBSTACK_SID")
}

func TestPublishDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/drafts/123/publish", r.URL.Path)

		var payload publishRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, payload.Send)

		json.NewEncoder(w).Encode(map[string]any{"id": 123, "slug": "my-post"})
	}))
	defer server.Close()

	published, err := testClient(server.URL).PublishDraft(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, "my-post", published.Slug)
}

func TestURLs(t *testing.T) {
	c := NewClient("example", "sid", 1)
	assert.Equal(t, "https://example.substack.com/publish/post/9", c.DraftURL(9))
	assert.Equal(t, "https://example.substack.com/p/my-post", c.PostURL("my-post"))
}

func TestAPIErrorSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad payload"))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateDraft(context.Background(), testDocument())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad payload")
}
