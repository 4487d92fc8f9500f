package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/soyeahso/agentdex/internal/catalog"
	"github.com/soyeahso/agentdex/internal/config"
	"github.com/soyeahso/agentdex/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTable = `
| name | purpose | repo | paper | links |
| --- | --- | --- | --- | --- |
| alpha | predicts world events with LLM agents | https://example.com/alpha | Alpha Paper | GitHub arXiv |
| beta | red-team security agent | https://example.com/beta | - | GitHub |
`

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	cat, err := catalog.Load(strings.NewReader(testTable))
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.Server.Auth.Mode = "token"
	cfg.Server.Auth.Token = "test-token-123"

	srv := New(cfg, cat, logging.New(nil, "silent", "json"))

	mux := http.NewServeMux()
	srv.registerHTTPRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return srv, ts
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := testServer(t)

	var health HealthResponse
	status := getJSON(t, ts.URL+"/health", &health)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health.Status)
}

func TestListAgentsEndpoint(t *testing.T) {
	_, ts := testServer(t)

	var list AgentListResponse
	status := getJSON(t, ts.URL+"/agents", &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Agents, 2)
	assert.Equal(t, "alpha", list.Agents[0].Name)
	assert.Equal(t, "beta", list.Agents[1].Name)
	assert.NotEmpty(t, list.CatalogVersion)
}

func TestGetAgentEndpoint(t *testing.T) {
	_, ts := testServer(t)

	var rec catalog.AgentRecord
	status := getJSON(t, ts.URL+"/agents/alpha", &rec)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alpha", rec.Name)
	assert.Equal(t, "https://example.com/alpha", rec.RepositoryURL)
}

func TestGetAgentEndpoint_NotFound(t *testing.T) {
	_, ts := testServer(t)

	var errShape ErrorShape
	status := getJSON(t, ts.URL+"/agents/ALPHA", &errShape)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errShape.Code)
	assert.Equal(t, []string{"alpha"}, errShape.Suggestions)
}

func TestSearchEndpoint(t *testing.T) {
	_, ts := testServer(t)

	var list AgentListResponse
	status := getJSON(t, ts.URL+"/search?purpose=security", &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Agents, 1)
	assert.Equal(t, "beta", list.Agents[0].Name)
}

func TestSearchEndpoint_NoMatchReturnsEmptyList(t *testing.T) {
	_, ts := testServer(t)

	var list AgentListResponse
	status := getJSON(t, ts.URL+"/search?purpose=zzz-no-match", &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, list.Count)
	assert.NotNil(t, list.Agents)
	assert.Empty(t, list.Agents)
}

func TestNotFoundEndpoint(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// --- WebSocket RPC ---

func wsConnect(t *testing.T, ts *httptest.Server, auth *ConnectAuth) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var challenge Frame
	require.NoError(t, conn.ReadJSON(&challenge))
	assert.Equal(t, FrameTypeEvent, challenge.Type)
	assert.Equal(t, "connect.challenge", challenge.Event)

	connectReq, err := NewRequest("req-1", "connect", ConnectParams{
		MinProtocol: 1,
		MaxProtocol: 1,
		Client:      ClientInfo{ID: "test-client", Version: "1.0.0", Platform: "linux"},
		Auth:        auth,
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(connectReq))

	return conn
}

func TestWebSocketHandshakeSuccess(t *testing.T) {
	_, ts := testServer(t)

	conn := wsConnect(t, ts, &ConnectAuth{Token: "test-token-123"})

	var helloResp Frame
	require.NoError(t, conn.ReadJSON(&helloResp))
	assert.Equal(t, FrameTypeResponse, helloResp.Type)
	assert.Equal(t, "req-1", helloResp.ID)
	require.NotNil(t, helloResp.OK)
	assert.True(t, *helloResp.OK)

	var hello HelloOK
	require.NoError(t, json.Unmarshal(helloResp.Payload, &hello))
	assert.Equal(t, ProtocolVersion, hello.Protocol)
	assert.Equal(t, 2, hello.Server.Records)
	assert.NotEmpty(t, hello.Server.ConnID)
	assert.Contains(t, hello.Features.Methods, "catalog.get")
}

func TestWebSocketHandshakeBadToken(t *testing.T) {
	_, ts := testServer(t)

	conn := wsConnect(t, ts, &ConnectAuth{Token: "wrong"})

	var resp Frame
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.OK)
	assert.False(t, *resp.OK)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "unauthorized", resp.Error.Code)
}

func wsAuthed(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn := wsConnect(t, ts, &ConnectAuth{Token: "test-token-123"})
	var hello Frame
	require.NoError(t, conn.ReadJSON(&hello))
	return conn
}

func TestRPCCatalogGet(t *testing.T) {
	_, ts := testServer(t)
	conn := wsAuthed(t, ts)

	req, err := NewRequest("req-2", "catalog.get", catalogGetParams{Name: "beta"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(req))

	var resp Frame
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.OK)
	assert.True(t, *resp.OK)

	var rec catalog.AgentRecord
	require.NoError(t, json.Unmarshal(resp.Payload, &rec))
	assert.Equal(t, "beta", rec.Name)
	assert.False(t, rec.HasPaper())
}

func TestRPCCatalogGet_NotFound(t *testing.T) {
	_, ts := testServer(t)
	conn := wsAuthed(t, ts)

	req, err := NewRequest("req-2", "catalog.get", catalogGetParams{Name: "missing"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(req))

	var resp Frame
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.OK)
	assert.False(t, *resp.OK)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestRPCCatalogSearch(t *testing.T) {
	_, ts := testServer(t)
	conn := wsAuthed(t, ts)

	req, err := NewRequest("req-3", "catalog.search", catalogSearchParams{Purpose: "LLM"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(req))

	var resp Frame
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.OK)
	assert.True(t, *resp.OK)

	var list AgentListResponse
	require.NoError(t, json.Unmarshal(resp.Payload, &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "alpha", list.Agents[0].Name)
}

func TestRPCUnknownMethod(t *testing.T) {
	_, ts := testServer(t)
	conn := wsAuthed(t, ts)

	req, err := NewRequest("req-4", "catalog.delete", nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(req))

	var resp Frame
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "method_not_found", resp.Error.Code)
}

func TestResolveBindAddr(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ServerConfig
		want string
	}{
		{"loopback", config.ServerConfig{Bind: "loopback", Port: 18790}, "127.0.0.1:18790"},
		{"lan", config.ServerConfig{Bind: "lan", Port: 18790}, "0.0.0.0:18790"},
		{"auto", config.ServerConfig{Bind: "auto", Port: 18790}, "0.0.0.0:18790"},
		{"custom", config.ServerConfig{Bind: "custom", CustomBindHost: "10.0.0.5", Port: 80}, "10.0.0.5:80"},
		{"custom without host", config.ServerConfig{Bind: "custom", Port: 80}, "0.0.0.0:80"},
		{"default", config.ServerConfig{Port: 18790}, "127.0.0.1:18790"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveBindAddr(tt.cfg))
		})
	}
}
