package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/soyeahso/agentdex/internal/logging"
)

// maxPayload caps WebSocket frame sizes. Catalog queries are tiny.
const maxPayload = 1 * 1024 * 1024

// wsClient is an authenticated WebSocket connection.
type wsClient struct {
	ConnID string

	conn *websocket.Conn
	mu   sync.Mutex // guards writes
	log  *logging.Logger
}

func newWSClient(conn *websocket.Conn, log *logging.Logger) *wsClient {
	return &wsClient{
		ConnID: uuid.New().String(),
		conn:   conn,
		log:    log,
	}
}

// ReadFrame blocks until the next frame arrives.
func (c *wsClient) ReadFrame() (Frame, error) {
	var frame Frame
	err := c.conn.ReadJSON(&frame)
	return frame, err
}

// WriteFrame sends a frame, serializing concurrent writers.
func (c *wsClient) WriteFrame(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(f)
}

// Respond sends a success response frame.
func (c *wsClient) Respond(id string, payload any) error {
	frame, err := NewResponse(id, payload)
	if err != nil {
		return err
	}
	return c.WriteFrame(frame)
}

// RespondError sends an error response frame.
func (c *wsClient) RespondError(id string, errShape ErrorShape) error {
	return c.WriteFrame(NewErrorResponse(id, errShape))
}

// Close closes the underlying connection.
func (c *wsClient) Close() {
	c.conn.Close()
}

// RequestHandler processes an incoming RPC request frame from a client.
type RequestHandler func(rc *RequestContext)

// RequestContext carries everything a handler needs.
type RequestContext struct {
	Client *wsClient
	Frame  Frame
	Server *Server
}

// Respond sends a success response.
func (rc *RequestContext) Respond(payload any) {
	if err := rc.Client.Respond(rc.Frame.ID, payload); err != nil {
		rc.Server.log.Warn().Err(err).Str("method", rc.Frame.Method).Msg("failed to send response")
	}
}

// RespondError sends an error response.
func (rc *RequestContext) RespondError(code, message string) {
	rc.Client.RespondError(rc.Frame.ID, ErrorShape{
		Code:    code,
		Message: message,
	})
}

// Params unmarshals the request params into the given target.
func (rc *RequestContext) Params(target any) error {
	if rc.Frame.Params == nil {
		return nil
	}
	return json.Unmarshal(rc.Frame.Params, target)
}

// handleWebSocket upgrades HTTP to WebSocket and runs the connection loop.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn.SetReadLimit(maxPayload)

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("new websocket connection")

	client, err := s.handshake(conn)
	if err != nil {
		s.log.Warn().Err(err).Msg("handshake failed")
		conn.Close()
		return
	}

	s.conns.Add(1)
	defer func() {
		s.conns.Add(-1)
		client.Close()
	}()

	s.readLoop(client)
}

// handshake performs the WebSocket authentication handshake.
// Flow: server sends challenge, client sends connect, server validates
// and replies hello-ok.
func (s *Server) handshake(conn *websocket.Conn) (*wsClient, error) {
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	challenge, err := NewEvent("connect.challenge", map[string]any{
		"nonce": uuid.New().String(),
		"ts":    time.Now().UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating challenge: %w", err)
	}
	if err := conn.WriteJSON(challenge); err != nil {
		return nil, fmt.Errorf("sending challenge: %w", err)
	}

	var frame Frame
	if err := conn.ReadJSON(&frame); err != nil {
		return nil, fmt.Errorf("reading connect: %w", err)
	}

	if frame.Type != FrameTypeRequest || frame.Method != "connect" {
		sendErrorAndClose(conn, frame.ID, "protocol_error", "expected connect request")
		return nil, fmt.Errorf("expected connect request, got type=%s method=%s", frame.Type, frame.Method)
	}

	var params ConnectParams
	if frame.Params != nil {
		if err := json.Unmarshal(frame.Params, &params); err != nil {
			sendErrorAndClose(conn, frame.ID, "invalid_params", "invalid connect params")
			return nil, fmt.Errorf("parsing connect params: %w", err)
		}
	}

	authResult := Authorize(s.auth, params.Auth)
	if !authResult.OK {
		sendErrorAndClose(conn, frame.ID, "unauthorized", authResult.Reason)
		return nil, fmt.Errorf("auth failed: %s", authResult.Reason)
	}

	// Clear the read deadline for post-handshake
	conn.SetReadDeadline(time.Time{})

	client := newWSClient(conn, s.log.Sub("ws"))

	hello := HelloOK{
		Protocol: ProtocolVersion,
		Server: ServerInfo{
			Version:        s.version,
			CatalogVersion: s.cat.Version(),
			Records:        s.cat.Len(),
			ConnID:         client.ConnID,
		},
		Features: Features{
			Methods: s.Methods(),
		},
	}

	resp, err := NewResponse(frame.ID, hello)
	if err != nil {
		return nil, fmt.Errorf("creating hello response: %w", err)
	}
	if err := conn.WriteJSON(resp); err != nil {
		return nil, fmt.Errorf("sending hello: %w", err)
	}

	s.log.Info().
		Str("connId", client.ConnID).
		Str("clientId", params.Client.ID).
		Str("authMethod", authResult.Method).
		Msg("client connected")

	return client, nil
}

// readLoop processes incoming frames from an authenticated client.
func (s *Server) readLoop(client *wsClient) {
	for {
		frame, err := client.ReadFrame()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Str("connId", client.ConnID).Msg("client closed connection")
			} else {
				s.log.Warn().Err(err).Str("connId", client.ConnID).Msg("read error")
			}
			return
		}

		if frame.Type != FrameTypeRequest {
			s.log.Debug().Str("type", frame.Type).Msg("ignoring non-request frame")
			continue
		}

		s.dispatch(client, frame)
	}
}

// dispatch routes a request frame to the appropriate handler.
func (s *Server) dispatch(client *wsClient, frame Frame) {
	handler, ok := s.handlers[frame.Method]
	if !ok {
		client.RespondError(frame.ID, ErrorShape{
			Code:    "method_not_found",
			Message: "unknown method: " + frame.Method,
		})
		return
	}

	handler(&RequestContext{
		Client: client,
		Frame:  frame,
		Server: s,
	})
}

// sendErrorAndClose sends an error response and closes the connection.
func sendErrorAndClose(conn *websocket.Conn, reqID, code, message string) {
	conn.WriteJSON(NewErrorResponse(reqID, ErrorShape{
		Code:    code,
		Message: message,
	}))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, message))
}
