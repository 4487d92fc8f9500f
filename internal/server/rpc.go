package server

import (
	"errors"
	"slices"
	"time"

	"github.com/soyeahso/agentdex/internal/catalog"
)

// registerRPCHandlers sets up all WebSocket RPC method handlers.
func (s *Server) registerRPCHandlers() {
	s.Handle("health", s.rpcHealth)
	s.Handle("catalog.get", s.rpcCatalogGet)
	s.Handle("catalog.list", s.rpcCatalogList)
	s.Handle("catalog.search", s.rpcCatalogSearch)
}

func (s *Server) rpcHealth(rc *RequestContext) {
	rc.Respond(map[string]any{
		"status":         "ok",
		"version":        s.version,
		"catalogVersion": s.cat.Version(),
		"records":        s.cat.Len(),
		"clients":        s.conns.Load(),
		"uptimeMs":       time.Since(s.startedAt).Milliseconds(),
	})
}

type catalogGetParams struct {
	Name string `json:"name"`
}

func (s *Server) rpcCatalogGet(rc *RequestContext) {
	var p catalogGetParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.Name == "" {
		rc.RespondError("invalid_params", "name is required")
		return
	}

	rec, err := s.cat.Get(p.Name)
	if err != nil {
		var nf *catalog.NotFoundError
		if errors.As(err, &nf) {
			rc.Client.RespondError(rc.Frame.ID, ErrorShape{
				Code:        "not_found",
				Message:     nf.Error(),
				Suggestions: nf.Suggestions,
			})
			return
		}
		rc.RespondError("internal", err.Error())
		return
	}

	rc.Respond(rec)
}

func (s *Server) rpcCatalogList(rc *RequestContext) {
	rc.Respond(AgentListResponse{
		Count:          s.cat.Len(),
		CatalogVersion: s.cat.Version(),
		Agents:         s.cat.Records(),
	})
}

type catalogSearchParams struct {
	Purpose string `json:"purpose"`
}

func (s *Server) rpcCatalogSearch(rc *RequestContext) {
	var p catalogSearchParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}

	matched := slices.AppendSeq(make([]catalog.AgentRecord, 0), s.cat.FilterByPurpose(p.Purpose))
	rc.Respond(AgentListResponse{
		Count:          len(matched),
		CatalogVersion: s.cat.Version(),
		Keyword:        p.Purpose,
		Agents:         matched,
	})
}
