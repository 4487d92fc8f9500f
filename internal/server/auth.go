package server

import (
	"crypto/subtle"
	"os"

	"github.com/soyeahso/agentdex/internal/config"
)

// AuthResult is the outcome of an authentication attempt.
type AuthResult struct {
	OK     bool   `json:"ok"`
	Method string `json:"method,omitempty"` // "token" | "password" | "none"
	Reason string `json:"reason,omitempty"`
}

// ResolvedAuth holds the resolved auth configuration for the server.
type ResolvedAuth struct {
	Mode     string
	Token    string
	Password string
}

// ResolveAuth resolves authentication credentials from config and environment.
// Precedence: config value, then env variable. A token mode with no token
// resolves to open access since the catalog is read-only.
func ResolveAuth(cfg config.ServerAuth) ResolvedAuth {
	auth := ResolvedAuth{Mode: cfg.Mode}

	auth.Token = cfg.Token
	if auth.Token == "" {
		auth.Token = os.Getenv("AGENTDEX_SERVER_TOKEN")
	}

	auth.Password = cfg.Password
	if auth.Password == "" {
		auth.Password = os.Getenv("AGENTDEX_SERVER_PASSWORD")
	}

	switch auth.Mode {
	case "":
		if auth.Password != "" {
			auth.Mode = "password"
		} else if auth.Token != "" {
			auth.Mode = "token"
		} else {
			auth.Mode = "none"
		}
	case "token":
		if auth.Token == "" {
			auth.Mode = "none"
		}
	case "password":
		if auth.Password == "" {
			auth.Mode = "none"
		}
	}

	return auth
}

// Authorize checks the provided ConnectAuth against the resolved server auth.
func Authorize(serverAuth ResolvedAuth, clientAuth *ConnectAuth) AuthResult {
	switch serverAuth.Mode {
	case "none":
		return AuthResult{OK: true, Method: "none"}

	case "token":
		if clientAuth == nil || clientAuth.Token == "" {
			return AuthResult{OK: false, Reason: "token required"}
		}
		if !safeEqual(clientAuth.Token, serverAuth.Token) {
			return AuthResult{OK: false, Reason: "token_mismatch"}
		}
		return AuthResult{OK: true, Method: "token"}

	case "password":
		if clientAuth == nil || clientAuth.Password == "" {
			return AuthResult{OK: false, Reason: "password required"}
		}
		if !safeEqual(clientAuth.Password, serverAuth.Password) {
			return AuthResult{OK: false, Reason: "password_mismatch"}
		}
		return AuthResult{OK: true, Method: "password"}

	default:
		return AuthResult{OK: false, Reason: "unknown auth mode: " + serverAuth.Mode}
	}
}

// safeEqual performs a constant-time string comparison to prevent timing
// attacks, without leaking secret length via an early return.
func safeEqual(a, b string) bool {
	lenMatch := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))
	cmp := subtle.ConstantTimeCompare([]byte(a), []byte(b))
	return subtle.ConstantTimeSelect(lenMatch, cmp, 0) == 1
}
