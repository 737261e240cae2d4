/*
Package handler provides the HTTP surface of the collaboration server.

This file contains the WebSocket upgrade handler. Everything after the
upgrade happens over the socket: the new connection immediately receives the
globalSettings event, then its command loop runs until disconnect.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/MessiahAndrw/Collaborate/internal/app/collab"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/errs"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/limiter"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
	"github.com/MessiahAndrw/Collaborate/internal/pkg/resp"
)

// HandleWebSocket upgrades the request and runs the connection lifecycle:
// register, push global settings, pump until disconnect.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := collab.NewClient(deps.Manager, conn, deps.Dispatcher)
		deps.Manager.Register(client)

		go client.WritePump()

		// One-way push; no acknowledgement expected.
		client.Emit(collab.EventGlobalSettings, deps.Global)

		client.ReadPump(r.Context())
	}
}
