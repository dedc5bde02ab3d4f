package websocket

import (
	handler_ws_room "VidHub.com/cmd/api/handlers/room"
	"github.com/cloudwego/hertz/pkg/app/server"
)

func register(h *server.Hertz) {
	h.GET(`/ws`, append(_wsAuth(), handler_ws_room.Handler)...)
	h.GET(`/`, append(_wsAuth(), handler_ws_room.Handler)...)
}

func WebsocketRegister(h *server.Hertz) {
	register(h)
}
