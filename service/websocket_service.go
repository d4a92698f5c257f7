package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/tieubaoca/litellm-chat/logging"
	"github.com/tieubaoca/litellm-chat/types"
)

const (
	wsReadLimit   = 512 * 1024
	wsIdleTimeout = 60 * time.Second
)

// WebSocketService answers generate frames over a websocket. Each frame gets
// exactly one reply carrying the whole generated text.
type WebSocketService struct {
	generator Generator
	upgrader  websocket.Upgrader
	log       *logrus.Logger
}

func NewWebSocketService(generator Generator) *WebSocketService {
	return &WebSocketService{
		generator: generator,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logging.GetLogger(),
	}
}

func (s *WebSocketService) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
	})

	ctx := r.Context()
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warnf("websocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		reply := s.dispatch(ctx, p)
		if err := conn.WriteJSON(reply); err != nil {
			s.log.Warnf("websocket write error: %v", err)
			return
		}
	}
}

func (s *WebSocketService) dispatch(ctx context.Context, p []byte) types.WebSocketResponse {
	var req types.WebsocketRequest
	if err := json.Unmarshal(p, &req); err != nil {
		return errorFrame(types.DetailInvalidBody)
	}

	switch req.Type {
	case types.TypeWebsocketPing:
		return types.WebSocketResponse{Type: types.TypeWebsocketPong}
	case types.TypeWebsocketGenerate:
		var payload types.WebSocketGeneratePayload
		if len(req.Payload) == 0 || json.Unmarshal(req.Payload, &payload) != nil {
			return errorFrame(types.DetailInvalidBody)
		}
		message := strings.TrimSpace(payload.Message)
		if message == "" {
			return errorFrame(types.DetailEmptyMessage)
		}
		text, err := s.generator.Generate(ctx, message)
		if err != nil {
			s.log.Errorf("websocket generation failed: %v", err)
			return errorFrame(err.Error())
		}
		return types.WebSocketResponse{
			Type:    types.TypeWebsocketGenerate,
			Payload: types.GenerateResponse{Response: text},
		}
	default:
		return errorFrame("unknown message type")
	}
}

func errorFrame(detail string) types.WebSocketResponse {
	return types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.ErrorResponse{Detail: detail},
	}
}
