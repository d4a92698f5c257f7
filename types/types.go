package types

import "encoding/json"

const (
	TypeWebsocketPing     = "ping"
	TypeWebsocketPong     = "pong"
	TypeWebsocketGenerate = "generate"
	TypeWebsocketError    = "error"
)

type WebsocketRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WebSocketGeneratePayload struct {
	Message string `json:"message"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}
