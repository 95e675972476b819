// Package ws mirrors message and notification writes to connected clients.
// Delivery is best-effort; slow clients are dropped, the documents in Mongo
// remain the source of truth.
package ws

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Envelope is the frame pushed to clients.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type outbound struct {
	userID  primitive.ObjectID
	payload []byte
}

type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Outbound envelopes addressed to a single user.
	send chan outbound

	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan outbound, 64),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debug().Str("conn", client.id).Str("user", client.userID.Hex()).Msg("ws client registered")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.sendCh)
				h.logger.Debug().Str("conn", client.id).Str("user", client.userID.Hex()).Msg("ws client unregistered")
			}
		case out := <-h.send:
			for client := range h.clients {
				if client.userID != out.userID {
					continue
				}
				select {
				case client.sendCh <- out.payload:
				default:
					close(client.sendCh)
					delete(h.clients, client)
					h.logger.Warn().Str("conn", client.id).Str("user", client.userID.Hex()).Msg("ws client too slow, dropping")
				}
			}
		}
	}
}

// SendToUser queues an envelope for every open connection of the user.
// Safe to call from handler goroutines.
func (h *Hub) SendToUser(userID primitive.ObjectID, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("failed to marshal ws envelope")
		return
	}

	select {
	case h.send <- outbound{userID: userID, payload: payload}:
	default:
		h.logger.Warn().Str("event", event).Msg("ws send queue full, dropping")
	}
}
