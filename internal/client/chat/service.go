package chat

import (
	"context"

	"github.com/sangamlabs/sangam/internal/client/api"
	"github.com/sangamlabs/sangam/internal/logging"
)

// API is the slice of the backend client the chat flow needs.
type API interface {
	Conversations(ctx context.Context) ([]api.Conversation, error)
	Messages(ctx context.Context, conversationID string) ([]api.Message, error)
	SendMessage(ctx context.Context, conversationID, body string) (*api.Message, error)
	CreateConversation(ctx context.Context, peerID int64) (*api.Conversation, error)
}

// Thread is an opened chat with one peer. ConversationID is empty when no
// conversation exists yet; the first send creates one implicitly.
type Thread struct {
	PeerID         int64
	ConversationID string
	Messages       []api.Message
}

// Service drives the chat-open flow over the API client and the
// conversation-id cache.
type Service struct {
	api   API
	cache *Cache
	log   logging.Logger
}

func NewService(client API, cache *Cache, log logging.Logger) *Service {
	return &Service{api: client, cache: cache, log: log}
}

// Open loads the chat with the given peer:
//
//  1. A cached conversation id is tried first. If fetching its messages
//     fails, the entry is evicted and the flow falls through; the stale id
//     is never surfaced as an error.
//  2. The server conversation list is scanned for a conversation matching
//     the peer. A hit is cached and its messages fetched.
//  3. With no conversation found, an empty thread is returned; the next
//     send creates the conversation server-side.
func (s *Service) Open(ctx context.Context, peerID int64) (*Thread, error) {
	if id, ok := s.cache.Get(peerID); ok {
		msgs, err := s.api.Messages(ctx, id)
		if err == nil {
			return &Thread{PeerID: peerID, ConversationID: id, Messages: msgs}, nil
		}
		s.log.Warn(ctx, "cached conversation id is stale, evicting", "peer_id", peerID, "conversation_id", id, "error", err)
		s.cache.Remove(peerID)
	}

	convs, err := s.api.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	for i := range convs {
		if !convs[i].MatchesPeer(peerID) {
			continue
		}
		id := convs[i].ID
		s.cache.Set(peerID, id)

		msgs, err := s.api.Messages(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Thread{PeerID: peerID, ConversationID: id, Messages: msgs}, nil
	}

	// No conversation yet: the UI shows "no messages" and sending creates one.
	return &Thread{PeerID: peerID}, nil
}

// Send delivers a message on the thread, implicitly creating the
// conversation when none exists yet. The thread is updated in place.
func (s *Service) Send(ctx context.Context, thread *Thread, body string) (*api.Message, error) {
	if thread.ConversationID == "" {
		conv, err := s.api.CreateConversation(ctx, thread.PeerID)
		if err != nil {
			return nil, err
		}
		thread.ConversationID = conv.ID
		s.cache.Set(thread.PeerID, conv.ID)
	}

	msg, err := s.api.SendMessage(ctx, thread.ConversationID, body)
	if err != nil {
		return nil, err
	}

	thread.Messages = append(thread.Messages, *msg)
	return msg, nil
}
