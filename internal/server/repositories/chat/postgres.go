package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/server/models"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a Postgres-backed implementation.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	const query = `
        SELECT id, user_a_id, user_b_id, created_at, last_message_at
        FROM conversations
        WHERE user_a_id=$1 OR user_b_id=$1
        ORDER BY last_message_at DESC NULLS LAST, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var result []*models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserAID, &c.UserBID, &c.CreatedAt, &c.LastMessageAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetConversation(ctx context.Context, id int64) (*models.Conversation, error) {
	const query = `
        SELECT id, user_a_id, user_b_id, created_at, last_message_at
        FROM conversations WHERE id=$1`

	var c models.Conversation
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.UserAID, &c.UserBID, &c.CreatedAt, &c.LastMessageAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &c, nil
}

// FindOrCreateConversation returns the thread between the two users,
// creating it on first contact. Participants are stored in ascending
// id order so the pair has a single row.
func (r *PostgresRepository) FindOrCreateConversation(ctx context.Context, userID, peerID int64) (*models.Conversation, error) {
	a, b := userID, peerID
	if a > b {
		a, b = b, a
	}

	const query = `
        INSERT INTO conversations (user_a_id, user_b_id)
        VALUES ($1, $2)
        ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET user_a_id=EXCLUDED.user_a_id
        RETURNING id, user_a_id, user_b_id, created_at, last_message_at`

	var c models.Conversation
	err := r.pool.QueryRow(ctx, query, a, b).Scan(&c.ID, &c.UserAID, &c.UserBID, &c.CreatedAt, &c.LastMessageAt)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create conversation: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) ListMessages(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	const query = `
        SELECT id, conversation_id, sender_id, body, created_at
        FROM messages
        WHERE conversation_id=$1
        ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	const insert = `
        INSERT INTO messages (conversation_id, sender_id, body)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	const touch = `UPDATE conversations SET last_message_at=$1 WHERE id=$2`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, insert, msg.ConversationID, msg.SenderID, msg.Body).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	if _, err := tx.Exec(ctx, touch, msg.CreatedAt, msg.ConversationID); err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}

	return tx.Commit(ctx)
}
