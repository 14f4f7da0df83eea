package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sangamlabs/sangam/internal/client/api"
)

// Chat opens (or prepares) the conversation with peerID and drops into a
// small send loop.
func (a *App) Chat(ctx context.Context, peerID int64) {
	thread, err := a.chat.Open(ctx, peerID)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Println("Session rejected by server, please log in again")
			_ = a.state.Teardown(ctx)
			return
		}
		fmt.Printf("Could not open chat: %s\n", err.Error())
		return
	}

	if len(thread.Messages) == 0 {
		fmt.Println("No messages yet. Type to start the conversation.")
	}
	for _, m := range thread.Messages {
		prefix := "them"
		if user := a.state.User(); user != nil && m.SenderID == user.ID {
			prefix = "you"
		}
		fmt.Printf("[%s] %s\n", prefix, m.Body)
	}

	for {
		line, err := GetSimpleText(a.reader, "Message (empty line to leave chat)", a.out())
		if err != nil || line == "" {
			return
		}

		if _, err := a.chat.Send(ctx, thread, line); err != nil {
			fmt.Printf("Send failed: %s\n", err.Error())
		}
	}
}

// Interest expresses interest in another profile.
func (a *App) Interest(ctx context.Context, arg string) {
	userID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: interest <user-id>")
		return
	}

	if err := a.api.ExpressInterest(ctx, userID); err != nil {
		fmt.Printf("Could not express interest: %s\n", err.Error())
		return
	}
	fmt.Println("Interest sent")
}
