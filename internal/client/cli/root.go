package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

func (a *App) out() io.Writer {
	return os.Stdout
}

func (a *App) prompt() string {
	if user := a.state.User(); user != nil {
		return user.Email
	}
	if a.state.IsGuest() {
		return "guest"
	}
	return "anonymous"
}

// Root is the REPL loop.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Sangam CLI (type 'help' for commands)")

	for {
		fmt.Printf("sangam %s > ", a.prompt())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, chat <peer-id>, interest <user-id>, photo <file>, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, guest, exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "guest":
			if err := a.state.EnterGuestMode(ctx); err != nil {
				fmt.Println("Could not enter guest mode")
				continue
			}
			fmt.Println("Browsing as guest")

		case "whoami":
			a.WhoAmI(ctx)

		case "chat":
			if !a.isLoggedIn() {
				fmt.Println("Log in first")
				continue
			}
			if len(args) == 0 {
				fmt.Println("Usage: chat <peer-id>")
				continue
			}
			peerID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Println("Usage: chat <peer-id>")
				continue
			}
			a.Chat(ctx, peerID)

		case "interest":
			if !a.isLoggedIn() {
				fmt.Println("Log in first")
				continue
			}
			if len(args) == 0 {
				fmt.Println("Usage: interest <user-id>")
				continue
			}
			a.Interest(ctx, args[0])

		case "photo":
			if !a.isLoggedIn() {
				fmt.Println("Log in first")
				continue
			}
			if len(args) == 0 {
				fmt.Println("Usage: photo <file>")
				continue
			}
			a.UploadPhoto(ctx, args[0])

		case "logout":
			a.Logout(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
