package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	st := a.store.State()
	if st.Profile != nil && st.Profile.Email != "" {
		return fmt.Sprintf("(%s)", st.Profile.Email)
	}
	if st.Authenticated {
		return "(logged in)"
	}
	return ""
}

// Root runs the command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to Task Tracker CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "tt %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if err := a.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintln(a.out, "Error:", err)
		}
		if cmd == "exit" || cmd == "quit" {
			return
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {

	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(a.out, "Available commands: list, add, update <id>, rm <id>, stats, profile, update-profile, passwd, picture, logout, exit")
		} else {
			fmt.Fprintln(a.out, "Available commands: register, login, exit")
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)

	case "profile":
		return a.showProfile(ctx)
	case "update-profile":
		return a.updateProfile(ctx)
	case "passwd":
		return a.changePassword(ctx)
	case "picture":
		return a.uploadPicture(ctx)

	case "list":
		return a.listTasks(ctx)
	case "add":
		return a.addTask(ctx)
	case "update":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: update <id>")
			return nil
		}
		return a.updateTask(ctx, args[0])
	case "rm":
		if len(args) == 0 {
			fmt.Fprintln(a.out, "Usage: rm <id>")
			return nil
		}
		return a.removeTask(ctx, args[0])
	case "stats":
		return a.showStats(ctx)

	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return nil

	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return nil
	}
}
