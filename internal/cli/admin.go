package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"quiz-client/internal/backend"
)

// Admin commands. The backend enforces the role; the client only gates the
// help text, so a non-admin typing these gets the server's rejection.
func (a *App) runAdmin(ctx context.Context, command string, args []string) {
	switch command {
	case "tag":
		a.runTagAdmin(ctx, args)
	case "quiz":
		a.runQuizAdmin(ctx, args)
	case "users":
		a.runUsers(ctx, args)
	case "userstats":
		a.runUserStats(ctx)
	case "user":
		a.runUserAdmin(ctx, args)
	}
}

func (a *App) runTagAdmin(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: tag add <name> | tag rename <id> <name> | tag rm <id>")
		return
	}

	switch strings.ToLower(args[1]) {
	case "add":
		if len(args) < 3 {
			fmt.Fprintln(a.out, "usage: tag add <name>")
			return
		}
		name := strings.Join(args[2:], " ")
		tag, err := a.client.CreateTag(ctx, backend.TagInCreate{Name: name})
		if err != nil {
			a.printErr(err)
			return
		}
		fmt.Fprintf(a.out, "created tag %d: %s\n", tag.ID, tag.Name)
	case "rename":
		if len(args) < 4 {
			fmt.Fprintln(a.out, "usage: tag rename <id> <name>")
			return
		}
		tagID, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid tag id: %v\n", err)
			return
		}
		name := strings.Join(args[3:], " ")
		tag, err := a.client.UpdateTag(ctx, tagID, backend.TagInUpdate{Name: name})
		if err != nil {
			a.printErr(err)
			return
		}
		fmt.Fprintf(a.out, "renamed tag %d to %s\n", tag.ID, tag.Name)
	case "rm":
		if len(args) != 3 {
			fmt.Fprintln(a.out, "usage: tag rm <id>")
			return
		}
		tagID, err := parseID(args[2])
		if err != nil {
			fmt.Fprintf(a.out, "invalid tag id: %v\n", err)
			return
		}
		if err := a.client.DeleteTag(ctx, tagID); err != nil {
			a.printErr(err)
			return
		}
		fmt.Fprintf(a.out, "deleted tag %d\n", tagID)
	default:
		fmt.Fprintln(a.out, "usage: tag add <name> | tag rename <id> <name> | tag rm <id>")
	}
}

func (a *App) runQuizAdmin(ctx context.Context, args []string) {
	if len(args) != 3 || strings.ToLower(args[1]) != "rm" {
		fmt.Fprintln(a.out, "usage: quiz rm <id>")
		return
	}
	quizID, err := parseID(args[2])
	if err != nil {
		fmt.Fprintf(a.out, "invalid quiz id: %v\n", err)
		return
	}
	if err := a.client.DeleteQuiz(ctx, quizID); err != nil {
		a.printErr(err)
		return
	}
	fmt.Fprintf(a.out, "deleted quiz %d\n", quizID)
}

func (a *App) runUsers(ctx context.Context, args []string) {
	page := 1
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed < 1 {
			fmt.Fprintln(a.out, "page must be a positive integer")
			return
		}
		page = parsed
	}

	users, err := a.client.ListUsers(ctx, backend.UserListParams{Page: page, Limit: defaultListLimit})
	if err != nil {
		a.printErr(err)
		return
	}
	if len(users.Items) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return
	}

	for _, user := range users.Items {
		state := "active"
		if !user.IsActive {
			state = "inactive"
		}
		fmt.Fprintf(a.out, "%d. %s <%s> role=%s %s\n", user.ID, user.Username, user.Email, user.Role, state)
	}
	fmt.Fprintf(a.out, "page %d/%d (%d users)\n",
		users.Meta.CurrentPage, users.Meta.TotalPages, users.Meta.Total)
}

func (a *App) runUserStats(ctx context.Context) {
	stats, err := a.client.UserStats(ctx)
	if err != nil {
		a.printErr(err)
		return
	}
	fmt.Fprintf(a.out, "total=%d active=%d admins=%d recent=%d\n",
		stats.TotalUsers, stats.ActiveUsers, stats.AdminUsers, stats.RecentRegistrations)
}

func (a *App) runUserAdmin(ctx context.Context, args []string) {
	if len(args) != 3 || strings.ToLower(args[1]) != "rm" {
		fmt.Fprintln(a.out, "usage: user rm <id>")
		return
	}
	userID, err := parseID(args[2])
	if err != nil {
		fmt.Fprintf(a.out, "invalid user id: %v\n", err)
		return
	}
	if err := a.client.DeleteUser(ctx, userID); err != nil {
		a.printErr(err)
		return
	}
	fmt.Fprintf(a.out, "deleted user %d\n", userID)
}
