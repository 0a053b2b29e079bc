// Package cli is the interactive terminal front end: it translates typed
// commands into API calls and renders the results as plain text.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"quiz-client/internal/backend"
	"quiz-client/internal/browse"
	"quiz-client/internal/localstore"
	"quiz-client/internal/session"
)

const defaultListLimit = 20

type App struct {
	client  *backend.Client
	sess    *session.Session
	cache   *localstore.Store
	browser *browse.Browser

	reader *bufio.Reader
	out    io.Writer
}

// lockedWriter serializes writes: debounced fetch results print from a timer
// goroutine while the command loop writes the prompt.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func Run(ctx context.Context, in io.Reader, out io.Writer, client *backend.Client, sess *session.Session, cache *localstore.Store) error {
	app := &App{
		client: client,
		sess:   sess,
		cache:  cache,
		reader: bufio.NewReader(in),
		out:    &lockedWriter{w: out},
	}
	app.browser = browse.New(ctx, client, browse.Config{
		Limit:    defaultListLimit,
		OnUpdate: app.printQuizPage,
	})
	defer app.browser.Close()

	fmt.Fprintf(app.out, "quiz-client\nserver=%s\n\n", client.BaseURL())
	if sess.IsAuthenticated() {
		fmt.Fprintf(app.out, "signed in as %s\n", sess.User().Username)
	}
	app.printHelp()

	for {
		fmt.Fprint(app.out, "\n> ")
		line, err := app.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(app.out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			app.printHelp()
		case "exit", "quit":
			return nil
		case "signin":
			app.runSignIn(ctx)
		case "signup":
			app.runSignUp(ctx)
		case "signout":
			app.runSignOut()
		case "whoami":
			app.runWhoAmI()
		case "quizzes":
			app.runQuizzes(args)
		case "search":
			app.runSearch(line)
		case "tags":
			app.runTags(ctx)
		case "take":
			if len(args) != 2 {
				fmt.Fprintln(app.out, "usage: take <quiz_id>")
				continue
			}
			app.runTake(ctx, args[1])
		case "review":
			if len(args) != 2 {
				fmt.Fprintln(app.out, "usage: review <attempt_id>")
				continue
			}
			app.runReview(ctx, args[1])
		case "history":
			app.runHistory(ctx, args)
		case "results":
			if len(args) != 2 {
				fmt.Fprintln(app.out, "usage: results <quiz_id>")
				continue
			}
			app.runResults(ctx, args[1])
		case "leaderboard":
			if len(args) != 2 {
				fmt.Fprintln(app.out, "usage: leaderboard <quiz_id>")
				continue
			}
			app.runLeaderboard(ctx, args[1])
		case "tag", "quiz", "user", "users", "userstats":
			app.runAdmin(ctx, command, args)
		default:
			fmt.Fprintln(app.out, "unknown command. type 'help' for usage.")
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  help")
	fmt.Fprintln(a.out, "  signin / signup / signout / whoami")
	fmt.Fprintln(a.out, "  quizzes [page]")
	fmt.Fprintln(a.out, "  search <text>")
	fmt.Fprintln(a.out, "  tags")
	fmt.Fprintln(a.out, "  take <quiz_id>")
	fmt.Fprintln(a.out, "  review <attempt_id>")
	fmt.Fprintln(a.out, "  history [quiz_id]")
	fmt.Fprintln(a.out, "  results <quiz_id>")
	fmt.Fprintln(a.out, "  leaderboard <quiz_id>")
	if a.sess.IsAdmin() {
		fmt.Fprintln(a.out, "  tag add <name> | tag rename <id> <name> | tag rm <id>")
		fmt.Fprintln(a.out, "  quiz rm <id>")
		fmt.Fprintln(a.out, "  users [page] | userstats | user rm <id>")
	}
	fmt.Fprintln(a.out, "  exit")
}

func (a *App) runSignIn(ctx context.Context) {
	email, err := a.prompt("email: ")
	if err != nil {
		return
	}
	password, err := a.prompt("password: ")
	if err != nil {
		return
	}

	result, err := a.client.SignIn(ctx, backend.SignInRequest{Email: email, Password: password})
	if err != nil {
		a.printErr(err)
		return
	}
	a.sess.SignedIn(result)
	fmt.Fprintf(a.out, "signed in as %s\n", result.User.Username)
}

func (a *App) runSignUp(ctx context.Context) {
	email, err := a.prompt("email: ")
	if err != nil {
		return
	}
	username, err := a.prompt("username: ")
	if err != nil {
		return
	}
	password, err := a.prompt("password: ")
	if err != nil {
		return
	}

	result, err := a.client.SignUp(ctx, backend.SignUpRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		a.printErr(err)
		return
	}
	a.sess.SignedIn(result)
	fmt.Fprintf(a.out, "account created, signed in as %s\n", result.User.Username)
}

func (a *App) runSignOut() {
	if err := a.client.SignOut(); err != nil {
		a.printErr(err)
		return
	}
	a.sess.SignedOut()
	fmt.Fprintln(a.out, "signed out")
}

func (a *App) runWhoAmI() {
	user := a.sess.User()
	if user == nil {
		fmt.Fprintln(a.out, "not signed in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", user.Username, user.Email, user.Role)
	if expires, ok := a.sess.ExpiresAt(); ok {
		state := "valid"
		if a.sess.Expired() {
			state = "expired"
		}
		fmt.Fprintf(a.out, "token %s, expires %s\n", state, expires.Format("2006-01-02 15:04:05"))
	}
}

func (a *App) runQuizzes(args []string) {
	page := 1
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed < 1 {
			fmt.Fprintln(a.out, "page must be a positive integer")
			return
		}
		page = parsed
	}
	a.browser.SetPage(page)
}

func (a *App) runSearch(line string) {
	query := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "search"))
	if query == "" {
		fmt.Fprintln(a.out, "usage: search <text>")
		return
	}
	fmt.Fprintln(a.out, "searching...")
	a.browser.SetQuery(query)
}

func (a *App) runTags(ctx context.Context) {
	tags, err := a.client.ListTags(ctx, 0, 0)
	if err != nil {
		a.printErr(err)
		return
	}
	if len(tags) == 0 {
		fmt.Fprintln(a.out, "No tags.")
		return
	}
	for _, tag := range tags {
		fmt.Fprintf(a.out, "%d. %s\n", tag.ID, tag.Name)
	}
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) printErr(err error) {
	if errors.Is(err, backend.ErrUnavailable) {
		fmt.Fprintf(a.out, "error: quiz backend unavailable at %s\n", a.client.BaseURL())
		return
	}
	fmt.Fprintf(a.out, "error: %v\n", err)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("must be a positive integer id")
	}
	return id, nil
}
