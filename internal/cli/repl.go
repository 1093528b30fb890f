package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL-level output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	hasProfile() bool

	Unlock(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context, user string) error
	Reset(ctx context.Context) error

	Post(ctx context.Context) error
	Feed(ctx context.Context) error
	Mine(ctx context.Context) error
	Show(ctx context.Context, entryID string) error
	Like(ctx context.Context, entryID string) error
	Comment(ctx context.Context, entryID string) error
	Delete(ctx context.Context, entryID string) error

	EditProfile(ctx context.Context) error
	Admin(ctx context.Context) error
	Users(ctx context.Context) error
	Kick(ctx context.Context, userID string) error
	Invite(ctx context.Context) error
	SignOut(ctx context.Context) error

	Friends(ctx context.Context) error
	Request(ctx context.Context, username string) error
	Accept(ctx context.Context, userID string) error
	Groups(ctx context.Context) error
	Discover(ctx context.Context, query string) error
	NewGroup(ctx context.Context) error
	Join(ctx context.Context, groupID string) error
	AddMember(ctx context.Context, groupID, user string) error
	Chat(ctx context.Context, groupID string) error
	Say(ctx context.Context, groupID, text string) error
}

// gate is the session state a command needs.
type gate int

const (
	gateLocked gate = iota
	gateUnlocked
	gateProfile
)

var commandGates = map[string]gate{
	"unlock":   gateLocked,
	"register": gateUnlocked,
	"login":    gateUnlocked,
	"reset":    gateUnlocked,

	"post":      gateProfile,
	"feed":      gateProfile,
	"mine":      gateProfile,
	"show":      gateProfile,
	"like":      gateProfile,
	"comment":   gateProfile,
	"delete":    gateProfile,
	"profile":   gateProfile,
	"admin":     gateProfile,
	"users":     gateProfile,
	"kick":      gateProfile,
	"invite":    gateProfile,
	"signout":   gateProfile,
	"friends":   gateProfile,
	"request":   gateProfile,
	"accept":    gateProfile,
	"groups":    gateProfile,
	"discover":  gateProfile,
	"newgroup":  gateProfile,
	"join":      gateProfile,
	"addmember": gateProfile,
	"chat":      gateProfile,
	"say":       gateProfile,
}

// minArgs lists commands that cannot run without positional arguments.
var minArgs = map[string]struct {
	n     int
	usage string
}{
	"login":     {1, "login <username>"},
	"show":      {1, "show <entry-id>"},
	"like":      {1, "like <entry-id>"},
	"comment":   {1, "comment <entry-id>"},
	"delete":    {1, "delete <entry-id>"},
	"kick":      {1, "kick <user-id>"},
	"request":   {1, "request <username>"},
	"accept":    {1, "accept <user-id>"},
	"join":      {1, "join <group-id>"},
	"addmember": {2, "addmember <group-id> <user>"},
	"say":       {2, "say <group-id> <text>"},
}

func currentGate(a execIface) gate {
	switch {
	case !a.isUnlocked():
		return gateLocked
	case !a.hasProfile():
		return gateUnlocked
	default:
		return gateProfile
	}
}

func helpText(g gate) string {
	switch g {
	case gateLocked:
		return "Available commands: unlock, help, exit"
	case gateUnlocked:
		return "Available commands: register, login, reset, help, exit"
	default:
		return "Available commands: post, feed, mine, show, like, comment, delete, " +
			"friends, request, accept, groups, discover, newgroup, join, addmember, chat, say, " +
			"profile, admin, users, kick, invite, login, signout, reset, help, exit"
	}
}

func gateHint(g gate) string {
	if g == gateLocked {
		return "The diary is locked 🔒 Type 'unlock' and enter the secret code."
	}
	return "You need a profile first 🎀 Type 'register' or 'login <username>'."
}

// runREPL starts a simple read–eval–print loop for the diary.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands the current session may not use are
// answered with a hint. The loop exits on EOF or when the user types "exit"
// or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("diary %s> ", statusFn()))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye! 💖")
			return
		case "help":
			printlnFn(helpText(currentGate(a)))
			continue
		}

		need, known := commandGates[cmd]
		if !known {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if have := currentGate(a); have < need {
			printlnFn(gateHint(have))
			continue
		}
		if want, ok := minArgs[cmd]; ok && len(args) < want.n {
			printlnFn("Usage:", want.usage)
			continue
		}

		dispatch(ctx, a, cmd, args)
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch cmd {
	case "unlock":
		_ = a.Unlock(ctx)
	case "register":
		_ = a.Register(ctx)
	case "login":
		_ = a.Login(ctx, strings.Join(args, " "))
	case "reset":
		_ = a.Reset(ctx)

	case "post":
		_ = a.Post(ctx)
	case "feed":
		_ = a.Feed(ctx)
	case "mine":
		_ = a.Mine(ctx)
	case "show":
		_ = a.Show(ctx, arg(0))
	case "like":
		_ = a.Like(ctx, arg(0))
	case "comment":
		_ = a.Comment(ctx, arg(0))
	case "delete":
		_ = a.Delete(ctx, arg(0))

	case "profile":
		_ = a.EditProfile(ctx)
	case "admin":
		_ = a.Admin(ctx)
	case "users":
		_ = a.Users(ctx)
	case "kick":
		_ = a.Kick(ctx, arg(0))
	case "invite":
		_ = a.Invite(ctx)
	case "signout":
		_ = a.SignOut(ctx)

	case "friends":
		_ = a.Friends(ctx)
	case "request":
		_ = a.Request(ctx, strings.Join(args, " "))
	case "accept":
		_ = a.Accept(ctx, arg(0))
	case "groups":
		_ = a.Groups(ctx)
	case "discover":
		_ = a.Discover(ctx, strings.Join(args, " "))
	case "newgroup":
		_ = a.NewGroup(ctx)
	case "join":
		_ = a.Join(ctx, arg(0))
	case "addmember":
		_ = a.AddMember(ctx, arg(0), strings.Join(args[1:], " "))
	case "chat":
		_ = a.Chat(ctx, arg(0))
	case "say":
		_ = a.Say(ctx, arg(0), strings.Join(args[1:], " "))
	}
}
