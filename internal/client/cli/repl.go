package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Properties(ctx context.Context) error
	AddProperty(ctx context.Context) error
	EditProperty(ctx context.Context) error
	DeleteProperty(ctx context.Context) error

	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	RenameCategory(ctx context.Context) error
	DeleteCategory(ctx context.Context) error

	Entries(ctx context.Context) error
	AddEntry(ctx context.Context) error
	EditEntry(ctx context.Context) error
	DeleteEntry(ctx context.Context) error
	Photos(ctx context.Context) error

	Sync(ctx context.Context) error
	Sagas(ctx context.Context) error
	Resume(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, exit"
	helpLoggedIn  = "Available commands: (p)roperties, addproperty, editproperty, deleteproperty, (c)ategories, " +
		"addcategory, renamecategory, deletecategory, (e)ntries, addentry, editentry, deleteentry, photos, " +
		"sync, sagas, resume, logout, exit"
)

// runREPL reads commands line by line from scanner and dispatches them to a.
// The first token is the command; the rest of the line is ignored. Commands
// other than help, login and exit require a session. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("repslog %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		handler := loggedInCommand(a, cmd)
		if handler == nil {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		_ = handler(ctx)
	}
}

func loggedInCommand(a execIface, cmd string) func(context.Context) error {
	switch cmd {
	case "p", "properties":
		return a.Properties
	case "addproperty":
		return a.AddProperty
	case "editproperty":
		return a.EditProperty
	case "deleteproperty":
		return a.DeleteProperty
	case "c", "categories":
		return a.Categories
	case "addcategory":
		return a.AddCategory
	case "renamecategory":
		return a.RenameCategory
	case "deletecategory":
		return a.DeleteCategory
	case "e", "entries":
		return a.Entries
	case "addentry":
		return a.AddEntry
	case "editentry":
		return a.EditEntry
	case "deleteentry":
		return a.DeleteEntry
	case "photos":
		return a.Photos
	case "sync":
		return a.Sync
	case "sagas":
		return a.Sagas
	case "resume":
		return a.Resume
	case "logout":
		return a.Logout
	}
	return nil
}
