// Package cli implements the credctl command-line client: register, login,
// and whoami against a CredKeeper server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/credkeeper/credkeeper/internal/client/api"
)

type App struct {
	client *api.Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(serverURL string) *App {
	return &App{
		client: api.New(serverURL),
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run dispatches one command. Supported commands: register, login, whoami.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "whoami":
		if len(args) < 1 {
			return fmt.Errorf("usage: credctl whoami <token>")
		}
		return a.whoami(ctx, args[0])
	default:
		return fmt.Errorf("unknown command %q (expected register, login, or whoami)", command)
	}
}

func (a *App) register(ctx context.Context) error {
	username, err := GetSimpleText(a.in, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, username, email, password, confirm); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered!")
	return nil
}

func (a *App) login(ctx context.Context) error {
	username, err := GetSimpleText(a.in, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) whoami(ctx context.Context, token string) error {
	identity, err := a.client.Me(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "subject: %s\n", identity.Subject)
	if len(identity.Roles) > 0 {
		fmt.Fprintf(a.out, "roles: %v\n", identity.Roles)
	}
	return nil
}
