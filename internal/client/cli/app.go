package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/credvault/internal/client/client"
	"github.com/dmitrijs2005/credvault/internal/common"
	pb "github.com/dmitrijs2005/credvault/internal/proto"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errPasswordMismatch = errors.New("passwords do not match")

const usage = `usage: credctl [-a addr] [-timeout d] <command> [identity]

commands:
  register   create an account
  login      check a password
  passwd     change a password
`

type App struct {
	client client.Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(c client.Client, in io.Reader, out io.Writer) *App {
	return &App{client: c, in: bufio.NewReader(in), out: out}
}

// Run executes one command and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return exitUsage
	}

	var cmd func(context.Context, string) (string, error)
	switch args[0] {
	case "register":
		cmd = a.register
	case "login":
		cmd = a.login
	case "passwd":
		cmd = a.passwd
	case "help", "-h", "-help":
		fmt.Fprint(a.out, usage)
		return exitOK
	default:
		fmt.Fprintf(a.out, "unknown command: %s\n\n%s", args[0], usage)
		return exitUsage
	}

	identity, err := a.identity(args[1:])
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return exitError
	}

	msg, err := cmd(ctx, identity)
	if err != nil {
		fmt.Fprintln(a.out, "error:", describe(err))
		return exitError
	}
	fmt.Fprintln(a.out, msg)
	return exitOK
}

func (a *App) identity(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.in, "Enter identity", a.out)
}

// readNewPassword reads a password twice and fails when the entries differ.
func (a *App) readNewPassword(prompt string) ([]byte, error) {
	pw, err := GetPassword(a.out, prompt)
	if err != nil {
		return nil, err
	}
	again, err := GetPassword(a.out, "Repeat password: ")
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(again)
	if !bytes.Equal(pw, again) {
		common.WipeByteArray(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}

func (a *App) register(ctx context.Context, identity string) (string, error) {
	pw, err := a.readNewPassword("Password: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	if err := a.client.Register(ctx, identity, string(pw)); err != nil {
		return "", err
	}
	return pb.MsgAccountCreated, nil
}

func (a *App) login(ctx context.Context, identity string) (string, error) {
	pw, err := GetPassword(a.out, "Password: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	if err := a.client.Login(ctx, identity, string(pw)); err != nil {
		return "", err
	}
	return pb.MsgLoginAccepted, nil
}

func (a *App) passwd(ctx context.Context, identity string) (string, error) {
	old, err := GetPassword(a.out, "Current password: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(old)

	next, err := a.readNewPassword("New password: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(next)

	if err := a.client.ChangePassword(ctx, identity, string(old), string(next)); err != nil {
		return "", err
	}
	return pb.MsgPasswordChanged, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server is unavailable, try again later"
	case errors.Is(err, client.ErrInvalidCredentials):
		return pb.MsgInvalidCredentials
	case errors.Is(err, client.ErrIdentityTaken):
		return pb.MsgIdentityTaken
	case errors.Is(err, client.ErrInvalidInput):
		return pb.MsgInvalidInput
	default:
		return err.Error()
	}
}
