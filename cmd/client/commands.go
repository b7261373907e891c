package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/black-swan-sentinel/internal/adapter"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
)

const usage = `commands:
  health
  register [-full-name NAME] [-phone NUMBER] [-risk conservative|moderate|aggressive] EMAIL USERNAME PASSWORD
  login [-form] USERNAME PASSWORD
  refresh REFRESH_TOKEN
  me
  change-password CURRENT NEW`

type command func(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error)

var commands = map[string]command{
	"health":          healthCommand,
	"register":        registerCommand,
	"login":           loginCommand,
	"refresh":         refreshCommand,
	"me":              meCommand,
	"change-password": changePasswordCommand,
}

// run executes the command named by args[0] and prints its result to out
// as indented JSON.
func run(ctx context.Context, a adapter.ServerAdapter, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w:\n%s", errUsage, usage)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w %q:\n%s", errUnknownCommand, args[0], usage)
	}

	result, err := cmd(ctx, a, args[1:])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func expectArgs(args []string, n int, names string) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %s", errUsage, names)
	}
	return nil
}

func healthCommand(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error) {
	if err := expectArgs(args, 0, "no arguments"); err != nil {
		return nil, err
	}
	return a.Health(ctx)
}

func registerCommand(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error) {
	var fullName, phone, risk string

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&fullName, "full-name", "", "Full name")
	fs.StringVar(&phone, "phone", "", "Phone number")
	fs.StringVar(&risk, "risk", "", "Risk tolerance")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if err := expectArgs(fs.Args(), 3, "EMAIL USERNAME PASSWORD"); err != nil {
		return nil, err
	}

	req := models.RegisterRequest{
		Email:         fs.Arg(0),
		Username:      fs.Arg(1),
		Password:      fs.Arg(2),
		RiskTolerance: models.RiskTolerance(risk),
	}
	if fullName != "" {
		req.FullName = &fullName
	}
	if phone != "" {
		req.PhoneNumber = &phone
	}

	return a.Register(ctx, req)
}

func loginCommand(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error) {
	var form bool

	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&form, "form", false, "Use the OAuth2 form endpoint")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if err := expectArgs(fs.Args(), 2, "USERNAME PASSWORD"); err != nil {
		return nil, err
	}

	req := models.LoginRequest{Username: fs.Arg(0), Password: fs.Arg(1)}
	login := a.Login
	if form {
		login = a.LoginForm
	}

	pair, err := login(ctx, req)
	if err != nil {
		return nil, err
	}
	return newTokenOutput(pair), nil
}

func refreshCommand(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error) {
	if err := expectArgs(args, 1, "REFRESH_TOKEN"); err != nil {
		return nil, err
	}
	pair, err := a.Refresh(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return newTokenOutput(pair), nil
}

func meCommand(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error) {
	if err := expectArgs(args, 0, "no arguments"); err != nil {
		return nil, err
	}
	return a.Me(ctx)
}

func changePasswordCommand(ctx context.Context, a adapter.ServerAdapter, args []string) (any, error) {
	if err := expectArgs(args, 2, "CURRENT NEW"); err != nil {
		return nil, err
	}

	req := models.ChangePasswordRequest{CurrentPassword: args[0], NewPassword: args[1]}
	if err := a.ChangePassword(ctx, req); err != nil {
		return nil, err
	}
	return models.MessageResponse{Message: "Password updated successfully"}, nil
}

// tokenOutput is a token pair annotated with the expiry times read from the
// tokens themselves.
type tokenOutput struct {
	models.TokenPair
	AccessExpiresAt  *time.Time `json:"access_expires_at,omitempty"`
	RefreshExpiresAt *time.Time `json:"refresh_expires_at,omitempty"`
}

func newTokenOutput(pair models.TokenPair) tokenOutput {
	return tokenOutput{
		TokenPair:        pair,
		AccessExpiresAt:  expiresAt(pair.AccessToken),
		RefreshExpiresAt: expiresAt(pair.RefreshToken),
	}
}

// expiresAt decodes the exp claim for display only. The signature is not
// checked; the server does that on every call.
func expiresAt(token string) *time.Time {
	claims, err := utils.ParseUnverifiedClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time.UTC()
	return &exp
}
