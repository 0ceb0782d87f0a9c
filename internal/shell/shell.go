package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/STAR-173/prms-admin-gateway/domain"
	"github.com/STAR-173/prms-admin-gateway/internal/authflow"
	"github.com/STAR-173/prms-admin-gateway/internal/gateway"
	"github.com/STAR-173/prms-admin-gateway/internal/guard"
	"github.com/STAR-173/prms-admin-gateway/internal/session"
)

// Shell is the terminal front end: it renders the login flow and the
// protected screens as plain text, talking to the backend only through the
// Gateway. It is the "external collaborator" of the gateway core — nothing
// here touches tokens directly.
type Shell struct {
	gw    *gateway.Client
	store domain.SessionStore
	nav   *RouteNavigator
	guard *guard.Guard
	in    *bufio.Scanner
	out   io.Writer
}

func New(gw *gateway.Client, store domain.SessionStore, nav *RouteNavigator, g *guard.Guard, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		gw:    gw,
		store: store,
		nav:   nav,
		guard: g,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run drives the route loop until the operator quits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		switch s.nav.Current() {
		case domain.RouteLogin:
			if err := s.loginScreen(ctx); err != nil {
				return err
			}
		case domain.RouteDashboard:
			if err := s.dashboardScreen(ctx); err != nil {
				return err
			}
		case routeQuit:
			return nil
		default:
			s.nav.Replace(domain.RouteLogin)
		}
	}
}

const routeQuit = "/quit"

var errInputClosed = errors.New("input closed")

// loginScreen walks the two-step OTP flow. Validation errors are printed
// inline and re-prompted; server messages are shown verbatim.
func (s *Shell) loginScreen(ctx context.Context) error {
	flow := authflow.NewFlow(s.gw, s.store, s.nav)
	fmt.Fprintln(s.out, "== PRMS Admin Login ==")

	for s.nav.Current() == domain.RouteLogin {
		switch flow.Step() {
		case authflow.StepPhone:
			line, err := s.prompt("Phone number (10 digits, or 'quit'): ")
			if err != nil {
				return nil
			}
			if line == "quit" {
				s.nav.Replace(routeQuit)
				return nil
			}
			if err := flow.SubmitPhone(ctx, line); err != nil {
				s.printError(err)
				continue
			}
			fmt.Fprintln(s.out, "Code sent.")

		case authflow.StepOTP:
			line, err := s.prompt("Code (6 digits, or 'back'): ")
			if err != nil {
				return nil
			}
			if line == "back" {
				flow.ChangeNumber()
				continue
			}
			if err := flow.SubmitCode(ctx, line); err != nil {
				s.printError(err)
				continue
			}
		}
	}
	return nil
}

// dashboardScreen is the protected command loop. Every iteration re-checks
// the guard: a 401 on any call clears the store and moves the navigator, and
// the next pass lands back on the login screen without rendering anything.
func (s *Shell) dashboardScreen(ctx context.Context) error {
	if !s.guard.Admit(ctx) {
		return nil
	}

	line, err := s.prompt("prms> (houses|players|ledger|whoami|logout|quit) ")
	if err != nil {
		return nil
	}

	switch line {
	case "houses":
		s.listScreen(ctx, "/admin/houses/list")
	case "players":
		s.listScreen(ctx, "/admin/players/list")
	case "ledger":
		s.listScreen(ctx, "/admin/ledger/list")
	case "whoami":
		s.whoami(ctx)
	case "logout":
		if err := s.store.Clear(ctx); err != nil {
			s.printError(err)
			return nil
		}
		s.nav.Replace(domain.RouteLogin)
	case "quit":
		s.nav.Replace(routeQuit)
	case "":
	default:
		fmt.Fprintf(s.out, "unknown command %q\n", line)
	}
	return nil
}

func (s *Shell) listScreen(ctx context.Context, path string) {
	if !s.guard.Admit(ctx) {
		return
	}
	resp, err := s.gw.Call(ctx, gateway.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		s.printError(err)
		return
	}

	var payload struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := resp.Decode(&payload); err != nil {
		s.printError(err)
		return
	}
	for _, row := range payload.Data {
		fmt.Fprintf(s.out, "%v\n", row)
	}
	fmt.Fprintf(s.out, "(%d rows)\n", len(payload.Data))
}

func (s *Shell) whoami(ctx context.Context) {
	sess, err := s.store.Load(ctx)
	if err != nil || sess == nil {
		fmt.Fprintln(s.out, "not logged in")
		return
	}
	fmt.Fprintf(s.out, "user=%s role=%s\n", sess.UserID, sess.Role)

	// Display only; an expired token still admits until the backend says 401.
	if claims, err := session.DecodeClaims(sess.Token); err == nil {
		status := "valid"
		if claims.Expired() {
			status = "expired (will be rejected on next call)"
		}
		fmt.Fprintf(s.out, "token: %s\n", status)
	}
}

func (s *Shell) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	if !s.in.Scan() {
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) printError(err error) {
	var gwErr *gateway.Error
	switch {
	case errors.As(err, &gwErr) && gwErr.IsTransport():
		fmt.Fprintln(s.out, "error: network failure, please try again")
	case errors.As(err, &gwErr) && gwErr.Message != "":
		fmt.Fprintf(s.out, "error: %s\n", gwErr.Message)
	default:
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}
