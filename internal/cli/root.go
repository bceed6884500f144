// Package cli implements the hmsctl command tree.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtroode/hms-console/internal/app"
	"github.com/dtroode/hms-console/internal/config"
	"github.com/dtroode/hms-console/internal/dashboard"
	"github.com/dtroode/hms-console/internal/logger"
	"github.com/dtroode/hms-console/internal/model"
)

// ErrNotLoggedIn is returned by commands that need a session when none is
// persisted.
var ErrNotLoggedIn = errors.New("not logged in, run \"hmsctl login\" first")

const skipAppAnnotation = "skip-app"

// BuildInfo is stamped into the binary by ldflags.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// runtime holds what PersistentPreRunE builds for the executing command.
type runtime struct {
	app      *app.App
	location *time.Location
	stdin    *bufio.Reader
}

// newRootCmd returns the hmsctl command tree and the runtime its commands
// share. Configuration is read from the environment when a command runs.
func newRootCmd(build BuildInfo) (*cobra.Command, *runtime) {
	rt := &runtime{location: time.Local}

	root := &cobra.Command{
		Use:           "hmsctl",
		Short:         "Hospital management console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt.stdin = bufio.NewReader(cmd.InOrStdin())
			if cmd.Annotations[skipAppAnnotation] != "" || cmd.Name() == "help" {
				return nil
			}
			return rt.setup(cmd.Context(), cmd.CommandPath(), cmd.ErrOrStderr())
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		versionCmd(build),
		signupCmd(rt),
		loginCmd(rt),
		logoutCmd(rt),
		whoamiCmd(rt),
		healthCmd(rt),
		overviewCmd(rt),
		patientsCmd(rt),
		appointmentsCmd(rt),
		recordsCmd(rt),
		watchCmd(rt),
	)

	return root, rt
}

func (rt *runtime) setup(ctx context.Context, command string, stderr io.Writer) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	log := logger.NewWithFormat(stderr, cfg.LogLevel, cfg.LogFormat).With("command", command)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	rt.app = a
	return nil
}

// session returns the persisted session or ErrNotLoggedIn.
func (rt *runtime) session(ctx context.Context) (model.Session, error) {
	s, ok := rt.app.Auth.CurrentSession(ctx)
	if !ok {
		return model.Session{}, ErrNotLoggedIn
	}
	return s, nil
}

// withDashboard runs fn against a fresh controller after checking for a
// session, and closes the controller afterwards.
func (rt *runtime) withDashboard(ctx context.Context, fn func(*dashboard.Controller) error) error {
	if _, err := rt.session(ctx); err != nil {
		return err
	}
	c := rt.app.NewDashboard()
	defer c.Close()
	return fn(c)
}

// load enters tab, waits for its loads and fails if any of them failed.
func load(c *dashboard.Controller, tab dashboard.Tab) (dashboard.Snapshot, error) {
	c.SelectTab(tab)
	c.Wait()

	snap := c.Snapshot()
	if snap.Message != nil && snap.Message.Kind == dashboard.MessageError {
		return snap, errors.New(snap.Message.Text)
	}
	return snap, nil
}

// readLine reads one line of operator input. Prompts go to w.
func (rt *runtime) readLine(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := rt.stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (rt *runtime) confirm(w io.Writer, prompt string) (bool, error) {
	answer, err := rt.readLine(w, prompt+" [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func versionCmd(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl := "Build version: %s\nBuild date: %s\nBuild commit: %s\n"
			_, err := fmt.Fprintf(cmd.OutOrStdout(), tmpl, build.Version, build.Date, build.Commit)
			return err
		},
	}
}

// Run executes the command named by args with the given streams and
// releases everything the command opened.
func Run(ctx context.Context, build BuildInfo, args []string, in io.Reader, out, errOut io.Writer) error {
	root, rt := newRootCmd(build)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if rt.app != nil {
		err = errors.Join(err, rt.app.Close())
	}
	return err
}

// reportMutation prints the controller's feedback for a finished mutation
// and waits for the reload it triggered. A failed mutation or reload is
// returned with the operator facing message.
func reportMutation(cmd *cobra.Command, c *dashboard.Controller, err error) error {
	if err != nil {
		return errors.New(model.ErrorMessage(err))
	}

	done := c.Snapshot()
	if done.Message != nil {
		fmt.Fprintln(cmd.OutOrStdout(), done.Message.Text)
	}

	c.Wait()
	if snap := c.Snapshot(); snap.Message != nil && snap.Message.Kind == dashboard.MessageError {
		return errors.New(snap.Message.Text)
	}
	return nil
}

// optionalFlag returns a pointer to the flag value when the flag was set.
func optionalFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
