package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dtroode/hms-console/internal/dashboard"
)

const clearScreen = "\033[H\033[2J"

const watchHelp = "[1-4 or tab name] switch tab  [r] reload  [q] quit"

func watchCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("tab")
			tab, err := dashboard.ParseTab(name)
			if err != nil {
				return err
			}
			if _, err := rt.session(cmd.Context()); err != nil {
				return err
			}

			c := rt.app.NewDashboard()
			defer c.Close()

			return rt.watch(cmd.Context(), c, tab, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("tab", string(dashboard.TabOverview), "initial tab")

	return cmd
}

// watch re-renders on every state change and applies operator commands
// read line by line until q, end of input or ctx is done.
func (rt *runtime) watch(ctx context.Context, c *dashboard.Controller, tab dashboard.Tab, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := rt.stdin.ReadString('\n')
			if line = strings.TrimSpace(line); line != "" {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	clearTerm := isTerminal(out)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()

		c.SelectTab(tab)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-c.Updates():
				if err := draw(out, c.Snapshot(), rt, clearTerm); err != nil {
					return err
				}
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				next, quit, err := parseWatchInput(line, c.Snapshot().ActiveTab)
				if quit {
					return nil
				}
				if err != nil {
					c.Notify(dashboard.MessageError, err.Error())
					continue
				}
				c.SelectTab(next)
			}
		}
	})

	return g.Wait()
}

func draw(out io.Writer, snap dashboard.Snapshot, rt *runtime, clearTerm bool) error {
	if clearTerm {
		if _, err := io.WriteString(out, clearScreen); err != nil {
			return err
		}
	}
	if err := dashboard.Render(out, snap, rt.location); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%s\n", watchHelp)
	return err
}

// parseWatchInput maps an input line to the tab to enter. Reload re-enters
// the current tab.
func parseWatchInput(line string, current dashboard.Tab) (dashboard.Tab, bool, error) {
	switch strings.ToLower(line) {
	case "q", "quit", "exit":
		return "", true, nil
	case "r", "reload":
		return current, false, nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(dashboard.Tabs) {
			return "", false, fmt.Errorf("no tab %d", n)
		}
		return dashboard.Tabs[n-1], false, nil
	}

	tab, err := dashboard.ParseTab(strings.ToLower(line))
	if err != nil {
		return "", false, errors.New("unknown command: " + line)
	}
	return tab, false, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
