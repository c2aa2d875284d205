package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/altinukshini/assetflow-tui/internal/auth"
	"github.com/altinukshini/assetflow-tui/internal/model"
	"github.com/altinukshini/assetflow-tui/internal/search"
)

var (
	colorHeader = color.New(color.FgHiMagenta, color.Bold)
	colorBold   = color.New(color.Bold)
	colorMuted  = color.New(color.FgHiBlack)
	colorLink   = color.New(color.FgCyan)
)

var entityColors = map[model.EntityType]*color.Color{
	model.EntityAsset:    color.New(color.FgBlue),
	model.EntityMovement: color.New(color.FgYellow),
	model.EntityVendor:   color.New(color.FgGreen),
	model.EntityCosting:  color.New(color.FgMagenta),
}

func searchCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search every screen and print the matches with their links",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(flags)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.requireSession(); err != nil {
				return err
			}

			searcher := search.NewSearcher(e.client, search.New(e.cfg.PageSize),
				search.WithTimeout(e.cfg.RequestTimeout),
				search.WithLogger(e.log),
				search.WithMetrics(e.metrics),
			)
			query := strings.Join(args, " ")
			results := searcher.Search(cmd.Context(), query)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			printResults(cmd.OutOrStdout(), query, results)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func writeJSON(w io.Writer, results []model.SearchResult) error {
	if results == nil {
		results = []model.SearchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func printResults(w io.Writer, query string, results []model.SearchResult) {
	if len(results) == 0 {
		colorMuted.Fprintf(w, "No results found for %q\n", query)
		return
	}
	colorHeader.Fprintf(w, "%d results for %q\n\n", len(results), query)
	for _, r := range results {
		c, ok := entityColors[r.EntityType]
		if !ok {
			c = colorMuted
		}
		c.Fprintf(w, "%-10s", r.PageLabel)
		colorBold.Fprintf(w, " %s\n", r.Title)
		colorMuted.Fprintf(w, "           %s\n", r.Description)
		colorLink.Fprintf(w, "           %s\n", r.Link)
	}
}

func loginCmd(flags *globalFlags) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			in := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				line, err := in.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return errors.New("email is required")
			}

			password, err := readPassword(cmd, in)
			if err != nil {
				return err
			}

			ctx, cancel := e.context()
			defer cancel()
			resp, err := e.client.Login(ctx, email, password)
			if err != nil {
				return err
			}

			sess := auth.FromAuthResponse(resp)
			if err := e.store.Save(sess); err != nil {
				return err
			}
			e.log.WithField("user", sess.User.Email).Info("signed in")

			fmt.Fprint(cmd.OutOrStdout(), "Signed in as ")
			colorBold.Fprint(cmd.OutOrStdout(), displayName(sess.User))
			colorMuted.Fprintf(cmd.OutOrStdout(), " at %s", e.client.BaseURL())
			if exp, ok := sess.ExpiresAt(); ok {
				colorMuted.Fprintf(cmd.OutOrStdout(), " (expires %s)", exp.Local().Format("2006-01-02 15:04"))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	return cmd
}

// readPassword reads without echo from a terminal, or a line from piped
// input.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func logoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.Clear(); err != nil {
				return err
			}
			e.log.Info("signed out")
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func displayName(u model.User) string {
	if u.Name == "" {
		return u.Email
	}
	if u.Email == "" {
		return u.Name
	}
	return fmt.Sprintf("%s <%s>", u.Name, u.Email)
}
