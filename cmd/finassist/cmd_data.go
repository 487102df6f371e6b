package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/finassist/internal/store"
)

var (
	ticketsUser   string
	ticketsStatus string
	actionsUser   string
)

func init() {
	ticketsCmd.Flags().StringVar(&ticketsUser, "user", "usr_002", "user id to list tickets for")
	ticketsCmd.Flags().StringVar(&ticketsStatus, "status", "", "restrict to one ticket status")
	actionsCmd.Flags().StringVar(&actionsUser, "user", "usr_002", "user id to list allowed actions for")
	rootCmd.AddCommand(usersCmd, ticketsCmd, actionsCmd)
}

func openStore() (*store.Store, error) {
	cfg := loadConfig()
	setupLogging(cfg)
	return store.Open(cfg.DataDir)
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tROLE\tWORKSPACE")
		for _, u := range st.AllUsers() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Role, u.WorkspaceID)
		}
		return w.Flush()
	},
}

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "List support tickets visible to a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		tickets := st.SupportTickets(ticketsUser, ticketsStatus)
		if len(tickets) == 0 {
			fmt.Println("No tickets found.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tTITLE\tCREATED")
		for _, t := range tickets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, t.Title, t.CreatedDate)
		}
		return w.Flush()
	},
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the actions a user's role permits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		actions := st.AllowedActions(actionsUser)
		if len(actions) == 0 {
			fmt.Println("No actions available.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ACTION\tDESCRIPTION\tDATA SOURCES")
		for _, a := range actions {
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Action, a.Description, strings.Join(a.DataSources, ", "))
		}
		return w.Flush()
	},
}
