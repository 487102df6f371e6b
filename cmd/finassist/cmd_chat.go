package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/finassist/internal/assist"
	"github.com/user/finassist/internal/session"
	"github.com/user/finassist/internal/store"
)

var chatUser string

func init() {
	chatCmd.Flags().StringVar(&chatUser, "user", "usr_002", "user id to chat as")
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant interactively",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open data store: %w", err)
	}
	user, ok := st.UserByID(chatUser)
	if !ok {
		return fmt.Errorf("unknown user: %s", chatUser)
	}

	contexts := session.NewManager()
	processor := assist.New(st, contexts)
	welcome := session.NewGenerator(st, contexts, cfg.SimulateResolution)

	fmt.Printf("Chatting as %s (%s). Type 'context' for a context summary, 'exit' to quit.\n\n", user.Name, user.Role)
	fmt.Printf("assistant> %s\n\n", welcome.WelcomeMessage(chatUser).Content)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		if input == "context" {
			fmt.Printf("assistant> %s\n\n", welcome.ContextSummary(chatUser))
			continue
		}

		resp, err := processor.ProcessTurn(ctx, chatUser, input)
		if err != nil {
			return fmt.Errorf("process turn: %w", err)
		}
		fmt.Printf("assistant> %s\n", resp.Content)
		for _, trace := range resp.ActionsPerformed {
			fmt.Printf("  [%s]\n", trace.Action)
		}
		fmt.Println()
	}
	return scanner.Err()
}
