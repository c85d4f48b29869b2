package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/paperview/paperview/internal/api"
	"github.com/spf13/cobra"
)

var (
	sessionTitle   string
	sessionPaper   string
	sessionURL     string
	sessionType    string
	sessionContext string
)

func init() {
	remoteSessionsCreateCmd.Flags().StringVar(&sessionTitle, "title", "", "Session title")
	remoteSessionsCreateCmd.Flags().StringVar(&sessionPaper, "paper", "", "Paper title")
	remoteSessionsCreateCmd.Flags().StringVar(&sessionURL, "url", "", "Paper URL")
	remoteSessionsCreateCmd.Flags().StringVar(&sessionType, "type", "chat", "Session type: chat or translate")
	remoteSessionsCreateCmd.Flags().StringVar(&sessionContext, "context", "", "Context text for the session")

	remoteSessionsCmd.AddCommand(remoteSessionsGetCmd)
	remoteSessionsCmd.AddCommand(remoteSessionsCreateCmd)
	remoteSessionsCmd.AddCommand(remoteSessionsDeleteCmd)
	remoteCmd.AddCommand(remoteSessionsCmd)
}

var remoteSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List translation and chat sessions",
	Long: `List, show, create and delete translation and chat sessions.

Examples:
  pv remote sessions --human
  pv remote sessions get 12
  pv remote sessions create --type translate --paper "Attention Is All You Need"`,
	Args: cobra.NoArgs,
	Run:  runRemoteSessions,
}

var remoteSessionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a session with its messages",
	Args:  cobra.ExactArgs(1),
	Run:   runRemoteSessionsGet,
}

var remoteSessionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new session",
	Args:  cobra.NoArgs,
	Run:   runRemoteSessionsCreate,
}

var remoteSessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	Run:   runRemoteSessionsDelete,
}

// parseSessionID validates a numeric session id.
func parseSessionID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q: must be a positive integer", s)
	}
	return id, nil
}

func mustParseSessionID(s string) int {
	id, err := parseSessionID(s)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return id
}

func runRemoteSessions(cmd *cobra.Command, args []string) {
	remoteRun("", func(ctx context.Context, client *api.Client) ([]api.Session, error) {
		sessions, err := client.ListSessions(ctx)
		if sessions == nil {
			sessions = []api.Session{}
		}
		return sessions, err
	}, func(sessions []api.Session) {
		if len(sessions) == 0 {
			fmt.Println("No sessions")
			return
		}
		for _, s := range sessions {
			pin := " "
			if s.IsPinned {
				pin = "*"
			}
			fmt.Printf("%s %4d  %-9s %s (%d messages)\n", pin, s.ID, s.SessionType, truncateString(s.Title, ListTitleMaxLen), s.MessageCount)
		}
	})
}

func runRemoteSessionsGet(cmd *cobra.Command, args []string) {
	id := mustParseSessionID(args[0])
	remoteRun(args[0], func(ctx context.Context, client *api.Client) (*api.SessionDetail, error) {
		return client.GetSession(ctx, id)
	}, func(detail *api.SessionDetail) {
		fmt.Printf("%s\n", detail.Session.Title)
		if detail.Session.PaperTitle != "" {
			fmt.Printf("Paper: %s\n", detail.Session.PaperTitle)
		}
		fmt.Println()
		for _, m := range detail.Messages {
			fmt.Printf("[%s] %s\n\n", m.Role, wrapText(m.Content, TextWrapWidth, "  "))
		}
	})
}

func runRemoteSessionsCreate(cmd *cobra.Command, args []string) {
	req := api.CreateSessionRequest{
		Title:       sessionTitle,
		PaperTitle:  sessionPaper,
		PaperURL:    sessionURL,
		SessionType: sessionType,
		ContextText: sessionContext,
	}
	remoteRun("", func(ctx context.Context, client *api.Client) (*api.CreatedSession, error) {
		return client.CreateSession(ctx, req)
	}, func(created *api.CreatedSession) {
		success("Created session %d: %s", created.SessionID, created.Title)
	})
}

func runRemoteSessionsDelete(cmd *cobra.Command, args []string) {
	id := mustParseSessionID(args[0])
	ctx, stop := remoteContext()
	defer stop()

	if err := newRemoteClient().DeleteSession(ctx, id); err != nil {
		os.Exit(remoteOutputError(err, args[0]))
	}

	if humanOutput {
		success("Deleted session %d", id)
		return
	}
	outputJSON(StatusResponse{Status: "deleted", ID: args[0]})
}
