package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paperview/paperview/internal/api"
	"github.com/spf13/cobra"
)

var (
	translateTarget  string
	translateStream  bool
	translateSession int
	translatePaper   string

	chatContext string
	chatStream  bool
	chatSession int
	chatPaper   string

	aiProvider string
	aiModel    string
	aiAPIBase  string
	aiAPIKey   string
)

func init() {
	remoteTranslateCmd.Flags().StringVar(&translateTarget, "to", "zh", "Target language")
	remoteTranslateCmd.Flags().BoolVar(&translateStream, "stream", false, "Stream the translation as it is produced")
	remoteTranslateCmd.Flags().IntVar(&translateSession, "session", 0, "Record the exchange in this session (with --stream)")
	remoteTranslateCmd.Flags().StringVar(&translatePaper, "paper", "", "Paper title for a new session (with --stream)")

	remoteChatCmd.Flags().StringVar(&chatContext, "context", "", "Text the question is about")
	remoteChatCmd.Flags().BoolVar(&chatStream, "stream", false, "Stream the reply as it is produced")
	remoteChatCmd.Flags().IntVar(&chatSession, "session", 0, "Record the exchange in this session (with --stream)")
	remoteChatCmd.Flags().StringVar(&chatPaper, "paper", "", "Paper title for a new session (with --stream)")

	remoteAIConfigCmd.Flags().StringVar(&aiProvider, "provider", "", "Provider id to activate")
	remoteAIConfigCmd.Flags().StringVar(&aiModel, "model", "", "Model name to activate")
	remoteAIConfigCmd.Flags().StringVar(&aiAPIBase, "api-base", "", "Provider API base URL")
	remoteAIConfigCmd.Flags().StringVar(&aiAPIKey, "api-key", "", "Provider API key")

	remoteCmd.AddCommand(remoteTranslateCmd)
	remoteCmd.AddCommand(remoteChatCmd)
	remoteCmd.AddCommand(remoteAIConfigCmd)
	remoteCmd.AddCommand(remoteAIOptionsCmd)
}

var remoteTranslateCmd = &cobra.Command{
	Use:   "translate <text>...",
	Short: "Translate text with the configured model",
	Long: `Translate text with the model configured on the backend.

Examples:
  pv remote translate "Attention is all you need" --to zh
  pv remote translate --stream --human "Graph neural networks"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRemoteTranslate,
}

var remoteChatCmd = &cobra.Command{
	Use:   "chat <message>...",
	Short: "Ask the configured model a question",
	Long: `Ask the model configured on the backend a question, optionally about a
passage given with --context.

Examples:
  pv remote chat "What is the main contribution?" --context "$(cat abstract.txt)"
  pv remote chat --stream --human "Summarize self-attention"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRemoteChat,
}

var remoteAIConfigCmd = &cobra.Command{
	Use:   "ai-config",
	Short: "Show or set the active model",
	Long: `Show the active model, or activate one with --provider and --model.

Examples:
  pv remote ai-config
  pv remote ai-config --provider deepseek --model deepseek-chat --api-key $KEY`,
	Args: cobra.NoArgs,
	Run:  runRemoteAIConfig,
}

var remoteAIOptionsCmd = &cobra.Command{
	Use:   "ai-options",
	Short: "List selectable providers and models",
	Args:  cobra.NoArgs,
	Run:   runRemoteAIOptions,
}

// StreamResponse is the JSON output of a streamed call.
type StreamResponse struct {
	Model     string `json:"model"`
	Text      string `json:"text"`
	SessionID int    `json:"session_id,omitempty"`
}

func runRemoteTranslate(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")

	if translateStream {
		req := api.TranslateRequest{
			Text:       text,
			TargetLang: translateTarget,
			SessionID:  translateSession,
			PaperTitle: translatePaper,
		}
		runStream(func(ctx context.Context, client *api.Client, onEvent func(api.StreamEvent)) (*api.StreamResult, error) {
			return client.TranslateStream(ctx, req, onEvent)
		})
		return
	}

	remoteRun("", func(ctx context.Context, client *api.Client) (*api.TranslateResult, error) {
		return client.Translate(ctx, text, translateTarget)
	}, func(res *api.TranslateResult) {
		fmt.Println(res.TranslatedText)
	})
}

func runRemoteChat(cmd *cobra.Command, args []string) {
	messages := []api.Message{{Role: "user", Content: strings.Join(args, " ")}}

	if chatStream {
		req := api.ChatRequest{
			Messages:    messages,
			ContextText: chatContext,
			SessionID:   chatSession,
			PaperTitle:  chatPaper,
		}
		runStream(func(ctx context.Context, client *api.Client, onEvent func(api.StreamEvent)) (*api.StreamResult, error) {
			return client.ChatStream(ctx, req, onEvent)
		})
		return
	}

	remoteRun("", func(ctx context.Context, client *api.Client) (*api.ChatResult, error) {
		return client.Chat(ctx, messages, chatContext)
	}, func(res *api.ChatResult) {
		fmt.Println(res.Response)
	})
}

// runStream runs a streamed call. In human mode chunks are printed as they
// arrive; otherwise the assembled result is printed as JSON at the end.
func runStream(call func(ctx context.Context, client *api.Client, onEvent func(api.StreamEvent)) (*api.StreamResult, error)) {
	ctx, stop := remoteContext()
	defer stop()

	var onEvent func(api.StreamEvent)
	if humanOutput {
		onEvent = func(ev api.StreamEvent) {
			if ev.Type == api.EventChunk {
				fmt.Print(ev.Content)
			}
		}
	}

	res, err := call(ctx, newRemoteClient(), onEvent)
	if humanOutput {
		fmt.Println()
	}
	if err != nil {
		os.Exit(remoteOutputError(err, ""))
	}

	if humanOutput {
		if res.SessionID != 0 {
			fmt.Fprintf(os.Stderr, "(%s, session %d)\n", res.Model, res.SessionID)
		}
		return
	}
	outputJSON(StreamResponse{Model: res.Model, Text: res.Text, SessionID: res.SessionID})
}

func runRemoteAIConfig(cmd *cobra.Command, args []string) {
	if aiProvider == "" && aiModel == "" {
		remoteRun("", func(ctx context.Context, client *api.Client) (*api.AIModelConfig, error) {
			return client.AIConfig(ctx)
		}, printAIConfig)
		return
	}

	cfg := api.AIModelConfig{
		Provider:  aiProvider,
		ModelName: aiModel,
		APIBase:   aiAPIBase,
		APIKey:    aiAPIKey,
	}
	remoteRun("", func(ctx context.Context, client *api.Client) (*api.AIModelConfig, error) {
		return client.SetAIConfig(ctx, cfg)
	}, printAIConfig)
}

func printAIConfig(cfg *api.AIModelConfig) {
	if cfg == nil {
		fmt.Println("No model configured")
		return
	}
	fmt.Printf("%s / %s\n", cfg.Provider, cfg.ModelName)
	if cfg.APIBase != "" {
		fmt.Printf("  API base: %s\n", cfg.APIBase)
	}
}

func runRemoteAIOptions(cmd *cobra.Command, args []string) {
	remoteRun("", func(ctx context.Context, client *api.Client) (map[string]api.AIProvider, error) {
		return client.AIOptions(ctx)
	}, func(options map[string]api.AIProvider) {
		ids := make([]string, 0, len(options))
		for id := range options {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			p := options[id]
			fmt.Printf("%s (%s)\n", p.Name, id)
			for _, m := range p.Models {
				fmt.Printf("  %-28s %s\n", m.ID, m.Description)
			}
		}
	})
}
