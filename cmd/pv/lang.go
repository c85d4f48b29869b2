package main

import (
	"github.com/paperview/paperview/internal/i18n"
	"github.com/spf13/cobra"
)

func init() {
	langCmd.AddCommand(langGetCmd)
	langCmd.AddCommand(langSetCmd)
	rootCmd.AddCommand(langCmd)
}

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the interface language",
	Long: `Show or change the interface language (zh or en).

The saved preference wins; without one the language follows LC_ALL or LANG,
and falls back to zh.

Examples:
  pv lang
  pv lang set en`,
	RunE: runLangGet,
}

var langGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current language",
	Args:  cobra.NoArgs,
	RunE:  runLangGet,
}

var langSetCmd = &cobra.Command{
	Use:       "set <zh|en>",
	Short:     "Save the language preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: i18n.Supported(),
	RunE:      runLangSet,
}

// LanguageResponse is the response for lang commands.
type LanguageResponse struct {
	Language  string   `json:"language"`
	Name      string   `json:"name"`
	Supported []string `json:"supported"`
}

func runLangGet(cmd *cobra.Command, args []string) error {
	loc := newLocalizer(mustLoadConfig())
	return outputLanguage(loc)
}

func runLangSet(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	loc := newLocalizer(cfg)
	if err := loc.SetLanguage(args[0]); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return outputLanguage(loc)
}

func outputLanguage(loc *i18n.Localizer) error {
	lang := loc.Language()
	resp := LanguageResponse{
		Language:  lang,
		Name:      loc.T("language."+lang, nil),
		Supported: i18n.Supported(),
	}
	if humanOutput {
		outputHuman("%s (%s)\n", resp.Name, resp.Language)
		return nil
	}
	return outputJSON(resp)
}
