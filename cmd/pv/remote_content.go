package main

import (
	"context"
	"fmt"
	"os"

	"github.com/paperview/paperview/internal/api"
	"github.com/spf13/cobra"
)

func init() {
	remoteCmd.AddCommand(remoteListCmd)
	remoteCmd.AddCommand(remoteGetCmd)
	remoteCmd.AddCommand(remoteDeleteCmd)
	remoteCmd.AddCommand(remoteImagesCmd)
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated content",
	Args:  cobra.NoArgs,
	Run:   runRemoteList,
}

var remoteGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show generated content",
	Long: `Show one generated content folder by id (yyyy-mm-dd/folder).

Examples:
  pv remote get 2025-01-02/attention --human`,
	Args: cobra.ExactArgs(1),
	Run:  runRemoteGet,
}

var remoteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete generated content",
	Args:  cobra.ExactArgs(1),
	Run:   runRemoteDelete,
}

var remoteImagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List the images shown on the home page",
	Args:  cobra.NoArgs,
	Run:   runRemoteImages,
}

func runRemoteList(cmd *cobra.Command, args []string) {
	remoteRun("", func(ctx context.Context, client *api.Client) ([]api.ContentSummary, error) {
		return client.ListContent(ctx)
	}, func(items []api.ContentSummary) {
		if len(items) == 0 {
			fmt.Println("No generated content")
			return
		}
		for _, item := range items {
			fmt.Printf("  %-32s %s (%d images)\n", item.ID, truncateString(item.Title, ListTitleMaxLen), item.ImageCount)
		}
	})
}

func runRemoteGet(cmd *cobra.Command, args []string) {
	id := args[0]
	remoteRun(id, func(ctx context.Context, client *api.Client) (*api.ContentDetail, error) {
		detail, err := client.GetContent(ctx, id)
		if err != nil {
			return nil, err
		}
		for i, img := range detail.Images {
			detail.Images[i] = client.ContentImageURL(img)
		}
		return detail, nil
	}, func(detail *api.ContentDetail) {
		fmt.Println(detail.Title)
		fmt.Printf("ID: %s\n", detail.ID)
		if len(detail.Summary) > 0 && string(detail.Summary) != "null" {
			fmt.Printf("\nSummary:\n%s\n", detail.Summary)
		}
		if detail.Mermaid != "" {
			fmt.Printf("\nMermaid:\n%s\n", detail.Mermaid)
		}
		if len(detail.Images) > 0 {
			fmt.Printf("\nImages:\n")
			for _, img := range detail.Images {
				fmt.Printf("  %s\n", img)
			}
		}
	})
}

func runRemoteDelete(cmd *cobra.Command, args []string) {
	id := args[0]
	ctx, stop := remoteContext()
	defer stop()

	if err := newRemoteClient().DeleteContent(ctx, id); err != nil {
		os.Exit(remoteOutputError(err, id))
	}

	if humanOutput {
		success("Deleted %s", id)
		return
	}
	outputJSON(StatusResponse{Status: "deleted", ID: id})
}

func runRemoteImages(cmd *cobra.Command, args []string) {
	remoteRun("", func(ctx context.Context, client *api.Client) ([]string, error) {
		return client.IndexImages(ctx)
	}, func(images []string) {
		for _, img := range images {
			fmt.Println(img)
		}
	})
}
