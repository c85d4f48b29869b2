package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/paperview/paperview/internal/api"
	"github.com/paperview/paperview/internal/format"
	"github.com/paperview/paperview/internal/pdf"
	"github.com/spf13/cobra"
)

var proxyOutput string

func init() {
	remoteProxyCmd.Flags().StringVarP(&proxyOutput, "output", "o", "", "Output file (required)")
	remoteProxyCmd.MarkFlagRequired("output")

	remoteCmd.AddCommand(remoteUploadCmd)
	remoteCmd.AddCommand(remoteGenerateURLCmd)
	remoteCmd.AddCommand(remoteGenerateTextCmd)
	remoteCmd.AddCommand(remoteProxyCmd)
}

var remoteUploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF and generate its visual summary",
	Long: `Upload a local PDF to the backend, which generates a visual summary.

The PDF is inspected first (pages, size, DOI) and upload progress is shown
with --human.

Examples:
  pv remote upload paper.pdf --human`,
	Args: cobra.ExactArgs(1),
	Run:  runRemoteUpload,
}

var remoteGenerateURLCmd = &cobra.Command{
	Use:   "generate-url <pdf-url>",
	Short: "Generate a visual summary from a PDF link",
	Long: `Generate a visual summary from a PDF link such as an arXiv URL.

Examples:
  pv remote generate-url https://arxiv.org/pdf/1706.03762`,
	Args: cobra.ExactArgs(1),
	Run:  runRemoteGenerateURL,
}

var remoteGenerateTextCmd = &cobra.Command{
	Use:   "generate-text <question>...",
	Short: "Generate a visual answer from a question",
	Args:  cobra.MinimumNArgs(1),
	Run:   runRemoteGenerateText,
}

var remoteProxyCmd = &cobra.Command{
	Use:   "proxy-pdf <pdf-url>",
	Short: "Download a PDF through the backend proxy",
	Long: `Download a PDF through the backend proxy, which avoids cross-origin limits.

Examples:
  pv remote proxy-pdf https://arxiv.org/pdf/1706.03762 -o attention.pdf --human`,
	Args: cobra.ExactArgs(1),
	Run:  runRemoteProxy,
}

// UploadResponse is the JSON output of remote upload.
type UploadResponse struct {
	PDF    *pdf.Info           `json:"pdf,omitempty"`
	Result *api.GenerateResult `json:"result"`
}

// ProxyResponse is the JSON output of remote proxy-pdf.
type ProxyResponse struct {
	Output string `json:"output"`
	Bytes  int64  `json:"bytes"`
	Size   string `json:"size"`
}

func runRemoteUpload(cmd *cobra.Command, args []string) {
	path := args[0]

	info, err := pdf.Inspect(path)
	if err != nil {
		// The backend gets the final say on whether the file is usable.
		log.WithError(err).Warn("could not inspect PDF before upload")
	} else if humanOutput {
		fmt.Printf("%s: %d pages, %s\n", path, info.Pages, format.FileSize(info.Size))
		if info.Title != "" {
			fmt.Printf("  Title: %s\n", truncateString(info.Title, DetailTitleMaxLen))
		}
		if info.DOI != "" {
			fmt.Printf("  DOI:   %s\n", info.DOI)
		}
	}

	progress, finish := barProgress("uploading")
	remoteRun(path, func(ctx context.Context, client *api.Client) (UploadResponse, error) {
		result, err := client.UploadPDF(ctx, path, progress)
		finish()
		return UploadResponse{PDF: info, Result: result}, err
	}, func(resp UploadResponse) {
		printGenerateResult(resp.Result)
	})
}

func runRemoteGenerateURL(cmd *cobra.Command, args []string) {
	pdfURL := args[0]
	if !format.IsURL(pdfURL) {
		exitWithError(ExitError, "not a URL: %s", pdfURL)
	}

	stop := startSpinner("generating")
	remoteRun(pdfURL, func(ctx context.Context, client *api.Client) (*api.GenerateResult, error) {
		defer stop()
		return client.GenerateFromURL(ctx, pdfURL)
	}, printGenerateResult)
}

func runRemoteGenerateText(cmd *cobra.Command, args []string) {
	question := strings.Join(args, " ")

	stop := startSpinner("generating")
	remoteRun("", func(ctx context.Context, client *api.Client) (*api.GenerateResult, error) {
		defer stop()
		return client.GenerateFromText(ctx, question)
	}, printGenerateResult)
}

func runRemoteProxy(cmd *cobra.Command, args []string) {
	pdfURL := args[0]

	f, err := os.Create(proxyOutput)
	if err != nil {
		exitWithError(ExitError, "creating %s: %v", proxyOutput, err)
	}
	defer f.Close()

	progress, finish := barProgress("downloading")
	remoteRun(pdfURL, func(ctx context.Context, client *api.Client) (ProxyResponse, error) {
		n, err := client.ProxyPDF(ctx, pdfURL, f, progress)
		finish()
		if err != nil {
			f.Close()
			os.Remove(proxyOutput)
		}
		return ProxyResponse{Output: proxyOutput, Bytes: n, Size: format.FileSize(n)}, err
	}, func(resp ProxyResponse) {
		success("Saved %s (%s)", resp.Output, resp.Size)
	})
}

func printGenerateResult(res *api.GenerateResult) {
	if res.Title != "" {
		fmt.Println(res.Title)
	}
	fmt.Printf("Output: %s\n", res.OutputDir)
	for _, img := range res.Images {
		fmt.Printf("  %s\n", img)
	}
}
