package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/docsift/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import [path...]",
	Short: "Import and index documents",
	Long: `Imports one or more files, extracts their text, splits it into
chunks and indexes them for search. Failures are recorded per document
and do not stop the remaining imports.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its index entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var reprocessCmd = &cobra.Command{
	Use:   "reprocess [doc-id]",
	Short: "Regenerate a document's chunks and vectors",
	Long: `Re-reads the document from its origin path and rebuilds its
chunks, vectors and index entries from scratch.`,
	Args: cobra.ExactArgs(1),
	RunE: runReprocess,
}

// showContent expands show output to the full extracted text.
var showContent bool

func init() {
	showCmd.Flags().BoolVar(&showContent, "content", false, "print the full extracted text")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(reprocessCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	failed := 0
	for _, path := range args {
		doc, err := ingestService.Import(ctx, path)
		if err != nil {
			cmd.Printf("  %s: %v\n", path, err)
			failed++
			continue
		}
		if doc.Status == domain.StatusError {
			cmd.Printf("  %s: %s [%s]\n", doc.ID, doc.Title, doc.Error)
			failed++
			continue
		}
		cmd.Printf("  %s: %s (%s)\n", doc.ID, doc.Title, doc.Status)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(args))
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	docs, err := ingestService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents imported.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s  %-12s %-10s %s\n",
			docs[i].ID, docs[i].FileType, docs[i].Status, docs[i].Title)
		if docs[i].Error != "" {
			cmd.Printf("      error: %s\n", docs[i].Error)
		}
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	doc, err := ingestService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("ID:       %s\n", doc.ID)
	cmd.Printf("Title:    %s\n", doc.Title)
	cmd.Printf("Type:     %s\n", doc.FileType)
	cmd.Printf("Origin:   %s\n", doc.Origin)
	cmd.Printf("Status:   %s\n", doc.Status)
	if doc.Error != "" {
		cmd.Printf("Error:    %s\n", doc.Error)
	}
	cmd.Printf("Imported: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))

	chunks, err := ingestService.Chunks(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("failed to get chunks: %w", err)
	}
	cmd.Printf("Chunks:   %d\n", len(chunks))

	if showContent {
		cmd.Println()
		cmd.Println(doc.Content)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if err := ingestService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runReprocess(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	doc, err := ingestService.Reprocess(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to reprocess document: %w", err)
	}

	if doc.Status == domain.StatusError {
		return fmt.Errorf("reprocessing failed: %s", doc.Error)
	}
	cmd.Printf("Reprocessed %s (%s)\n", doc.ID, doc.Status)
	return nil
}
