package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"mdpub/internal/archive"
	"mdpub/internal/config"
	"mdpub/internal/importer"
	"mdpub/internal/post"
	"mdpub/internal/prosemirror"
	"mdpub/internal/substack"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mdpub",
		Short: "Publish markdown posts to Substack",
	}

	dbPath       string
	titleFlag    string
	subtitleFlag string
	audienceFlag string

	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "mdpub.db", "Path to the local publish history database (SQLite)")

	for _, cmd := range []*cobra.Command{previewCmd, draftCmd, publishCmd} {
		cmd.Flags().StringVar(&titleFlag, "title", "", "Override post title (default: from # heading)")
		cmd.Flags().StringVar(&subtitleFlag, "subtitle", "", "Override subtitle (default: from ## Hook)")
		cmd.Flags().StringVar(&audienceFlag, "audience", "", "Post audience: everyone or paid (default: everyone)")
	}
	previewCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the ProseMirror body JSON instead of the text outline")

	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "Write the markdown to this file instead of stdout")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of history entries to show")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(importCmd)
}

// composeFile reads and converts a markdown file, printing any conversion
// warnings to stderr.
func composeFile(path string) (*post.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// An empty flag leaves the choice to front matter, then the default.
	var audience post.Audience
	if audienceFlag != "" {
		if audience, err = post.ParseAudience(audienceFlag); err != nil {
			return nil, err
		}
	}

	doc, warnings, err := post.Compose(data, post.Options{
		Title:    titleFlag,
		Subtitle: subtitleFlag,
		Audience: audience,
	})
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, warnStyle.Render("⚠️  "+w))
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func newClient() (*substack.Client, *config.Config, error) {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return substack.NewClient(cfg.Substack.Subdomain, cfg.SID, cfg.Substack.UserID), cfg, nil
}

func recordEntry(ctx context.Context, e *archive.Entry) {
	store, err := archive.NewStore(dbPath)
	if err != nil {
		log.Printf("Warning: could not open history database: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, e); err != nil {
		log.Printf("Warning: could not record history entry: %v", err)
	}
}

var jsonFlag bool

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Convert a post and print it without touching the network",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := composeFile(args[0])
		if err != nil {
			log.Fatalf("Conversion failed: %v", err)
		}

		fmt.Fprintln(os.Stderr, "Title:    "+doc.Title)
		if doc.Subtitle != "" {
			fmt.Fprintln(os.Stderr, "Subtitle: "+truncate(doc.Subtitle, 80))
		}
		fmt.Fprintln(os.Stderr, faintStyle.Render("Audience: "+string(doc.Audience)))

		if err := prosemirror.ValidateDoc(doc.Body); err != nil {
			fmt.Fprintln(os.Stderr, warnStyle.Render("⚠️  "+err.Error()))
		}

		if jsonFlag {
			out, err := json.MarshalIndent(doc.Body, "", "  ")
			if err != nil {
				log.Fatalf("Failed to encode body: %v", err)
			}
			fmt.Println(string(out))
			return
		}
		fmt.Print(prosemirror.Render(doc.Body))
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft [file]",
	Short: "Create a Substack draft from a markdown post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		doc, err := composeFile(args[0])
		if err != nil {
			log.Fatalf("Conversion failed: %v", err)
		}

		client, cfg, err := newClient()
		if err != nil {
			log.Fatalf("Configuration error: %v", err)
		}

		fmt.Fprintf(os.Stderr, "📝 Creating draft on %s.substack.com...\n", cfg.Substack.Subdomain)
		draft, err := client.CreateDraft(ctx, doc)
		if err != nil {
			log.Fatalf("Failed to create draft: %v", err)
		}

		url := client.DraftURL(draft.ID)
		recordEntry(ctx, &archive.Entry{
			Title:    doc.Title,
			DraftID:  draft.ID,
			URL:      url,
			Audience: string(doc.Audience),
		})

		fmt.Fprintln(os.Stderr, successStyle.Render("✅ Draft created"))
		fmt.Println(url)
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish [file]",
	Short: "Create a draft and publish it immediately",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		doc, err := composeFile(args[0])
		if err != nil {
			log.Fatalf("Conversion failed: %v", err)
		}

		client, cfg, err := newClient()
		if err != nil {
			log.Fatalf("Configuration error: %v", err)
		}

		fmt.Fprintf(os.Stderr, "📝 Creating draft on %s.substack.com...\n", cfg.Substack.Subdomain)
		draft, err := client.CreateDraft(ctx, doc)
		if err != nil {
			log.Fatalf("Failed to create draft: %v", err)
		}

		fmt.Fprintln(os.Stderr, "🚀 Publishing...")
		published, err := client.PublishDraft(ctx, draft.ID)
		if err != nil {
			log.Fatalf("Failed to publish draft %d: %v", draft.ID, err)
		}

		url := client.PostURL(published.Slug)
		recordEntry(ctx, &archive.Entry{
			Title:     doc.Title,
			DraftID:   draft.ID,
			URL:       url,
			Audience:  string(doc.Audience),
			Published: true,
		})

		fmt.Fprintln(os.Stderr, successStyle.Render("✅ Published"))
		fmt.Println(url)
	},
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent drafts and publishes",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := archive.NewStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer store.Close()

		entries, err := store.Recent(context.Background(), historyLimit)
		if err != nil {
			log.Fatalf("Failed to read history: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return
		}

		for _, e := range entries {
			status := "draft"
			if e.Published {
				status = "published"
			}
			fmt.Printf("%s  %-9s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), status, e.Title)
			fmt.Println(faintStyle.Render("                            " + e.URL))
		}
	},
}

var importOut string

var importCmd = &cobra.Command{
	Use:   "import [file.html]",
	Short: "Convert an HTML page into a markdown post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		md, err := importer.ConvertFile(args[0])
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}

		if importOut == "" {
			fmt.Println(md)
			return
		}
		if err := os.WriteFile(importOut, []byte(md), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", importOut, err)
		}
		fmt.Fprintln(os.Stderr, successStyle.Render("✅ Wrote "+importOut))
	},
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut]) + "..."
}
