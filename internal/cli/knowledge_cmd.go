package cli

import (
	"context"
	"fmt"

	"github.com/coveyrise/steward/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newKnowledgeCmd(app *App) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "List recent posts from the knowledge feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Feed == nil {
				return fmt.Errorf("knowledge feed is not configured (set GHOST_BASE_URL)")
			}

			posts, err := app.Feed.Posts(context.Background(), tag)
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				fmt.Println("No posts found.")
				return nil
			}

			for _, post := range posts {
				fmt.Println(formatter.Bold(post.Title))
				fmt.Printf("  %s\n", formatter.Dim(post.PublishedAt.Format("2006-01-02")+"  "+post.Link))
				if post.Excerpt != "" {
					fmt.Printf("  %s\n", post.Excerpt)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Filter posts by Ghost tag slug")

	return cmd
}
