package cmd

import (
	"context"
	"demoblog/config"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the posts the server serves",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return listPosts(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(postsCmd)
}

func listPosts(ctx context.Context, cfg config.Config, out io.Writer) error {
	s, closePosts, err := openPosts(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePosts()

	posts, err := s.All(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tTITLE\tAUTHOR\tDATE")
	for _, p := range posts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Slug, p.Title, p.Author, p.Date)
	}
	return w.Flush()
}
