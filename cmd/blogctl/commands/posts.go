package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/inkpost/blog-system/internal/core/domain"
	"github.com/inkpost/blog-system/internal/core/pagination"
)

func postsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and manage posts",
	}
	cmd.AddCommand(
		postsListCmd(c),
		postsMineCmd(c),
		postsShowCmd(c),
		postsCreateCmd(c),
		postsEditCmd(c),
		postsDeleteCmd(c),
	)
	return cmd
}

func postsListCmd(c *cli) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printPage(cmd.OutOrStdout(), c.app.content.List(), page)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func postsMineCmd(c *cli) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := c.app.identity.CurrentIdentity()
			if !ok {
				return domain.ErrNotAuthenticated
			}
			return c.printPage(cmd.OutOrStdout(), c.app.content.ListByOwner(id.ID), page)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func postsShowCmd(c *cli) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, ok := c.app.content.GetByID(args[0])
			if !ok {
				return domain.ErrPostNotFound
			}

			out := cmd.OutOrStdout()
			body := post.Content
			if asHTML {
				rendered, err := c.app.renderer.Render(post.Content)
				if err != nil {
					return err
				}
				body = rendered
			}

			fmt.Fprintf(out, "%s\n", post.Title)
			fmt.Fprintf(out, "by %s, %s\n\n", post.Author.Name, humanize.RelTime(post.CreatedAt, c.now(), "ago", "from now"))
			fmt.Fprintln(out, body)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the body as HTML")
	return cmd
}

func postsCreateCmd(c *cli) *cobra.Command {
	var title, content, file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), content, file)
			if err != nil {
				return err
			}
			if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
				return fmt.Errorf("title and content are required")
			}

			post, err := c.app.content.Create(cmd.Context(), title, body)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), post.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "post title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "post body (markdown)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the body from a file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	return cmd
}

func postsEditCmd(c *cli) *cobra.Command {
	var title, content, file string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or body of your post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), content, file)
			if err != nil {
				return err
			}

			// Unset fields keep their current value.
			if current, ok := c.app.content.GetByID(args[0]); ok {
				if title == "" {
					title = current.Title
				}
				if body == "" {
					body = current.Content
				}
			}

			_, err = c.app.content.Update(cmd.Context(), args[0], title, body)
			return err
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "new body (markdown)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the new body from a file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	return cmd
}

func postsDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete your post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.content.Delete(cmd.Context(), args[0])
		},
	}
}

func (c *cli) printPage(out io.Writer, posts []domain.Post, page int) error {
	if page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}

	pager := pagination.NewPager(len(posts), c.app.cfg.PageSize, page)
	visible := pagination.Slice(posts, pager.Window)
	if len(visible) == 0 {
		fmt.Fprintln(out, "No posts.")
		return nil
	}

	now := c.now()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCREATED")
	for _, p := range visible {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Author.Name, humanize.RelTime(p.CreatedAt, now, "ago", "from now"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(pager.Pages) > 0 {
		labels := make([]string, len(pager.Pages))
		for i, item := range pager.Pages {
			labels[i] = item.String()
			if !item.Ellipsis && item.Page == page {
				labels[i] = "[" + labels[i] + "]"
			}
		}
		fmt.Fprintf(out, "\nPage %d of %d: %s\n", page, pager.Window.TotalPages, strings.Join(labels, " "))
	}
	return nil
}

func readBody(stdin io.Reader, content, file string) (string, error) {
	switch file {
	case "":
		return content, nil
	case "-":
		b, err := io.ReadAll(stdin)
		return string(b), err
	default:
		b, err := os.ReadFile(file)
		return string(b), err
	}
}
