package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newWishlistCommand(g *globals) *cobra.Command {
	var resolve bool

	cmd := &cobra.Command{
		Use:   "wishlist [--resolve]",
		Short: "Prints the Hardcover want-to-read shelf, optionally with Half Price Books product ids.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secrets, err := loadSecrets()
			if err != nil {
				return err
			}
			cfg, err := g.config()
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			dump, err := g.dump()
			if err != nil {
				return err
			}

			client, err := newHardcoverClient(cfg, secrets, dump)
			if err != nil {
				return err
			}
			books, err := client.WantToRead(cmd.Context())
			if err != nil {
				return fmt.Errorf("hardcover want-to-read: %w", err)
			}

			t := newTable(cmd.OutOrStdout())
			if !resolve {
				t.AppendHeader(table.Row{"Title", "Authors"})
				for _, book := range books {
					t.AppendRow(table.Row{book.Title, strings.Join(book.Authors, ", ")})
				}
				t.Render()
				return nil
			}

			storefront, err := newHpbClient(cfg, dump)
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Title", "Authors", "Product"})
			for _, book := range books {
				match, ok, err := storefront.ResolveProduct(cmd.Context(), book.Title, book.Authors)
				if err != nil {
					return fmt.Errorf("resolve product %q: %w", book.Title, err)
				}
				product := "-"
				if ok {
					product = match.ProductID
				}
				t.AppendRow(table.Row{book.Title, strings.Join(book.Authors, ", "), product})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&resolve, "resolve", false, "Also resolve each book to a Half Price Books product id.")
	return cmd
}
