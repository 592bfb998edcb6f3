package commands

import (
	"fmt"
	"wishlist-stock/lib/scrapers/hpb"
	"wishlist-stock/services/stockcheck"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStoresCommand(g *globals) *cobra.Command {
	var postalCode string
	var radius int

	cmd := &cobra.Command{
		Use:   "stores --zip <zip> [--radius <miles>]",
		Short: "Lists the stores near a ZIP code.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := stockcheck.Request{PostalCode: postalCode, Radius: radius}
			err := req.Validate()
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
			storefront, err := newHpbClient(cfg, dump)
			if err != nil {
				return err
			}
			locator := stockcheck.GeoLocator{Finder: storefront}
			if geocoder := newGeocoder(cfg, dump); geocoder != nil {
				locator.Geocoder = geocoder
			}

			stores, err := locator.FindStores(cmd.Context(), req.PostalCode, req.Radius)
			if err != nil {
				return fmt.Errorf("find stores: %w", err)
			}
			renderStores(newTable(cmd.OutOrStdout()), stores)
			return nil
		},
	}
	cmd.Flags().StringVar(&postalCode, "zip", "", "5-digit US ZIP code.")
	cmd.Flags().IntVar(&radius, "radius", stockcheck.DefaultRadius, fmt.Sprintf("Search radius in miles, one of %v.", stockcheck.Radii))
	cmd.MarkFlagRequired("zip")
	return cmd
}

func renderStores(t table.Writer, stores []hpb.Store) {
	t.AppendHeader(table.Row{"ID", "Name", "City", "State", "Miles", "Pickup"})
	for _, store := range stores {
		pickup := "no"
		if store.PickupEnabled {
			pickup = "yes"
		}
		t.AppendRow(table.Row{
			store.ID,
			store.Name,
			store.City,
			store.State,
			fmt.Sprintf("%.1f", store.DistanceMiles),
			pickup,
		})
	}
	t.Render()
}
