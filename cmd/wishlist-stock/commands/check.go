package commands

import (
	"context"
	"fmt"
	"io"
	"wishlist-stock/services/stockcheck"

	"github.com/spf13/cobra"
)

type checkFlags struct {
	softFail bool
	summary  bool
}

func (f *checkFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.softFail, "soft-fail", false, "Report failed availability checks as not found instead of aborting.")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "Print a table of the books in stock after the run.")
}

func newCheckCommand(g *globals) *cobra.Command {
	var postalCode string
	var radius int
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check --zip <zip> [--radius <miles>]",
		Short: "Checks every wish list book at every store near a ZIP code.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secrets, err := loadSecrets()
			if err != nil {
				return err
			}
			req := stockcheck.Request{PostalCode: postalCode, Radius: radius}
			err = req.Validate()
			if err != nil {
				return err
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), g, secrets, req, flags)
		},
	}
	cmd.Flags().StringVar(&postalCode, "zip", "", "5-digit US ZIP code.")
	cmd.Flags().IntVar(&radius, "radius", stockcheck.DefaultRadius, fmt.Sprintf("Search radius in miles, one of %v.", stockcheck.Radii))
	cmd.MarkFlagRequired("zip")
	flags.register(cmd)
	return cmd
}

func runCheck(ctx context.Context, out io.Writer, g *globals, secrets Secrets, req stockcheck.Request, flags *checkFlags) error {
	cfg, err := g.config()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dump, err := g.dump()
	if err != nil {
		return err
	}

	wishlist, err := newHardcoverClient(cfg, secrets, dump)
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

	service := stockcheck.NewService(
		locator,
		wishlist,
		storefront,
		storefront,
		stockcheck.NewConsoleReporter(out),
		stockcheck.Options{SoftFail: flags.softFail},
	)
	run, err := service.Run(ctx, req)
	if err != nil {
		return err
	}

	if flags.summary {
		fmt.Fprintln(out)
		stockcheck.RenderSummary(out, run)
	}
	return nil
}
