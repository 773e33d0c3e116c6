package cli

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/jassus213/go-unsplash/config"
	"github.com/jassus213/go-unsplash/ratelimiter"
)

func newSearchCmd(cfgFile *string) *cobra.Command {
	var perPage, page int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search photos once and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var result map[string]any
			err = a.gate.Guard(cmd.Context(), func(ctx context.Context) error {
				var err error
				result, err = a.client.SearchPhotos(ctx, args[0], perPage, page)
				return err
			})
			if errors.Is(err, ratelimiter.ErrRateLimitReached) {
				return errors.New(ratelimiter.RateLimitMessage)
			}
			if err != nil {
				return err
			}

			enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().IntVar(&perPage, "per-page", 10, "results per page")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}
