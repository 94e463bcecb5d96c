package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hvpham-yorku/StockSage-AI/api"
	"github.com/hvpham-yorku/StockSage-AI/ranger"
)

func healthCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the StockSage backend is up",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ranger.NewConfig()
			client := api.New(cfg.APIURL, api.WithOrigin(cfg.APIOrigin), api.WithTimeout(timeout))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			h, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("%s is unreachable: %w", client.BaseURL(), err)
			}

			out := cmd.OutOrStdout()
			status := color.GreenString(h.Status)
			if !h.Healthy() {
				status = color.YellowString(h.Status)
			}
			fmt.Fprintf(out, "%s %s (api %s)\n", client.BaseURL(), status, h.APIVersion)

			names := make([]string, 0, len(h.Services))
			for name := range h.Services {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s: %s\n", name, h.Services[name])
			}

			if !h.Healthy() {
				return fmt.Errorf("backend is %s", h.Status)
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for the backend")

	return cmd
}
