package main

import (
	"github.com/spf13/cobra"

	"github.com/hvpham-yorku/StockSage-AI/ranger"
)

func serveCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web client",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []ranger.RangerOption{ranger.WithContext(cmd.Context())}
			if env != "" {
				opts = append(opts, ranger.WithEnv(env))
			}

			rng, err := ranger.New(opts...)
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "environment to run in, overriding ENVIRONMENT")

	return cmd
}
