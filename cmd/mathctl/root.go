package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"math-service/internal/pkg/mathClient"
	"strconv"
	"time"
)

const (
	urlKey     = "url"
	timeoutKey = "timeout"
)

func newRootCommand() *cobra.Command {
	settings := viper.New()
	settings.SetEnvPrefix("MATHCTL")

	rootCmd := &cobra.Command{
		Use:   "mathctl",
		Short: "Call the math service from the command line",
		Long: `mathctl calls the arithmetic endpoints of a running math service.

Examples:
  mathctl health
  mathctl add 5 3
  mathctl --url http://localhost:9000 divide 10 4
  MATHCTL_URL=http://math:8000 mathctl subtract 5 3`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(urlKey, "http://localhost:8000", "base URL of the math service")
	flags.Duration(timeoutKey, 5*time.Second, "request timeout")

	cobra.CheckErr(settings.BindPFlag(urlKey, flags.Lookup(urlKey)))
	cobra.CheckErr(settings.BindPFlag(timeoutKey, flags.Lookup(timeoutKey)))
	cobra.CheckErr(settings.BindEnv(urlKey))
	cobra.CheckErr(settings.BindEnv(timeoutKey))

	newClient := func() *mathClient.Client {
		return mathClient.New(settings.GetString(urlKey), settings.GetDuration(timeoutKey))
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Show service status and enabled operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := newClient().Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status: %s\nlibrary_version: %s\naddition: %t\nsubtraction: %t\ndivision: %t\n",
				health.Status, health.LibraryVersion,
				health.Features.Addition, health.Features.Subtraction, health.Features.Division)
			return nil
		},
	})

	rootCmd.AddCommand(operationCommand("add", "Add two integers",
		func(cmd *cobra.Command, a, b int64) (string, error) {
			result, err := newClient().Add(cmd.Context(), a, b)
			return strconv.FormatInt(result, 10), err
		}))

	rootCmd.AddCommand(operationCommand("subtract", "Subtract B from A",
		func(cmd *cobra.Command, a, b int64) (string, error) {
			result, err := newClient().Subtract(cmd.Context(), a, b)
			return strconv.FormatInt(result, 10), err
		}))

	rootCmd.AddCommand(operationCommand("divide", "Divide A by B",
		func(cmd *cobra.Command, a, b int64) (string, error) {
			result, err := newClient().Divide(cmd.Context(), a, b)
			return strconv.FormatFloat(result, 'g', -1, 64), err
		}))

	return rootCmd
}

func operationCommand(name string, short string,
	run func(cmd *cobra.Command, a, b int64) (string, error)) *cobra.Command {

	return &cobra.Command{
		Use:   name + " A B",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid A %q: %w", args[0], err)
			}
			b, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid B %q: %w", args[1], err)
			}

			result, err := run(cmd, a, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
