// Package cli defines the cloudhop command tree
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cloudhop/internal/app"
	"cloudhop/internal/config"
	"cloudhop/internal/directory/awsdir"
)

// Version is set at build time
var Version = "dev"

type rootFlags struct {
	configPath string
	region     string
	profile    string
}

// runFunc starts an interactive session; replaced in tests
type runFunc func(ctx context.Context, opts app.Options) error

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(app.Run)
}

func newRootCommand(run runFunc) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "cloudhop",
		Short: "Browse ECS and EC2 resources and open a session on one.",
		Long: `cloudhop walks ECS clusters, services, tasks and containers (or EC2
instances) one level at a time and hands the terminal to an aws CLI
session on the resource you pick: a shell or a port forward.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/cloudhop/config.toml)")
	root.PersistentFlags().StringVar(&flags.region, "region", "", "AWS region, overrides the config file")
	root.PersistentFlags().StringVar(&flags.profile, "profile", "", "AWS shared config profile, overrides the config file")

	root.AddCommand(
		newConnectCommand(flags, run),
		newConfigCommand(flags),
		newVersionCommand(),
	)
	return root
}

func newConnectCommand(flags *rootFlags, run runFunc) *cobra.Command {
	var fixture string
	cmd := &cobra.Command{
		Use:     "connect <" + strings.Join(awsdir.Kinds(), "|") + ">",
		Aliases: []string{"nav"},
		Short:   "Navigate resources of a kind and connect to one.",
		Example: `  cloudhop connect ecs --profile prod
  cloudhop connect ec2 --region eu-west-1`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: awsdir.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app.Options{
				Kind:       strings.ToLower(args[0]),
				ConfigPath: flags.configPath,
				Region:     flags.region,
				Profile:    flags.profile,
				Fixture:    fixture,
			})
		},
	}
	cmd.Flags().StringVar(&fixture, "fixture", "", "read resources from a TOML fixture instead of AWS")
	return cmd
}

func newConfigCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file.",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.NewConfigService(flags.configPath)
			if err != nil {
				return err
			}
			if exists(svc.Path()) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}
			cfg := config.DefaultConfig()
			cfg.Override(flags.region, flags.profile)
			if err := svc.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := config.NewConfigService(flags.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Path())
			return nil
		},
	}

	cmd.AddCommand(initCmd, pathCmd)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cloudhop %s\n", Version)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
