package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/ui"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Args:  usageArgs(cobra.NoArgs),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Config.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})

	var path string
	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default configuration file",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.UserConfigPath()
			}
			if path == "" {
				return errUsage("no user config directory; pass --path")
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "wrote "+path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "Where to write (default: user config file)")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "todo "+Version)
			return nil
		},
	}
}
