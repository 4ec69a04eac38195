package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/chlog/internal/config"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create chlog configuration",
	Long: `Inspect and create chlog configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHLOG_*)
  2. Project config (.chlog.yml or .chlog.json in the repository root)
  3. User config (~/.config/chlog/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  chlog config show

  # Create .chlog.yml in the repository root
  chlog config init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  validArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd, currentGlobals())
	},
}

var (
	configInitForce bool
	configInitUser  bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file with the defaults",
	Long: `Write a commented config file holding every default value.

By default the file is .chlog.yml in the repository root. Use --user to
create ~/.config/chlog/config.yml instead. Existing files are left unchanged
unless --force is given.`,
	Args: validArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd, currentGlobals(), configInitOptions{Force: configInitForce, User: configInitUser})
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "create the user config instead of the project config")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, g globalOptions) error {
	s, err := openSession(cmd, g)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(s.cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

type configInitOptions struct {
	Force bool
	User  bool
}

func runConfigInit(cmd *cobra.Command, g globalOptions, opts configInitOptions) error {
	path, err := configInitPath(g, opts)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return clierrors.ConfigExists(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.FileNotWritable(path, err)
	}
	if err := writeAtomic(path, []byte(config.GetDefaultConfigTemplate())); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(), "Created "+path)
	return nil
}

func configInitPath(g globalOptions, opts configInitOptions) (string, error) {
	if opts.User {
		if g.userConfig != "" {
			return g.userConfig, nil
		}
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config directory")
		}
		return path, nil
	}
	if g.ConfigFile != "" {
		return g.ConfigFile, nil
	}

	_, root, err := openRepository(g)
	if err != nil {
		return "", err
	}
	return config.ProjectConfigPath(root), nil
}
