package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `Settings live in config.toml under the config directory. Environment
variables (see 'kbbot config env') override the file.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Example: `  kbbot config set index.backend filesystem
  kbbot config set index.root_folder_id ~/notes`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "Describe the environment variables kbbot reads",
	Args:  cobra.NoArgs,
	RunE:  runConfigEnv,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configPathCmd, configEnvCmd, configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

// secretKeys are masked by config list.
var secretKeys = map[string]bool{"github.token": true}

func runConfigList(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	for _, key := range svc.Keys() {
		value, err := svc.Value(key)
		if err != nil {
			return err
		}
		if secretKeys[key] && value != "" {
			value = mask(value)
		}
		cmd.Printf("%-28s %s\n", key, value)
	}
	return nil
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	value, err := svc.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	if err := svc.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	cmd.Println(svc.Path())
	return nil
}

func runConfigEnv(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	help, err := svc.EnvHelp()
	if err != nil {
		return fmt.Errorf("describe environment: %w", err)
	}
	cmd.Println(help)
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	if err := svc.Validate(); err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return err
	}
	if !settings.Index.HasRoot() {
		cmd.Println("Settings are valid, but index.root_folder_id is not set yet.")
		return nil
	}
	cmd.Println("Settings are valid.")
	return nil
}
