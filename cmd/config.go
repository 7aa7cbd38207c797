package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/wp-cli/pkg/config"
	"github.com/kamal-hamza/wp-cli/pkg/ui"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the wp configuration file",
	Long: `The configuration file holds defaults for every generate flag.
Flags given on the command line always win over the file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing configuration file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	source := path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		source = path + ui.FormatMuted(" (not found, using defaults)")
	}

	data, err := yaml.Marshal(appConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Println(ui.RenderKeyValue("Config", source))
	fmt.Println()
	fmt.Print(string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		fmt.Println(ui.FormatWarning("Config already exists"))
		fmt.Println(ui.FormatMuted("Location: " + path))
		fmt.Println(ui.FormatMuted("Use --force to replace it with the defaults"))
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		fmt.Println(ui.FormatError("Failed to write config"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Config written"))
	fmt.Println(ui.FormatMuted("Location: " + path))
	return nil
}
