package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"pegboard/internal/config"
)

func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as TOML",
		Long: `Print the settings the editor would start with: the values from the
settings file, with defaults filled in for missing keys and paths made
absolute. The output is a valid settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			source := c.configPath
			if source == "" {
				source = config.DefaultPath()
			}
			loggerFromContext(cmd.Context()).Debug("settings loaded", "path", source)

			fmt.Fprintf(c.stdout, "# %s\n", source)
			return toml.NewEncoder(c.stdout).Encode(cfg)
		},
	}
}
