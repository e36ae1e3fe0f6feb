// Package cli implements the assistant command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/engine"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/logger"
)

const defaultConfigPath = "configs/config.yaml"

var (
	configPath string
	formatFlag string
	cfg        *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "MJU dashboard assistant",
	Long:  "Answers questions about the university dashboard data: forecasts, student search and topic summaries.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if err := logger.InitLogger(c.Log.Level, c.Log.File); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		cfg = c
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Config file path")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
}

// loadConfig a missing default file means local-only defaults; an explicit path must exist
func loadConfig(path string, explicit bool) (*config.Config, error) {
	c, err := config.LoadConfig(path)
	if err == nil {
		return c, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		c = config.Default()
		if key := os.Getenv(config.APIKeyEnv); key != "" {
			c.LLM.APIKey = key
		}
		return c, nil
	}
	return nil, fmt.Errorf("load config: %w", err)
}

func openEngine(ctx context.Context) (*engine.Engine, error) {
	return engine.NewEngine(ctx, cfg)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func jsonOutput() bool {
	return formatFlag == "json"
}
