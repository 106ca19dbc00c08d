package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .tipbox.yaml config file",
	Long:  `Create a .tipbox.yaml configuration file in the current directory with sensible defaults.`,
	// No config to load yet
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = defaultConfigFile
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# tipbox configuration

verbose: false

log:
  level: warn              # debug | info | warn | error

state:
  # dir: ~/.config/tipbox  # default: user config dir
  compress: false          # zstd-compress the state file
  quota: 0                 # max state size in bytes, 0 = unlimited

revisions:
  max: 10                  # 0 = unlimited

templates:
  dir: ""                  # directory with extra template .css files
  include:
    - "**/*.css"

ai:
  enabled: true
  endpoint: ""             # tipbox server, e.g. http://localhost:8080/api/ai-css
  base-url: https://openrouter.ai/api/v1
  api-key: ""              # or TIPBOX_AI_API_KEY / OPENAI_API_KEY
  model: qwen/qwen-2.5-coder-32b-instruct:free
  site-url: http://localhost:3000
  timeout: 2m

serve:
  addr: ":8080"
  cache-mb: 16
  metrics: true

lint:
  output-format: issues    # issues | summary | full | json | markdown
  require-overflow-fix: true
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
