package service

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"postboard/app/config"

	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at link time.
var Version = "1.0.0"

// options holds flag values shared by every subcommand.
type options struct {
	configPath  string
	store       string
	storagePath string
	addr        string
}

// load resolves the configuration and applies flag overrides on top of it.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.store != "" {
		cfg.Storage.Driver = strings.ToLower(o.store)
	}
	if o.storagePath != "" {
		cfg.Storage.Path = o.storagePath
	}
	if o.addr != "" {
		cfg.Server.Addr = o.addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewRootCommand builds the postboard command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "postboard",
		Short:         "A small JSON API for posts backed by a single collection file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "store driver: json or badger")
	root.PersistentFlags().StringVar(&opts.storagePath, "storage-path", "", "path of the JSON collection file")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "HTTP listen address")

	root.AddCommand(
		newServeCommand(opts),
		newInitCommand(opts),
		newCleanCommand(opts),
		newBackupCommand(opts),
		newRestoreCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return RunAppServer(cmd.Context(), cfg)
		},
	}
}

func newInitCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize an empty post collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return initStore(cmd.OutOrStdout(), cfg)
		},
	}
}

func newCleanCommand(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the stored post collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return cleanStore(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newBackupCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write the current collection to the backup directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			_, err = backupStore(cmd.OutOrStdout(), cfg)
			return err
		},
	}
}

func newRestoreCommand(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the collection with the contents of a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return restoreStore(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "postboard version %s\n", Version)
		},
	}
}

// confirm asks a y/N question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
