package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/argwheel/pkg/httputil"
	"github.com/matzehuels/argwheel/pkg/manifest"
)

// datasetsCommand creates the datasets command.
func (c *CLI) datasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets [dir]",
		Short: "List the datasets a directory offers",
		Long: `List the datasets of a directory: the files named in its manifest.json,
or every *.json file when there is no manifest. An http(s) URL lists the
manifest of a remote dataset host. Defaults to the configured datasets
directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			dir := cfg.Server.Datasets
			if len(args) == 1 {
				dir = args[0]
			}

			var names []string
			if httputil.IsURL(dir) {
				names, err = httputil.NewClient().Manifest(cmd.Context(), dir)
			} else {
				names, err = manifest.Read(dir)
			}
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No datasets in %s", dir)
				return nil
			}
			printSuccess("%d dataset(s) in %s", len(names), dir)
			for _, name := range names {
				printFile(name)
			}
			printNewline()
			printNextStep("Browse one", "argwheel browse "+datasetRef(dir, names[0]))
			return nil
		},
	}
}

func datasetRef(dir, name string) string {
	if httputil.IsURL(dir) {
		return httputil.ResolveURL(dir, name)
	}
	return filepath.Join(dir, name)
}
