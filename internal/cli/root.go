// Package cli is blogctl, the offline tool for the category taxonomy.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/blog-backend/internal/domain/taxonomy"
	"github.com/yungbote/blog-backend/internal/platform/envutil"
	"github.com/yungbote/blog-backend/internal/platform/logger"
)

type options struct {
	taxonomyFile string
	jsonOutput   bool
	logMode      string
}

func (o *options) load() (*taxonomy.Category, error) {
	p, err := taxonomy.NewProvider(o.taxonomyFile)
	if err != nil {
		return nil, err
	}
	return p.Tree(), nil
}

func (o *options) logger() *logger.Logger {
	if o.logMode == "" {
		return logger.Nop()
	}
	log, err := logger.New(o.logMode)
	if err != nil {
		return logger.Nop()
	}
	return log
}

func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "blogctl <command>",
		Short:         "Inspect, lay out and export the blog category taxonomy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.taxonomyFile, "taxonomy", envutil.String("CATEGORY_TAXONOMY_FILE", ""), "taxonomy YAML file (built-in tree when empty)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	root.PersistentFlags().StringVar(&opts.logMode, "log", "", "log mode (development or production); silent when empty")

	root.AddCommand(
		newValidateCommand(opts),
		newTreeCommand(opts),
		newGraphCommand(opts),
		newLayoutCommand(opts),
		newExportCommand(opts),
	)
	return root
}

// Execute runs blogctl against os.Args and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", bad.Sprint("error:"), err)
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
