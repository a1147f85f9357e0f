package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"id-reconciler/core/report"
	"id-reconciler/core/resolve"

	"github.com/spf13/cobra"
)

var (
	classifyBackend  string
	classifyCrossRef string
)

// classifyCmd classifies identifiers given on the command line.
var classifyCmd = &cobra.Command{
	Use:   "classify <identifier>...",
	Short: "Classify protein identifiers by issuing namespace",
	Long: `Classifies each identifier from its shape, querying the lookup backend when the
shape is not conclusive.

Examples:
  id-reconciler classify WP_011030045.1 AAB12345.1 SCO5087
  id-reconciler classify --backend uniprot --cross-ref EMBL Q9XYZ1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyBackend, "backend", "", "Lookup backend: entrez or uniprot")
	classifyCmd.Flags().StringVar(&classifyCrossRef, "cross-ref", "", "Extract cross references of this namespace (e.g. EMBL)")
	RootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	if cmd.Flags().Changed("backend") {
		cfg.Lookup.Backend = classifyBackend
	}
	if cmd.Flags().Changed("cross-ref") {
		cfg.Lookup.CrossRefNamespace = classifyCrossRef
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver, err := newResolver(cfg.Lookup, l, nil)
	if err != nil {
		return err
	}

	out := make([]resolve.Classification, 0, len(args))
	for _, id := range args {
		cls, err := resolver.Classify(ctx, id)
		if err != nil {
			return err
		}
		if cls.Identifier == "" {
			cls.Identifier = id
		}
		out = append(out, cls)
	}

	fmt.Fprint(cmd.OutOrStdout(), report.RenderClassifications(out, prettyOutput()))
	if prettyOutput() {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
