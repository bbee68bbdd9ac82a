// ABOUTME: Visualization CLI commands
// ABOUTME: Writes the deal pipeline graph as GraphViz source
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/viz"
)

// VizPipelineCommand generates the contact and deal graph.
func VizPipelineCommand(ctx context.Context, store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("viz pipeline", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dot, err := viz.PipelineGraph(ctx, store.Snapshot())
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}
	fmt.Fprintln(stdout, dot)
	return nil
}
