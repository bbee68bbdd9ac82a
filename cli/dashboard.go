// ABOUTME: Dashboard and pipeline board CLI commands
// ABOUTME: Prints KPIs, the active pipeline and every stage's deals
package cli

import (
	"fmt"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
	"github.com/harperreed/hookline/viz"
)

// DashboardCommand prints the dashboard.
func DashboardCommand(store *crm.Store, args []string) error {
	fmt.Fprint(stdout, viz.RenderDashboard(store.Snapshot()))
	if err := store.LastPersistError(); err != nil {
		fmt.Fprintf(stdout, "\n⚠️  Changes are not being saved: %v\n", err)
	}
	return nil
}

// PipelineCommand lists deals grouped by stage, all six stages in order.
func PipelineCommand(store *crm.Store, args []string) error {
	snap := store.Snapshot()
	for _, stage := range models.Stages() {
		deals := views.DealsInStage(snap, stage)
		total := 0.0
		for _, d := range deals {
			total += d.Value
		}
		fmt.Fprintf(stdout, "%s (%d) %s\n", stage.Title(), len(deals), viz.FormatMoney(total))
		for _, d := range deals {
			fmt.Fprintf(stdout, "  • %s, %s, %s, %d%% (ID: %s)\n",
				d.Title, views.ContactName(snap, d.ContactID), viz.FormatMoney(d.Value), d.Probability, d.ID)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}
