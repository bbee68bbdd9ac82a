// ABOUTME: Activity CLI commands
// ABOUTME: Log calls, emails, meetings and notes and browse the history
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
)

// LogActivityCommand records an activity against a contact and optional deal.
func LogActivityCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("log-activity", flag.ContinueOnError)
	contactID := fs.String("contact", "", "Contact ID (required)")
	dealID := fs.String("deal", "", "Deal ID")
	kind := fs.String("type", string(models.ActivityCall), "call, email, meeting or note")
	description := fs.String("description", "", "What happened (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	activity, err := store.CreateActivity(models.ActivityInput{
		Type:        models.ActivityType(*kind),
		ContactID:   *contactID,
		DealID:      *dealID,
		Description: *description,
	})
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Logged %s with %s (ID: %s)\n", activity.Type, views.ContactName(store.Snapshot(), activity.ContactID), activity.ID)
	return nil
}

// ListActivitiesCommand prints activities newest first.
func ListActivitiesCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("list-activities", flag.ContinueOnError)
	contactID := fs.String("contact", "", "Filter by contact ID")
	dealID := fs.String("deal", "", "Filter by deal ID")
	limit := fs.Int("limit", 20, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap := store.Snapshot()
	var acts []models.Activity
	switch {
	case *dealID != "":
		acts = views.ActivitiesForDeal(snap, *dealID)
	case *contactID != "":
		acts = views.ActivitiesForContact(snap, *contactID)
	default:
		acts = views.SortActivitiesNewestFirst(snap.Activities)
	}

	if len(acts) == 0 {
		fmt.Fprintln(stdout, "No activities found")
		return nil
	}
	if *limit > 0 && len(acts) > *limit {
		acts = acts[:*limit]
	}

	w := newTable("DATE", "TYPE", "CONTACT", "DEAL", "DESCRIPTION", "ID")
	for _, a := range acts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Date.Format("2006-01-02 15:04"), a.Type, views.ContactName(snap, a.ContactID),
			orDash(views.DealTitle(snap, a.DealID)), truncate(a.Description, 48), a.ID)
	}
	_ = w.Flush()
	return nil
}

// DeleteActivityCommand removes one activity.
func DeleteActivityCommand(store *crm.Store, args []string) error {
	id, err := requireID(args, "activity")
	if err != nil {
		return err
	}
	if err := store.DeleteActivity(id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deleted activity %s\n", id)
	return nil
}
