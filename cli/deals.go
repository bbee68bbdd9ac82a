// ABOUTME: Deal CLI commands
// ABOUTME: Create, list, edit, move between stages and delete deals
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
	"github.com/harperreed/hookline/viz"
)

// AddDealCommand creates a deal for an existing contact.
func AddDealCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ContinueOnError)
	title := fs.String("title", "", "Deal title (required)")
	contactID := fs.String("contact", "", "Contact ID (required)")
	value := fs.Float64("value", 0, "Deal value")
	stage := fs.String("stage", string(models.StageLead), "Stage")
	probability := fs.Int("probability", 30, "Win probability 0-100")
	closeDate := fs.String("close", "", "Expected close date (YYYY-MM-DD)")
	notes := fs.String("notes", "", "Notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := models.ParseStage(*stage)
	if err != nil {
		return err
	}
	in := models.DealInput{
		Title:       *title,
		ContactID:   *contactID,
		Value:       *value,
		Stage:       st,
		Probability: *probability,
		Notes:       *notes,
	}
	if *closeDate != "" {
		d, err := models.ParseDate(*closeDate)
		if err != nil {
			return fmt.Errorf("invalid --close: %w", err)
		}
		in.ExpectedClose = &d
	}

	deal, err := store.CreateDeal(in)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deal created: %s (ID: %s)\n", deal.Title, deal.ID)
	fmt.Fprintf(stdout, "  %s, %s at %d%%\n", deal.Stage.Title(), viz.FormatMoney(deal.Value), deal.Probability)
	return nil
}

// ListDealsCommand lists deals, optionally for one stage or contact.
func ListDealsCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ContinueOnError)
	stage := fs.String("stage", "", "Filter by stage")
	contactID := fs.String("contact", "", "Filter by contact ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap := store.Snapshot()
	deals := snap.Deals
	if *contactID != "" {
		deals = views.DealsForContact(snap, *contactID)
	}
	if *stage != "" {
		st, err := models.ParseStage(*stage)
		if err != nil {
			return err
		}
		filtered := []models.Deal{}
		for _, d := range deals {
			if d.Stage == st {
				filtered = append(filtered, d)
			}
		}
		deals = filtered
	}

	if len(deals) == 0 {
		fmt.Fprintln(stdout, "No deals found")
		return nil
	}

	w := newTable("TITLE", "CONTACT", "STAGE", "VALUE", "PROB", "CLOSE", "ID")
	for _, d := range deals {
		closeDate := "-"
		if d.ExpectedClose != nil {
			closeDate = d.ExpectedClose.String()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\t%s\t%s\n",
			truncate(d.Title, 32), views.ContactName(snap, d.ContactID), d.Stage.Title(),
			viz.FormatMoney(d.Value), d.Probability, closeDate, d.ID)
	}
	_ = w.Flush()
	return nil
}

// UpdateDealCommand edits a deal directly. Stage and probability are written
// as given; use move-deal to apply the won/lost probability rule.
func UpdateDealCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("update-deal", flag.ContinueOnError)
	title := fs.String("title", "", "New title")
	contactID := fs.String("contact", "", "Reassign to contact ID")
	value := fs.Float64("value", 0, "New value")
	stage := fs.String("stage", "", "New stage")
	probability := fs.Int("probability", 0, "New probability 0-100")
	closeDate := fs.String("close", "", "New expected close date (YYYY-MM-DD, empty clears)")
	notes := fs.String("notes", "", "New notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := requireID(fs.Args(), "deal")
	if err != nil {
		return err
	}
	deal, err := store.GetDeal(id)
	if err != nil {
		return err
	}

	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			deal.Title = *title
		case "contact":
			deal.ContactID = *contactID
		case "value":
			deal.Value = *value
		case "stage":
			st, err := models.ParseStage(*stage)
			if err != nil {
				parseErr = err
				return
			}
			deal.Stage = st
		case "probability":
			deal.Probability = *probability
		case "close":
			if *closeDate == "" {
				deal.ExpectedClose = nil
				return
			}
			d, err := models.ParseDate(*closeDate)
			if err != nil {
				parseErr = fmt.Errorf("invalid --close: %w", err)
				return
			}
			deal.ExpectedClose = &d
		case "notes":
			deal.Notes = *notes
		}
	})
	if parseErr != nil {
		return parseErr
	}

	updated, err := store.UpdateDeal(deal)
	if err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deal updated: %s (%s, %d%%)\n", updated.Title, updated.Stage.Title(), updated.Probability)
	return nil
}

// MoveDealCommand moves a deal to another stage: move-deal <id> <stage>.
func MoveDealCommand(store *crm.Store, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move-deal <id> <stage>")
	}
	stage, err := models.ParseStage(args[1])
	if err != nil {
		return err
	}

	deal, err := store.MoveDeal(args[0], stage)
	if err != nil {
		return fmt.Errorf("failed to move deal: %w", err)
	}
	fmt.Fprintf(stdout, "✓ %s → %s (%d%%)\n", deal.Title, deal.Stage.Title(), deal.Probability)
	return nil
}

// DeleteDealCommand deletes a deal and its activities.
func DeleteDealCommand(store *crm.Store, args []string) error {
	id, err := requireID(args, "deal")
	if err != nil {
		return err
	}
	deal, err := store.GetDeal(id)
	if err != nil {
		return err
	}
	if err := store.DeleteDeal(id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deleted deal: %s\n", deal.Title)
	return nil
}
