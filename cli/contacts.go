// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
	"github.com/harperreed/hookline/viz"
	"golang.org/x/term"
)

// stdin feeds confirmation prompts; tests replace it.
var stdin io.Reader = os.Stdin

// isTerminal reports whether prompts can be answered interactively.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// AddContactCommand adds a new contact.
func AddContactCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ContinueOnError)
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address (required)")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	kind := fs.String("type", "individual", "individual or business")
	notes := fs.String("notes", "", "Notes about the contact")
	if err := fs.Parse(args); err != nil {
		return err
	}

	contact, err := store.CreateContact(models.ContactInput{
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		Company: *company,
		Type:    models.ContactType(*kind),
		Notes:   *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	fmt.Fprintf(stdout, "  Email: %s\n", contact.Email)
	if contact.Phone != "" {
		fmt.Fprintf(stdout, "  Phone: %s\n", contact.Phone)
	}
	if contact.Company != "" {
		fmt.Fprintf(stdout, "  Company: %s\n", contact.Company)
	}
	return nil
}

// ListContactsCommand lists contacts matching a search and type filter.
func ListContactsCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ContinueOnError)
	query := fs.String("query", "", "Search name, email or company")
	kind := fs.String("type", views.TypeFilterAll, "all, individual or business")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	typeFilter, err := views.ParseTypeFilter(*kind)
	if err != nil {
		return err
	}

	contacts := views.FilterContacts(store.Snapshot().Contacts, *query, typeFilter)
	if len(contacts) == 0 {
		fmt.Fprintln(stdout, "No contacts found")
		return nil
	}
	if *limit > 0 && len(contacts) > *limit {
		contacts = contacts[:*limit]
	}

	w := newTable("NAME", "EMAIL", "PHONE", "COMPANY", "TYPE", "ID")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.Email, orDash(c.Phone), orDash(c.Company), c.Type, c.ID)
	}
	_ = w.Flush()
	fmt.Fprintf(stdout, "\n%d contact(s)\n", len(contacts))
	return nil
}

// ShowContactCommand prints a contact with its deals and activity history.
func ShowContactCommand(store *crm.Store, args []string) error {
	id, err := requireID(args, "contact")
	if err != nil {
		return err
	}
	contact, err := store.GetContact(id)
	if err != nil {
		return err
	}
	snap := store.Snapshot()

	fmt.Fprintf(stdout, "%s (%s)\n", contact.Name, contact.Type)
	fmt.Fprintf(stdout, "  Email:   %s\n", contact.Email)
	fmt.Fprintf(stdout, "  Phone:   %s\n", orDash(contact.Phone))
	fmt.Fprintf(stdout, "  Company: %s\n", orDash(contact.Company))
	fmt.Fprintf(stdout, "  Since:   %s\n", contact.CreatedAt)
	if contact.Notes != "" {
		fmt.Fprintf(stdout, "  Notes:   %s\n", contact.Notes)
	}

	fmt.Fprintln(stdout, "\nDeals")
	deals := views.DealsForContact(snap, id)
	if len(deals) == 0 {
		fmt.Fprintln(stdout, "  none")
	}
	for _, d := range deals {
		fmt.Fprintf(stdout, "  %-30s %-12s %8s  %3d%%  (ID: %s)\n", truncate(d.Title, 30), d.Stage.Title(), viz.FormatMoney(d.Value), d.Probability, d.ID)
	}

	fmt.Fprintln(stdout, "\nActivity")
	acts := views.ActivitiesForContact(snap, id)
	if len(acts) == 0 {
		fmt.Fprintln(stdout, "  none")
	}
	for _, a := range acts {
		fmt.Fprintf(stdout, "  %s  %-7s %s\n", a.Date.Format("2006-01-02 15:04"), a.Type, a.Description)
	}
	return nil
}

// UpdateContactCommand updates the flags that were given on an existing contact.
func UpdateContactCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ContinueOnError)
	name := fs.String("name", "", "New name")
	email := fs.String("email", "", "New email")
	phone := fs.String("phone", "", "New phone")
	company := fs.String("company", "", "New company")
	kind := fs.String("type", "", "individual or business")
	notes := fs.String("notes", "", "New notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := requireID(fs.Args(), "contact")
	if err != nil {
		return err
	}
	contact, err := store.GetContact(id)
	if err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			contact.Name = *name
		case "email":
			contact.Email = *email
		case "phone":
			contact.Phone = *phone
		case "company":
			contact.Company = *company
		case "type":
			contact.Type = models.ContactType(*kind)
		case "notes":
			contact.Notes = *notes
		}
	})

	updated, err := store.UpdateContact(contact)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Contact updated: %s\n", updated.Name)
	return nil
}

// DeleteContactCommand deletes a contact with its deals and activities.
func DeleteContactCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := requireID(fs.Args(), "contact")
	if err != nil {
		return err
	}
	contact, err := store.GetContact(id)
	if err != nil {
		return err
	}

	if !*yes {
		snap := store.Snapshot()
		deals := len(views.DealsForContact(snap, id))
		acts := len(views.ActivitiesForContact(snap, id))
		question := fmt.Sprintf("Delete %s with %d deal(s) and %d activit(ies)?", contact.Name, deals, acts)
		ok, err := confirm(question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(stdout, "Cancelled")
			return nil
		}
	}

	if err := store.DeleteContact(id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deleted contact: %s\n", contact.Name)
	return nil
}

func confirm(question string) (bool, error) {
	if !isTerminal() {
		return false, fmt.Errorf("refusing to delete without a terminal; pass --yes")
	}
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	answer, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
