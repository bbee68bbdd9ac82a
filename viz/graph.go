// ABOUTME: Graphviz rendering of the deal pipeline
// ABOUTME: Stage clusters of deals linked to the contacts who own them
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/hookline/models"
)

var stageColors = map[models.Stage]string{
	models.StageLead:        "lightgrey",
	models.StageQualified:   "lightblue",
	models.StageProposal:    "lightyellow",
	models.StageNegotiation: "orange",
	models.StageWon:         "palegreen",
	models.StageLost:        "lightpink",
}

// PipelineGraph renders contacts and their deals as DOT. Deals are coloured
// by stage; each deal points back at its contact.
func PipelineGraph(ctx context.Context, snap models.Snapshot) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Deal Pipeline")
	graph.SetRankDir(cgraph.LRRank)

	contactNodes := make(map[string]*cgraph.Node, len(snap.Contacts))
	for _, c := range snap.Contacts {
		node, err := graph.CreateNodeByName("contact_" + c.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create contact node: %w", err)
		}
		label := c.Name
		if c.Company != "" {
			label += "\n" + c.Company
		}
		node.SetLabel(label)
		node.SetShape("ellipse")
		if c.Type == models.ContactBusiness {
			node.SetShape("box")
		}
		contactNodes[c.ID] = node
	}

	for _, d := range snap.Deals {
		node, err := graph.CreateNodeByName("deal_" + d.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create deal node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s (%d%%)\n%s", d.Title, FormatMoney(d.Value), d.Probability, d.Stage.Title()))
		node.SetShape("diamond")
		node.SetStyle("filled")
		node.SetFillColor(stageColors[d.Stage])

		contactNode, ok := contactNodes[d.ContactID]
		if !ok {
			continue
		}
		edge, err := graph.CreateEdgeByName("deal_"+d.ID+"_contact", node, contactNode)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		if d.Stage.Terminal() {
			edge.SetStyle("dashed")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
