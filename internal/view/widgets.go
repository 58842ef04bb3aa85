package view

import (
	"fmt"
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/theprojectseo/internal/widget"
)

// WorkflowPath serves the stepper fragment.
const WorkflowPath = "/widgets/workflow"

// WorkflowTarget is the element id the stepper swaps into.
const WorkflowTarget = "workflow-widget"

// WorkflowNodePath is the fragment showing the state right after clicking node i.
func WorkflowNodePath(i int) string {
	return fmt.Sprintf("%s/node/%d", WorkflowPath, i)
}

// WorkflowThroughPath is the settled fragment with nodes 0..i completed.
func WorkflowThroughPath(i int) string {
	return fmt.Sprintf("%s/through/%d", WorkflowPath, i)
}

// WidgetPaths lists every widget fragment a page can request, so a static
// export can write them next to the pages.
func WidgetPaths() []string {
	paths := []string{WorkflowPath}
	for i := range widget.WorkflowNodes {
		paths = append(paths, WorkflowNodePath(i), WorkflowThroughPath(i))
	}
	for _, variant := range widget.Variants() {
		paths = append(paths, ProcessVisualPath+string(variant))
	}
	return paths
}

// Workflow renders the stepper. Each node button fetches the state after
// clicking it; the active node has no request, so clicking it again changes
// nothing. While a revert is pending the fragment schedules its own reload
// into the settled state.
func Workflow(stepper *widget.Stepper, now time.Time) g.Node {
	views := stepper.View(widget.WorkflowNodes, now)

	var revert g.Node
	if at, ok := stepper.RevertAt(); ok && now.Before(at) {
		revert = g.Group{
			g.Attr("hx-get", WorkflowThroughPath(stepper.CompletedThrough())),
			g.Attr("hx-trigger", fmt.Sprintf("load delay:%dms", at.Sub(now).Milliseconds())),
		}
	}

	return Div(ID(WorkflowTarget), Class("workflow"),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		revert,
		Ol(Class("workflow-nodes"),
			g.Map(views, workflowNode),
		),
		P(Class("workflow-status"), g.Attr("aria-live", "polite"), g.Text(workflowStatus(views))),
	)
}

func workflowNode(view widget.StepView) g.Node {
	class := "workflow-node tone-" + view.Node.Tone
	if view.Active {
		class += " active"
	}
	if view.Completed {
		class += " completed"
	}
	return Li(
		Button(Type("button"), Class(class),
			g.If(!view.Active, g.Attr("hx-get", WorkflowNodePath(view.Node.ID))),
			g.Attr("hx-target", "#"+WorkflowTarget),
			g.Attr("aria-pressed", strconv.FormatBool(view.Active)),
			g.Attr("data-node", strconv.Itoa(view.Node.ID)),
			Icon(view.Node.Icon),
			Span(Class("node-label"), g.Text(view.Node.Label)),
			Strong(g.Text(view.Node.Title)),
			Small(g.Text(view.Node.Description)),
		),
	)
}

func workflowStatus(views []widget.StepView) string {
	for _, v := range views {
		if !v.Active {
			continue
		}
		if v.Last {
			return "Workflow complete: " + v.Node.Title
		}
		return "Running: " + v.Node.Title
	}
	return "Click any node to run the workflow"
}

// ProcessVisualPath serves a single process visual.
const ProcessVisualPath = "/widgets/process/"

// ProcessVisual renders the three stage cards of a variant. An unrecognized
// variant renders nothing.
func ProcessVisual(variant widget.VisualVariant) g.Node {
	stages := variant.Stages()
	if len(stages) == 0 {
		return nil
	}

	nodes := make([]g.Node, 0, 2*len(stages)-1)
	for i, stage := range stages {
		if i > 0 {
			nodes = append(nodes, Span(Class("stage-arrow"), g.Attr("aria-hidden", "true"), g.Text("→")))
		}
		nodes = append(nodes, Div(Class("stage"),
			Icon(stage.Icon),
			Span(Class("stage-label"), g.Text(stage.Label)),
			Strong(g.Text(stage.Title)),
			Small(g.Text(stage.Caption)),
		))
	}
	return Div(Class("process-visual process-visual-"+string(variant)),
		g.Attr("data-variant", string(variant)),
		g.Group(nodes),
	)
}
