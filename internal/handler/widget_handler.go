package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/theprojectseo/internal/view"
	"github.com/theprojectseo/internal/widget"
)

// ShowWorkflow renders the workflow stepper in its initial state. Each
// request rebuilds the stepper, the page holds no server-side state.
func (a *API) ShowWorkflow(c *gin.Context) {
	a.renderWorkflow(c, func(*widget.Stepper, time.Time) error { return nil })
}

// ShowWorkflowNode renders the stepper right after node :step was clicked.
func (a *API) ShowWorkflowNode(c *gin.Context) {
	step, err := parseIntParam(c, "step")
	a.renderWorkflow(c, func(s *widget.Stepper, now time.Time) error {
		if err != nil {
			return err
		}
		return s.Click(step, now)
	})
}

// ShowWorkflowThrough renders the settled stepper with nodes 0..:step completed.
func (a *API) ShowWorkflowThrough(c *gin.Context) {
	step, err := parseIntParam(c, "step")
	a.renderWorkflow(c, func(s *widget.Stepper, now time.Time) error {
		if err != nil {
			return err
		}
		return s.Restore(step)
	})
}

func (a *API) renderWorkflow(c *gin.Context, apply func(*widget.Stepper, time.Time) error) {
	stepper := widget.NewStepper(len(widget.WorkflowNodes), widget.DefaultRevertDelay)
	now := a.now()
	if err := apply(stepper, now); err != nil {
		if !errors.Is(err, widget.ErrStepOutOfRange) {
			err = errors.New("invalid workflow step")
		}
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	a.renderPage(c, http.StatusOK, view.Workflow(stepper, now))
}

// ShowProcessVisual renders one process visual. Unknown variants answer 404
// with an empty body.
func (a *API) ShowProcessVisual(c *gin.Context) {
	variant := widget.VisualVariant(c.Param("variant"))
	if !variant.Valid() {
		c.Status(http.StatusNotFound)
		return
	}
	a.renderPage(c, http.StatusOK, view.ProcessVisual(variant))
}
