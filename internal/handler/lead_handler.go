package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theprojectseo/internal/service"
	"github.com/theprojectseo/internal/view"
)

const leadFailureMessage = "Something went wrong. Please try again or email us directly."

// SubmitLead stores a contact form submission. HTMX posts get the form
// fragment back, carrying either the first validation error or the thank-you
// note; JSON clients get {"success": ...}.
func (a *API) SubmitLead(c *gin.Context) {
	asJSON := wantsJSON(c)

	var input service.LeadInput
	bindErr := c.ShouldBind(&input)
	state := view.LeadFormState{
		SourcePage: input.SourcePage,
		Variant:    c.PostForm("formVariant"),
		Values:     input,
	}
	if bindErr != nil {
		a.leadFailed(c, asJSON, http.StatusBadRequest, state, service.LeadValidationMessage(bindErr))
		return
	}

	lead, err := a.leads.Submit(c.Request.Context(), input)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			a.leadFailed(c, asJSON, http.StatusBadRequest, state, vErr.Message)
			return
		}
		_ = c.Error(err)
		a.logger.Error("submit lead", zap.String("source_page", input.SourcePage), zap.Error(err))
		a.leadFailed(c, asJSON, http.StatusInternalServerError, state, leadFailureMessage)
		return
	}

	if asJSON {
		c.JSON(http.StatusCreated, gin.H{"success": true, "id": lead.ID})
		return
	}
	a.renderPage(c, http.StatusOK, view.LeadForm(view.LeadFormState{Success: true}))
}

func (a *API) leadFailed(c *gin.Context, asJSON bool, status int, state view.LeadFormState, message string) {
	if asJSON {
		c.JSON(status, gin.H{"success": false, "error": message})
		return
	}
	state.Error = message
	a.renderPage(c, status, view.LeadForm(state))
}
