// Package reminder drafts client-facing reminder letters about a filing
// record. The generative backend is a boundary collaborator; the shipped
// implementation renders an offline template so the portal works without one.
package reminder

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/kolade-dev/filingdesk/internal/models"
)

type Generator interface {
	GenerateReminderDraft(company models.Company) (string, error)
}

const draftTemplateText = `Subject: Reminder: Annual Returns Filing for {{.CompanyName}}

Dear Client,

This is a friendly reminder regarding the annual returns filing for {{.CompanyName}} for the year {{.FilingYear}}.

Our records show the current status as: {{.ReturnsStatus}}. {{.StatusContext}}

Please reply "YES" if the returns have been filed or "NO" if they have not.

Thank you,
Your CAC Agent
`

// TemplateGenerator renders a ready-to-send letter from the record alone.
type TemplateGenerator struct {
	template *template.Template
}

func NewTemplateGenerator() (*TemplateGenerator, error) {
	parsed, err := template.New("reminder").Parse(draftTemplateText)
	if err != nil {
		return nil, fmt.Errorf("parse reminder template: %w", err)
	}
	return &TemplateGenerator{template: parsed}, nil
}

func (generator *TemplateGenerator) GenerateReminderDraft(company models.Company) (string, error) {
	data := struct {
		CompanyName   string
		FilingYear    int
		ReturnsStatus string
		StatusContext string
	}{
		CompanyName:   company.CompanyName,
		FilingYear:    company.FilingYear,
		ReturnsStatus: company.ReturnsStatus,
		StatusContext: statusContext(company.ReturnsStatus),
	}

	var rendered strings.Builder
	if err := generator.template.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("render reminder draft: %w", err)
	}
	return rendered.String(), nil
}

func statusContext(status string) string {
	switch status {
	case models.StatusPending:
		return "The filing is pending and the deadline is approaching."
	case models.StatusAwaitingResponse:
		return "We have sent a reminder but have not received a confirmation yet."
	case models.StatusOverdue:
		return "The filing deadline has passed and this is an urgent reminder."
	case models.StatusFiled:
		return "The filing is complete. This is a confirmation follow-up."
	default:
		return "There is an update regarding the annual returns filing."
	}
}
