package analysis

import (
	"fmt"
	"job-traveler/internal/storage"
	"strconv"
	"strings"
)

const instructions = `Please provide:
1. Job Health Assessment (1-2 sentences)
2. Bottleneck Identification (if any)
3. Top 3 Recommendations
4. Cleanup Actions Needed
5. Estimated Completion Timeline

Format your response in clear sections with headers.`

// BuildPrompt renders a traveler report as the analysis request text.
func BuildPrompt(report *storage.Report) string {
	var b strings.Builder

	b.WriteString("Analyze this manufacturing job and provide insights:\n\n")

	b.WriteString("JOB HEADER:\n")
	fmt.Fprintf(&b, "- Job: %s\n", report.Job.JobNumber)
	fmt.Fprintf(&b, "- Customer: %s\n", report.Job.Customer)
	fmt.Fprintf(&b, "- Part Number: %s\n", report.Job.PartNumber)
	fmt.Fprintf(&b, "- Status: %s\n\n", report.Job.Status)

	b.WriteString("OPERATIONS:\n")
	for _, op := range report.Operations {
		fmt.Fprintf(&b, "\n  Sequence %d: %s\n", op.Sequence, op.Description)
		fmt.Fprintf(&b, "  - Work Center: %s\n", op.WorkCenter)
		fmt.Fprintf(&b, "  - Status: %s\n", op.StatusMeaning)
		fmt.Fprintf(&b, "  - Hours Worked: %s\n", formatNumber(op.TotalHours))
		fmt.Fprintf(&b, "  - Qty Produced: %s / %s\n", formatNumber(op.QtyProduced), formatOptional(op.RequiredQty))
		fmt.Fprintf(&b, "  - Last Activity: %s\n", lastActivity(op.DaysSinceLastWork))
		fmt.Fprintf(&b, "  - Latest Operator: %s\n", orNA(op.LatestOperator))
		fmt.Fprintf(&b, "  - Action Needed: %s\n", op.ActionNeeded)
	}

	b.WriteString("\nSUMMARY:\n")
	fmt.Fprintf(&b, "- Total Operations: %d\n", report.Summary.TotalOperations)
	fmt.Fprintf(&b, "- Setup Operations: %d\n", report.Summary.SetupOperations)
	fmt.Fprintf(&b, "- Production Operations: %d\n", report.Summary.ProductionOperations)
	fmt.Fprintf(&b, "- Complete: %d\n", report.Summary.CompleteOperations)
	fmt.Fprintf(&b, "- Active: %d\n", report.Summary.ActiveOperations)
	fmt.Fprintf(&b, "- Open: %d\n\n", report.Summary.OpenOperations)

	b.WriteString(instructions)

	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatNumber(*v)
}

func lastActivity(days *int) string {
	if days == nil {
		return "Never started"
	}
	return fmt.Sprintf("%d days ago", *days)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
