package ui

import (
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/k8sify/internal/classify"
	"github.com/ThomasCrouzet/k8sify/internal/model"
	"github.com/ThomasCrouzet/k8sify/internal/synth"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// roleColors gives every role a stable accent color.
var roleColors = map[model.Role]lipgloss.Color{
	model.RoleWebApp:       "#2563EB",
	model.RoleDatabase:     "#7C3AED",
	model.RoleCache:        "#DC2626",
	model.RoleMessageQueue: "#EA580C",
	model.RoleLoadBalancer: "#0284C7",
	model.RoleProxy:        "#0891B2",
	model.RoleWorker:       "#16A34A",
	model.RoleCronJob:      "#CA8A04",
	model.RoleStorage:      "#4F46E5",
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RoleBadge renders a role name in its accent color.
func RoleBadge(r model.Role) string {
	r = r.OrUnknown()
	color, ok := roleColors[r]
	if !ok {
		return dimStyle.Render(string(r))
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(r))
}

// ServicesTable renders one row per service with its role and scaling.
func ServicesTable(app *model.Application) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("SERVICE", "IMAGE", "ROLE", "PORTS", "SCALING").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, svc := range app.Services {
		ports := make([]string, len(svc.Ports))
		for i, p := range svc.Ports {
			ports[i] = p.String()
		}
		t.Row(svc.Name, svc.Image, RoleBadge(svc.Role), strings.Join(ports, ", "), scaling(svc.Scaling))
	}
	return t.Render() + "\n"
}

func scaling(p model.ScalingProfile) string {
	var parts []string
	if p.Stateful {
		parts = append(parts, "stateful")
	}
	if p.HorizontalScaling {
		parts = append(parts, "horizontal")
	}
	if p.VerticalScaling {
		parts = append(parts, "vertical")
	}
	if p.SessionAffinity {
		parts = append(parts, "sticky")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// Patterns lists detected patterns with their confidence and recommendations.
func Patterns(patterns []model.DetectedPattern) string {
	if len(patterns) == 0 {
		return dimStyle.Render("No patterns detected") + "\n"
	}
	var b strings.Builder
	for _, p := range patterns {
		fmt.Fprintf(&b, "  %s %s %s\n",
			boldStyle.Render(string(p.Kind())),
			dimStyle.Render(fmt.Sprintf("(%.0f%%)", p.Confidence*100)),
			strings.Join(p.Services, ", "))
		for _, r := range p.Recommendations {
			fmt.Fprintf(&b, "      %s\n", hintStyle.Render("- "+r))
		}
	}
	return b.String()
}

// Summary renders the complexity score and model-level recommendations.
func Summary(s classify.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d services, %d volumes, %d networks\n",
		boldStyle.Render("Application:"), s.Services, s.Volumes, s.Networks)
	fmt.Fprintf(&b, "%s %d\n", boldStyle.Render("Complexity:"), s.ComplexityScore)
	for _, r := range s.Recommendations {
		fmt.Fprintf(&b, "  %s\n", hintStyle.Render("- "+r))
	}
	return b.String()
}

// Conversion reports how many manifests rendered and names every failure.
func Conversion(res *synth.Result, written []string) string {
	var b strings.Builder
	line := fmt.Sprintf("Completed %s conversion: %d of %d manifests", res.Mode, res.Succeeded(), res.Attempted)
	if len(res.Failures) == 0 {
		b.WriteString(okStyle.Render(line) + "\n")
	} else {
		b.WriteString(warnStyle.Render(line) + "\n")
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "  %s %s %s: %v\n", failStyle.Render("FAIL"), f.Kind, f.Name, f.Err)
		}
	}
	for _, path := range written {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(path))
	}
	return b.String()
}
