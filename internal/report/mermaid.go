package report

import (
	"fmt"
	"strings"

	"github.com/reposcope/reposcope/internal/compose"
)

// renderMermaid draws the compose services and their depends_on edges as a
// mermaid graph.
func renderMermaid(b *strings.Builder, services []compose.Service) {
	b.WriteString("```mermaid\ngraph TB\n")
	for _, svc := range services {
		label := svc.Name
		if svc.Image != "" {
			label = fmt.Sprintf("%s<br/>%s", svc.Name, svc.Image)
		}
		fmt.Fprintf(b, "    %s[\"%s\"]\n", nodeID(svc.Name), label)
	}
	for _, svc := range services {
		for _, dep := range svc.DependsOn {
			fmt.Fprintf(b, "    %s --> %s\n", nodeID(svc.Name), nodeID(dep))
		}
	}
	b.WriteString("```\n")
}

// nodeID strips characters mermaid does not accept in node identifiers.
func nodeID(name string) string {
	var out strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out.WriteRune(r)
		default:
			out.WriteRune('_')
		}
	}
	return out.String()
}
