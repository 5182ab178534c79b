// Package render turns fetched Postman data into terminal output:
// lipgloss tables for listings, a tree for collection contents, and
// masking helpers for credentials and sensitive values.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/artpar/pmctl/internal/postman"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	folderStyle = lipgloss.NewStyle().Bold(true)

	methodColors = map[string]string{
		"GET":    "2",
		"POST":   "3",
		"PUT":    "4",
		"PATCH":  "5",
		"DELETE": "1",
	}
)

// Title renders a bold section heading.
func Title(text string) string {
	return titleStyle.Render(text)
}

// Table renders rows under styled headers. The first column is treated as
// the entity name and highlighted.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return nameStyle
			}
			return cellStyle
		})
	return t.Render()
}

// Total renders the dim summary line that closes a listing.
func Total(n int, noun string) string {
	if n == 1 {
		return dimStyle.Render(fmt.Sprintf("Total: 1 %s", noun))
	}
	return dimStyle.Render(fmt.Sprintf("Total: %d %ss", n, noun))
}

// Fields renders aligned label/value lines, for single-entity detail
// output such as whoami.
func Fields(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		label := titleStyle.Render(fmt.Sprintf("%-*s", width+1, p[0]+":"))
		fmt.Fprintf(&b, "%s %s\n", label, p[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Method renders an HTTP method padded and colored by verb.
func Method(method string) string {
	style := lipgloss.NewStyle().Bold(true)
	if color, ok := methodColors[method]; ok {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style.Render(fmt.Sprintf("%-7s", method))
}

// CollectionTree renders a collection's folders and requests as a tree,
// folders bold and requests as "METHOD name  url".
func CollectionTree(col *postman.Collection) string {
	root := tree.Root(titleStyle.Render(col.Info.Name)).
		EnumeratorStyle(dimStyle)
	addItems(root, col.Items)
	return root.String()
}

func addItems(branch *tree.Tree, items []postman.Item) {
	for _, it := range items {
		if it.IsFolder() {
			sub := tree.Root(folderStyle.Render("📁 " + it.Name)).
				EnumeratorStyle(dimStyle)
			addItems(sub, it.Items)
			branch.Child(sub)
			continue
		}
		line := fmt.Sprintf("%s %s  %s", Method(it.Request.Method), it.Name, dimStyle.Render(it.Request.URL.Raw))
		branch.Child(line)
	}
}

// MaskKey hides the middle of an API key, keeping enough of each end to
// tell keys apart. Short keys are fully masked.
func MaskKey(key string) string {
	if len(key) <= 16 {
		return strings.Repeat("*", len(key))
	}
	return key[:12] + "..." + key[len(key)-4:]
}

// IsSensitiveKey reports whether a variable name suggests its value
// should not be shown in full.
func IsSensitiveKey(key string) bool {
	folded := strings.ToLower(key)
	for _, marker := range []string{"password", "secret", "token", "key"} {
		if strings.Contains(folded, marker) {
			return true
		}
	}
	return false
}

// MaskValue hides all but a short prefix of a sensitive value.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + "****"
}

// Truncate shortens a string to max characters with an ellipsis marker.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
