package registry

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// PrintReport renders a dependency report as a table.
func PrintReport(w io.Writer, report *Report) {
	if len(report.Required) == 0 {
		fmt.Fprintln(w, "No extensions required.")
		return
	}

	outOfDate := make(map[string]bool, len(report.OutOfDate))
	for _, h := range report.OutOfDate {
		outOfDate[h.Identifier] = true
	}

	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetHeader([]string{"Extension", "Name", "Installed", "Available", "Action"})
	for _, h := range report.Required {
		installed := "-"
		action := "install"
		if h.Installed {
			installed = h.InstalledVersion
			action = "none"
			if outOfDate[h.Identifier] {
				action = "update"
			}
		}
		table.Append([]string{h.Identifier, h.DisplayName(), installed, h.AvailableVersion, action})
	}
	table.Render()
}

// UpdateMessage is the question asked before upgrading out-of-date
// extensions.
func UpdateMessage(outOfDate []ExtensionHeader) string {
	msg := "These extensions will be updated because an asset requires a newer version:"
	for _, h := range outOfDate {
		msg += "\n  - " + h.DisplayName()
	}
	return msg + "\nUpdate the extension(s)? Skipping the update may break the new objects."
}
