// Package output provides formatters for robotctl output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/okian/robot/internal/adapters/http/site"
	"github.com/okian/robot/internal/smoke"
	"github.com/okian/robot/pkg/apiclient"
)

// Body writes the response body verbatim, adding a trailing newline when
// the body lacks one. An empty body prints nothing.
func Body(w io.Writer, resp *apiclient.Response) {
	if resp == nil || len(resp.Body) == 0 {
		return
	}
	_, _ = w.Write(resp.Body)
	if resp.Body[len(resp.Body)-1] != '\n' {
		fmt.Fprintln(w)
	}
}

// Event writes one stream event's data on its own line.
// Format: "{DATA}\n", or "[{EVENT}] {DATA}\n" for named events.
func Event(w io.Writer, ev apiclient.StreamEvent) {
	data := strings.ReplaceAll(string(ev.Data), "\n", " ")
	if ev.Event != "" && ev.Event != "message" {
		fmt.Fprintf(w, "[%s] %s\n", ev.Event, data)
		return
	}
	fmt.Fprintln(w, data)
}

// Routes writes the route table, one "{PATH:<16}{VIEW}" line per route.
func Routes(w io.Writer, routes []site.Route) {
	for _, r := range routes {
		fmt.Fprintf(w, "%-16s%s\n", r.Path, r.View)
	}
}

// Endpoints writes the endpoint catalogue of every client.
// Format: "{METHOD:<7}{BASE}{PATH}  {NAME}\n".
func Endpoints(w io.Writer, paths apiclient.BasePaths) {
	paths = paths.WithDefaults()
	groups := []struct {
		base string
		eps  []apiclient.Endpoint
	}{
		{paths.Legacy, apiclient.LegacyEndpoints()},
		{paths.Unified, apiclient.UnifiedEndpoints()},
		{paths.Smart, apiclient.SmartEndpoints()},
	}
	for _, g := range groups {
		for _, e := range g.eps {
			fmt.Fprintf(w, "%-7s%s%s  %s\n", e.Method, g.base, e.Path, e.Name)
		}
	}
}

// SmokeReport writes a table of check results followed by a summary line.
func SmokeReport(w io.Writer, r *smoke.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tSTATUS\tLATENCY\tRESULT")
	for _, res := range r.Results {
		result := "ok"
		if !res.OK {
			result = "FAIL " + res.Error
		}
		status := "-"
		if res.StatusCode > 0 {
			status = fmt.Sprintf("%d", res.StatusCode)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Name, status, res.Latency.Round(time.Millisecond), result)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d passed, %d failed\n", r.Passed, r.Failed)
}

// SmokeReportJSON writes the report as indented JSON.
func SmokeReportJSON(w io.Writer, r *smoke.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
