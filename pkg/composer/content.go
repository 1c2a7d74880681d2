package composer

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dukex/flowalert/pkg/mail"
	"github.com/dukex/flowalert/pkg/models"
	"github.com/dukex/flowalert/pkg/timeutil"
)

const (
	policyCancelAll              = "This flow is set to cancel all currently running jobs."
	policyFinishAllPossible      = "This flow is set to complete all jobs that aren't blocked by the failure."
	policyFinishCurrentlyRunning = "This flow is set to complete all currently running jobs before stopping."

	noErrorDetail = "No error detail was reported."
)

// ServerInfo locates the web UI that execution links point to.
type ServerInfo struct {
	Name   string // Display name of the installation, used in subjects
	Scheme string // "http" or "https"
	Host   string
	Port   string
}

// ParseServerInfo builds a ServerInfo from the web UI base URL, e.g.
// "https://flows.example.org:8443". An empty rawURL yields a ServerInfo
// that adds no links.
func ParseServerInfo(name, rawURL string) (ServerInfo, error) {
	info := ServerInfo{Name: name}
	if rawURL == "" {
		return info, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return info, fmt.Errorf("parse server url: %w", err)
	}

	if u.Hostname() == "" {
		return info, fmt.Errorf("parse server url: missing host in %q", rawURL)
	}

	info.Scheme = u.Scheme
	info.Host = u.Hostname()
	info.Port = u.Port()

	return info, nil
}

func (s ServerInfo) configured() bool {
	return s.Host != ""
}

func (s ServerInfo) executionURL(execID int) string {
	scheme := s.Scheme
	if scheme == "" {
		scheme = "https"
	}

	host := s.Host
	if s.Port != "" {
		host += ":" + s.Port
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     "/executor",
		RawQuery: url.Values{"execid": []string{strconv.Itoa(execID)}}.Encode(),
	}

	return u.String()
}

// policySentence returns the sentence explaining what the flow does after a failure.
func policySentence(action models.FailureAction) (string, error) {
	switch action {
	case models.FailureActionCancelAll:
		return policyCancelAll, nil
	case models.FailureActionFinishAllPossible:
		return policyFinishAllPossible, nil
	case models.FailureActionFinishCurrentlyRunning:
		return policyFinishCurrentlyRunning, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFailureAction, action)
	}
}

func failedSubject(flow *models.FlowExecution, server ServerInfo) string {
	return withServer(fmt.Sprintf("Flow '%s' has failed", flow.FlowID), server)
}

func succeededSubject(flow *models.FlowExecution, server ServerInfo) string {
	return withServer(fmt.Sprintf("Flow '%s' has succeeded", flow.FlowID), server)
}

func updateFailedSubject(executor *models.Executor, server ServerInfo) string {
	return withServer("Flow status could not be updated from "+executor.Host, server)
}

func withServer(subject string, server ServerInfo) string {
	if server.Name == "" {
		return subject
	}

	return subject + " on " + server.Name
}

// outcomeHeading names the execution, flow and project with the given outcome.
func outcomeHeading(flow *models.FlowExecution, outcome string, alert bool) mail.Heading {
	return mail.Heading{
		Level: 2,
		Text: fmt.Sprintf("Execution '%d' of flow '%s' of project '%s' has %s",
			flow.ExecutionID, flow.FlowID, flow.ProjectName, outcome),
		Alert: alert,
	}
}

// timingTable renders start, end, elapsed time and final status.
func timingTable(flow *models.FlowExecution, formatter *timeutil.Formatter) mail.Table {
	return mail.Table{Rows: []mail.Row{
		{Label: "Start Time", Value: formatter.FormatDateTime(flow.StartTime)},
		{Label: "End Time", Value: formatter.FormatDateTime(flow.EndTime)},
		{Label: "Duration", Value: formatter.FormatDuration(flow.StartTime, flow.EndTime)},
		{Label: "Status", Value: flow.Status.String()},
	}}
}

// failedJobs lists the failed nodes, or nothing when none failed.
func failedJobs(flow *models.FlowExecution) []mail.Fragment {
	failed := flow.FailedNodes()
	if len(failed) == 0 {
		return nil
	}

	return []mail.Fragment{
		mail.Heading{Level: 3, Text: "Failed jobs"},
		mail.List{Items: failed},
	}
}

func reasonList(reasons []string) []mail.Fragment {
	items := make([]string, 0, len(reasons))

	for _, reason := range reasons {
		if reason != "" {
			items = append(items, reason)
		}
	}

	if len(items) == 0 {
		return nil
	}

	return []mail.Fragment{
		mail.Heading{Level: 3, Text: "Reasons"},
		mail.List{Items: items},
	}
}

// pastExecutions summarises earlier runs of the same flow in the given order.
func pastExecutions(past []*models.FlowExecution, formatter *timeutil.Formatter) []mail.Fragment {
	items := make([]string, 0, len(past))

	for _, execution := range past {
		if execution == nil {
			continue
		}

		items = append(items, fmt.Sprintf("Execution '%d' started %s: %s",
			execution.ExecutionID, formatter.FormatDateTime(execution.StartTime), execution.Status))
	}

	if len(items) == 0 {
		return nil
	}

	return []mail.Fragment{
		mail.Heading{Level: 3, Text: "Recent executions"},
		mail.List{Items: items},
	}
}

func executionLink(flow *models.FlowExecution, server ServerInfo) []mail.Fragment {
	if !server.configured() {
		return nil
	}

	return []mail.Fragment{mail.Link{Text: "Execution details", URL: server.executionURL(flow.ExecutionID)}}
}

// errorTrace renders err with its stack trace when the error carries one.
func errorTrace(err error) string {
	if err == nil {
		return noErrorDetail
	}

	return fmt.Sprintf("%+v", err)
}

// executionBullets names every flow of the batch, one item per flow, in order.
// flows must not contain nil entries.
func executionBullets(flows []*models.FlowExecution) mail.List {
	items := make([]string, 0, len(flows))

	for _, flow := range flows {
		items = append(items, fmt.Sprintf("Execution '%d' of flow '%s' of project '%s'",
			flow.ExecutionID, flow.FlowID, flow.ProjectName))
	}

	return mail.List{Items: items}
}
