package poll

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"status-leds/animation"
	"status-leds/types"
)

const fetchTimeout = 10 * time.Second

// IncidentSource maps the incident feed of a status API to animations
type IncidentSource struct {
	endpoint  string
	client    *http.Client
	startTime time.Time
	logger    *types.Logger

	notified map[int]bool
	seen     map[int]bool
}

// NewIncidentSource watches incidents created after startTime
func NewIncidentSource(endpoint string, startTime time.Time, logger *types.Logger) *IncidentSource {
	return &IncidentSource{
		endpoint:  endpoint,
		client:    &http.Client{Timeout: fetchTimeout},
		startTime: startTime,
		logger:    logger,
		notified:  make(map[int]bool),
		seen:      make(map[int]bool),
	}
}

func (s *IncidentSource) Status(ctx context.Context) (string, error) {
	incidents, err := s.fetchIncidents(ctx)
	if err != nil {
		return "", err
	}

	s.logger.DebugLog.Printf("Fetched %d incidents", len(incidents))
	for _, incident := range incidents {
		if !s.seen[incident.ID] {
			s.logger.InfoLog.Printf("New incident detected: [%s] %s - Current State: %s",
				incident.Service,
				incident.Incident.Title,
				incident.CurrentState)
			s.seen[incident.ID] = true
		}
	}

	return AlertLogic(incidents, s.notified, s.startTime)
}

// fetchIncidents retrieves the list of incidents from the API
func (s *IncidentSource) fetchIncidents(ctx context.Context) ([]types.Incident, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incidents: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incidents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from incidents API: %d", resp.StatusCode)
	}

	const maxResponseSize = 1 << 20 // 1 MB
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var incidents []types.Incident
	if err := json.Unmarshal(body, &incidents); err != nil {
		return nil, fmt.Errorf("failed to parse incidents: %w", err)
	}

	return incidents, nil
}

// sortIncidentsByTime sorts incidents by creation time, most recent first
func sortIncidentsByTime(incidents []types.Incident) []types.Incident {
	sorted := make([]types.Incident, len(incidents))
	copy(sorted, incidents)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// AlertLogic picks the animation for a set of incidents. A recovered service
// turns the LEDs off, a new outage since startTime starts flashing, and an
// incident with an unreadable timestamp shows the error animation.
func AlertLogic(incidents []types.Incident, notifiedIncidents map[int]bool, startTime time.Time) (string, error) {
	if len(incidents) == 0 {
		return "", nil
	}

	sortedIncidents := sortIncidentsByTime(incidents)
	mostRecent := sortedIncidents[0]

	createdAt, err := parseIncidentTime(mostRecent)
	if err != nil {
		return animation.Error, fmt.Errorf("error parsing incident time: %w", err)
	}

	if createdAt.After(startTime) && isNormalState(mostRecent.CurrentState) {
		return animation.Off, nil
	}

	for _, incident := range sortedIncidents {
		createdAt, err := parseIncidentTime(incident)
		if err != nil {
			return animation.Error, fmt.Errorf("error parsing incident time: %w", err)
		}

		if !createdAt.After(startTime) {
			continue
		}

		if !notifiedIncidents[incident.ID] && isRelevantState(incident.CurrentState) {
			notifiedIncidents[incident.ID] = true
			return animation.Flashing, nil
		}
	}

	return "", nil
}

// parseIncidentTime parses the incident creation time
func parseIncidentTime(incident types.Incident) (time.Time, error) {
	return time.Parse(types.TimeFormat, strings.Split(incident.CreatedAt, ".")[0])
}

// isNormalState checks if the state is operational or maintenance
func isNormalState(state string) bool {
	return state == types.StateOperational || state == types.StateMaintenance
}

// isRelevantState checks if the state is critical, outage, or degraded
func isRelevantState(state string) bool {
	return state == types.StateCritical || state == types.StateOutage || state == types.StateDegraded
}
