// Package insights derives read-only analytics from already-fetched
// record sets. Every function here is pure computation over plain
// slices, so the aggregations are testable without a database.
package insights

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbiancareli/studio-manager/internal/domain/finance"
	"github.com/mbiancareli/studio-manager/internal/models"
)

// ======================================================
// CLIENT INSIGHTS
// ======================================================

type ServiceCount struct {
	Service models.Service `json:"service"`
	Count   int            `json:"count"`
}

type ClientInsights struct {
	TopServices        []ServiceCount `json:"top_services"`
	PreferredTimeOfDay string         `json:"preferred_time_of_day"`
	PreferredHour      int            `json:"preferred_hour"`
	TotalAppointments  int            `json:"total_appointments"`
}

// time-of-day buckets, in tie-break precedence order
var timeSlots = []string{"morning", "afternoon", "evening"}

func slotForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

// startHour extracts the hour from a "15:04" start time string.
func startHour(startTime string) int {
	h, _ := strconv.Atoi(strings.SplitN(startTime, ":", 2)[0])
	return h
}

// BuildClientInsights ranks the client's services by occurrence and finds
// the preferred time bucket and start hour over their completed
// appointments. Ties resolve to the first maximum in scan order: services
// keep first-encountered order, buckets follow the declaration order
// morning, afternoon, evening, hours scan ascending.
func BuildClientInsights(appointments []models.Appointment) ClientInsights {
	counts := make(map[uuid.UUID]*ServiceCount)
	var order []uuid.UUID

	for _, ap := range appointments {
		for _, svc := range ap.Services {
			sc, ok := counts[svc.ID]
			if !ok {
				sc = &ServiceCount{Service: svc}
				counts[svc.ID] = sc
				order = append(order, svc.ID)
			}
			sc.Count++
		}
	}

	top := make([]ServiceCount, 0, len(order))
	for _, id := range order {
		top = append(top, *counts[id])
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > 5 {
		top = top[:5]
	}

	slotCounts := make(map[string]int)
	hourCounts := make(map[int]int)
	for _, ap := range appointments {
		hour := startHour(ap.StartTime)
		slotCounts[slotForHour(hour)]++
		hourCounts[hour]++
	}

	preferredSlot := timeSlots[0]
	for _, slot := range timeSlots {
		if slotCounts[slot] > slotCounts[preferredSlot] {
			preferredSlot = slot
		}
	}

	preferredHour := 0
	for hour := 0; hour < 24; hour++ {
		if hourCounts[hour] > hourCounts[preferredHour] {
			preferredHour = hour
		}
	}

	return ClientInsights{
		TopServices:        top,
		PreferredTimeOfDay: preferredSlot,
		PreferredHour:      preferredHour,
		TotalAppointments:  len(appointments),
	}
}

// ======================================================
// RE-VISIT PATTERNS
// ======================================================

type ClientPattern struct {
	Client          models.Client `json:"client"`
	Pattern         string        `json:"pattern"`
	AvgInterval     int           `json:"avg_interval"`
	DaysSinceLast   int           `json:"days_since_last"`
	LastAppointment time.Time     `json:"last_appointment"`
}

func daysBetween(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Hours() / 24)
}

func classifyInterval(avg float64) string {
	switch {
	case avg >= 6 && avg <= 8:
		return "weekly"
	case avg >= 13 && avg <= 15:
		return "biweekly"
	case avg >= 28 && avg <= 32:
		return "monthly"
	}
	return ""
}

// DetectPattern evaluates one client's completed appointments, which must
// be sorted newest-first. It reports a re-visit cadence only for clients
// with at least two completed appointments, and only flags the client as
// overdue when the days since the last visit exceed 1.2x the average gap.
func DetectPattern(client models.Client, completed []models.Appointment, now time.Time) (ClientPattern, bool) {
	if len(completed) < 2 {
		return ClientPattern{}, false
	}

	var sum float64
	for i := 0; i < len(completed)-1; i++ {
		sum += daysBetween(completed[i].Date, completed[i+1].Date)
	}
	avg := sum / float64(len(completed)-1)

	pattern := classifyInterval(avg)
	if pattern == "" {
		return ClientPattern{}, false
	}

	last := completed[0].Date
	sinceLast := daysBetween(now, last)
	if sinceLast <= avg*1.2 {
		return ClientPattern{}, false
	}

	return ClientPattern{
		Client:          client,
		Pattern:         pattern,
		AvgInterval:     int(math.Round(avg)),
		DaysSinceLast:   int(math.Round(sinceLast)),
		LastAppointment: last,
	}, true
}

// ======================================================
// TOP SERVICES (by revenue)
// ======================================================

type ServiceRanking struct {
	Service       models.Service `json:"service"`
	Total         float64        `json:"total"`
	Count         int            `json:"count"`
	UniqueClients int            `json:"unique_clients"`
}

// RankTopServices aggregates income ledger entries carrying a service
// reference into per-service revenue and count, then merges in the number
// of distinct clients seen on completed appointments for the same window.
// Returns the top 3 by revenue.
func RankTopServices(
	incomes []models.Finance,
	completed []models.Appointment,
	services map[uuid.UUID]models.Service,
) []ServiceRanking {

	type stat struct {
		ranking ServiceRanking
		clients map[uuid.UUID]struct{}
	}

	stats := make(map[uuid.UUID]*stat)
	var order []uuid.UUID

	for _, f := range incomes {
		if f.Type != string(finance.TypeIncome) || f.ServiceID == nil {
			continue
		}
		id := *f.ServiceID
		st, ok := stats[id]
		if !ok {
			st = &stat{
				ranking: ServiceRanking{Service: services[id]},
				clients: make(map[uuid.UUID]struct{}),
			}
			stats[id] = st
			order = append(order, id)
		}
		st.ranking.Total += f.Amount
		st.ranking.Count++
	}

	for _, ap := range completed {
		for _, svc := range ap.Services {
			if st, ok := stats[svc.ID]; ok {
				st.clients[ap.ClientID] = struct{}{}
			}
		}
	}

	out := make([]ServiceRanking, 0, len(order))
	for _, id := range order {
		st := stats[id]
		st.ranking.UniqueClients = len(st.clients)
		out = append(out, st.ranking)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// ======================================================
// TOP NEIGHBORHOODS
// ======================================================

type NeighborhoodRanking struct {
	Neighborhood string  `json:"neighborhood"`
	Total        float64 `json:"total"`
}

// RankTopNeighborhoods sums completed-appointment revenue by the client's
// address neighborhood and returns the top 3. Clients without a
// neighborhood on file are skipped.
func RankTopNeighborhoods(completed []models.Appointment) []NeighborhoodRanking {
	totals := make(map[string]float64)
	var order []string

	for _, ap := range completed {
		hood := ap.Client.Address.Neighborhood
		if hood == "" {
			continue
		}
		if _, ok := totals[hood]; !ok {
			order = append(order, hood)
		}
		totals[hood] += ap.TotalAmount
	}

	out := make([]NeighborhoodRanking, 0, len(order))
	for _, hood := range order {
		out = append(out, NeighborhoodRanking{Neighborhood: hood, Total: totals[hood]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// ======================================================
// VIP CLASSIFICATION
// ======================================================

type VIPClient struct {
	ClientID uuid.UUID `json:"client_id"`
	Spending float64   `json:"spending"`
}

// IdentifyVIPs sums current-month completed spend per client and returns
// those at or above 1.5x the average spend of clients who spent anything.
// With no spending clients the result is empty rather than a division
// error.
func IdentifyVIPs(completed []models.Appointment) []VIPClient {
	spending := make(map[uuid.UUID]float64)
	var order []uuid.UUID

	for _, ap := range completed {
		if _, ok := spending[ap.ClientID]; !ok {
			order = append(order, ap.ClientID)
		}
		spending[ap.ClientID] += ap.TotalAmount
	}

	if len(spending) == 0 {
		return []VIPClient{}
	}

	var total float64
	for _, amount := range spending {
		total += amount
	}
	threshold := total / float64(len(spending)) * 1.5

	vips := make([]VIPClient, 0)
	for _, id := range order {
		if spending[id] >= threshold {
			vips = append(vips, VIPClient{ClientID: id, Spending: spending[id]})
		}
	}
	return vips
}
