package insights

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbiancareli/studio-manager/internal/domain/finance"
	"github.com/mbiancareli/studio-manager/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildClientInsights(t *testing.T) {
	corte := models.Service{ID: uuid.New(), Name: "Corte"}
	escova := models.Service{ID: uuid.New(), Name: "Escova"}

	aps := []models.Appointment{
		{Services: []models.Service{corte}, StartTime: "09:00"},
		{Services: []models.Service{corte, escova}, StartTime: "10:30"},
		{Services: []models.Service{corte}, StartTime: "14:00"},
	}

	got := BuildClientInsights(aps)

	require.Len(t, got.TopServices, 2)
	assert.Equal(t, "Corte", got.TopServices[0].Service.Name)
	assert.Equal(t, 3, got.TopServices[0].Count)
	assert.Equal(t, 1, got.TopServices[1].Count)

	assert.Equal(t, "morning", got.PreferredTimeOfDay)
	assert.Equal(t, 3, got.TotalAppointments)
}

func TestBuildClientInsightsTieBreaks(t *testing.T) {
	first := models.Service{ID: uuid.New(), Name: "Primeiro"}
	second := models.Service{ID: uuid.New(), Name: "Segundo"}

	// equal counts: first-encountered service wins the top spot, and with
	// one morning and one evening visit the bucket tie resolves to morning
	aps := []models.Appointment{
		{Services: []models.Service{first}, StartTime: "08:00"},
		{Services: []models.Service{second}, StartTime: "20:00"},
	}

	got := BuildClientInsights(aps)

	require.Len(t, got.TopServices, 2)
	assert.Equal(t, "Primeiro", got.TopServices[0].Service.Name)
	assert.Equal(t, "morning", got.PreferredTimeOfDay)
	assert.Equal(t, 8, got.PreferredHour)
}

func TestBuildClientInsightsTimeBuckets(t *testing.T) {
	aps := []models.Appointment{
		{StartTime: "19:00"},
		{StartTime: "19:30"},
		{StartTime: "05:00"}, // before 6h counts as evening
		{StartTime: "13:00"},
	}

	got := BuildClientInsights(aps)
	assert.Equal(t, "evening", got.PreferredTimeOfDay)
	assert.Equal(t, 19, got.PreferredHour)
}

func TestBuildClientInsightsCapsTopFive(t *testing.T) {
	var aps []models.Appointment
	for i := 0; i < 7; i++ {
		aps = append(aps, models.Appointment{
			Services:  []models.Service{{ID: uuid.New()}},
			StartTime: "10:00",
		})
	}

	got := BuildClientInsights(aps)
	assert.Len(t, got.TopServices, 5)
}

func TestDetectPatternWeekly(t *testing.T) {
	client := models.Client{ID: uuid.New(), Name: "Ana"}
	now := day(29)

	// visits 7 days apart, last one 10 days ago (> 7 * 1.2)
	completed := []models.Appointment{
		{Date: day(19)},
		{Date: day(12)},
		{Date: day(5)},
	}

	p, ok := DetectPattern(client, completed, now)
	require.True(t, ok)
	assert.Equal(t, "weekly", p.Pattern)
	assert.Equal(t, 7, p.AvgInterval)
	assert.Equal(t, 10, p.DaysSinceLast)
	assert.Equal(t, day(19), p.LastAppointment)
}

func TestDetectPatternNotOverdue(t *testing.T) {
	client := models.Client{ID: uuid.New()}

	// weekly cadence but the last visit was only 5 days ago
	completed := []models.Appointment{
		{Date: day(24)},
		{Date: day(17)},
	}

	_, ok := DetectPattern(client, completed, day(29))
	assert.False(t, ok)
}

func TestDetectPatternNeedsTwoVisits(t *testing.T) {
	client := models.Client{ID: uuid.New()}

	_, ok := DetectPattern(client, nil, day(29))
	assert.False(t, ok)

	_, ok = DetectPattern(client, []models.Appointment{{Date: day(1)}}, day(29))
	assert.False(t, ok)
}

func TestDetectPatternUnclassifiedInterval(t *testing.T) {
	client := models.Client{ID: uuid.New()}

	// 3-day cadence fits no named pattern
	completed := []models.Appointment{
		{Date: day(10)},
		{Date: day(7)},
		{Date: day(4)},
	}

	_, ok := DetectPattern(client, completed, day(29))
	assert.False(t, ok)
}

func TestRankTopServices(t *testing.T) {
	corte := models.Service{ID: uuid.New(), Name: "Corte"}
	escova := models.Service{ID: uuid.New(), Name: "Escova"}
	services := map[uuid.UUID]models.Service{corte.ID: corte, escova.ID: escova}

	clientA := uuid.New()
	clientB := uuid.New()

	incomes := []models.Finance{
		{Type: string(finance.TypeIncome), Amount: 80, ServiceID: &corte.ID},
		{Type: string(finance.TypeIncome), Amount: 80, ServiceID: &corte.ID},
		{Type: string(finance.TypeIncome), Amount: 60, ServiceID: &escova.ID},
		// expenses and unattributed income are ignored
		{Type: string(finance.TypeExpense), Amount: 500, ServiceID: &escova.ID},
		{Type: string(finance.TypeIncome), Amount: 999},
	}

	completed := []models.Appointment{
		{ClientID: clientA, Services: []models.Service{corte}},
		{ClientID: clientB, Services: []models.Service{corte}},
		{ClientID: clientA, Services: []models.Service{corte, escova}},
	}

	got := RankTopServices(incomes, completed, services)

	require.Len(t, got, 2)
	assert.Equal(t, "Corte", got[0].Service.Name)
	assert.Equal(t, 160.0, got[0].Total)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, 2, got[0].UniqueClients)

	assert.Equal(t, "Escova", got[1].Service.Name)
	assert.Equal(t, 1, got[1].UniqueClients)
}

func TestRankTopNeighborhoods(t *testing.T) {
	ap := func(hood string, total float64) models.Appointment {
		return models.Appointment{
			Client:      models.Client{Address: models.ClientAddress{Neighborhood: hood}},
			TotalAmount: total,
		}
	}

	completed := []models.Appointment{
		ap("Centro", 100),
		ap("Jardins", 250),
		ap("Centro", 80),
		ap("", 999), // no neighborhood on file
		ap("Mooca", 50),
		ap("Lapa", 10),
	}

	got := RankTopNeighborhoods(completed)

	require.Len(t, got, 3)
	assert.Equal(t, "Jardins", got[0].Neighborhood)
	assert.Equal(t, 250.0, got[0].Total)
	assert.Equal(t, "Centro", got[1].Neighborhood)
	assert.Equal(t, 180.0, got[1].Total)
	assert.Equal(t, "Mooca", got[2].Neighborhood)
}

func TestIdentifyVIPs(t *testing.T) {
	big := uuid.New()
	small1 := uuid.New()
	small2 := uuid.New()

	completed := []models.Appointment{
		{ClientID: big, TotalAmount: 300},
		{ClientID: big, TotalAmount: 300},
		{ClientID: small1, TotalAmount: 100},
		{ClientID: small2, TotalAmount: 100},
	}

	// average spend 800/3 ≈ 266.67, threshold 400
	got := IdentifyVIPs(completed)

	require.Len(t, got, 1)
	assert.Equal(t, big, got[0].ClientID)
	assert.Equal(t, 600.0, got[0].Spending)
}

func TestIdentifyVIPsEmpty(t *testing.T) {
	got := IdentifyVIPs(nil)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIdentifyVIPsSingleClientBelowThreshold(t *testing.T) {
	only := uuid.New()

	// one client spends exactly the average; 1.5x threshold excludes them
	got := IdentifyVIPs([]models.Appointment{{ClientID: only, TotalAmount: 200}})
	assert.Empty(t, got)
}
