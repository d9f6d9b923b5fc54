package views

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/godfreydekew/car-parking-crm/internal/domain/models"
	"github.com/godfreydekew/car-parking-crm/internal/utils"
)

// Each aggregation names its own status-exclusion policy. The sets differ per
// metric on purpose: revenue and payment figures drop only CANCELLED (a
// no-show still owes), while customer spend drops NO_SHOW as well. Keep them
// separate; do not unify.

// countsTowardRevenue is the policy for revenue windows, the daily series and
// the payment/flight breakdowns.
func countsTowardRevenue(b models.Booking) bool {
	return b.Status != models.StatusCancelled
}

// countsTowardSpend is the policy behind the customer projection's
// totalSpend: CANCELLED and NO_SHOW both excluded.
func countsTowardSpend(b models.Booking) bool {
	return b.Status != models.StatusCancelled && b.Status != models.StatusNoShow
}

type DashboardStats struct {
	CarsOnSite    int             `json:"carsOnSite"`
	ArrivalsToday int             `json:"arrivalsToday"`
	PickupsToday  int             `json:"pickupsToday"`
	Overstays     int             `json:"overstays"`
	Revenue7d     decimal.Decimal `json:"revenue7d"`
}

// Dashboard computes the landing-page KPI row by linear scan.
func Dashboard(bookings []models.Booking, now time.Time) DashboardStats {
	stats := DashboardStats{Revenue7d: decimal.Zero}
	sevenDaysAgo := now.AddDate(0, 0, -7)

	for _, b := range bookings {
		if b.Status.OnPremises() {
			stats.CarsOnSite++
		}
		if b.Status == models.StatusBooked && utils.SameDay(b.DropoffAt, now) {
			stats.ArrivalsToday++
		}
		if b.Status.OnPremises() && utils.SameDay(b.PickupAt, now) {
			stats.PickupsToday++
		}
		if b.Status == models.StatusOverstay {
			stats.Overstays++
		}
		if b.CreatedAt.After(sevenDaysAgo) && countsTowardRevenue(b) {
			stats.Revenue7d = stats.Revenue7d.Add(b.Cost)
		}
	}
	return stats
}

type RevenuePoint struct {
	Date     string          `json:"date"`
	Revenue  decimal.Decimal `json:"revenue"`
	Bookings int             `json:"bookings"`
}

// DailyRevenue returns one point per calendar day for the trailing window,
// oldest first, keyed on booking creation date.
func DailyRevenue(bookings []models.Booking, now time.Time, days int) []RevenuePoint {
	points := make([]RevenuePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := RevenuePoint{Date: utils.FormatDate(day), Revenue: decimal.Zero}
		for _, b := range bookings {
			if utils.SameDay(b.CreatedAt, day) && countsTowardRevenue(b) {
				point.Revenue = point.Revenue.Add(b.Cost)
				point.Bookings++
			}
		}
		points = append(points, point)
	}
	return points
}

type RevenueWindow struct {
	Period   string          `json:"period"`
	Revenue  decimal.Decimal `json:"revenue"`
	Bookings int             `json:"bookings"`
}

// RevenueWindows summarizes the trailing 7/30/90 day windows.
func RevenueWindows(bookings []models.Booking, now time.Time) []RevenueWindow {
	windows := []int{7, 30, 90}
	out := make([]RevenueWindow, 0, len(windows))
	for _, days := range windows {
		since := now.AddDate(0, 0, -days)
		w := RevenueWindow{Period: formatPeriod(days), Revenue: decimal.Zero}
		for _, b := range bookings {
			if b.CreatedAt.After(since) && countsTowardRevenue(b) {
				w.Revenue = w.Revenue.Add(b.Cost)
				w.Bookings++
			}
		}
		out = append(out, w)
	}
	return out
}

func formatPeriod(days int) string {
	switch days {
	case 7:
		return "7d"
	case 30:
		return "30d"
	case 90:
		return "90d"
	}
	return ""
}

type PaymentBreakdown struct {
	Method models.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
	Amount decimal.Decimal      `json:"amount"`
}

// PaymentsBreakdown groups non-cancelled bookings by payment method, in the
// enum's declaration order, skipping methods with no bookings.
func PaymentsBreakdown(bookings []models.Booking) []PaymentBreakdown {
	counted := lo.Filter(bookings, func(b models.Booking, _ int) bool { return countsTowardRevenue(b) })
	grouped := lo.GroupBy(counted, func(b models.Booking) models.PaymentMethod { return b.PaymentMethod })

	var out []PaymentBreakdown
	for _, method := range []models.PaymentMethod{models.PaymentCash, models.PaymentEFT, models.PaymentCard, models.PaymentPending} {
		own := grouped[method]
		if len(own) == 0 {
			continue
		}
		amount := decimal.Zero
		for _, b := range own {
			amount = amount.Add(b.Cost)
		}
		out = append(out, PaymentBreakdown{Method: method, Count: len(own), Amount: amount})
	}
	return out
}

type FlightTypeBreakdown struct {
	Type  models.FlightType `json:"type"`
	Count int               `json:"count"`
}

// FlightTypes counts non-cancelled bookings per flight type.
func FlightTypes(bookings []models.Booking) []FlightTypeBreakdown {
	var out []FlightTypeBreakdown
	for _, ft := range []models.FlightType{models.FlightDomestic, models.FlightInternational} {
		n := lo.CountBy(bookings, func(b models.Booking) bool {
			return b.FlightType == ft && countsTowardRevenue(b)
		})
		if n > 0 {
			out = append(out, FlightTypeBreakdown{Type: ft, Count: n})
		}
	}
	return out
}

// AverageStayDays is the mean scheduled stay over COLLECTED bookings only,
// in whole days rounded to one decimal. Zero when nothing was collected yet.
func AverageStayDays(bookings []models.Booking) float64 {
	collected := lo.Filter(bookings, func(b models.Booking, _ int) bool {
		return b.Status == models.StatusCollected
	})
	if len(collected) == 0 {
		return 0
	}
	totalDays := 0
	for _, b := range collected {
		totalDays += int(b.PickupAt.Sub(b.DropoffAt).Hours() / 24)
	}
	avg := float64(totalDays) / float64(len(collected))
	return float64(int(avg*10+0.5)) / 10
}

// TopCustomers ranks the roster by projected total spend, descending.
func TopCustomers(customers []models.Customer, n int) []models.Customer {
	ranked := make([]models.Customer, len(customers))
	copy(ranked, customers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSpend.GreaterThan(ranked[j].TotalSpend)
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
