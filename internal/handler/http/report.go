package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/planboard/capacity-backend-go/internal/handler/http/response"
	"github.com/planboard/capacity-backend-go/internal/pkg/calendar"
	"github.com/planboard/capacity-backend-go/internal/service/capacity"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
	"github.com/planboard/capacity-backend-go/internal/service/license"
	"github.com/planboard/capacity-backend-go/internal/service/revenue"
)

type ReportHandler interface {
	RevenueMonthly(w http.ResponseWriter, r *http.Request)
	RevenueQuarterly(w http.ResponseWriter, r *http.Request)
	RevenueAnnual(w http.ResponseWriter, r *http.Request)
	LicenseDemand(w http.ResponseWriter, r *http.Request)
	Capacity(w http.ResponseWriter, r *http.Request)
	FreeCapacityByWeek(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	store      *feed.Store
	revenue    *revenue.Aggregator
	licenses   *license.Aggregator
	classifier *capacity.Classifier
}

func NewReportHandler(
	store *feed.Store,
	revenueAgg *revenue.Aggregator,
	licenseAgg *license.Aggregator,
	classifier *capacity.Classifier,
) ReportHandler {
	return &reportHandlerImpl{
		store:      store,
		revenue:    revenueAgg,
		licenses:   licenseAgg,
		classifier: classifier,
	}
}

// countryParam reads the ?country= query parameter, defaulting to the
// Czech holiday calendar.
func countryParam(r *http.Request) (calendar.Country, bool) {
	val := strings.ToUpper(r.URL.Query().Get("country"))
	if val == "" {
		return calendar.CountryCzech, true
	}
	switch calendar.Country(val) {
	case calendar.CountryCzech, calendar.CountrySlovak:
		return calendar.Country(val), true
	default:
		return "", false
	}
}

func (h *reportHandlerImpl) RevenueMonthly(w http.ResponseWriter, r *http.Request) {
	country, ok := countryParam(r)
	if !ok {
		response.BadRequest(w, "country must be one of CZ, SK", nil)
		return
	}

	snap := h.store.Snapshot()
	result := h.revenue.Monthly(snap, country)

	response.Success(w, map[string]interface{}{
		"version": snap.Version,
		"revenue": result,
	})
}

func (h *reportHandlerImpl) RevenueQuarterly(w http.ResponseWriter, r *http.Request) {
	country, ok := countryParam(r)
	if !ok {
		response.BadRequest(w, "country must be one of CZ, SK", nil)
		return
	}

	snap := h.store.Snapshot()
	result := h.revenue.Quarterly(h.revenue.Monthly(snap, country))

	response.Success(w, map[string]interface{}{
		"version": snap.Version,
		"revenue": result,
	})
}

func (h *reportHandlerImpl) RevenueAnnual(w http.ResponseWriter, r *http.Request) {
	country, ok := countryParam(r)
	if !ok {
		response.BadRequest(w, "country must be one of CZ, SK", nil)
		return
	}

	snap := h.store.Snapshot()
	result := h.revenue.Annual(h.revenue.Monthly(snap, country))

	response.Success(w, map[string]interface{}{
		"version": snap.Version,
		"revenue": result,
	})
}

func (h *reportHandlerImpl) LicenseDemand(w http.ResponseWriter, r *http.Request) {
	week, err := calendar.ParseWeekLabel(chi.URLParam(r, "week"))
	if err != nil {
		response.BadRequest(w, "week must match CW<NN>-<YYYY>", nil)
		return
	}

	snap := h.store.Snapshot()
	result := h.licenses.WeeklyDemand(snap, week)

	response.Success(w, map[string]interface{}{
		"version": snap.Version,
		"week":    week.Label(),
		"demand":  result,
	})
}

func weekRangeParams(r *http.Request) (calendar.WeekKey, calendar.WeekKey, error) {
	from, err := calendar.ParseWeekLabel(r.URL.Query().Get("from"))
	if err != nil {
		return calendar.WeekKey{}, calendar.WeekKey{}, err
	}
	to, err := calendar.ParseWeekLabel(r.URL.Query().Get("to"))
	if err != nil {
		return calendar.WeekKey{}, calendar.WeekKey{}, err
	}
	return from, to, nil
}

func (h *reportHandlerImpl) Capacity(w http.ResponseWriter, r *http.Request) {
	from, to, err := weekRangeParams(r)
	if err != nil {
		response.BadRequest(w, "from and to must match CW<NN>-<YYYY>", nil)
		return
	}
	if to.Before(from) {
		response.BadRequest(w, "to must not precede from", nil)
		return
	}

	snap := h.store.Snapshot()
	result := h.classifier.Classify(snap, from, to)

	response.Success(w, map[string]interface{}{
		"version":  snap.Version,
		"from":     from.Label(),
		"to":       to.Label(),
		"capacity": result,
	})
}

func (h *reportHandlerImpl) FreeCapacityByWeek(w http.ResponseWriter, r *http.Request) {
	from, to, err := weekRangeParams(r)
	if err != nil {
		response.BadRequest(w, "from and to must match CW<NN>-<YYYY>", nil)
		return
	}
	if to.Before(from) {
		response.BadRequest(w, "to must not precede from", nil)
		return
	}

	snap := h.store.Snapshot()
	byWeek := h.classifier.FreeByWeek(snap, from, to)

	// WeekKey is a struct, so re-key by label for JSON.
	free := make(map[string]int, len(byWeek))
	for week, count := range byWeek {
		free[week.Label()] = count
	}

	response.Success(w, map[string]interface{}{
		"version": snap.Version,
		"free":    free,
	})
}
