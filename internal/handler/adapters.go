package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/web3-frozen/spro-fees/internal/adapter"
	"github.com/web3-frozen/spro-fees/internal/balances"
	"github.com/web3-frozen/spro-fees/internal/chain"
)

type chainInfo struct {
	Chain       string            `json:"chain"`
	DisplayName string            `json:"displayName"`
	Start       string            `json:"start"`
	Methodology map[string]string `json:"methodology"`
}

type adapterInfo struct {
	Name    string      `json:"name"`
	Version int         `json:"version"`
	Chains  []chainInfo `json:"chains"`
}

// ListAdapters publishes every registered adapter with its per-chain start
// date and methodology.
func ListAdapters(runner *adapter.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]adapterInfo, 0)
		for _, name := range runner.Names() {
			a, ok := runner.Get(name)
			if !ok {
				continue
			}
			info := adapterInfo{Name: a.Name, Version: a.Version, Chains: []chainInfo{}}
			for _, c := range chain.All() {
				ca, ok := a.Chains[c]
				if !ok {
					continue
				}
				info.Chains = append(info.Chains, chainInfo{
					Chain:       c.String(),
					DisplayName: c.DisplayName(),
					Start:       ca.Start,
					Methodology: ca.Meta.Methodology,
				})
			}
			out = append(out, info)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type fetchResponse struct {
	Adapter      string             `json:"adapter"`
	Chain        string             `json:"chain"`
	Date         string             `json:"date"`
	StartOfDay   int64              `json:"startOfDay"`
	DailyFees    *balances.Balances `json:"dailyFees"`
	DailyRevenue *balances.Balances `json:"dailyRevenue"`
}

// FetchAdapter runs one adapter for one chain and day. The day comes from
// ?date=2006-01-02 or ?timestamp=<unix>, defaulting to yesterday (UTC).
func FetchAdapter(runner *adapter.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		c, err := chain.Parse(chi.URLParam(r, "chain"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		day, err := requestedDay(r, time.Now())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := runner.Run(r.Context(), name, c, day)
		switch {
		case err == nil:
		case errors.Is(err, adapter.ErrAdapterNotFound), errors.Is(err, adapter.ErrChainNotSupported):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, adapter.ErrBeforeStart):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		default:
			writeError(w, http.StatusBadGateway, "fetch failed")
			return
		}

		startOfDay := adapter.StartOfDay(day)
		writeJSON(w, http.StatusOK, fetchResponse{
			Adapter:      name,
			Chain:        c.String(),
			Date:         time.Unix(startOfDay, 0).UTC().Format("2006-01-02"),
			StartOfDay:   startOfDay,
			DailyFees:    res.DailyFees,
			DailyRevenue: res.DailyRevenue,
		})
	}
}

func requestedDay(r *http.Request, now time.Time) (time.Time, error) {
	q := r.URL.Query()
	if s := q.Get("date"); s != "" {
		d, err := adapter.ParseDay(s)
		if err != nil {
			return time.Time{}, errors.New("invalid date, expected YYYY-MM-DD")
		}
		return d, nil
	}
	if s := q.Get("timestamp"); s != "" {
		ts, err := strconv.ParseInt(s, 10, 64)
		if err != nil || ts < 0 {
			return time.Time{}, errors.New("invalid timestamp, expected unix seconds")
		}
		return time.Unix(ts, 0).UTC(), nil
	}
	return now.UTC().AddDate(0, 0, -1), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
