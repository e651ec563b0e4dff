// internal/api/api.go

// Package api is the HTTP surface of amountwords: spelling amounts, batch
// conversion and currency registry management.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/amountwords/config"
	"github.com/dalemusser/amountwords/currency"
	"github.com/dalemusser/amountwords/export"
	"github.com/dalemusser/amountwords/httputil"
	"github.com/dalemusser/amountwords/middleware"
	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"github.com/dalemusser/amountwords/words"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaxBatchRows caps the rows of one batch request.
const MaxBatchRows = 10000

// Handler serves the /v1 routes over one engine.
type Handler struct {
	engine    *words.Engine
	defaults  export.Defaults
	rateLimit float64
	burst     int
	logger    *zap.Logger
}

// New returns a Handler. cfg supplies the default language and currency and
// the per-client rate limit.
func New(engine *words.Engine, cfg *config.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{engine: engine, logger: logger}
	if cfg != nil {
		h.defaults = export.Defaults{
			Currency: cfg.Format.DefaultCurrency,
			Language: cfg.Format.DefaultLanguage,
		}
		h.rateLimit, h.burst = cfg.RateLimit, cfg.RateLimitBurst
	}
	return h
}

// Routes returns the /v1 subrouter.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RateLimit(h.rateLimit, h.burst))
	r.Use(middleware.RequireJSON())

	r.Post("/words", h.wrap(h.spell))
	r.Post("/words/batch", h.wrap(h.batch))

	r.Route("/currencies", func(r chi.Router) {
		r.Get("/", h.wrap(h.listCurrencies))
		r.Post("/", h.wrap(h.createCurrency))
		r.Get("/{code}", h.wrap(h.getCurrency))
		r.Delete("/{code}", h.wrap(h.deleteCurrency))
	})
	return r
}

func (h *Handler) wrap(fn apperrors.ErrorHandlerFunc) http.HandlerFunc {
	return apperrors.WrapWithLogger(fn, h.logger)
}

// Token is a currency reference in a request: a name ("UAH") or a numeric
// code, given either as a JSON string or a JSON number.
type Token string

// UnmarshalJSON accepts "UAH", "980" and 980. null leaves the token empty,
// so the configured default currency applies.
func (t *Token) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Token(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("currency code %s is not an integer", n)
	}
	*t = Token(n.String())
	return nil
}

// SpellRequest is the body of POST /v1/words. Exactly one of Amount (major
// units, decimal string) or Minor (minor-unit ticks) is required.
type SpellRequest struct {
	Amount   *string `json:"amount,omitempty"`
	Minor    *int64  `json:"minor,omitempty"`
	Currency Token   `json:"currency,omitempty"`
	Language string  `json:"language,omitempty"`
}

// SpellResponse is the answer of POST /v1/words. Words and Figures are
// empty when the language is not recognized.
type SpellResponse struct {
	Words    string `json:"words"`
	Figures  string `json:"figures,omitempty"`
	Amount   string `json:"amount"`
	Minor    int64  `json:"minor"`
	Currency string `json:"currency"`
	Language string `json:"language"`
}

func (h *Handler) spell(w http.ResponseWriter, r *http.Request) error {
	var req SpellRequest
	if err := httputil.BindJSON(r, &req); err != nil {
		return err
	}

	minor, err := req.minorUnits()
	if err != nil {
		return err
	}

	cur := string(req.Currency)
	if cur == "" {
		cur = h.defaults.Currency
	}
	lang := req.Language
	if lang == "" {
		lang = h.defaults.Language
	}

	s, err := h.engine.Format(minor, cur, lang)
	if err != nil {
		return err
	}

	figures, _ := h.engine.Figures(minor, lang)
	httputil.WriteJSONWithLogger(w, http.StatusOK, SpellResponse{
		Words:    s,
		Figures:  figures,
		Amount:   words.ToDecimal(minor).StringFixed(2),
		Minor:    minor,
		Currency: cur,
		Language: lang,
	}, h.logger)
	return nil
}

func (req SpellRequest) minorUnits() (int64, error) {
	switch {
	case req.Amount != nil && req.Minor != nil:
		return 0, apperrors.BadRequest("give either amount or minor, not both")
	case req.Amount != nil:
		return words.ParseAmount(*req.Amount)
	case req.Minor != nil:
		return *req.Minor, nil
	default:
		v := apperrors.NewValidationErrors()
		v.AddWithCode("amount", "amount or minor is required", "required")
		return 0, v.ToError("amount is missing")
	}
}

// BatchRequest is the body of POST /v1/words/batch.
type BatchRequest struct {
	Rows []export.Row `json:"rows"`
}

// BatchResult is one row of the JSON batch answer.
type BatchResult struct {
	export.Row
	Words string `json:"words"`
	Error string `json:"error,omitempty"`
}

// batch converts rows. ?format=csv or ?format=xlsx returns a file instead
// of JSON. Row failures are reported per row; the request still succeeds.
func (h *Handler) batch(w http.ResponseWriter, r *http.Request) error {
	format := strings.ToLower(r.URL.Query().Get("format"))

	var out export.Format
	if format != "" && format != "json" {
		f, err := export.ParseFormat(format)
		if err != nil {
			return apperrors.BadRequest(err.Error())
		}
		out = f
	}

	var req BatchRequest
	if err := httputil.BindJSON(r, &req); err != nil {
		return err
	}
	if len(req.Rows) == 0 {
		return apperrors.BadRequest("rows is empty")
	}
	if len(req.Rows) > MaxBatchRows {
		return apperrors.BadRequest(fmt.Sprintf("at most %d rows per request", MaxBatchRows))
	}

	results := export.Convert(h.engine, req.Rows, h.defaults)

	if out != "" {
		w.Header().Set("Content-Type", out.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="amounts.%s"`, out))
		if err := export.Write(w, out, results); err != nil {
			h.logger.Error("batch export failed", zap.Error(err))
		}
		return nil
	}

	resp := make([]BatchResult, len(results))
	for i, res := range results {
		resp[i] = BatchResult{Row: res.Row, Words: res.Words, Error: res.ErrorText()}
	}
	httputil.WriteJSONWithLogger(w, http.StatusOK, resp, h.logger)
	return nil
}

func (h *Handler) listCurrencies(w http.ResponseWriter, r *http.Request) error {
	httputil.WriteJSONWithLogger(w, http.StatusOK, h.engine.ListCurrencies(), h.logger)
	return nil
}

func (h *Handler) createCurrency(w http.ResponseWriter, r *http.Request) error {
	var c currency.Currency
	if err := httputil.BindJSON(r, &c); err != nil {
		return err
	}
	if err := h.engine.RegisterCurrency(c); err != nil {
		return err
	}
	w.Header().Set("Location", "/v1/currencies/"+strconv.Itoa(c.Code))
	httputil.WriteJSONWithLogger(w, http.StatusCreated, c, h.logger)
	return nil
}

func (h *Handler) getCurrency(w http.ResponseWriter, r *http.Request) error {
	c, err := h.lookup(r)
	if err != nil {
		return err
	}
	httputil.WriteJSONWithLogger(w, http.StatusOK, c, h.logger)
	return nil
}

func (h *Handler) deleteCurrency(w http.ResponseWriter, r *http.Request) error {
	c, err := h.lookup(r)
	if err != nil {
		return err
	}
	if !h.engine.UnregisterCurrency(c) {
		return apperrors.NotFound(fmt.Sprintf("currency %d is not registered", c.Code))
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) lookup(r *http.Request) (currency.Currency, error) {
	raw := chi.URLParam(r, "code")
	code, err := strconv.Atoi(raw)
	if err != nil || code <= 0 {
		return currency.Currency{}, apperrors.BadRequest(fmt.Sprintf("currency code %q is not a positive integer", raw))
	}
	c, ok := h.engine.Registry().ByCode(code)
	if !ok {
		return currency.Currency{}, apperrors.NotFound(fmt.Sprintf("currency %d is not registered", code))
	}
	return c, nil
}
