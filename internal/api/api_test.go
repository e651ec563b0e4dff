package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/amountwords/config"
	"github.com/dalemusser/amountwords/currency"
	"github.com/dalemusser/amountwords/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	engine  *words.Engine
	handler http.Handler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	reg := currency.NewDefaultRegistry()
	e := words.New(words.WithRegistry(reg), words.WithMapping(currency.LookupMapping(reg)))
	cfg := &config.Config{
		MaxRequestBodyBytes: 64 << 10,
		Format:              config.FormatConfig{DefaultLanguage: "UA", DefaultCurrency: "UAH"},
	}
	h, err := NewHandler(cfg, e, nil)
	require.NoError(t, err)
	return fixture{engine: e, handler: h}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestSpell(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
		want SpellResponse
	}{
		{
			"major amount",
			`{"amount":"1.11","currency":"UAH","language":"UA"}`,
			SpellResponse{Words: "одна гривня одинадцять копійок ", Amount: "1.11", Minor: 111, Currency: "UAH", Language: "UA"},
		},
		{
			"minor with numeric code",
			`{"minor":900,"currency":840,"language":"ENG"}`,
			SpellResponse{Words: "nine dollars zero cents ", Amount: "9.00", Minor: 900, Currency: "840", Language: "ENG"},
		},
		{
			"defaults",
			`{"amount":"2"}`,
			SpellResponse{Words: "дві гривні копійок ", Amount: "2.00", Minor: 200, Currency: "UAH", Language: "UA"},
		},
		{
			"null currency uses default",
			`{"amount":"1.11","currency":null}`,
			SpellResponse{Words: "одна гривня одинадцять копійок ", Amount: "1.11", Minor: 111, Currency: "UAH", Language: "UA"},
		},
		{
			"unknown language",
			`{"minor":100,"currency":"USD","language":"DE"}`,
			SpellResponse{Words: "", Amount: "1.00", Minor: 100, Currency: "USD", Language: "DE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/v1/words", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			got := decode[SpellResponse](t, rec)
			assert.Equal(t, tt.want.Words == "", got.Figures == "", "figures accompany words")
			got.Figures = ""
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpellFigures(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/words", `{"minor":123456,"currency":"USD","language":"ENG"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1,234.56", decode[SpellResponse](t, rec).Figures)
}

func TestSpellErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"negative", `{"minor":-1}`, http.StatusUnprocessableEntity, "out_of_range"},
		{"too large", `{"amount":"2147483648"}`, http.StatusUnprocessableEntity, "out_of_range"},
		{"three decimals", `{"amount":"1.005"}`, http.StatusBadRequest, "validation_failed"},
		{"not a number", `{"amount":"abc"}`, http.StatusBadRequest, "validation_failed"},
		{"missing amount", `{"currency":"UAH"}`, http.StatusBadRequest, "validation_failed"},
		{"both amounts", `{"amount":"1","minor":100}`, http.StatusBadRequest, "bad_request"},
		{"unknown currency", `{"minor":1,"currency":"XYZ"}`, http.StatusNotFound, "not_found"},
		{"fractional code", `{"minor":1,"currency":9.5}`, http.StatusBadRequest, "bad_request"},
		{"unknown field", `{"minor":1,"lang":"UA"}`, http.StatusBadRequest, "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/v1/words", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decode[errorBody](t, rec).Error.Code)
		})
	}
}

func TestSpellRequiresJSON(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/words", strings.NewReader(`{"minor":1}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestBatchJSON(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/words/batch",
		`{"rows":[{"amount":"245.00"},{"amount":"21","currency":"USD","language":"ENG"},{"amount":"-3"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[[]BatchResult](t, rec)
	require.Len(t, res, 3)
	assert.Equal(t, "двісті сорок п'ять гривень копійок ", res[0].Words)
	assert.Equal(t, "UAH", res[0].Currency)
	assert.Equal(t, "twenty one dollar zero cents ", res[1].Words)
	assert.Empty(t, res[1].Error)
	assert.NotEmpty(t, res[2].Error)
}

func TestBatchFiles(t *testing.T) {
	f := newFixture(t)
	body := `{"rows":[{"amount":"1.11"}]}`

	rec := f.do(t, http.MethodPost, "/v1/words/batch?format=csv", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	recs, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "одна гривня одинадцять копійок", recs[1][3])

	rec = f.do(t, http.MethodPost, "/v1/words/batch?format=xlsx", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "amounts.xlsx")
	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Amounts")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestBatchErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/words/batch", `{"rows":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/words/batch?format=pdf", `{"rows":[{"amount":"1"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const eur = `{"code":978,"name":"EUR",` +
	`"integer":{"one":"euro","few":"euros","many":"euros","gender":"masculine"},` +
	`"fraction":{"one":"cent","few":"cents","many":"cents","gender":"masculine"},` +
	`"spell_zero_fraction":true}`

func TestCurrencyLifecycle(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/currencies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]currency.Currency](t, rec), 2)

	rec = f.do(t, http.MethodPost, "/v1/currencies", eur)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/v1/currencies/978", rec.Header().Get("Location"))

	rec = f.do(t, http.MethodPost, "/v1/currencies", eur)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/currencies/978", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EUR", decode[currency.Currency](t, rec).Name)

	rec = f.do(t, http.MethodPost, "/v1/words", `{"amount":"2.00","currency":"eur","language":"ENG"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "two euros zero cents ", decode[SpellResponse](t, rec).Words)

	rec = f.do(t, http.MethodDelete, "/v1/currencies/978", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/v1/currencies/978", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/currencies/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateIncompleteCurrency(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/currencies", `{"code":978,"name":"EUR"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errorBody](t, rec)
	assert.Equal(t, "validation_failed", body.Error.Code)
	assert.NotEmpty(t, body.Error.Details["fields"])
	assert.Equal(t, 2, f.engine.Registry().Len())
}

func TestOperationalRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"registry":"ok"`)

	rec = f.do(t, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorBody](t, rec).Error.Code)

	// empty registry reports unhealthy
	for _, c := range f.engine.ListCurrencies() {
		f.engine.UnregisterCurrency(c)
	}
	rec = f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTokenUnmarshal(t *testing.T) {
	var tok Token
	require.NoError(t, json.Unmarshal([]byte(`"UAH"`), &tok))
	assert.Equal(t, Token("UAH"), tok)
	require.NoError(t, json.Unmarshal([]byte(`840`), &tok))
	assert.Equal(t, Token("840"), tok)
	require.NoError(t, json.Unmarshal([]byte(`null`), &tok))
	assert.Equal(t, Token(""), tok)
	assert.Error(t, json.Unmarshal([]byte(`8.5`), &tok))
	assert.Error(t, json.Unmarshal([]byte(`true`), &tok))
}
