package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"consultoc-api/internal/domain/valuations"
	"consultoc-api/internal/report"
	"consultoc-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder map[string]valuations.Valuation

func (f fakeFinder) Get(_ context.Context, id string) (valuations.Valuation, error) {
	v, ok := f[id]
	if !ok {
		return valuations.Valuation{}, store.ErrNotFound
	}
	return v, nil
}

type recordingGenerator struct {
	got []report.Data
	err error
}

func (g *recordingGenerator) Generate(_ context.Context, d report.Data) (string, error) {
	g.got = append(g.got, d)
	if g.err != nil {
		return "", g.err
	}
	return "s3://laudos-bucket/laudos/" + report.FileName(d.ValuationID), nil
}

func router(gen Generator, finder ValuationFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(gen, finder, zerolog.Nop())
	r := gin.New()
	r.GET("/v1/laudo/pdf/:id", h.GeneratePDF)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func ptr(v float64) *float64 { return &v }

func TestGeneratePDF_WritesFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := report.NewDirStorage(dir)
	require.NoError(t, err)
	gen := report.NewGenerator(storage, nil, zerolog.Nop())
	r := router(gen, fakeFinder{})

	w := get(r, "/v1/laudo/pdf/abc-123?valor=440000&endereco=Rua%20A,%20100")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Laudo gerado com sucesso", body["mensagem"])
	assert.Equal(t, "laudo_abc-123.pdf", body["arquivo"])

	content, err := os.ReadFile(filepath.Join(dir, "laudo_abc-123.pdf"))
	require.NoError(t, err)
	assert.True(t, len(content) > 4 && string(content[:4]) == "%PDF")
}

func TestGeneratePDF_FallsBackToStoredValuation(t *testing.T) {
	gen := &recordingGenerator{}
	r := router(gen, fakeFinder{"val-1": {ID: "val-1", Address: "Av. Brasil, 500", EstimatedValue: ptr(352500)}})

	w := get(r, "/v1/laudo/pdf/val-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, gen.got, 1)
	assert.Equal(t, "Av. Brasil, 500", gen.got[0].Address)
	assert.Equal(t, 352500.0, gen.got[0].Value)

	w = get(r, "/v1/laudo/pdf/val-1?valor=1000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1000.0, gen.got[1].Value)
	assert.Equal(t, "Av. Brasil, 500", gen.got[1].Address)
}

func TestGeneratePDF_Errors(t *testing.T) {
	finder := fakeFinder{"no-value": {ID: "no-value", Address: "Rua B"}}

	gen := &recordingGenerator{}
	r := router(gen, finder)
	assert.Equal(t, http.StatusNotFound, get(r, "/v1/laudo/pdf/missing").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(r, "/v1/laudo/pdf/no-value").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/laudo/pdf/x?valor=abc&endereco=Rua").Code)
	for _, valor := range []string{"-1", "NaN", "Inf", "%2BInf", "-Inf"} {
		assert.Equal(t, http.StatusBadRequest, get(r, "/v1/laudo/pdf/x?valor="+valor+"&endereco=Rua").Code, valor)
	}
	assert.Empty(t, gen.got)

	r = router(&recordingGenerator{err: errors.New("disk full")}, finder)
	w := get(r, "/v1/laudo/pdf/x?valor=10&endereco=Rua")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full")
}
