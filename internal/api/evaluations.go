package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/solgrid-labs/siterank/internal/ahp"
	"github.com/solgrid-labs/siterank/internal/events"
	"github.com/solgrid-labs/siterank/internal/geodata"
	"github.com/solgrid-labs/siterank/internal/metrics"
	"github.com/solgrid-labs/siterank/internal/store"
)

type EvaluationsHandler struct {
	evaluator *ahp.Evaluator
	source    geodata.ValueSource
	store     store.Store
	events    events.Client
	metrics   *metrics.Metrics
}

func NewEvaluationsHandler(
	evaluator *ahp.Evaluator,
	source geodata.ValueSource,
	s store.Store,
	e events.Client,
	m *metrics.Metrics,
) *EvaluationsHandler {
	return &EvaluationsHandler{
		evaluator: evaluator,
		source:    source,
		store:     s,
		events:    e,
		metrics:   m,
	}
}

// MatrixRequest is a pairwise comparison matrix on the wire: criterion names
// plus a square cell grid in the same order.
type MatrixRequest struct {
	Criteria []string    `json:"criteria"`
	Cells    [][]float64 `json:"cells"`
}

type CreateEvaluationRequest struct {
	// Either a coordinate for the configured value source, or explicit raw
	// values per criterion.
	Latitude  *float64           `json:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty"`
	Values    map[string]float64 `json:"values,omitempty"`

	// At most one of Matrix and Weights; neither means the default weights.
	Matrix  *MatrixRequest     `json:"matrix,omitempty"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

func (h *EvaluationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.countError("bad_body")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Matrix != nil && req.Weights != nil {
		h.countError("ambiguous_weights")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "provide either matrix or weights, not both"})
		return
	}

	values := req.Values
	if values == nil {
		if req.Latitude == nil || req.Longitude == nil {
			h.countError("no_site")
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "either values or latitude+longitude required"})
			return
		}
		if !geodata.InBounds(*req.Latitude, *req.Longitude) {
			h.countError("out_of_bounds")
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "coordinate outside covered region"})
			return
		}
		var err error
		values, err = h.source.SiteValues(r.Context(), *req.Latitude, *req.Longitude)
		if err != nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "geodata source: " + err.Error()})
			return
		}
	}

	var result *ahp.Result
	var weightsSource store.WeightsSource
	var err error
	switch {
	case req.Matrix != nil:
		weightsSource = store.SourceMatrix
		var m *ahp.PairwiseMatrix
		m, err = ahp.NewPairwiseMatrix(req.Matrix.Criteria, req.Matrix.Cells)
		if err == nil {
			result, err = h.evaluator.EvaluateWithMatrix(values, m)
		}
	case req.Weights != nil:
		weightsSource = store.SourceManual
		result, err = h.evaluator.EvaluateWithWeights(values, req.Weights)
	default:
		weightsSource = store.SourceDefault
		result, err = h.evaluator.EvaluateWithWeights(values, geodata.DefaultWeights())
	}
	if err != nil {
		h.countError(errorReason(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	evaluation := &store.Evaluation{
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Score:            result.Score,
		Category:         string(result.Category),
		CategoryLabel:    result.Category.Label(),
		Consistent:       result.Consistent,
		ConsistencyRatio: result.ConsistencyRatio,
		WeightsSource:    weightsSource,
		Contributions:    result.Contributions,
		RequestedBy:      r.Header.Get("X-Client-ID"),
	}
	if err := h.store.CreateEvaluation(r.Context(), evaluation); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.metrics != nil {
		h.metrics.EvaluationsTotal.WithLabelValues(evaluation.Category, string(weightsSource)).Inc()
		h.metrics.SuitabilityScore.Observe(evaluation.Score)
		if !evaluation.Consistent {
			h.metrics.InconsistentTotal.Inc()
		}
	}

	if h.events != nil {
		id := evaluation.ID.String()
		_ = h.events.Publish(events.SubjectEvaluationCompleted(id), events.EvaluationCompletedEvent{
			EvaluationID:  id,
			Latitude:      evaluation.Latitude,
			Longitude:     evaluation.Longitude,
			Score:         evaluation.Score,
			Category:      evaluation.Category,
			Consistent:    evaluation.Consistent,
			WeightsSource: string(weightsSource),
		})
		if !evaluation.Consistent {
			_ = h.events.Publish(events.SubjectEvaluationInconsistent(id), events.EvaluationInconsistentEvent{
				EvaluationID:     id,
				ConsistencyRatio: evaluation.ConsistencyRatio,
				Limit:            h.evaluator.CRLimit(),
			})
		}
	}

	writeJSON(w, http.StatusCreated, evaluation)
}

func (h *EvaluationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid evaluation id"})
		return
	}

	evaluation, err := h.store.GetEvaluation(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if evaluation == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "evaluation not found"})
		return
	}
	writeJSON(w, http.StatusOK, evaluation)
}

func (h *EvaluationsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.EvaluationFilter{
		Category:      q.Get("category"),
		WeightsSource: store.WeightsSource(q.Get("weights_source")),
		Limit:         100,
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	if v := q.Get("min_score"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinScore = &f
		}
	}

	evaluations, err := h.store.ListEvaluations(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if evaluations == nil {
		evaluations = []*store.Evaluation{}
	}
	writeJSON(w, http.StatusOK, evaluations)
}

// PreviewWeights derives the weight vector and consistency ratio from a
// pairwise matrix without running an evaluation, so a caller can iterate on
// judgments before committing.
func (h *EvaluationsHandler) PreviewWeights(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Matrix MatrixRequest `json:"matrix"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	m, err := ahp.NewPairwiseMatrix(req.Matrix.Criteria, req.Matrix.Cells)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	weights, err := m.Weights(h.evaluator.Registry())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	cr := m.ConsistencyRatio(weights)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weights":           weights,
		"consistency_ratio": cr,
		"consistent":        cr <= h.evaluator.CRLimit(),
	})
}

func (h *EvaluationsHandler) countError(reason string) {
	if h.metrics != nil {
		h.metrics.EvaluationErrorsTotal.WithLabelValues(reason).Inc()
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, ahp.ErrInvalidMatrix):
		return "invalid_matrix"
	case errors.Is(err, ahp.ErrInvalidWeight):
		return "invalid_weight"
	case errors.Is(err, ahp.ErrMissingCriterion):
		return "missing_criterion"
	case errors.Is(err, ahp.ErrInvalidRange):
		return "invalid_range"
	default:
		return "other"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
