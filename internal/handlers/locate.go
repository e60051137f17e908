package handlers

import (
	"net/http"

	"github.com/lehigh-university-libraries/wayfinder/internal/callnum"
	"github.com/lehigh-university-libraries/wayfinder/internal/models"
	"github.com/lehigh-university-libraries/wayfinder/internal/shelf"
)

// HandleLocate answers GET /api/locate?call=...&library=...&collection=...
// with the shelf ranges containing the call number. No match is a normal
// 200 with an empty list, never an error.
func (h *Handler) HandleLocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw := r.URL.Query().Get("call")
	ctx := shelf.Context{
		CallNumber:        callnum.StripCutter(callnum.Normalize(raw)),
		RawCallNumber:     raw,
		Library:           r.URL.Query().Get("library"),
		Collection:        r.URL.Query().Get("collection"),
		LibraryEnglish:    r.URL.Query().Get("library_en"),
		CollectionEnglish: r.URL.Query().Get("collection_en"),
	}

	matches := h.table.Match(ctx)

	resp := models.LocateResponse{
		CallNumber: ctx.CallNumber,
		Library:    ctx.Library,
		Collection: ctx.Collection,
		Matches:    make([]models.ShelfMatch, 0, len(matches)),
	}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, models.ShelfMatch{
			SVGCode:              m.SVGCode,
			Floor:                m.Floor,
			Description:          m.Description,
			DescriptionLocalized: m.DescriptionLocalized,
			CallNumberLow:        m.CallNumberLow,
			CallNumberHigh:       m.CallNumberHigh,
		})
	}

	h.writeJSON(w, resp)
}

// HandleRanges answers GET /api/ranges with the full loaded table so the
// front-end can preload it.
func (h *Handler) HandleRanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, h.table)
}

// HandleLabels answers GET /api/labels?table=... with a code-to-label map
// fetched from the discovery host.
func (h *Handler) HandleLabels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.probe == nil {
		h.writeError(w, "No discovery host configured", http.StatusServiceUnavailable)
		return
	}

	table := r.URL.Query().Get("table")
	if table == "" {
		h.writeError(w, "Missing table parameter", http.StatusBadRequest)
		return
	}

	labels, err := h.probe.Labels(r.Context(), table)
	if err != nil {
		h.writeError(w, "Failed to fetch labels: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, labels)
}
